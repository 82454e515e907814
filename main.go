package main

import (
	"fmt"
	"os"
	"strings"

	"portfolio/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a subcommand.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
	case "version":
		fmt.Printf("portfolio version %s\n", CliVersion)
	case "serve", "backup", "restore", "comments":
		if code := service.HandleCommand(append([]string{cmd}, os.Args[2:]...)); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: portfolio <command> [options]
Commands:
  help                              Display this help message.
  version                           Show version information.
  serve [--config <file>]           Run the portfolio API server.
  backup [--config <file>]          Back up the badger comment database.
  restore <file> [--config <file>]  Restore the badger comment database.
  comments <export|import|clear|stats> [args]
                                    Manage stored comments from the command line.
`
	fmt.Println(helpText)
}

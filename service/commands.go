package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio/app/config"
	"portfolio/app/logger"
	"portfolio/app/repositories"
	"portfolio/app/services"
)

var osExit = os.Exit

// HandleCommand runs one CLI subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printCommandHelp()
		osExit(1)
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return RunAppServer(args[1:])
	case "backup":
		return withConfig(args[1:], func(cfg *config.Config, _ []string) int {
			return backup(cfg)
		})
	case "restore":
		return withConfig(args[1:], func(cfg *config.Config, rest []string) int {
			if len(rest) < 1 {
				fmt.Println("Error: backup file path required for restore")
				osExit(1)
				return 1
			}
			return restore(cfg, rest[0])
		})
	case "comments":
		return withConfig(args[1:], comments)
	case "help":
		printCommandHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printCommandHelp()
		osExit(1)
		return 1
	}
}

// printCommandHelp prints help for every subcommand.
func printCommandHelp() {
	helpText := `Usage: portfolio <command> [--config <file>]

Commands:
  serve                           Run the portfolio API server
  backup                          Create a backup of the badger comment database
  restore <file>                  Restore the badger comment database from a backup
  comments export [json|csv]      Write every comment to stdout
  comments import <file>          Import comments from a JSON export
  comments clear                  Delete every comment
  comments stats                  Print comment statistics
  version                         Print the version
  help                            Display this help message
`
	fmt.Println(helpText)
}

func withConfig(args []string, fn func(cfg *config.Config, rest []string) int) int {
	path, rest := splitConfigFlag(args)
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}
	return fn(cfg, rest)
}

// cliLogger keeps stdout free for command output.
func cliLogger() logger.Logger {
	log, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{"stderr"}})
	if err != nil {
		return logger.NewNop()
	}
	return log
}

func comments(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Println("Error: comments requires a subcommand (export, import, clear, stats)")
		return 1
	}

	log := cliLogger()
	store, closeStore, err := openCommentStore(cfg, log)
	if err != nil {
		fmt.Printf("Failed to open comment store: %v\n", err)
		return 1
	}
	defer closeStore()
	svc := services.NewCommentService(store, services.WithCommentLogger(log))

	switch args[0] {
	case "export":
		format := services.FormatJSON
		if len(args) > 1 {
			format = args[1]
		}
		data, err := svc.ExportComments(format)
		if err != nil {
			fmt.Printf("Failed to export comments: %v\n", err)
			return 1
		}
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return 0

	case "import":
		if len(args) < 2 {
			fmt.Println("Error: import file path required")
			return 1
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", args[1], err)
			return 1
		}
		result := svc.ImportComments(data)
		for _, msg := range result.Errors {
			fmt.Printf("  %s\n", msg)
		}
		fmt.Printf("Imported %d comments (%d errors)\n", result.Success, len(result.Errors))
		if err := svc.Close(); err != nil {
			fmt.Printf("Failed to save comments: %v\n", err)
			return 1
		}
		if len(result.Errors) > 0 {
			return 1
		}
		return 0

	case "clear":
		fmt.Print("Are you sure you want to delete every comment? This cannot be undone. [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return 1
		}
		svc.ClearAllComments()
		fmt.Println("Comments cleared successfully")
		return 0

	case "stats":
		stats := svc.CommentStats()
		fmt.Printf("Total:     %d\n", stats.Total)
		fmt.Printf("Approved:  %d\n", stats.Approved)
		fmt.Printf("Pending:   %d\n", stats.Pending)
		fmt.Printf("Spam:      %d\n", stats.Spam)
		fmt.Printf("Per post:  %.2f\n", stats.AverageCommentsPerPost)
		return 0

	default:
		fmt.Printf("Unknown comments command: %s\n", args[0])
		return 1
	}
}

func requireBadger(cfg *config.Config) bool {
	if cfg.Storage.Backend != config.StorageBadger || cfg.Storage.InMemory {
		fmt.Printf("Backup and restore need an on-disk badger store (backend is %q)\n", cfg.Storage.Backend)
		return false
	}
	return true
}

// backup writes a full badger backup next to the database directory.
func backup(cfg *config.Config) int {
	if !requireBadger(cfg) {
		return 1
	}
	dbPath := cfg.Storage.BadgerPath
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadger(dbPath, false)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the badger database with the contents of backupFile.
func restore(cfg *config.Config, backupFile string) int {
	if !requireBadger(cfg) {
		return 1
	}
	dbPath := cfg.Storage.BadgerPath

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadger(dbPath, false)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	var exitCode int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}

	output := captureOutput(func() {
		defer func() {
			if r := recover(); r != nil {
				if r != "exit" {
					panic(r)
				}
			}
		}()
		RealMain()
	})
	return exitCode, output
}

func TestRealMain(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tmpDir := t.TempDir()
	t.Setenv("CONFIG_PATH", filepath.Join(tmpDir, "missing.yml"))
	t.Setenv("STORAGE_BACKEND", "badger")
	t.Setenv("BADGER_PATH", filepath.Join(tmpDir, "badger"))

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"portfolio"},
			expectedExit:   1,
			expectedOutput: "Usage: portfolio <command>",
		},
		{
			name:           "help command",
			args:           []string{"portfolio", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: portfolio <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"portfolio", "version"},
			expectedExit:   0,
			expectedOutput: "portfolio version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"portfolio", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "comments stats",
			args:           []string{"portfolio", "comments", "stats"},
			expectedExit:   0,
			expectedOutput: "Total:     0",
		},
		{
			name:           "comments without subcommand",
			args:           []string{"portfolio", "comments"},
			expectedExit:   1,
			expectedOutput: "comments requires a subcommand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(func() {
		printHelp()
	})

	for _, cmd := range []string{"help", "version", "serve", "backup", "restore", "comments"} {
		assert.Contains(t, output, cmd)
	}
}

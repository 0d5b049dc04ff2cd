package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pborges/tt2rom"
	"github.com/pborges/tt2rom/internal/output"
	"github.com/pborges/tt2rom/internal/romfmt"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "build":
		err = cmdBuild(args[1:], stdout, stderr, getenv)
	case "formats":
		for _, name := range romfmt.Formats() {
			fmt.Fprintln(stdout, name)
		}
	case "version":
		fmt.Fprintln(stdout, tt2rom.Banner())
	case "help", "-h", "--help":
		usage(stdout)
	default:
		fmt.Fprintln(stderr, "unknown command:", args[0])
		usage(stderr)
		return 2
	}
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, "error:", exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "error:", err)
	return 1
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `tt2rom - truth table to ROM image compiler

Usage:
  tt2rom build [options] <file>...
  tt2rom formats
  tt2rom version

Build options:
  -output-fmt raw|text|intel  output format (default intel)
  -output-dc 0|1              value for '-' output bits (default 1)
  -o template                 output file name, one %%d for the ROM number
  -config file.hcl            project file with build settings
  -log-level level            debug, info, warn or error (default info)
  -log-format format          text or json (default text)

Without -o, images are written to <first 6 chars of file>%%d.hex unless
the %s environment variable holds a valid template.
`, output.EnvTemplate)
}

// newLogger builds the command's logger. It does not touch the global
// default logger.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

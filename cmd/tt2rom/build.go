package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pborges/tt2rom"
	"github.com/pborges/tt2rom/internal/output"
	"github.com/pborges/tt2rom/internal/project"
	"github.com/pborges/tt2rom/internal/rom"
	"github.com/pborges/tt2rom/internal/romfmt"
	"github.com/pborges/tt2rom/internal/table"
)

type buildArgs struct {
	format    string
	dontCare  string
	template  string
	config    string
	logLevel  string
	logFormat string
	set       map[string]bool
	inputs    []string
}

// settings is the resolved configuration of one build.
type settings struct {
	format      romfmt.Format
	dontCare    byte
	template    output.Template // empty: derive from each input name
	paths       map[int]string
	memoryLimit int
}

func cmdBuild(args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	ba, err := parseBuildArgs(args, stderr)
	if err != nil {
		return err
	}
	if len(ba.inputs) == 0 {
		return &ExitError{Code: 2, Message: "build requires at least one truth table file"}
	}
	logger := newLogger(ba.logLevel, ba.logFormat, stderr)
	logger.Debug("Starting build.", "version", tt2rom.Version(), "inputs", len(ba.inputs))

	s, err := resolveSettings(ba, getenv, logger)
	if err != nil {
		return err
	}

	var first error
	for _, in := range ba.inputs {
		if err := buildFile(in, s, logger); err != nil {
			logger.Error("Build failed.", "file", in, "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func parseBuildArgs(args []string, stderr io.Writer) (*buildArgs, error) {
	ba := &buildArgs{set: map[string]bool{}}
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&ba.format, "output-fmt", "intel", "output format: raw, text or intel")
	fs.StringVar(&ba.dontCare, "output-dc", "1", "value for don't-care output bits: 0 or 1")
	fs.StringVar(&ba.template, "o", "", "output file name template with one %d")
	fs.StringVar(&ba.config, "config", "", "HCL project file")
	fs.StringVar(&ba.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&ba.logFormat, "log-format", "text", "log format: text or json")

	// Flags may follow file names; keep parsing after each positional.
	rest := args
	for len(rest) > 0 {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, &ExitError{Code: 0}
			}
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		remaining := fs.Args()
		consumed := rest[:len(rest)-len(remaining)]
		if n := len(consumed); n > 0 && consumed[n-1] == "--" {
			ba.inputs = append(ba.inputs, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		ba.inputs = append(ba.inputs, remaining[0])
		rest = remaining[1:]
	}
	fs.Visit(func(f *flag.Flag) { ba.set[f.Name] = true })

	ba.logLevel = strings.ToLower(ba.logLevel)
	switch ba.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	ba.logFormat = strings.ToLower(ba.logFormat)
	if ba.logFormat != "text" && ba.logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	return ba, nil
}

// resolveSettings layers defaults, the project file, FTEMPLATE and flags.
func resolveSettings(ba *buildArgs, getenv func(string) string, logger *slog.Logger) (settings, error) {
	s := settings{format: romfmt.Intel, dontCare: '1'}

	if ba.config != "" {
		pf, err := project.Load(ba.config)
		if err != nil {
			return s, &ExitError{Code: 1, Message: err.Error()}
		}
		if pf.Format != nil {
			if s.format, err = romfmt.ParseFormat(*pf.Format); err != nil {
				return s, &ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", ba.config, err)}
			}
		}
		if pf.OutputDC != nil {
			s.dontCare = byte('0' + *pf.OutputDC)
		}
		if pf.Template != nil {
			if s.template, err = output.ParseTemplate(*pf.Template); err != nil {
				return s, &ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", ba.config, err)}
			}
		}
		if pf.MemoryLimit != nil {
			s.memoryLimit = *pf.MemoryLimit
		}
		s.paths = pf.Paths()
		logger.Debug("Loaded project file.", "path", ba.config)
	}

	if env := getenv(output.EnvTemplate); env != "" {
		if tmpl, err := output.ParseTemplate(env); err == nil {
			s.template = tmpl
		} else {
			logger.Warn("File name template is invalid, ignoring it.", "variable", output.EnvTemplate, "error", err)
		}
	}

	if ba.set["output-fmt"] {
		f, err := romfmt.ParseFormat(ba.format)
		if err != nil {
			return s, &ExitError{Code: 1, Message: err.Error()}
		}
		s.format = f
	}
	if ba.set["output-dc"] {
		dc, err := parseDontCare(ba.dontCare)
		if err != nil {
			return s, &ExitError{Code: 1, Message: err.Error()}
		}
		s.dontCare = dc
	}
	if ba.set["o"] {
		tmpl, err := output.ParseTemplate(ba.template)
		if err != nil {
			return s, &ExitError{Code: 1, Message: err.Error()}
		}
		s.template = tmpl
	}
	return s, nil
}

func parseDontCare(v string) (byte, error) {
	if v == "" {
		return 0, errors.New("default output value must be specified as 0 or 1")
	}
	bit, err := strconv.ParseInt(v, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized junk in option value: '%s'", v)
	}
	if bit < 0 || bit > 1 {
		return 0, errors.New("output value out of range: 0 or 1 expected")
	}
	return byte('0' + bit), nil
}

func buildFile(path string, s settings, logger *slog.Logger) error {
	logger = logger.With("file", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("unable to open file '%s' for reading", path)}
	}
	opts := table.Options{DontCare: s.dontCare, MemoryLimit: s.memoryLimit, Logger: logger}
	tbl, err := table.Parse(data, opts)
	if err != nil {
		return compileExit(path, err)
	}
	res, err := table.Compile(tbl, opts)
	if err != nil {
		return compileExit(path, err)
	}
	defer res.Store.Release()

	tmpl := s.template
	if tmpl == "" {
		tmpl = output.DefaultTemplate(path)
	}
	files := output.Files{Template: tmpl, Paths: s.paths}
	if err := output.WriteImages(res.Store, s.format, files, logger); err != nil {
		return &ExitError{Code: 6, Message: err.Error()}
	}
	return nil
}

// compileExit maps compilation failures onto the tool's exit codes.
func compileExit(path string, err error) error {
	code := 1
	var (
		cfgErr *table.ConfigError
		rowErr *table.RowError
	)
	switch {
	case errors.As(err, &cfgErr):
		switch cfgErr.Kind {
		case table.ImageCountRange:
			code = 2
		case table.AddressBitsRange:
			code = 3
		}
	case errors.As(err, &rowErr):
		switch rowErr.Kind {
		case table.WrongLength:
			code = 4
		case table.DontCareInData:
			code = 5
		}
	case errors.Is(err, table.ErrNoConfiguration):
		code = 7
	case errors.Is(err, rom.ErrOutOfMemory):
		code = 1
	}
	return &ExitError{Code: code, Message: fmt.Sprintf("%s: %v", path, err)}
}

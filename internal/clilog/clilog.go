// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clilog wires zerolog into the command line tools of the module.
package clilog

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/urfave/cli/v2"
)

// Flags returns the logging flags of a tool, each overridable from the env
// variable named by the given prefix (e.g. THORTX_VERBOSITY).
func Flags(envPrefix string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "verbosity",
			Usage:   "Log level (trace, debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{envPrefix + "_VERBOSITY"},
		},
		&cli.BoolFlag{
			Name:    "json",
			Usage:   "Emit raw JSON log lines instead of terminal formatted ones",
			EnvVars: []string{envPrefix + "_JSON"},
		},
		&cli.BoolFlag{
			Name:    "color",
			Usage:   "Force coloured terminal logs even if not attached to a terminal",
			EnvVars: []string{envPrefix + "_COLOR"},
		},
		&cli.StringFlag{
			Name:    "log.file",
			Usage:   "Append logs to the given file instead of stderr",
			EnvVars: []string{envPrefix + "_LOG_FILE"},
		},
	}
}

// Setup creates the logger configured by the flags of Flags. The returned
// function flushes and releases the log output.
func Setup(ctx *cli.Context) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(ctx.String("verbosity"))
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "invalid verbosity")
	}
	var (
		output  = ctx.App.ErrWriter
		release = func() {}
	)
	if output == nil {
		output = os.Stderr
	}
	if path := ctx.String("log.file"); path != "" {
		out, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrap(err, "failed to open log file")
		}
		writer := diode.NewWriter(out, 1000, 10*time.Millisecond, nil)

		output = writer
		release = func() {
			writer.Close()
		}
	}
	return New(output, level, ctx.Bool("json"), ctx.Bool("color")), release, nil
}

// New creates a logger writing to output. Unless raw JSON is requested, lines
// are formatted for humans and coloured if output is a terminal.
func New(output io.Writer, level zerolog.Level, json bool, forceColor bool) zerolog.Logger {
	if !json {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339Nano,
			NoColor:    !(forceColor || isTerminal(output)),
		}
	}
	logger := zerolog.New(output).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logger = logger.Caller()
	}
	return logger.Logger().Level(level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

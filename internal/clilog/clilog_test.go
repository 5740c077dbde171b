// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package clilog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, zerolog.InfoLevel, true, false)
	log.Debug().Msg("hidden")
	log.Info().Str("type", "legacy").Msg("Decoded transaction")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "legacy", line["type"])
	require.Equal(t, "Decoded transaction", line["message"])
	require.Contains(t, line, "time")
}

func TestNewTerminal(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, zerolog.DebugLevel, false, false)
	log.Debug().Int("items", 3).Msg("Dumped value")

	out := buf.String()
	require.Contains(t, out, "Dumped value")
	require.Contains(t, out, "items=3")
	require.NotContains(t, out, "\x1b[", "colour emitted to a buffer")
}

// runSetup runs an app with the logging flags and hands the configured logger
// to fn.
func runSetup(t *testing.T, args []string, fn func(zerolog.Logger)) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.App{
		Name:      "test",
		Flags:     Flags("TEST"),
		ErrWriter: &buf,
		Action: func(ctx *cli.Context) error {
			log, release, err := Setup(ctx)
			if err != nil {
				return err
			}
			defer release()

			fn(log)
			return nil
		},
	}
	err := app.Run(append([]string{"test"}, args...))
	return buf.String(), err
}

func TestSetupFlags(t *testing.T) {
	out, err := runSetup(t, []string{"--json", "--verbosity", "warn"}, func(log zerolog.Logger) {
		log.Info().Msg("quiet")
		log.Warn().Msg("loud")
	})
	require.NoError(t, err)
	require.NotContains(t, out, "quiet")
	require.True(t, strings.HasPrefix(out, "{"), "not JSON: %q", out)
	require.Contains(t, out, "loud")

	_, err = runSetup(t, []string{"--verbosity", "chatty"}, func(zerolog.Logger) {})
	require.ErrorContains(t, err, "invalid verbosity")
}

func TestSetupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thortx.log")

	out, err := runSetup(t, []string{"--json", "--log.file", path}, func(log zerolog.Logger) {
		log.Info().Msg("to file")
	})
	require.NoError(t, err)
	require.Empty(t, out)

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(blob), "to file")
}

func TestSetupEnv(t *testing.T) {
	t.Setenv("TEST_VERBOSITY", "error")

	out, err := runSetup(t, []string{"--json"}, func(log zerolog.Logger) {
		log.Warn().Msg("suppressed")
	})
	require.NoError(t, err)
	require.Empty(t, out)
}

// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/thorkit/rlp/tx"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// readRaw reads a raw payload. Hex text is taken from the first argument or
// stdin, snappy compressed binary from the file named by the first argument
// or stdin.
func readRaw(ctx *cli.Context) ([]byte, error) {
	if ctx.Bool(snappyFlag.Name) {
		input, err := readInput(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := snappy.Decode(nil, input)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decompress input")
		}
		return raw, nil
	}
	var text string
	if ctx.NArg() > 0 {
		text = ctx.Args().First()
	} else {
		input, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input")
		}
		text = string(input)
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	raw, err := hexutil.Decode(text)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex input")
	}
	return raw, nil
}

// readInput reads all of the file named by the first argument, or stdin if
// there is none.
func readInput(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() == 0 {
		input, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input")
		}
		return input, nil
	}
	input, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return input, nil
}

// readTransaction reads and converts a YAML transaction document.
func readTransaction(ctx *cli.Context) (*tx.Transaction, error) {
	input, err := readInput(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := tx.ReadDocument(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	t, err := doc.Transaction()
	if err != nil {
		return nil, errors.Wrap(err, "invalid transaction document")
	}
	return t, nil
}

// writeRaw prints a raw payload as hex text, or as snappy compressed binary.
func writeRaw(ctx *cli.Context, raw []byte) error {
	if ctx.Bool(snappyFlag.Name) {
		_, err := ctx.App.Writer.Write(snappy.Encode(nil, raw))
		return err
	}
	_, err := fmt.Fprintln(ctx.App.Writer, hexutil.Encode(raw))
	return err
}

func writeYAML(ctx *cli.Context, v any) error {
	enc := yaml.NewEncoder(ctx.App.Writer)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

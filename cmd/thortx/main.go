// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

// thortx is a tool to encode, decode, sign and inspect thor transactions.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/thorkit/rlp/internal/clilog"
	"github.com/urfave/cli/v2"
)

var (
	snappyFlag = &cli.BoolFlag{
		Name:    "snappy",
		Usage:   "Raw transactions are snappy compressed binary instead of hex text",
		EnvVars: []string{"THORTX_SNAPPY"},
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Fail unless the transaction is of the given type (legacy, dynamic-fee)",
	}
	forSigningFlag = &cli.BoolFlag{
		Name:  "for-signing",
		Usage: "Encode without the signature, as hashed for signing",
	}
	breakdownFlag = &cli.BoolFlag{
		Name:  "breakdown",
		Usage: "Print a per clause table instead of the total alone",
	}
	keyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "Hex encoded secp256k1 private key of the sender",
		EnvVars:  []string{"THORTX_KEY"},
		Required: true,
	}
	gasPayerKeyFlag = &cli.StringFlag{
		Name:    "gas-payer-key",
		Usage:   "Hex encoded secp256k1 private key of the gas payer (delegated transactions)",
		EnvVars: []string{"THORTX_GAS_PAYER_KEY"},
	}
)

// log is the logger of the running app, configured before any command runs.
var log = zerolog.Nop()

func newApp() *cli.App {
	var release func()

	return &cli.App{
		Name:  "thortx",
		Usage: "thor transaction codec",
		Flags: clilog.Flags("THORTX"),
		Before: func(ctx *cli.Context) error {
			var err error
			log, release, err = clilog.Setup(ctx)
			return err
		},
		After: func(ctx *cli.Context) error {
			if release != nil {
				release()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "Decode a raw transaction into a YAML document and its derived fields",
				ArgsUsage: "[raw hex]",
				Flags:     []cli.Flag{snappyFlag, typeFlag},
				Action:    decode,
			},
			{
				Name:      "encode",
				Usage:     "Encode a YAML transaction document into a raw transaction",
				ArgsUsage: "[document file]",
				Flags:     []cli.Flag{snappyFlag, forSigningFlag},
				Action:    encode,
			},
			{
				Name:      "sign",
				Usage:     "Sign a YAML transaction document and print the raw transaction",
				ArgsUsage: "[document file]",
				Flags:     []cli.Flag{snappyFlag, keyFlag, gasPayerKeyFlag},
				Action:    sign,
			},
			{
				Name:      "dump",
				Usage:     "Print the generic RLP tree of any raw payload",
				ArgsUsage: "[raw hex]",
				Flags:     []cli.Flag{snappyFlag},
				Action:    dump,
			},
			{
				Name:      "intrinsic-gas",
				Usage:     "Print the intrinsic gas of a YAML transaction document",
				ArgsUsage: "[document file]",
				Flags:     []cli.Flag{breakdownFlag},
				Action:    intrinsicGas,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

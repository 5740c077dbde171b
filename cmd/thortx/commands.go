// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/thorkit/rlp"
	"github.com/thorkit/rlp/tx"
	"github.com/urfave/cli/v2"
)

// report is the output of the decode command: the transaction document along
// with everything derivable from it.
type report struct {
	Type         string       `yaml:"type"`
	Signed       bool         `yaml:"signed"`
	Delegated    bool         `yaml:"delegated"`
	IntrinsicGas uint64       `yaml:"intrinsicGas"`
	SigningHash  string       `yaml:"signingHash"`
	Origin       string       `yaml:"origin,omitempty"`
	GasPayer     string       `yaml:"gasPayer,omitempty"`
	ID           string       `yaml:"id,omitempty"`
	Transaction  *tx.Document `yaml:"transaction"`
}

func newReport(t *tx.Transaction) (*report, error) {
	gas, err := t.IntrinsicGas()
	if err != nil {
		return nil, err
	}
	sighash, err := t.SigningHash()
	if err != nil {
		return nil, err
	}
	rep := &report{
		Type:         t.Type().String(),
		Signed:       t.IsSigned(),
		Delegated:    t.IsDelegated(),
		IntrinsicGas: gas,
		SigningHash:  sighash.Hex(),
		Transaction:  tx.NewDocument(t),
	}
	if !t.IsSigned() {
		return rep, nil
	}
	origin, err := t.Origin()
	if err != nil {
		return nil, err
	}
	id, err := t.ID()
	if err != nil {
		return nil, err
	}
	rep.Origin, rep.ID = origin.Hex(), id.Hex()

	if t.IsDelegated() {
		payer, err := t.GasPayer()
		if err != nil {
			return nil, err
		}
		rep.GasPayer = payer.Hex()
	}
	return rep, nil
}

func decode(ctx *cli.Context) error {
	raw, err := readRaw(ctx)
	if err != nil {
		return err
	}
	t, err := tx.Decode(raw)
	if err != nil {
		return errors.Wrap(err, "failed to decode transaction")
	}
	log.Debug().Int("size", len(raw)).Stringer("type", t.Type()).Int("clauses", len(t.Clauses)).Msg("Decoded transaction")

	if name := ctx.String(typeFlag.Name); name != "" {
		want, ok := tx.TypeMapping[name]
		if !ok {
			return errors.Errorf("unknown transaction type %q", name)
		}
		if t.Type() != want {
			return errors.Errorf("transaction type mismatch: have %v, want %v", t.Type(), want)
		}
	}
	rep, err := newReport(t)
	if err != nil {
		return errors.Wrap(err, "failed to derive transaction fields")
	}
	return writeYAML(ctx, rep)
}

func encode(ctx *cli.Context) error {
	t, err := readTransaction(ctx)
	if err != nil {
		return err
	}
	raw, err := tx.Encode(t, ctx.Bool(forSigningFlag.Name))
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}
	log.Debug().Int("size", len(raw)).Stringer("type", t.Type()).Bool("signed", t.IsSigned()).Msg("Encoded transaction")
	return writeRaw(ctx, raw)
}

func sign(ctx *cli.Context) error {
	t, err := readTransaction(ctx)
	if err != nil {
		return err
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(ctx.String(keyFlag.Name), "0x"))
	if err != nil {
		return errors.Wrap(err, "invalid sender key")
	}
	var signed *tx.Transaction
	switch payerKey := ctx.String(gasPayerKeyFlag.Name); {
	case !t.IsDelegated():
		if payerKey != "" {
			return errors.Wrap(tx.ErrNotDelegated, "gas payer key given")
		}
		signed, err = t.Sign(key)

	case payerKey == "":
		// Second party signs later with its own key
		signed, err = t.SignAsSender(key)

	default:
		payer, perr := crypto.HexToECDSA(strings.TrimPrefix(payerKey, "0x"))
		if perr != nil {
			return errors.Wrap(perr, "invalid gas payer key")
		}
		signed, err = t.SignAsSenderAndGasPayer(key, payer)
	}
	if err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}
	event := log.Info().Str("origin", crypto.PubkeyToAddress(key.PublicKey).Hex()).Bool("complete", signed.IsSigned())
	if id, err := signed.ID(); err == nil {
		event = event.Str("id", id.Hex())
	}
	event.Msg("Signed transaction")

	raw, err := tx.Encode(signed, false)
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}
	return writeRaw(ctx, raw)
}

func dump(ctx *cli.Context) error {
	raw, err := readRaw(ctx)
	if err != nil {
		return err
	}
	// Longer payloads led by the marker byte are only valid as typed envelopes
	if len(raw) > 1 && raw[0] == byte(tx.TypeDynamicFee) {
		fmt.Fprintf(ctx.App.Writer, "type: %v\n", tx.TypeDynamicFee)
		raw = raw[1:]
	}
	v, err := rlp.DecodeFromBytes(raw)
	if err != nil {
		return errors.Wrap(err, "failed to decode rlp")
	}
	log.Debug().Int("size", len(raw)).Stringer("kind", v.Kind()).Msg("Dumped value")

	fmt.Fprint(ctx.App.Writer, v.Format())
	return nil
}

func intrinsicGas(ctx *cli.Context) error {
	t, err := readTransaction(ctx)
	if err != nil {
		return err
	}
	gas, err := t.IntrinsicGas()
	if err != nil {
		return err
	}
	if !ctx.Bool(breakdownFlag.Name) {
		fmt.Fprintln(ctx.App.Writer, gas)
		return nil
	}
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Clause", "Kind", "Data", "Gas"})
	table.Append([]string{"-", "base", "-", strconv.FormatUint(tx.TxGas, 10)})

	if len(t.Clauses) == 0 {
		table.Append([]string{"-", "empty", "-", strconv.FormatUint(tx.ClauseGas, 10)})
	}
	for i, clause := range t.Clauses {
		cost, err := tx.IntrinsicGas(clause)
		if err != nil {
			return err
		}
		kind := "call"
		if clause.To == nil {
			kind = "create"
		}
		table.Append([]string{strconv.Itoa(i), kind, strconv.Itoa(len(clause.Data)), strconv.FormatUint(cost-tx.TxGas, 10)})
	}
	table.SetFooter([]string{"", "", "Total", strconv.FormatUint(gas, 10)})
	table.Render()
	return nil
}

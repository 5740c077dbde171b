// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"io"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/thorkit/rlp"
	"gopkg.in/yaml.v3"
)

var (
	senderKey, _   = crypto.HexToECDSA("7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a")
	gasPayerKey, _ = crypto.HexToECDSA("40de805e918403683fb9a6081c3fba072cdc5c88232c62a9509165122488dab7")

	senderAddr   = crypto.PubkeyToAddress(senderKey.PublicKey)
	gasPayerAddr = crypto.PubkeyToAddress(gasPayerKey.PublicKey)
)

// vector is a transaction test case loaded from the testdata folder.
type vector struct {
	Name         string        `yaml:"name"`
	Document     Document      `yaml:"document"`
	Unsigned     hexutil.Bytes `yaml:"unsigned"`
	SigningHash  hexutil.Bytes `yaml:"signingHash"`
	IntrinsicGas uint64        `yaml:"intrinsicGas"`
	Signed       hexutil.Bytes `yaml:"signed"`
	ID           hexutil.Bytes `yaml:"id"`
}

func loadVectors(t *testing.T) []vector {
	t.Helper()

	blob, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)

	var vectors []vector
	require.NoError(t, yaml.Unmarshal(blob, &vectors))
	require.NotEmpty(t, vectors)
	return vectors
}

// signBoth signs a transaction with the test sender, and with the test gas
// payer too if delegated.
func signBoth(t *testing.T, tx *Transaction) *Transaction {
	t.Helper()

	var (
		signed *Transaction
		err    error
	)
	if tx.IsDelegated() {
		signed, err = tx.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	} else {
		signed, err = tx.Sign(senderKey)
	}
	require.NoError(t, err)
	require.True(t, signed.IsSigned())
	return signed
}

// Tests that known transactions encode, hash and decode to the exact values
// the thor node produces.
func TestVectors(t *testing.T) {
	for _, tt := range loadVectors(t) {
		t.Run(tt.Name, func(t *testing.T) {
			tx, err := tt.Document.Transaction()
			require.NoError(t, err)

			raw, err := Encode(tx, false)
			require.NoError(t, err)
			require.Equal(t, []byte(tt.Unsigned), raw)

			forSigning, err := Encode(tx, true)
			require.NoError(t, err)
			require.Equal(t, raw, forSigning)

			dec, err := Decode(raw)
			require.NoError(t, err)
			require.Equal(t, tx, dec)
			require.False(t, dec.IsSigned())

			gas, err := tx.IntrinsicGas()
			require.NoError(t, err)
			require.Equal(t, tt.IntrinsicGas, gas)

			if tt.SigningHash != nil {
				hash, err := tx.SigningHash()
				require.NoError(t, err)
				require.Equal(t, common.BytesToHash(tt.SigningHash), hash)
			}
			if tt.Signed == nil && tt.ID == nil {
				return
			}
			signed := signBoth(t, tx)
			if tt.Signed != nil {
				raw, err := signed.MarshalBinary()
				require.NoError(t, err)
				require.Equal(t, []byte(tt.Signed), raw)

				dec := new(Transaction)
				require.NoError(t, dec.UnmarshalBinary(raw))
				require.Equal(t, signed, dec)
			}
			origin, err := signed.Origin()
			require.NoError(t, err)
			require.Equal(t, senderAddr, origin)

			if signed.IsDelegated() {
				payer, err := signed.GasPayer()
				require.NoError(t, err)
				require.Equal(t, gasPayerAddr, payer)
			}
			if tt.ID != nil {
				id, err := signed.ID()
				require.NoError(t, err)
				require.Equal(t, common.BytesToHash(tt.ID), id)
			}
		})
	}
}

// Tests that the signing hash ignores the signature and the variant marker is
// applied exactly to dynamic fee transactions.
func TestEncodeMarker(t *testing.T) {
	for _, tt := range loadVectors(t) {
		tx, err := tt.Document.Transaction()
		require.NoError(t, err, tt.Name)

		signed := signBoth(t, tx)
		raw, err := Encode(signed, false)
		require.NoError(t, err, tt.Name)

		unsigned, err := Encode(signed, true)
		require.NoError(t, err, tt.Name)
		require.Equal(t, []byte(tt.Unsigned), unsigned, tt.Name)

		if tx.Type() == TypeDynamicFee {
			require.Equal(t, byte(0x51), raw[0], tt.Name)
		} else {
			require.GreaterOrEqual(t, raw[0], byte(0xc0), tt.Name)
		}
		dec, err := Decode(raw)
		require.NoError(t, err, tt.Name)
		require.Equal(t, signed, dec, tt.Name)
	}
}

// rawWith re-encodes a raw legacy transaction after modifying its item list.
func rawWith(t *testing.T, raw []byte, modify func([]rlp.Value) []rlp.Value) []byte {
	t.Helper()

	v, err := rlp.DecodeFromBytes(raw)
	require.NoError(t, err)

	items := append([]rlp.Value{}, v.Items()...)
	return rlp.EncodeToBytes(rlp.List(modify(items)...))
}

// Tests that malformed transactions are rejected with the right error.
func TestDecodeFailures(t *testing.T) {
	legacy := hexutil.MustDecode("0xf8540184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0")

	tests := []struct {
		name string
		raw  []byte
		err  error
		path string
	}{
		{
			name: "untrimmed reserved",
			raw:  hexutil.MustDecode("0xf8560184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec28080"),
			err:  ErrMalformedReserved,
		},
		{
			name: "features with leading zero",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				items[8] = rlp.List(rlp.String([]byte{0x00, 0x01}))
				return items
			}),
			err:  ErrMalformedReserved,
			path: "tx.reserved",
		},
		{
			name: "features overflow",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				items[8] = rlp.List(rlp.String([]byte{1, 2, 3, 4, 5}))
				return items
			}),
			err:  ErrMalformedReserved,
			path: "tx.reserved",
		},
		{
			name: "empty signature",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				return append(items, rlp.String(nil))
			}),
			err:  ErrInvalidEncoding,
			path: "tx.signature",
		},
		{
			name: "too many items",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				return append(items, rlp.String([]byte{1}), rlp.String([]byte{2}))
			}),
			err: ErrInvalidEncoding,
		},
		{
			name: "legacy body behind dynamic fee marker",
			raw:  append([]byte{0x51}, legacy...),
			err:  ErrInvalidEncoding,
		},
		{
			name: "empty list",
			raw:  []byte{0xc0},
			err:  ErrInvalidEncoding,
		},
		{
			name: "string body",
			raw:  []byte{0x83, 0x01, 0x02, 0x03},
			err:  ErrInvalidEncoding,
		},
		{
			name: "trailing bytes",
			raw:  append(append([]byte{}, legacy...), 0x00),
			err:  rlp.ErrTrailingBytes,
		},
		{
			name: "oversized chain tag",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				items[0] = rlp.String([]byte{1, 0})
				return items
			}),
			err:  rlp.ErrNumericOverflow,
			path: "tx.chainTag",
		},
		{
			name: "clause instead of clauses",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				items[3] = rlp.String([]byte{0xff})
				return items
			}),
			err: rlp.ErrExpectedList,
		},
		{
			name: "short recipient",
			raw: rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
				clause := append([]rlp.Value{}, items[3].Items()[0].Items()...)
				clause[0] = rlp.String(make([]byte, 19))
				items[3] = rlp.List(rlp.List(clause...))
				return items
			}),
			err: rlp.ErrBlobSize,
		},
		{
			name: "empty input",
			raw:  nil,
			err:  io.ErrUnexpectedEOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.ErrorIs(t, err, tt.err)

			if tt.path != "" {
				var ferr *rlp.FieldError
				require.ErrorAs(t, err, &ferr)
				require.Equal(t, tt.path, ferr.Path)
			}
		})
	}
}

// Tests that field level failures report the path of the offending field.
func TestDecodeFieldPath(t *testing.T) {
	legacy := hexutil.MustDecode("0xf8540184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0")

	raw := rawWith(t, legacy, func(items []rlp.Value) []rlp.Value {
		clause := append([]rlp.Value{}, items[3].Items()[1].Items()...)
		clause[0] = rlp.String([]byte{0x01})
		items[3] = rlp.List(items[3].Items()[0], rlp.List(clause...))
		return items
	})
	_, err := Decode(raw)

	var ferr *rlp.FieldError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, "tx.clauses.#1.to", ferr.Path)
}

// Tests that transactions with inconsistent pricing are refused.
func TestEncodeValidation(t *testing.T) {
	coef := uint8(0)
	tests := []struct {
		name string
		tx   *Transaction
	}{
		{"no pricing", &Transaction{}},
		{"mixed pricing", &Transaction{GasPriceCoef: &coef, MaxFeePerGas: uint256.NewInt(1), MaxPriorityFeePerGas: uint256.NewInt(1)}},
		{"coefficient and priority fee", &Transaction{GasPriceCoef: &coef, MaxPriorityFeePerGas: uint256.NewInt(1)}},
		{"missing priority fee", &Transaction{MaxFeePerGas: uint256.NewInt(1)}},
		{"missing max fee", &Transaction{MaxPriorityFeePerGas: uint256.NewInt(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.tx, false)
			require.ErrorIs(t, err, ErrInvalidTransactionBody)
		})
	}
}

// Tests that a zero valued clause encodes like an explicit empty one.
func TestEncodeClauseDefaults(t *testing.T) {
	coef := uint8(0)
	implicit := &Transaction{ChainTag: 1, GasPriceCoef: &coef, Gas: 21000, Clauses: []Clause{{}}}
	explicit := &Transaction{ChainTag: 1, GasPriceCoef: &coef, Gas: 21000, Clauses: []Clause{{Value: new(uint256.Int), Data: []byte{}}}}

	have, err := Encode(implicit, false)
	require.NoError(t, err)
	want, err := Encode(explicit, false)
	require.NoError(t, err)
	require.Equal(t, want, have)
	require.Equal(t, hexutil.MustDecode("0xcf018080c4c3808080808252088080c0"), have)
}

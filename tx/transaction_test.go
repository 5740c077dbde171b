// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIntrinsicGas(t *testing.T) {
	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

	tests := []struct {
		name    string
		clauses []Clause
		gas     uint64
	}{
		{"no clauses", nil, TxGas + ClauseGas},
		{"empty call", []Clause{{To: &to}}, TxGas + ClauseGas},
		{"contract creation", []Clause{{}}, TxGas + ClauseGasContractCreation},
		{"zero data", []Clause{{To: &to, Data: make([]byte, 10)}}, TxGas + ClauseGas + 10*TxDataZeroGas},
		{"mixed data", []Clause{{To: &to, Data: []byte{0, 1, 0, 2}}}, TxGas + ClauseGas + 2*TxDataZeroGas + 2*TxDataNonZeroGas},
		{"multiple clauses", []Clause{{To: &to}, {Data: []byte{1}}}, TxGas + ClauseGas + ClauseGasContractCreation + TxDataNonZeroGas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gas, err := IntrinsicGas(tt.clauses...)
			require.NoError(t, err)
			require.Equal(t, tt.gas, gas)
		})
	}
}

func TestTrimTrailingEmpty(t *testing.T) {
	tests := []struct {
		in   [][]byte
		want [][]byte
	}{
		{[][]byte{}, [][]byte{}},
		{[][]byte{{}}, [][]byte{}},
		{[][]byte{{1}}, [][]byte{{1}}},
		{[][]byte{{1}, {}, {}}, [][]byte{{1}}},
		{[][]byte{{}, {1}, {}}, [][]byte{{}, {1}}},
		{[][]byte{{}, {}, {2}}, [][]byte{{}, {}, {2}}},
	}
	for i, tt := range tests {
		in := make([][]byte, len(tt.in))
		copy(in, tt.in)

		require.Equal(t, tt.want, trimTrailingEmpty(in), "test %d", i)
		require.Equal(t, tt.in, in, "test %d: input modified", i)
	}
}

func TestReservedEncoding(t *testing.T) {
	tests := []struct {
		reserved Reserved
		want     [][]byte
	}{
		{Reserved{}, [][]byte{}},
		{Reserved{Features: DelegationFeature}, [][]byte{{1}}},
		{Reserved{Unused: [][]byte{{}, {}}}, [][]byte{}},
		{Reserved{Unused: [][]byte{{}, {7}, {}}}, [][]byte{{}, {}, {7}}},
		{Reserved{Features: 0x0100, Unused: [][]byte{{7}}}, [][]byte{{1, 0}, {7}}},
	}
	for i, tt := range tests {
		have, err := tt.reserved.encode()
		require.NoError(t, err, "test %d", i)
		require.Equal(t, tt.want, have, "test %d", i)

		dec, err := decodeReserved(have)
		require.NoError(t, err, "test %d", i)
		require.Equal(t, tt.reserved.Features, dec.Features, "test %d", i)
	}
}

func TestTypes(t *testing.T) {
	for name, typ := range TypeMapping {
		require.Equal(t, typ, TypeMapping[typ.String()], name)
	}
	require.Equal(t, "type(0x7)", Type(7).String())

	ref := NewBlockRef(0x01020304)
	require.Equal(t, BlockRef{1, 2, 3, 4, 0, 0, 0, 0}, ref)
	require.Equal(t, uint32(0x01020304), ref.Number())

	var features Features
	require.False(t, features.IsDelegated())
	features.SetDelegated(true)
	require.True(t, features.IsDelegated())
	features |= 0x10
	features.SetDelegated(false)
	require.Equal(t, Features(0x10), features)
}

// Tests that copies share no memory with the original transaction.
func TestCopy(t *testing.T) {
	tx, err := newTestTransaction(true).SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	require.NoError(t, err)
	tx.MaxPriorityFeePerGas = nil
	tx.DependsOn = &common.Hash{1}
	tx.Reserved.Unused = [][]byte{{1}}
	tx.Clauses[0].Data = []byte{1, 2}

	cpy := tx.Copy()
	require.Equal(t, tx, cpy)

	*cpy.GasPriceCoef = 1
	cpy.DependsOn[0] = 2
	cpy.Reserved.Unused[0][0] = 2
	cpy.Signature[0] ^= 0xff
	cpy.Clauses[0].To[0] ^= 0xff
	cpy.Clauses[0].Value.SetUint64(99)
	cpy.Clauses[0].Data[0] = 9

	require.Equal(t, uint8(128), *tx.GasPriceCoef)
	require.Equal(t, byte(1), tx.DependsOn[0])
	require.Equal(t, []byte{1}, tx.Reserved.Unused[0])
	require.Equal(t, uint256.NewInt(1), tx.Clauses[0].Value)
	require.Equal(t, []byte{1, 2}, tx.Clauses[0].Data)
	require.NotEqual(t, tx.Signature, cpy.Signature)
	require.NotEqual(t, tx.Clauses[0].To, cpy.Clauses[0].To)
}

// Tests that documents survive a trip through YAML text.
func TestDocumentRoundTrip(t *testing.T) {
	for _, tt := range loadVectors(t) {
		tx, err := tt.Document.Transaction()
		require.NoError(t, err, tt.Name)
		tx = signBoth(t, tx)

		text, err := yaml.Marshal(NewDocument(tx))
		require.NoError(t, err, tt.Name)

		doc, err := ReadDocument(bytes.NewReader(text))
		require.NoError(t, err, tt.Name)

		dec, err := doc.Transaction()
		require.NoError(t, err, tt.Name)
		require.Equal(t, tx, dec, tt.Name)
	}
}

func TestDocumentFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown field", "chainTag: 1\ngasPriceCoef: 0\nbogus: 1\n"},
		{"long block ref", "blockRef: \"0x000000000000000000\"\ngasPriceCoef: 0\n"},
		{"short recipient", "gasPriceCoef: 0\nclauses:\n  - to: \"0x01\"\n    value: \"0\"\n    data: \"0x\"\n"},
		{"bad value", "gasPriceCoef: 0\nclauses:\n  - value: \"ten\"\n    data: \"0x\"\n"},
		{"bad fee", "maxFeePerGas: \"0x0001\"\nmaxPriorityFeePerGas: \"1\"\n"},
		{"short depends on", "gasPriceCoef: 0\ndependsOn: \"0x01\"\n"},
		{"no pricing", "chainTag: 1\n"},
		{"malformed hex", "gasPriceCoef: 0\nsignature: \"0xzz\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(bytes.NewReader([]byte(tt.text)))
			if err == nil {
				_, err = doc.Transaction()
			}
			require.Error(t, err)
		})
	}
}

// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package tx

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// Document is the human editable YAML form of a transaction. Blobs are 0x hex
// text, 256 bit quantities are decimal or 0x hex text.
type Document struct {
	ChainTag             uint8            `yaml:"chainTag"`
	BlockRef             hexutil.Bytes    `yaml:"blockRef"`
	Expiration           uint32           `yaml:"expiration"`
	Clauses              []ClauseDocument `yaml:"clauses"`
	GasPriceCoef         *uint8           `yaml:"gasPriceCoef,omitempty"`
	MaxFeePerGas         string           `yaml:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string           `yaml:"maxPriorityFeePerGas,omitempty"`
	Gas                  uint64           `yaml:"gas"`
	DependsOn            hexutil.Bytes    `yaml:"dependsOn,omitempty"`
	Nonce                uint64           `yaml:"nonce"`
	Features             uint32           `yaml:"features,omitempty"`
	Unused               []hexutil.Bytes  `yaml:"unused,omitempty"`
	Signature            hexutil.Bytes    `yaml:"signature,omitempty"`
}

// ClauseDocument is the YAML form of a clause. A missing recipient deploys a
// contract.
type ClauseDocument struct {
	To    hexutil.Bytes `yaml:"to,omitempty"`
	Value string        `yaml:"value"`
	Data  hexutil.Bytes `yaml:"data"`
}

// ReadDocument parses a single YAML transaction document.
func ReadDocument(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	doc := new(Document)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("tx: failed to parse document: %w", err)
	}
	return doc, nil
}

// NewDocument converts a transaction into its YAML form.
func NewDocument(t *Transaction) *Document {
	doc := &Document{
		ChainTag:   t.ChainTag,
		BlockRef:   t.BlockRef[:],
		Expiration: t.Expiration,
		Clauses:    make([]ClauseDocument, len(t.Clauses)),
		Gas:        t.Gas,
		Nonce:      t.Nonce,
		Features:   uint32(t.Reserved.Features),
		Signature:  t.Signature,
	}
	if t.GasPriceCoef != nil {
		coef := *t.GasPriceCoef
		doc.GasPriceCoef = &coef
	}
	for i, clause := range t.Clauses {
		doc.Clauses[i] = ClauseDocument{Value: "0", Data: clause.Data}
		if clause.To != nil {
			doc.Clauses[i].To = clause.To.Bytes()
		}
		if clause.Value != nil {
			doc.Clauses[i].Value = clause.Value.Dec()
		}
		if doc.Clauses[i].Data == nil {
			doc.Clauses[i].Data = []byte{}
		}
	}
	if t.MaxFeePerGas != nil {
		doc.MaxFeePerGas = t.MaxFeePerGas.Dec()
	}
	if t.MaxPriorityFeePerGas != nil {
		doc.MaxPriorityFeePerGas = t.MaxPriorityFeePerGas.Dec()
	}
	if t.DependsOn != nil {
		doc.DependsOn = t.DependsOn.Bytes()
	}
	for _, elem := range t.Reserved.Unused {
		doc.Unused = append(doc.Unused, elem)
	}
	return doc
}

// Transaction converts the document into a transaction, validating blob
// lengths and number formats along the way.
func (d *Document) Transaction() (*Transaction, error) {
	t := &Transaction{
		ChainTag:   d.ChainTag,
		Expiration: d.Expiration,
		Clauses:    make([]Clause, len(d.Clauses)),
		Gas:        d.Gas,
		Nonce:      d.Nonce,
		Reserved:   Reserved{Features: Features(d.Features)},
		Signature:  common.CopyBytes(d.Signature),
	}
	if d.GasPriceCoef != nil {
		coef := *d.GasPriceCoef
		t.GasPriceCoef = &coef
	}
	if len(d.BlockRef) > len(t.BlockRef) {
		return nil, fmt.Errorf("tx: block ref of %d bytes, max %d", len(d.BlockRef), len(t.BlockRef))
	}
	copy(t.BlockRef[len(t.BlockRef)-len(d.BlockRef):], d.BlockRef)

	for i, clause := range d.Clauses {
		value, err := parseQuantity(clause.Value)
		if err != nil {
			return nil, fmt.Errorf("tx: clause %d value: %w", i, err)
		}
		t.Clauses[i] = Clause{Value: value, Data: common.CopyBytes(clause.Data)}
		if t.Clauses[i].Data == nil {
			t.Clauses[i].Data = []byte{}
		}
		if clause.To != nil {
			if len(clause.To) != common.AddressLength {
				return nil, fmt.Errorf("tx: clause %d recipient of %d bytes", i, len(clause.To))
			}
			to := common.BytesToAddress(clause.To)
			t.Clauses[i].To = &to
		}
	}
	if d.MaxFeePerGas != "" {
		fee, err := parseQuantity(d.MaxFeePerGas)
		if err != nil {
			return nil, fmt.Errorf("tx: max fee per gas: %w", err)
		}
		t.MaxFeePerGas = fee
	}
	if d.MaxPriorityFeePerGas != "" {
		fee, err := parseQuantity(d.MaxPriorityFeePerGas)
		if err != nil {
			return nil, fmt.Errorf("tx: max priority fee per gas: %w", err)
		}
		t.MaxPriorityFeePerGas = fee
	}
	if d.DependsOn != nil {
		if len(d.DependsOn) != common.HashLength {
			return nil, fmt.Errorf("tx: depends on of %d bytes", len(d.DependsOn))
		}
		dep := common.BytesToHash(d.DependsOn)
		t.DependsOn = &dep
	}
	for _, elem := range d.Unused {
		t.Reserved.Unused = append(t.Reserved.Unused, common.CopyBytes(elem))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseQuantity parses a 256 bit unsigned integer from decimal or 0x hex text.
func parseQuantity(s string) (*uint256.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}

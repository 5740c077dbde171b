// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"bytes"
	"fmt"
	"strings"
)

// Kind is the wire level type of an RLP value: either a byte-string or a list
// of further values.
type Kind int

const (
	KindString Kind = iota // Byte-string, possibly empty
	KindList               // List of values, possibly empty
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a decoded (or to be encoded) RLP item. It carries no notion of the
// integers, addresses or field names it represents; those are layered on top
// by scalars and profiles.
//
// The zero Value is the empty byte-string.
type Value struct {
	kind  Kind
	str   []byte
	items []Value
}

// String creates a byte-string value. The blob is not copied.
func String(blob []byte) Value {
	return Value{kind: KindString, str: blob}
}

// List creates a list value out of the given items. The slice is not copied.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Kind returns whether the value is a byte-string or a list.
func (v Value) Kind() Kind { return v.kind }

// Bytes returns the content of a byte-string value, or nil for lists.
func (v Value) Bytes() []byte {
	if v.kind != KindString {
		return nil
	}
	return v.str
}

// Items returns the elements of a list value, or nil for byte-strings.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.items
}

// Len returns the number of bytes in a byte-string or items in a list.
func (v Value) Len() int {
	if v.kind == KindList {
		return len(v.items)
	}
	return len(v.str)
}

// Equal reports whether two values have the same shape and content. Nil and
// empty byte-strings are considered equal, as they encode identically.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindString {
		return bytes.Equal(v.str, o.str)
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if !v.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

// Format renders the value as an indented tree, one byte-string per line in
// 0x-prefixed hex. It is meant for humans debugging wire data.
func (v Value) Format() string {
	var b strings.Builder
	v.format(&b, 0)
	return b.String()
}

func (v Value) format(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if v.kind == KindString {
		fmt.Fprintf(b, "%s0x%x\n", indent, v.str)
		return
	}
	fmt.Fprintf(b, "%s[\n", indent)
	for _, item := range v.items {
		item.format(b, depth+1)
	}
	fmt.Fprintf(b, "%s]\n", indent)
}

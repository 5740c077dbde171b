// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const rlpTagIdent = "rlp"

// scalarTag is the scalar kind requested by a field's rlp struct tag.
type scalarTag struct {
	kind string // One of numeric, compact, fixed, optional, hex or buffer
	size int    // Byte width of sized kinds, 0 otherwise
}

// sizedKinds maps the tag names of sized scalars to their constructors.
var sizedKinds = map[string]string{
	"numeric":  "Numeric",
	"compact":  "CompactFixedBlob",
	"fixed":    "FixedBlob",
	"optional": "OptionalFixedBlob",
}

// unsizedKinds maps the tag names of unsized scalars to their constructors.
var unsizedKinds = map[string]string{
	"hex":    "HexBlob",
	"buffer": "Buffer",
}

// parseTag extracts the rlp directive out of a raw struct tag. A nil scalar
// with no error means the field carried no rlp tag at all.
func parseTag(input string) (bool, *scalarTag, error) {
	value, ok := reflect.StructTag(input).Lookup(rlpTagIdent)
	if !ok {
		return false, nil, nil
	}
	if value == "-" {
		return true, nil, nil
	}
	parts := strings.Split(value, ",")
	switch kind := parts[0]; {
	case sizedKinds[kind] != "":
		if len(parts) != 2 {
			return false, nil, fmt.Errorf("tag %q needs exactly one size", value)
		}
		size, err := strconv.Atoi(parts[1])
		if err != nil {
			return false, nil, fmt.Errorf("tag %q has invalid size: %v", value, err)
		}
		if size <= 0 || (kind == "numeric" && size > 32) {
			return false, nil, fmt.Errorf("tag %q has out of range size %d", value, size)
		}
		return false, &scalarTag{kind: kind, size: size}, nil

	case unsizedKinds[kind] != "":
		if len(parts) != 1 {
			return false, nil, fmt.Errorf("tag %q takes no size", value)
		}
		return false, &scalarTag{kind: kind}, nil

	default:
		return false, nil, fmt.Errorf("unknown rlp tag %q", value)
	}
}

// constructor returns the rlp package function building the scalar.
func (t *scalarTag) constructor() string {
	if name, ok := sizedKinds[t.kind]; ok {
		return name
	}
	return unsizedKinds[t.kind]
}

// args returns the argument list of the scalar constructor.
func (t *scalarTag) args() string {
	if t.size == 0 {
		return "()"
	}
	return "(" + strconv.Itoa(t.size) + ")"
}

// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"go/types"
)

// rlpStruct is a Go struct whose exported fields map onto a nested profile.
type rlpStruct struct {
	named  *types.Named
	fields []*rlpField
}

// rlpField is a single member of a generated profile.
type rlpField struct {
	goName string // Name of the struct field
	name   string // Name of the profile field, reported in error paths
	shape  *shape
}

// shape mirrors rlp.Shape at generation time: exactly one of the fields is set.
type shape struct {
	scalar *scalarTag   // Leaf encoding a single scalar
	ref    *types.Named // Nested struct with its own generated profile
	item   *shape       // List of items of the same shape
}

func newStruct(named *types.Named, typ *types.Struct) (*rlpStruct, error) {
	var fields []*rlpField

	for i := 0; i < typ.NumFields(); i++ {
		// Skip private fields, and skip ignored rlp fields
		f := typ.Field(i)
		if !f.Exported() {
			continue
		}
		ignore, tag, err := parseTag(typ.Tag(i))
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag of %s.%s: %v", named.Obj().Name(), f.Name(), err)
		}
		if ignore {
			continue
		}
		s, err := validateField(f.Type(), tag)
		if err != nil {
			return nil, fmt.Errorf("failed to validate field %s.%s: %v", named.Obj().Name(), f.Name(), err)
		}
		if refersTo(s, named) {
			return nil, fmt.Errorf("field %s.%s: recursive profiles are not supported", named.Obj().Name(), f.Name())
		}
		fields = append(fields, &rlpField{
			goName: f.Name(),
			name:   lowerCamel(f.Name()),
			shape:  s,
		})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("struct %s has no encodable fields", named.Obj().Name())
	}
	return &rlpStruct{named: named, fields: fields}, nil
}

// validateField compares the type of the field to the provided tag and derives
// the shape encoding it. Untagged fields must be structs or slices of structs,
// everything else needs a scalar tag.
func validateField(typ types.Type, tag *scalarTag) (*shape, error) {
	if tag != nil {
		if slice, ok := typ.Underlying().(*types.Slice); ok && !isByte(slice.Elem()) {
			if err := checkScalar(slice.Elem(), tag); err != nil {
				return nil, err
			}
			return &shape{item: &shape{scalar: tag}}, nil
		}
		if err := checkScalar(typ, tag); err != nil {
			return nil, err
		}
		return &shape{scalar: tag}, nil
	}
	if named := structOf(typ); named != nil {
		return &shape{ref: named}, nil
	}
	if slice, ok := typ.Underlying().(*types.Slice); ok {
		if named := structOf(slice.Elem()); named != nil {
			return &shape{item: &shape{ref: named}}, nil
		}
	}
	return nil, fmt.Errorf("unsupported type %s without rlp tag", typ.String())
}

// checkScalar verifies that values of typ can be handed to the tagged scalar.
func checkScalar(typ types.Type, tag *scalarTag) error {
	switch tag.kind {
	case "numeric":
		if isUint256(deref(typ)) || isBigInt(deref(typ)) {
			return nil
		}
		basic, ok := typ.Underlying().(*types.Basic)
		if !ok || basic.Info()&types.IsUnsigned == 0 {
			return fmt.Errorf("numeric tag on non unsigned integer type %s", typ.String())
		}
		if width := basicSize(basic); width < tag.size {
			return fmt.Errorf("type %s of %d bytes cannot hold numeric,%d", typ.String(), width, tag.size)
		}
		return nil

	case "compact", "fixed", "optional":
		if isByteSlice(typ) {
			return nil
		}
		if _, ok := typ.(*types.Pointer); ok && tag.kind != "optional" {
			return fmt.Errorf("%s tag on pointer type %s", tag.kind, typ.String())
		}
		arr, ok := deref(typ).Underlying().(*types.Array)
		if !ok || !isByte(arr.Elem()) {
			return fmt.Errorf("%s tag on non byte type %s", tag.kind, typ.String())
		}
		if int(arr.Len()) != tag.size {
			return fmt.Errorf("%s,%d tag on %d byte array %s", tag.kind, tag.size, arr.Len(), typ.String())
		}
		return nil

	case "hex":
		if basic, ok := typ.Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			return nil
		}
		fallthrough

	default: // buffer
		if !isByteSlice(typ) {
			return fmt.Errorf("%s tag on non byte slice type %s", tag.kind, typ.String())
		}
		return nil
	}
}

// refersTo reports whether a shape directly embeds the given struct.
func refersTo(s *shape, named *types.Named) bool {
	switch {
	case s.ref != nil:
		return types.Identical(s.ref, named)
	case s.item != nil:
		return refersTo(s.item, named)
	default:
		return false
	}
}

// structOf returns the named struct behind typ, dereferencing a pointer if
// needed. Big integers are structs too, but encode as numbers.
func structOf(typ types.Type) *types.Named {
	named, ok := deref(typ).(*types.Named)
	if !ok || isBigInt(named) {
		return nil
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil
	}
	return named
}

func deref(typ types.Type) types.Type {
	if ptr, ok := typ.(*types.Pointer); ok {
		return ptr.Elem()
	}
	return typ
}

func isByte(typ types.Type) bool {
	basic, ok := typ.Underlying().(*types.Basic)
	return ok && basic.Kind() == types.Uint8
}

func isByteSlice(typ types.Type) bool {
	slice, ok := typ.Underlying().(*types.Slice)
	return ok && isByte(slice.Elem())
}

// basicSize returns the byte width of an unsigned integer kind.
func basicSize(typ *types.Basic) int {
	switch typ.Kind() {
	case types.Uint8:
		return 1
	case types.Uint16:
		return 2
	case types.Uint32:
		return 4
	default:
		return 8
	}
}

// isBigInt checks whether 'typ' is "math/big".Int.
func isBigInt(typ types.Type) bool {
	named, ok := typ.(*types.Named)
	if !ok {
		return false
	}
	name := named.Obj()
	return name.Pkg() != nil && name.Pkg().Path() == "math/big" && name.Name() == "Int"
}

// isUint256 checks whether 'typ' is "github.com/holiman/uint256".Int.
func isUint256(typ types.Type) bool {
	named, ok := typ.(*types.Named)
	if !ok {
		return false
	}
	name := named.Obj()
	return name.Pkg() != nil && name.Pkg().Path() == "github.com/holiman/uint256" && name.Name() == "Int"
}

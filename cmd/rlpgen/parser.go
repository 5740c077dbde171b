// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"go/types"
)

// parsePackage collects the requested structs out of a type checked package.
// Without explicit names, every struct carrying at least one rlp tag is taken.
func parsePackage(pkg *types.Package, names []string) ([]*rlpStruct, error) {
	explicit := len(names) > 0
	if !explicit {
		names = pkg.Scope().Names()
	}
	var structs []*rlpStruct
	for _, name := range names {
		named, str, err := lookupStruct(pkg.Scope(), name)
		if err != nil {
			if explicit {
				return nil, err
			}
			continue
		}
		if !explicit && !hasTags(str) {
			continue
		}
		typ, err := newStruct(named, str)
		if err != nil {
			return nil, err
		}
		structs = append(structs, typ)
	}
	if len(structs) == 0 {
		return nil, fmt.Errorf("no rlp tagged structs found in %s", pkg.Path())
	}
	return structs, nil
}

func lookupStruct(scope *types.Scope, name string) (*types.Named, *types.Struct, error) {
	obj := scope.Lookup(name)
	if obj == nil {
		return nil, nil, fmt.Errorf("identifier not found: %s", name)
	}
	typ, ok := obj.(*types.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("identifier not a type: %s", name)
	}
	dec, ok := typ.Type().(*types.Named)
	if !ok {
		return nil, nil, fmt.Errorf("identifier not a named type: %s", name)
	}
	str, ok := dec.Underlying().(*types.Struct)
	if !ok {
		return nil, nil, fmt.Errorf("identifier not a named struct: %s", name)
	}
	return dec, str, nil
}

// hasTags reports whether any field of the struct carries an rlp tag.
func hasTags(str *types.Struct) bool {
	for i := 0; i < str.NumFields(); i++ {
		ignore, tag, err := parseTag(str.Tag(i))
		if ignore || tag != nil || err != nil {
			return true
		}
	}
	return false
}

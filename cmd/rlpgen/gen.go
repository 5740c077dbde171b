// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"go/types"
	"sort"
	"strconv"
)

const rlpPkgPath = "github.com/thorkit/rlp"

type genContext struct {
	pkg     *types.Package
	imports map[string]string
}

func newGenContext(pkg *types.Package) *genContext {
	return &genContext{
		pkg:     pkg,
		imports: make(map[string]string),
	}
}

func (ctx *genContext) qualifier(path string, obj string) string {
	if path == ctx.pkg.Path() {
		return obj
	}
	return fmt.Sprintf("%s.%s", pkgName(path), obj)
}

func (ctx *genContext) addImport(path string, alias string) error {
	if path == ctx.pkg.Path() {
		return nil
	}
	if n, ok := ctx.imports[path]; ok && n != alias {
		return fmt.Errorf("conflict import %s(alias: %s-%s)", path, n, alias)
	}
	ctx.imports[path] = alias
	return nil
}

func (ctx *genContext) header() []byte {
	var paths sort.StringSlice
	for path := range ctx.imports {
		paths = append(paths, path)
	}
	sort.Sort(paths)

	var b bytes.Buffer
	fmt.Fprint(&b, "// Code generated by rlpgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n", ctx.pkg.Name())
	if len(paths) == 0 {
		return b.Bytes()
	}
	fmt.Fprintf(&b, "import (\n")
	for _, path := range paths {
		if alias := ctx.imports[path]; alias != "" {
			fmt.Fprintf(&b, "%s \"%s\"\n", alias, path)
		} else {
			fmt.Fprintf(&b, "\"%s\"\n", path)
		}
	}
	fmt.Fprintf(&b, ")\n")
	return b.Bytes()
}

// shapeExpr renders the Go expression constructing a shape.
func (ctx *genContext) shapeExpr(s *shape) (string, error) {
	switch {
	case s.scalar != nil:
		return fmt.Sprintf("%s(%s%s)", ctx.qualifier(rlpPkgPath, "Leaf"), ctx.qualifier(rlpPkgPath, s.scalar.constructor()), s.scalar.args()), nil

	case s.ref != nil:
		obj := s.ref.Obj()
		if obj.Pkg().Path() != ctx.pkg.Path() {
			if !token.IsExported(obj.Name()) {
				return "", fmt.Errorf("unexported struct %s of package %s", obj.Name(), obj.Pkg().Path())
			}
			if err := ctx.addImport(obj.Pkg().Path(), ""); err != nil {
				return "", err
			}
		}
		return ctx.qualifier(obj.Pkg().Path(), profileName(obj.Name())) + ".Shape", nil

	default:
		item, err := ctx.shapeExpr(s.item)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", ctx.qualifier(rlpPkgPath, "ListOf"), item), nil
	}
}

func generateProfile(ctx *genContext, typ *rlpStruct) ([]byte, error) {
	var (
		b         bytes.Buffer
		name      = typ.named.Obj().Name()
		indexRule = "%" + strconv.Itoa(len(strconv.Itoa(len(typ.fields)-1))) + "d"
	)
	fmt.Fprintf(&b, "// %s describes the RLP layout of %s.\n", profileName(name), name)
	fmt.Fprintf(&b, "var %s = %s{\n", profileName(name), ctx.qualifier(rlpPkgPath, "Profile"))
	fmt.Fprintf(&b, "Name: %q,\n", lowerCamel(name))
	fmt.Fprintf(&b, "Shape: %s(\n", ctx.qualifier(rlpPkgPath, "Nested"))
	for i, field := range typ.fields {
		expr, err := ctx.shapeExpr(field.shape)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %v", name, field.goName, err)
		}
		fmt.Fprintf(&b, "%s{Name: %q, Shape: %s}, // Field ("+indexRule+") - %s\n", ctx.qualifier(rlpPkgPath, "Field"), field.name, expr, i, field.goName)
	}
	fmt.Fprint(&b, "),\n")
	fmt.Fprint(&b, "}\n")
	return b.Bytes(), nil
}

// generate emits a formatted source file declaring the profiles of all the
// given structs.
func generate(ctx *genContext, structs []*rlpStruct) ([]byte, error) {
	if err := ctx.addImport(rlpPkgPath, ""); err != nil {
		return nil, err
	}
	var codes [][]byte
	for _, typ := range structs {
		code, err := generateProfile(ctx, typ)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	src := append(ctx.header(), '\n')
	src = append(src, bytes.Join(codes, []byte("\n"))...)

	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %v\n%s", err, src)
	}
	return out, nil
}

// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlp

import (
	"fmt"
	"strings"
)

// Object is the structured form profiles pack from and unpack into: field
// names mapped to logical values, nested Objects or slices of either.
type Object map[string]any

// shapeKind enumerates the forms a profile node can take.
type shapeKind int

const (
	shapeLeaf   shapeKind = iota // Single scalar encoded as a byte-string
	shapeNested                  // Ordered fields encoded as a list
	shapeList                    // Repeated items of one shape encoded as a list
)

// Shape is a node in a profile tree: a scalar leaf, a nested set of fields, or
// a list of items all following the same shape.
type Shape struct {
	kind   shapeKind
	scalar Scalar  // Codec of a leaf
	fields []Field // Ordered members of a nested shape
	item   *Shape  // Element shape of a list
}

// Field is a named shape inside a nested shape. The position of the field, not
// its name, determines where it lives on the wire.
type Field struct {
	Name  string
	Shape Shape
}

// Leaf creates a shape encoding a single scalar.
func Leaf(s Scalar) Shape {
	return Shape{kind: shapeLeaf, scalar: s}
}

// Nested creates a shape encoding an ordered set of fields as a list.
func Nested(fields ...Field) Shape {
	return Shape{kind: shapeNested, fields: fields}
}

// ListOf creates a shape encoding a variable number of items, each following
// the given item shape.
func ListOf(item Shape) Shape {
	return Shape{kind: shapeList, item: &item}
}

// Fields returns the members of a nested shape, nil otherwise.
func (s Shape) Fields() []Field {
	if s.kind != shapeNested {
		return nil
	}
	return s.fields
}

// String renders the shape in a compact notation, e.g. {a:numeric(1) b:[hex]}.
func (s Shape) String() string {
	switch s.kind {
	case shapeLeaf:
		return s.scalar.String()
	case shapeNested:
		parts := make([]string, len(s.fields))
		for i, f := range s.fields {
			parts[i] = f.Name + ":" + f.Shape.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	case shapeList:
		return "[" + s.item.String() + "]"
	default:
		panic(fmt.Sprintf("rlp: unknown shape kind %d", s.kind))
	}
}

// Profile is a named root shape. The name is the first element of every field
// path reported in errors.
type Profile struct {
	Name  string
	Shape Shape
}

// Extend returns a new nested profile with the given fields appended after
// the existing ones. The receiver is left untouched.
func (p Profile) Extend(name string, fields ...Field) Profile {
	if p.Shape.kind != shapeNested {
		panic(fmt.Sprintf("rlp: cannot extend non-nested profile %s", p.Name))
	}
	all := make([]Field, 0, len(p.Shape.fields)+len(fields))
	all = append(append(all, p.Shape.fields...), fields...)
	return Profile{Name: name, Shape: Nested(all...)}
}

// NumFields returns the number of top level fields of a nested profile, which
// is the number of items its encoding carries.
func (p Profile) NumFields() int {
	return len(p.Shape.Fields())
}

// Pack converts a structured value into the RLP value tree the profile
// describes. Any mismatch is reported as a *FieldError naming the field.
func (p Profile) Pack(v any) (Value, error) {
	return pack(v, p.Shape, p.Name)
}

// Unpack converts an RLP value tree back into a structured value. Nested shapes
// yield Object, lists yield []any and leaves the scalar's logical value.
func (p Profile) Unpack(v Value) (any, error) {
	return unpack(v, p.Shape, p.Name)
}

// Encode packs a structured value and serializes it into canonical RLP.
func (p Profile) Encode(v any) ([]byte, error) {
	packed, err := p.Pack(v)
	if err != nil {
		return nil, err
	}
	return EncodeToBytes(packed), nil
}

// Decode parses canonical RLP and unpacks it into a structured value.
func (p Profile) Decode(blob []byte) (any, error) {
	v, err := DecodeFromBytes(blob)
	if err != nil {
		return nil, err
	}
	return p.Unpack(v)
}

// childPath appends a field name to a dotted profile path.
func childPath(path string, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func pack(v any, shape Shape, path string) (Value, error) {
	switch shape.kind {
	case shapeLeaf:
		blob, err := shape.scalar.Encode(v)
		if err != nil {
			return Value{}, fieldError(path, err)
		}
		return String(blob), nil

	case shapeNested:
		obj, ok := v.(Object)
		if !ok {
			if m, isMap := v.(map[string]any); isMap {
				obj, ok = Object(m), true
			}
		}
		if !ok {
			return Value{}, fieldError(path, fmt.Errorf("%w: %T is not an object", ErrInvalidValueType, v))
		}
		items := make([]Value, len(shape.fields))
		for i, field := range shape.fields {
			item, err := pack(obj[field.Name], field.Shape, childPath(path, field.Name))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return List(items...), nil

	case shapeList:
		elems, err := listElements(v)
		if err != nil {
			return Value{}, fieldError(path, err)
		}
		items := make([]Value, len(elems))
		for i, elem := range elems {
			item, err := pack(elem, *shape.item, childPath(path, fmt.Sprintf("#%d", i)))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return List(items...), nil

	default:
		panic(fmt.Sprintf("rlp: unknown shape kind %d", shape.kind))
	}
}

// listElements flattens the supported slice representations of a list field.
func listElements(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case []Object:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, nil
	case [][]byte:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a list", ErrExpectedList, v)
	}
}

func unpack(v Value, shape Shape, path string) (any, error) {
	switch shape.kind {
	case shapeLeaf:
		if v.kind != KindString {
			return nil, fieldError(path, fmt.Errorf("%w: found list of %d items", ErrExpectedString, len(v.items)))
		}
		out, err := shape.scalar.Decode(v.str)
		if err != nil {
			return nil, fieldError(path, err)
		}
		return out, nil

	case shapeNested:
		if v.kind != KindList {
			return nil, fieldError(path, fmt.Errorf("%w: found %d byte string", ErrExpectedList, len(v.str)))
		}
		if len(v.items) != len(shape.fields) {
			return nil, fieldError(path, fmt.Errorf("%w: expected %d items, but got %d", ErrFieldCount, len(shape.fields), len(v.items)))
		}
		obj := make(Object, len(shape.fields))
		for i, field := range shape.fields {
			out, err := unpack(v.items[i], field.Shape, childPath(path, field.Name))
			if err != nil {
				return nil, err
			}
			obj[field.Name] = out
		}
		return obj, nil

	case shapeList:
		if v.kind != KindList {
			return nil, fieldError(path, fmt.Errorf("%w: found %d byte string", ErrExpectedList, len(v.str)))
		}
		out := make([]any, len(v.items))
		for i, item := range v.items {
			elem, err := unpack(item, *shape.item, childPath(path, fmt.Sprintf("#%d", i)))
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil

	default:
		panic(fmt.Sprintf("rlp: unknown shape kind %d", shape.kind))
	}
}

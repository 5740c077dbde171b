// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"strings"
	"unicode"
)

func pkgName(pkgPath string) string {
	index := strings.LastIndex(pkgPath, "/")
	if index == -1 {
		return pkgPath // universal package
	}
	return pkgPath[index+1:]
}

// lowerCamel converts an exported Go identifier into the lower camel case name
// used on profiles, keeping leading initialisms together (ID -> id, TxHash ->
// txHash, URLPath -> urlPath).
func lowerCamel(name string) string {
	runes := []rune(name)
	for i := range runes {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		// Keep the last capital of an initialism if it starts the next word
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// profileName returns the name of the generated profile variable of a type,
// exported only if the type is.
func profileName(typeName string) string {
	return typeName + "Profile"
}

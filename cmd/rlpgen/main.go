// rlp: Go Recursive Length Prefix (RLP) profile codec library
// Copyright 2024 rlp Authors
// SPDX-License-Identifier: BSD-3-Clause

// rlpgen generates rlp profiles out of Go structs annotated with rlp tags.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/thorkit/rlp/internal/clilog"
	"github.com/urfave/cli/v2"
	"golang.org/x/tools/go/packages"
)

var (
	dirFlag = &cli.StringFlag{
		Name:    "dir",
		Usage:   "Directory of the package to generate profiles for",
		Value:   ".",
		EnvVars: []string{"RLPGEN_DIR"},
	}
	typeFlag = &cli.StringSliceFlag{
		Name:  "type",
		Usage: "Struct to generate a profile for (default: all rlp tagged structs)",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Output file, relative to the package directory (default: stdout)",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:   "rlpgen",
		Usage:  "rlp profile generator",
		Flags:  append([]cli.Flag{dirFlag, typeFlag, outFlag}, clilog.Flags("RLPGEN")...),
		Action: run,
	}
}

func run(ctx *cli.Context) error {
	log, release, err := clilog.Setup(ctx)
	if err != nil {
		return err
	}
	defer release()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  ctx.String(dirFlag.Name),
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return errors.Wrap(err, "failed to load package")
	}
	if len(pkgs) != 1 {
		return errors.Errorf("expected one package, found %d", len(pkgs))
	}
	if packages.PrintErrors(pkgs) > 0 {
		return errors.New("package has errors")
	}
	pkg := pkgs[0]
	log.Debug().Str("package", pkg.PkgPath).Strs("types", ctx.StringSlice(typeFlag.Name)).Msg("Loaded package")

	structs, err := parsePackage(pkg.Types, ctx.StringSlice(typeFlag.Name))
	if err != nil {
		return err
	}
	code, err := generate(newGenContext(pkg.Types), structs)
	if err != nil {
		return err
	}
	out := ctx.String(outFlag.Name)
	if out == "" {
		_, err := ctx.App.Writer.Write(code)
		return err
	}
	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(ctx.String(dirFlag.Name), out)
	}
	if err := os.WriteFile(path, code, 0o644); err != nil {
		return errors.Wrap(err, "failed to write profiles")
	}
	log.Info().Str("file", path).Int("profiles", len(structs)).Msg("Generated profiles")
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for mdconv developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "mdconv"
	cmdPkg     = "./cmd/mdconv"
	samplesDir = "testdata/samples"
	outDir     = "out"
)

// sampleFormats are the outputs Samples renders for every sample document.
var sampleFormats = []string{"html", "docx", "pdf"}

// version returns a git description of HEAD, or "dev" outside a checkout.
func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Vet and Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Samples converts every document in testdata/samples into out/ in each
// output format.
func Samples() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	for _, format := range sampleFormats {
		dir := filepath.Join(outDir, format)
		if err := sh.RunV(bin, "batch", samplesDir, "--out-dir", dir, "-t", format); err != nil {
			return fmt.Errorf("rendering %s samples: %w", format, err)
		}
	}
	return nil
}

// Clean removes build and sample output.
func Clean() error {
	for _, dir := range []string{binDir, outDir} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

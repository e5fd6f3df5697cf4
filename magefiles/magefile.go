//go:build mage

// Package main contains Mage build targets for caliper developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "caliper"
	cmdPkg  = "./cmd/caliper"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}

	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Demo builds the CLI and extracts PMI from the bundled sample files.
func Demo() error {
	mg.Deps(Build)

	samples, err := filepath.Glob(filepath.Join("testdata", "*.step"))
	if err != nil {
		return err
	}
	bin := filepath.Join(binDir, binName)
	for _, sample := range samples {
		fmt.Printf("== %s\n", sample)
		if err := sh.RunV(bin, "pmi", sample, "--pretty"); err != nil {
			fmt.Printf("   extraction failed: %v\n", err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binDir)
}

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the docs/ tree into content/.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "convert")
}

// Index builds the CLI, rebuilds the search index, and writes the site export.
func Index() error {
	mg.Deps(Build)
	if err := sh.RunV(binPath(), "index", "build"); err != nil {
		return err
	}
	return sh.RunV(binPath(), "index", "export", "--format", "json")
}

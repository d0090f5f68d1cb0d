//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests. The platform package needs cgo and a GLFW toolchain.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs the tests of the packages that build without cgo.
func (Test) Headless() error {
	mg.Deps(Build.Vet)
	_, err := executeCmd("go",
		withArgs("test", "./engine/state/...", "./engine/core/...", "./engine/containers/...", "./engine/assets/...", "./testbed/..."),
		withEnv("CGO_ENABLED=0"),
		withStream(),
	)
	return err
}

// Runs the tests of a single package directory, e.g. mage test:package engine/state.
func (Test) Package(dir string) error {
	_, err := executeCmd("go", withArgs("test", "-v", "."), withDir(dir), withStream())
	return err
}

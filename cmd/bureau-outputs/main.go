// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/outputs/lib/version"
)

const binaryName = "bureau-outputs"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "--version", "version":
		version.Fprint(stdout, binaryName)
		return 0
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	case "build":
		err = runBuild(args[1:], stdout, stderr)
	case "inspect":
		err = runInspect(args[1:], stdout, stderr)
	default:
		err = usagef("unknown command: %s", args[0])
	}

	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var usage usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `%s: collect compiler outputs and build package-part manifests.

Usage:
  %[1]s build --session FILE [--config FILE] [--out DIR] [--compiled FILE]
  %[1]s inspect [--diagnose] MANIFEST
  %[1]s --version

Run "%[1]s <command> --help" for the flags of a command.
`, binaryName)
}

// parseFlags parses args into flagSet, mapping parse failures to usage
// errors and printing defaults on --help.
func parseFlags(flagSet *pflag.FlagSet, args []string, output io.Writer) error {
	flagSet.SetOutput(output)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError{err: err}
	}
	return nil
}

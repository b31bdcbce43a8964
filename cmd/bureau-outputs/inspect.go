// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/outputs/lib/codec"
	"github.com/bureau-foundation/outputs/lib/grouping"
	"github.com/bureau-foundation/outputs/lib/manifest"
)

func runInspect(args []string, stdout, stderr io.Writer) error {
	var diagnose bool
	flagSet := pflag.NewFlagSet(binaryName+" inspect", pflag.ContinueOnError)
	flagSet.BoolVar(&diagnose, "diagnose", false, "print the CBOR body in diagnostic notation")
	if err := parseFlags(flagSet, args, stderr); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usagef("inspect takes exactly one manifest path")
	}
	path := flagSet.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	if diagnose {
		body, err := manifest.Body(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		notation, err := codec.Diagnose(body)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(stdout, notation)
		return nil
	}

	groups, err := manifest.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if isTerminal(stdout) {
		fmt.Fprint(stdout, renderStyled(groups))
	} else {
		fmt.Fprint(stdout, manifest.Render(groups))
	}
	fmt.Fprintf(stdout, "%d packages, %d parts, %s compression\n",
		len(groups), grouping.PartCount(groups), manifest.Compression(data[8]))
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

var (
	packageStyle = lipgloss.NewStyle().Bold(true)
	partStyle    = lipgloss.NewStyle().PaddingLeft(2)
	facadeStyle  = lipgloss.NewStyle().Faint(true)
)

// renderStyled is the terminal form of manifest.Render.
func renderStyled(groups []grouping.Group) string {
	var builder strings.Builder
	for _, group := range groups {
		name := group.Package
		if name == "" {
			name = "<root>"
		}
		builder.WriteString(packageStyle.Render("package " + name))
		builder.WriteString("\n")
		for _, part := range group.Parts {
			line := part.Name
			if part.HasFacade() {
				line += facadeStyle.Render(" -> " + part.Facade)
			}
			builder.WriteString(partStyle.Render(line))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFinalized is the cause of the panic raised when a session is
	// mutated after [Store.Finalize].
	ErrFinalized = errors.New("output: session already finalized")

	// ErrNoSuchArtifact is returned when rendering a path that was
	// never registered or has been removed. Callers get paths from the
	// store itself, so this indicates an internal inconsistency.
	ErrNoSuchArtifact = errors.New("output: no such artifact")
)

// ContractError is the panic value for calls that violate the store's
// state machine.
type ContractError struct {
	Operation string
	Err       error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// ArtifactError wraps a producer failure with the artifact path and the
// source files it was compiled from, so diagnostics point back at the
// inputs.
type ArtifactError struct {
	Path    string
	Sources []string
	Err     error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("generating %s (compiled from [%s]): %v", e.Path, strings.Join(e.Sources, ", "), e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package outputtest provides an in-memory [output.Factory] for tests
// of code that drives an output store.
package outputtest

import (
	"fmt"

	"github.com/bureau-foundation/outputs/lib/output"
)

// Factory hands out builders whose content is looked up by origin name
// every time they are rendered, so tests can change what a registered
// artifact renders to and observe that nothing is cached.
type Factory struct {
	payloads map[string][]byte
	failures map[string]error
	calls    map[string]int
}

// NewFactory returns a factory with no payloads. Builders for unknown
// origins render empty output.
func NewFactory() *Factory {
	return &Factory{
		payloads: make(map[string][]byte),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Set makes builders for the named origin render data.
func (f *Factory) Set(name string, data []byte) {
	f.payloads[name] = data
	delete(f.failures, name)
}

// Fail makes builders for the named origin return err.
func (f *Factory) Fail(name string, err error) {
	f.failures[name] = err
}

// Calls returns how many times builders for the named origin rendered.
func (f *Factory) Calls(name string) int {
	return f.calls[name]
}

// NewBuilder implements [output.Factory].
func (f *Factory) NewBuilder(origin output.Origin) output.Builder {
	return &builder{factory: f, name: origin.Name}
}

type builder struct {
	factory *Factory
	name    string
}

func (b *builder) Bytes() ([]byte, error) {
	b.factory.calls[b.name]++
	if err := b.factory.failures[b.name]; err != nil {
		return nil, err
	}
	return append([]byte(nil), b.factory.payloads[b.name]...), nil
}

func (b *builder) Text() (string, error) {
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("// %s\n%x\n", b.name, data), nil
}

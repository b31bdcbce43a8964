// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output_test

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/outputs/lib/output"
)

func TestCreateText(t *testing.T) {
	store, factory := newStore(t, output.Options{})
	factory.Set("p/Q", []byte{0xca, 0xfe})
	store.Register("p/Q.bin", origin("p/Q"), nil)
	store.RecordContribution("p", "Q", "")

	text, err := store.CreateText()
	if err != nil {
		t.Fatalf("CreateText: %v", err)
	}
	want := "@p/Q.bin\n// p/Q\ncafe\n@m.manifest\npackage p\n  Q\n"
	if text != want {
		t.Errorf("CreateText:\n%s\nwant:\n%s", text, want)
	}
}

func TestCreateTextForEachFile(t *testing.T) {
	store, _ := newStore(t, output.Options{})
	store.Register("b/B.bin", origin("b/B"), nil)
	store.Register("a/A.bin", origin("a/A"), nil)

	texts, err := store.CreateTextForEachFile()
	if err != nil {
		t.Fatalf("CreateTextForEachFile: %v", err)
	}
	if len(texts) != 2 || texts[0].Path != "b/B.bin" || texts[1].Path != "a/A.bin" {
		t.Errorf("texts = %+v, want registration order", texts)
	}
}

func TestCreateTextPropagatesFailure(t *testing.T) {
	store, factory := newStore(t, output.Options{})
	factory.Fail("p/Q", errors.New("boom"))
	store.Register("p/Q.bin", origin("p/Q"), nil)

	var artifactError *output.ArtifactError
	if _, err := store.CreateText(); !errors.As(err, &artifactError) {
		t.Errorf("CreateText error = %v, want *ArtifactError", err)
	}
}

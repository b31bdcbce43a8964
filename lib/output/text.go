// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"
)

// TextFile is the text form of one artifact.
type TextFile struct {
	Path string
	Text string
}

// CreateTextForEachFile finalizes the session and renders the text form
// of every artifact, in order. Golden-file tests compare against this.
func (s *Store) CreateTextForEachFile() ([]TextFile, error) {
	files := s.List()
	texts := make([]TextFile, 0, len(files))
	for _, file := range files {
		text, err := file.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, TextFile{Path: file.Path(), Text: text})
	}
	return texts, nil
}

// CreateText finalizes the session and concatenates the text form of
// every artifact, each preceded by a line "@<path>".
func (s *Store) CreateText() (string, error) {
	texts, err := s.CreateTextForEachFile()
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for _, text := range texts {
		builder.WriteString("@")
		builder.WriteString(text.Path)
		builder.WriteString("\n")
		builder.WriteString(text.Text)
	}
	return builder.String(), nil
}

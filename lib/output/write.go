// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/outputs/lib/digest"
)

// Written describes one artifact written by [Store.WriteAll].
type Written struct {
	Path   string
	Size   int
	Digest digest.Hash
}

// WriteAll finalizes the session and writes every artifact under root,
// creating directories as needed. Each file is written to a temporary
// name and renamed into place, so readers never observe a partial
// artifact. Writing stops at the first failure.
func (s *Store) WriteAll(root string) ([]Written, error) {
	files := s.List()
	written := make([]Written, 0, len(files))
	for _, file := range files {
		local := filepath.FromSlash(file.Path())
		if !filepath.IsLocal(local) {
			return written, fmt.Errorf("artifact path %q escapes the output directory", file.Path())
		}

		data, err := file.Bytes()
		if err != nil {
			return written, err
		}
		if err := writeFileAtomic(filepath.Join(root, local), data); err != nil {
			return written, err
		}
		written = append(written, Written{Path: file.Path(), Size: len(data), Digest: digest.Output(data)})
	}

	s.logger.Info("wrote outputs", "root", root, "files", len(written), "module", s.module)
	return written, nil
}

func writeFileAtomic(finalPath string, data []byte) error {
	directory := filepath.Dir(finalPath)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", directory, err)
	}

	tmpFile, err := os.CreateTemp(directory, ".output-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", finalPath, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", finalPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", finalPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting mode of %s: %w", finalPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", finalPath, err)
	}

	success = true
	return nil
}

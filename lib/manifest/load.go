// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bureau-foundation/outputs/lib/grouping"
)

// LoadFile reads a manifest written by an earlier compilation of the
// module and returns it as a [grouping.Compiled] merger. obsolete lists
// the slash-separated part paths the current session recompiles or
// deleted. A missing file is not an error: the result merges nothing,
// matching a first (non-incremental) build.
func LoadFile(path string, obsolete []string) (grouping.Compiled, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return grouping.Compiled{Obsolete: obsolete}, nil
	}
	if err != nil {
		return grouping.Compiled{}, fmt.Errorf("reading compiled manifest: %w", err)
	}

	groups, err := Decode(data)
	if err != nil {
		return grouping.Compiled{}, fmt.Errorf("loading compiled manifest %s: %w", path, err)
	}
	return grouping.Compiled{Groups: groups, Obsolete: obsolete}, nil
}

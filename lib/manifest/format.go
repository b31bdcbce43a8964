// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/outputs/lib/codec"
	"github.com/bureau-foundation/outputs/lib/digest"
	"github.com/bureau-foundation/outputs/lib/grouping"
)

const (
	// Version is the format version written into the magic.
	Version = 1

	// HeaderSize is the fixed header: 8-byte magic, compression tag,
	// 3 reserved bytes, two 4-byte lengths.
	HeaderSize = 20

	// MaxBodySize bounds the uncompressed body. A module large enough
	// to exceed it would need millions of parts.
	MaxBodySize = 64 << 20
)

var magic = [8]byte{'P', 'K', 'G', 'M', 'A', 'P', Version, 0}

var (
	// ErrInvalidTable is returned when a table cannot be encoded: a
	// name is empty or not valid UTF-8, or the body is too large.
	ErrInvalidTable = errors.New("manifest: invalid package table")

	// ErrCorrupt is returned by [Decode] for any structural problem.
	ErrCorrupt = errors.New("manifest: corrupt data")
)

// body is the CBOR-encoded payload.
type body struct {
	Packages []packageRecord `cbor:"packages"`
}

type packageRecord struct {
	Name        string   `cbor:"name"`
	Parts       []string `cbor:"parts"`
	Facades     []string `cbor:"facades,omitempty"`
	PartFacades []uint32 `cbor:"part_facades,omitempty"`
}

// Encoder serializes package tables. The zero value writes
// uncompressed manifests.
type Encoder struct {
	Compression Compression
}

// Encode returns the binary manifest for groups. Groups are written in
// the order given.
func (e Encoder) Encode(groups []grouping.Group) ([]byte, error) {
	payload, err := encodeBody(groups)
	if err != nil {
		return nil, err
	}

	compression := e.Compression
	stored, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		compression, stored = CompressionNone, payload
	} else if err != nil {
		return nil, err
	}

	output := make([]byte, HeaderSize, HeaderSize+len(stored)+digest.Size)
	copy(output[0:8], magic[:])
	output[8] = byte(compression)
	binary.LittleEndian.PutUint32(output[12:16], uint32(len(payload)))
	binary.LittleEndian.PutUint32(output[16:20], uint32(len(stored)))
	output = append(output, stored...)
	checksum := digest.Manifest(payload)
	output = append(output, checksum[:]...)
	return output, nil
}

// Render returns the text form of groups: one "package <name>" line per
// group followed by an indented line per part, "<part> -> <facade>" for
// parts behind a facade. The root package is shown as "<root>".
func (e Encoder) Render(groups []grouping.Group) (string, error) {
	if err := validate(groups); err != nil {
		return "", err
	}
	return Render(groups), nil
}

// Render formats groups without validating them.
func Render(groups []grouping.Group) string {
	var buffer bytes.Buffer
	for _, group := range groups {
		name := group.Package
		if name == "" {
			name = "<root>"
		}
		fmt.Fprintf(&buffer, "package %s\n", name)
		for _, part := range group.Parts {
			if part.HasFacade() {
				fmt.Fprintf(&buffer, "  %s -> %s\n", part.Name, part.Facade)
			} else {
				fmt.Fprintf(&buffer, "  %s\n", part.Name)
			}
		}
	}
	return buffer.String()
}

func encodeBody(groups []grouping.Group) ([]byte, error) {
	if err := validate(groups); err != nil {
		return nil, err
	}

	records := make([]packageRecord, 0, len(groups))
	for _, group := range groups {
		record := packageRecord{Name: group.Package, Parts: make([]string, 0, len(group.Parts))}
		facadeIDs := make(map[string]uint32)
		var indexes []uint32
		for i, part := range group.Parts {
			record.Parts = append(record.Parts, part.Name)
			if !part.HasFacade() {
				continue
			}
			id, seen := facadeIDs[part.Facade]
			if !seen {
				record.Facades = append(record.Facades, part.Facade)
				id = uint32(len(record.Facades))
				facadeIDs[part.Facade] = id
			}
			if indexes == nil {
				indexes = make([]uint32, len(group.Parts))
			}
			indexes[i] = id
		}
		record.PartFacades = indexes
		records = append(records, record)
	}

	payload, err := codec.Marshal(body{Packages: records})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if len(payload) > MaxBodySize {
		return nil, fmt.Errorf("%w: body is %d bytes, maximum is %d", ErrInvalidTable, len(payload), MaxBodySize)
	}
	return payload, nil
}

func validate(groups []grouping.Group) error {
	for _, group := range groups {
		if !utf8.ValidString(group.Package) {
			return fmt.Errorf("%w: package name %q is not valid UTF-8", ErrInvalidTable, group.Package)
		}
		for _, part := range group.Parts {
			if part.Name == "" {
				return fmt.Errorf("%w: empty part name in package %q", ErrInvalidTable, group.Package)
			}
			if !utf8.ValidString(part.Name) || !utf8.ValidString(part.Facade) {
				return fmt.Errorf("%w: part %q in package %q is not valid UTF-8", ErrInvalidTable, part.Name, group.Package)
			}
		}
	}
	return nil
}

// Decode parses a binary manifest back into its package table,
// verifying the header, lengths, and checksum.
func Decode(data []byte) ([]grouping.Group, error) {
	payload, err := Body(data)
	if err != nil {
		return nil, err
	}

	var decoded body
	if err := codec.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrCorrupt, err)
	}

	groups := make([]grouping.Group, 0, len(decoded.Packages))
	for _, record := range decoded.Packages {
		if len(record.PartFacades) != 0 && len(record.PartFacades) != len(record.Parts) {
			return nil, fmt.Errorf("%w: package %q has %d parts but %d facade indexes",
				ErrCorrupt, record.Name, len(record.Parts), len(record.PartFacades))
		}
		group := grouping.Group{Package: record.Name, Parts: make([]grouping.Part, 0, len(record.Parts))}
		for i, name := range record.Parts {
			part := grouping.Part{Name: name}
			if len(record.PartFacades) != 0 && record.PartFacades[i] != 0 {
				id := record.PartFacades[i]
				if int(id) > len(record.Facades) {
					return nil, fmt.Errorf("%w: package %q part %q references facade %d of %d",
						ErrCorrupt, record.Name, name, id, len(record.Facades))
				}
				part.Facade = record.Facades[id-1]
			}
			group.Parts = append(group.Parts, part)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Body validates data and returns the uncompressed CBOR body.
func Body(data []byte) ([]byte, error) {
	if len(data) < HeaderSize+digest.Size {
		return nil, fmt.Errorf("%w: %d bytes is shorter than header and checksum", ErrCorrupt, len(data))
	}
	if !bytes.Equal(data[0:6], magic[0:6]) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[0:6])
	}
	if data[6] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, data[6])
	}

	compression := Compression(data[8])
	size := binary.LittleEndian.Uint32(data[12:16])
	storedSize := binary.LittleEndian.Uint32(data[16:20])
	if size > MaxBodySize {
		return nil, fmt.Errorf("%w: body size %d exceeds maximum %d", ErrCorrupt, size, MaxBodySize)
	}
	if uint64(HeaderSize)+uint64(storedSize)+digest.Size != uint64(len(data)) {
		return nil, fmt.Errorf("%w: stored body length %d does not match file size %d", ErrCorrupt, storedSize, len(data))
	}

	stored := data[HeaderSize : HeaderSize+int(storedSize)]
	payload, err := decompress(stored, compression, int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var want digest.Hash
	copy(want[:], data[HeaderSize+int(storedSize):])
	if got := digest.Manifest(payload); got != want {
		return nil, fmt.Errorf("%w: checksum mismatch: got %s, want %s", ErrCorrupt, got.Short(), want.Short())
	}
	return payload, nil
}

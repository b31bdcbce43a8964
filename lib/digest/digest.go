// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the byte length of every digest.
const Size = 32

// Hash is a 32-byte BLAKE3 keyed digest.
type Hash [Size]byte

// Domain is a 32-byte BLAKE3 key selecting a hash domain.
type Domain [32]byte

// Domain keys are the ASCII domain name zero-padded to 32 bytes.
// Changing one invalidates every stored digest in that domain.
var (
	ManifestDomain = Domain{
		'o', 'u', 't', 'p', 'u', 't', 's', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's', 't',
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	OutputDomain = Domain{
		'o', 'u', 't', 'p', 'u', 't', 's', '.', 'f', 'i', 'l', 'e',
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Sum computes the keyed hash of data in the given domain.
func Sum(domain Domain, data []byte) Hash {
	// NewKeyed only fails for keys that are not 32 bytes, which the
	// Domain type rules out.
	hasher, err := blake3.NewKeyed(domain[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Manifest hashes a decoded manifest body.
func Manifest(body []byte) Hash {
	return Sum(ManifestDomain, body)
}

// Output hashes the bytes of a written artifact.
func Output(data []byte) Hash {
	return Sum(OutputDomain, data)
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, used in listings.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// Parse parses a 64-character hex string into a Hash.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return hash, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(hash[:], decoded)
	return hash, nil
}

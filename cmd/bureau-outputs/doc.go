// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Bureau-outputs drives an output store from the command line. It is
// the reference driver for lib/output and the tool used to examine
// manifests produced by compiler runs.
//
//	bureau-outputs build --session session.jsonc [--config outputs.yaml] [--out DIR]
//	bureau-outputs inspect [--diagnose] FILE
//
// build reads a session description (JSON with comments) naming the
// compiled artifacts, their sources, and the package parts they
// contribute, replays it into a store, finalizes it, and writes every
// artifact plus the manifest to the output directory. Artifact bytes are
// read from the files the session names every time they are rendered.
//
// inspect decodes a manifest and prints its package table, or with
// --diagnose the CBOR body in diagnostic notation.
//
// Exit codes: 0 success, 1 failure, 2 usage error.
package main

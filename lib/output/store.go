// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/bureau-foundation/outputs/lib/grouping"
	"github.com/bureau-foundation/outputs/lib/manifest"
)

// DefaultExtension is the artifact suffix used when [Options.Extension]
// is empty.
const DefaultExtension = ".bin"

// State is the lifecycle state of a [Store].
type State uint8

const (
	// StateOpen accepts registrations and package-part facts.
	StateOpen State = iota
	// StateFinalized accepts only reads, removals, and release.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Options configures a [Store].
type Options struct {
	// Module names the compilation module. The manifest path is
	// derived from it. Required.
	Module string

	// Factory creates builders for generated artifacts. Required.
	Factory Factory

	// Extension is appended to internal names by [Store.RegisterClass]
	// and [Store.Remove]. Defaults to [DefaultExtension].
	Extension string

	// ManifestDirectory is the slash-separated directory, relative to
	// the output root, that holds the manifest. Empty means the root.
	ManifestDirectory string

	// Merger combines this session's package parts with those of a
	// previous compilation. Defaults to grouping.Compiled{}, which
	// merges nothing and only sorts.
	Merger grouping.Merger

	// Encoder serializes the manifest. Defaults to an uncompressed
	// manifest.Encoder.
	Encoder ManifestEncoder

	// Logger receives debug records for registrations, removals, and
	// finalization. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Store collects the artifacts of one compilation session. Paths keep
// the position of their first registration: registering an existing
// path replaces its record in place.
//
// Store is not safe for concurrent use. A driver that compiles units in
// parallel must serialize calls into the store itself.
type Store struct {
	module            string
	extension         string
	manifestDirectory string
	factory           Factory
	merger            grouping.Merger
	encoder           ManifestEncoder
	logger            *slog.Logger

	state    State
	order    []string
	records  map[string]*record
	registry *grouping.Registry
}

// New creates an open store for one session.
func New(options Options) (*Store, error) {
	if options.Module == "" {
		return nil, errors.New("output: module name is required")
	}
	if options.Factory == nil {
		return nil, errors.New("output: builder factory is required")
	}
	if strings.HasPrefix(options.ManifestDirectory, "/") {
		return nil, fmt.Errorf("output: manifest directory %q must be relative", options.ManifestDirectory)
	}

	store := &Store{
		module:            options.Module,
		extension:         options.Extension,
		manifestDirectory: options.ManifestDirectory,
		factory:           options.Factory,
		merger:            options.Merger,
		encoder:           options.Encoder,
		logger:            options.Logger,
		records:           make(map[string]*record),
		registry:          grouping.NewRegistry(),
	}
	if store.extension == "" {
		store.extension = DefaultExtension
	}
	if store.merger == nil {
		store.merger = grouping.Compiled{}
	}
	if store.encoder == nil {
		store.encoder = manifest.Encoder{}
	}
	if store.logger == nil {
		store.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return store, nil
}

// Module returns the module name the store was created with.
func (s *Store) Module() string {
	return s.module
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	return s.state
}

// ManifestPath returns the path the manifest is (or would be)
// registered at.
func (s *Store) ManifestPath() string {
	return path.Join(s.manifestDirectory, manifest.FileName(s.module))
}

// ArtifactPath returns the path of the artifact for an internal name
// such as "org/example/UtilKt".
func (s *Store) ArtifactPath(internalName string) string {
	return internalName + s.extension
}

// requireOpen panics with a *ContractError unless the store is open.
func (s *Store) requireOpen(operation string) {
	if s.state != StateOpen {
		panic(&ContractError{Operation: operation, Err: ErrFinalized})
	}
}

// Register creates a builder for origin and records it at artifactPath
// with the given source files. An existing record at the same path is
// replaced. Panics with a *ContractError after [Store.Finalize].
func (s *Store) Register(artifactPath string, origin Origin, sources []string) Builder {
	s.requireOpen("register " + artifactPath)

	builder := s.factory.NewBuilder(origin)
	s.put(artifactPath, &record{
		kind:    generatedRecord,
		sources: slices.Clone(sources),
		builder: builder,
	})
	return builder
}

// RegisterClass registers the artifact for an internal name, keeping
// only the physical source files.
func (s *Store) RegisterClass(internalName string, origin Origin, files []SourceFile) Builder {
	return s.Register(s.ArtifactPath(internalName), origin, physicalPaths(files))
}

func (s *Store) put(artifactPath string, entry *record) {
	_, replaced := s.records[artifactPath]
	if !replaced {
		s.order = append(s.order, artifactPath)
	}
	s.records[artifactPath] = entry
	s.logger.Debug("registered artifact",
		"path", artifactPath,
		"sources", len(entry.sources),
		"replaced", replaced,
	)
}

// RecordContribution records that partName holds top-level declarations
// of packageName, optionally behind the facade facadeName (empty for
// none). Panics with a *ContractError after [Store.Finalize].
func (s *Store) RecordContribution(packageName, partName, facadeName string) {
	s.requireOpen("record part " + partName)
	s.registry.Record(packageName, partName, facadeName)
}

// RecordSourceProvenance adds files to the manifest's source list.
// Panics with a *ContractError after [Store.Finalize].
func (s *Store) RecordSourceProvenance(files ...string) {
	s.requireOpen("record provenance")
	s.registry.RecordProvenance(files...)
}

// PartSink records package parts into one package of a store.
type PartSink struct {
	store       *Store
	packageName string
}

// Package returns the dotted package name the sink records into.
func (sink *PartSink) Package() string {
	return sink.packageName
}

// AddPart records a part of the sink's package. facadeName is empty for
// parts not behind a facade.
func (sink *PartSink) AddPart(partName, facadeName string) {
	sink.store.RecordContribution(sink.packageName, partName, facadeName)
}

// ForPackage prepares code generation of the files of one package: the
// physical files with top-level callables become manifest sources, and
// the returned sink records the parts generated for them. Panics with a
// *ContractError after [Store.Finalize].
func (s *Store) ForPackage(packageName string, files []SourceFile) *PartSink {
	s.requireOpen("generate package " + packageName)
	s.registry.RecordProvenance(callablePaths(files)...)
	return &PartSink{store: s, packageName: packageName}
}

// ForFacade is [Store.ForPackage] for the files of a multi-file facade.
// The parts belong to the facade's package, the parent of
// facadeQualifiedName.
func (s *Store) ForFacade(facadeQualifiedName string, files []SourceFile) *PartSink {
	s.requireOpen("generate facade " + facadeQualifiedName)
	packageName := ""
	if index := strings.LastIndexByte(facadeQualifiedName, '.'); index >= 0 {
		packageName = facadeQualifiedName[:index]
	}
	s.registry.RecordProvenance(callablePaths(files)...)
	return &PartSink{store: s, packageName: packageName}
}

// Finalize ends the session. The first call merges the recorded
// package parts with the configured merger and, if the merged table has
// any parts, registers the manifest at [Store.ManifestPath]. Later calls
// do nothing.
func (s *Store) Finalize() {
	if s.state == StateFinalized {
		return
	}
	s.state = StateFinalized

	table := s.merger.MergeCompiled(s.registry.Snapshot(), s.module)
	parts := grouping.PartCount(table)
	if parts == 0 {
		s.logger.Debug("finalized without manifest", "module", s.module)
		return
	}

	manifestPath := s.ManifestPath()
	s.put(manifestPath, &record{
		kind:    syntheticRecord,
		sources: s.registry.Provenance(),
		table:   table,
		encoder: s.encoder,
	})
	s.logger.Debug("finalized",
		"module", s.module,
		"manifest", manifestPath,
		"packages", len(table),
		"parts", parts,
	)
}

// List finalizes the session and returns every artifact in order.
func (s *Store) List() []File {
	s.Finalize()
	return s.CurrentOutput()
}

// Paths finalizes the session and returns every artifact path in order.
func (s *Store) Paths() []string {
	s.Finalize()
	return slices.Clone(s.order)
}

// CurrentOutput returns the artifacts registered so far without
// finalizing.
func (s *Store) CurrentOutput() []File {
	files := make([]File, 0, len(s.order))
	for _, artifactPath := range s.order {
		files = append(files, File{store: s, path: artifactPath})
	}
	return files
}

// Len returns the number of registered artifacts.
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns the artifact at artifactPath. It does not finalize.
func (s *Store) Get(artifactPath string) (File, bool) {
	if _, exists := s.records[artifactPath]; !exists {
		return File{}, false
	}
	return File{store: s, path: artifactPath}, true
}

func (s *Store) lookup(artifactPath string) (*record, error) {
	entry, exists := s.records[artifactPath]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchArtifact, artifactPath)
	}
	return entry, nil
}

// Bytes renders the artifact at artifactPath. Producer failures are
// returned as *ArtifactError.
func (s *Store) Bytes(artifactPath string) ([]byte, error) {
	entry, err := s.lookup(artifactPath)
	if err != nil {
		return nil, err
	}
	data, err := entry.bytes()
	if err != nil {
		return nil, &ArtifactError{Path: artifactPath, Sources: slices.Clone(entry.sources), Err: err}
	}
	return data, nil
}

// Text renders the text form of the artifact at artifactPath. Producer
// failures are returned as *ArtifactError.
func (s *Store) Text(artifactPath string) (string, error) {
	entry, err := s.lookup(artifactPath)
	if err != nil {
		return "", err
	}
	text, err := entry.text()
	if err != nil {
		return "", &ArtifactError{Path: artifactPath, Sources: slices.Clone(entry.sources), Err: err}
	}
	return text, nil
}

// SourceFiles returns the source files of the artifact at artifactPath.
func (s *Store) SourceFiles(artifactPath string) ([]string, error) {
	entry, err := s.lookup(artifactPath)
	if err != nil {
		return nil, err
	}
	return slices.Clone(entry.sources), nil
}

// Remove deletes the artifacts of the given internal names (each
// resolved with [Store.ArtifactPath]). Names that are not registered
// are ignored. Allowed in any state.
func (s *Store) Remove(internalNames ...string) {
	removed := 0
	for _, name := range internalNames {
		artifactPath := s.ArtifactPath(name)
		if _, exists := s.records[artifactPath]; exists {
			delete(s.records, artifactPath)
			removed++
		}
	}
	if removed == 0 {
		return
	}
	s.order = slices.DeleteFunc(s.order, func(artifactPath string) bool {
		_, exists := s.records[artifactPath]
		return !exists
	})
	s.logger.Debug("removed artifacts", "count", removed)
}

// Release drops every record and the builders they hold. It does not
// change the state; there is no way to restore released records.
func (s *Store) Release() {
	count := len(s.order)
	s.order = nil
	s.records = make(map[string]*record)
	s.logger.Debug("released artifacts", "count", count)
}

// Package project implements the local image catalog: the project and
// its entries, path portability, identity allocation, and the
// descriptor and per-entry persistence lifecycle.
//
// A project assumes a single logical writer. Concurrent mutation,
// including the unique-filename probe used when creating a project in a
// directory, must be serialized by the caller.
package project

import (
	"os"
	"path/filepath"
	"time"

	"github.com/slidecat/slidecat/internal/analysis"
	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/naming"
)

const (
	// DescriptorVersion is the format version written to descriptors.
	DescriptorVersion = "1.0"

	// DescriptorExt is the descriptor file extension.
	DescriptorExt = ".scproj"

	dataDirName = "data"
)

// Project tracks a collection of images under a base directory,
// together with project-level settings and the descriptor file they are
// persisted to.
type Project struct {
	baseDir string
	file    string

	name      string
	labels    []string
	maskNames bool
	entries   *EntryStore

	factory imageserver.Factory
	codec   analysis.Codec

	createdAt  int64 // Unix milliseconds
	modifiedAt int64
}

// New creates a project rooted at path. If path is a directory, it
// becomes the base directory and a fresh descriptor name is probed
// inside it; otherwise path is the descriptor file and its parent is
// the base directory. The factory is used for every image open; inject
// a test double to avoid touching real image backends.
func New(path string, factory imageserver.Factory) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	p := &Project{
		entries: NewEntryStore(),
		factory: factory,
		codec:   analysis.JSONCodec{},
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		p.baseDir = abs
		p.file = naming.UniqueFile(abs, "project", DescriptorExt)
	} else {
		p.file = abs
		p.baseDir = filepath.Dir(abs)
	}

	now := time.Now().UnixMilli()
	p.createdAt = now
	p.modifiedAt = now
	return p, nil
}

// SetStateCodec replaces the codec used for per-entry analysis state.
func (p *Project) SetStateCodec(codec analysis.Codec) {
	p.codec = codec
}

// BaseDir returns the project's base directory.
func (p *Project) BaseDir() string {
	return p.baseDir
}

// File returns the descriptor file path.
func (p *Project) File() string {
	return p.file
}

// Name returns the project name, falling back to names derived from
// the base directory when none has been set.
func (p *Project) Name() string {
	if p.name != "" {
		return p.name
	}
	if info, err := os.Stat(p.baseDir); err != nil || !info.IsDir() {
		return "(project directory missing)"
	}
	if _, err := os.Stat(p.file); err == nil {
		return filepath.Base(p.baseDir) + "/" + filepath.Base(p.file)
	}
	return filepath.Base(p.baseDir)
}

// SetName sets an explicit project name.
func (p *Project) SetName(name string) {
	p.name = name
	p.touch()
}

// Labels returns the project's classification labels in order.
func (p *Project) Labels() []string {
	labels := make([]string, len(p.labels))
	copy(labels, p.labels)
	return labels
}

// SetLabels replaces the classification labels, dropping duplicates
// while preserving first-seen order. It reports whether the stored
// labels changed.
func (p *Project) SetLabels(labels []string) bool {
	deduped := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		deduped = append(deduped, label)
	}

	if len(deduped) == len(p.labels) {
		same := true
		for i := range deduped {
			if deduped[i] != p.labels[i] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	p.labels = deduped
	p.touch()
	return true
}

// MaskNames reports whether entry names are masked.
func (p *Project) MaskNames() bool {
	return p.maskNames
}

// SetMaskNames toggles name masking. Each entry keeps the same masked
// pseudo-name across any number of toggles.
func (p *Project) SetMaskNames(mask bool) {
	p.maskNames = mask
	p.touch()
}

// Entries returns the project's entries in insertion order.
func (p *Project) Entries() []*ImageEntry {
	return p.entries.List()
}

// Entry looks up an entry by resolved path.
func (p *Project) Entry(resolvedPath string) (*ImageEntry, bool) {
	return p.entries.Get(resolvedPath)
}

// EntryByID looks up an entry by identity.
func (p *Project) EntryByID(id string) (*ImageEntry, bool) {
	return p.entries.GetByID(id)
}

// Size returns the number of entries.
func (p *Project) Size() int {
	return p.entries.Size()
}

// IsEmpty reports whether the project has no entries.
func (p *Project) IsEmpty() bool {
	return p.entries.IsEmpty()
}

// CreatedAt returns the creation timestamp in Unix milliseconds.
func (p *Project) CreatedAt() int64 {
	return p.createdAt
}

// ModifiedAt returns the last-mutation timestamp in Unix milliseconds.
// It moves on every mutating call whether or not a sync follows.
func (p *Project) ModifiedAt() int64 {
	return p.modifiedAt
}

func (p *Project) touch() {
	p.modifiedAt = time.Now().UnixMilli()
}

func (p *Project) String() string {
	return "Project: " + p.Name()
}

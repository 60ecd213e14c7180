package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/slidecat/slidecat/internal/analysis"
	"github.com/slidecat/slidecat/internal/naming"
	"github.com/slidecat/slidecat/internal/paths"
)

// dataFileName is the analysis-state file inside an entry's data
// directory. The directory name is the entry identity, never the
// display name, so renaming an entry never orphans its saved state.
const dataFileName = "data.scdata"

// ImageEntry is one image inside a project: its stored path, identity,
// editable naming and metadata, and the location of its analysis state.
type ImageEntry struct {
	project *Project

	id           string
	storedPath   string
	resolvedPath string
	name         string
	originalName string
	maskedName   string
	description  string
	metadata     map[string]string
}

// newImageEntry builds an entry for a resolved path. Identity and
// masked name are assigned here, once, and never change.
func newImageEntry(p *Project, resolvedPath, name string) *ImageEntry {
	if name == "" {
		name = paths.DisplayName(resolvedPath)
	}
	return &ImageEntry{
		project:      p,
		id:           naming.NewIdentity(),
		storedPath:   paths.ToStored(resolvedPath, p.baseDir),
		resolvedPath: resolvedPath,
		name:         name,
		originalName: name,
		maskedName:   naming.NewMaskedName(),
		metadata:     make(map[string]string),
	}
}

// ID returns the entry's identity. It is assigned once at creation.
func (e *ImageEntry) ID() string {
	return e.id
}

// StoredPath returns the path as persisted in the descriptor, with the
// project-dir token substituted when the image lives under the base
// directory.
func (e *ImageEntry) StoredPath() string {
	return e.storedPath
}

// ResolvedPath returns the entry's canonical path for the current base
// directory. It is the store's deduplication key.
func (e *ImageEntry) ResolvedPath() string {
	return e.resolvedPath
}

// Name returns the display name, or the masked pseudo-name while the
// project has name masking enabled. The masked value is stable no
// matter how often masking is toggled.
func (e *ImageEntry) Name() string {
	if e.project != nil && e.project.maskNames {
		return e.maskedName
	}
	return e.name
}

// OriginalName returns the display name captured at creation.
func (e *ImageEntry) OriginalName() string {
	return e.originalName
}

// SetName updates the display name.
func (e *ImageEntry) SetName(name string) {
	e.name = name
	e.touch()
}

// Description returns the entry's free-text description.
func (e *ImageEntry) Description() string {
	return e.description
}

// HasDescription reports whether a non-empty description is present.
func (e *ImageEntry) HasDescription() bool {
	return e.description != ""
}

// SetDescription updates the description.
func (e *ImageEntry) SetDescription(description string) {
	e.description = description
	e.touch()
}

// MetadataValue returns the value stored under key, if any.
func (e *ImageEntry) MetadataValue(key string) (string, bool) {
	value, ok := e.metadata[key]
	return value, ok
}

// SetMetadataValue stores a short key-value pair. Extended text belongs
// in the description.
func (e *ImageEntry) SetMetadataValue(key, value string) {
	e.metadata[key] = value
	e.touch()
}

// RemoveMetadataValue deletes key, idempotently.
func (e *ImageEntry) RemoveMetadataValue(key string) {
	delete(e.metadata, key)
	e.touch()
}

// ClearMetadata removes all metadata.
func (e *ImageEntry) ClearMetadata() {
	e.metadata = make(map[string]string)
	e.touch()
}

// Metadata returns a copy of the metadata map.
func (e *ImageEntry) Metadata() map[string]string {
	copied := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		copied[k] = v
	}
	return copied
}

// Summary returns a human-readable block describing the entry.
func (e *ImageEntry) Summary() string {
	var sb strings.Builder
	sb.WriteString(e.Name())
	sb.WriteString("\n\n")
	if len(e.metadata) > 0 {
		keys := make([]string, 0, len(e.metadata))
		for k := range e.metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s:\t%s\n", k, e.metadata[k])
		}
		sb.WriteString("\n")
	}
	if info, err := os.Stat(e.DataPath()); err == nil {
		fmt.Fprintf(&sb, "Data file:\t%.2f MB\n", float64(info.Size())/1024.0/1024.0)
	} else {
		sb.WriteString("No data file")
	}
	return sb.String()
}

func (e *ImageEntry) touch() {
	if e.project != nil {
		e.project.touch()
	}
}

// dataDir is derived solely from the identity.
func (e *ImageEntry) dataDir() string {
	return filepath.Join(e.project.baseDir, dataDirName, e.id)
}

// DataPath returns the location of the entry's analysis-state file.
func (e *ImageEntry) DataPath() string {
	return filepath.Join(e.dataDir(), dataFileName)
}

// HasData reports whether an analysis-state file exists for the entry.
func (e *ImageEntry) HasData() bool {
	_, err := os.Stat(e.DataPath())
	return err == nil
}

// DataReadError reports an analysis-state file that exists but could
// not be read or parsed. The file is left untouched.
type DataReadError struct {
	Path string
	Err  error
}

func (e *DataReadError) Error() string {
	return fmt.Sprintf("failed to read analysis state %q: %v", e.Path, e.Err)
}

func (e *DataReadError) Unwrap() error {
	return e.Err
}

// ReadData loads the entry's analysis state. A missing file is not an
// error: it means nothing has been saved yet, and a fresh empty state
// is returned. A file that exists but cannot be parsed surfaces a
// DataReadError and is never deleted or overwritten here.
func (e *ImageEntry) ReadData() (*analysis.State, error) {
	path := e.DataPath()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return analysis.NewState(), nil
		}
		return nil, &DataReadError{Path: path, Err: err}
	}
	defer f.Close()

	state, err := e.project.codec.Decode(f)
	if err != nil {
		return nil, &DataReadError{Path: path, Err: err}
	}
	return state, nil
}

// WriteData persists the entry's analysis state, creating the data
// directory if needed. The state is written to a temporary file and
// renamed into place so an interrupted write never destroys a prior
// valid save.
func (e *ImageEntry) WriteData(state *analysis.State) error {
	dir := e.dataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create entry data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, dataFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary data file: %w", err)
	}
	if err := e.project.codec.Encode(tmp, state); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary data file: %w", err)
	}
	// CreateTemp files are 0600; match the permissions used elsewhere.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set data file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), e.DataPath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move data file into place: %w", err)
	}
	return nil
}

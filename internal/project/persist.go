package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slidecat/slidecat/internal/analysis"
	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/naming"
	"github.com/slidecat/slidecat/internal/paths"
)

// descriptor is the on-disk shape of a project. The format is plain
// JSON so a descriptor stays human-inspectable.
type descriptor struct {
	Version    string        `json:"version"`
	Name       string        `json:"name,omitempty"`
	Labels     []string      `json:"labels,omitempty"`
	MaskNames  bool          `json:"mask_names"`
	CreatedAt  int64         `json:"created_at"`
	ModifiedAt int64         `json:"modified_at"`
	Entries    []entryRecord `json:"entries"`
}

type entryRecord struct {
	ID           string            `json:"id"`
	Path         string            `json:"path"`
	Name         string            `json:"name"`
	OriginalName string            `json:"original_name"`
	MaskedName   string            `json:"masked_name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Sync writes the full project snapshot to the descriptor file. It is
// caller-initiated only: nothing in the project saves automatically,
// and mutations after the last sync leave the descriptor stale until
// the next one. The descriptor is written to a temporary file and
// renamed into place.
func (p *Project) Sync() error {
	d := descriptor{
		Version:    DescriptorVersion,
		Name:       p.name,
		Labels:     p.labels,
		MaskNames:  p.maskNames,
		CreatedAt:  p.createdAt,
		ModifiedAt: p.modifiedAt,
		Entries:    make([]entryRecord, 0, p.entries.Size()),
	}
	for _, entry := range p.entries.List() {
		record := entryRecord{
			ID:           entry.id,
			Path:         entry.storedPath,
			Name:         entry.name,
			OriginalName: entry.originalName,
			MaskedName:   entry.maskedName,
			Description:  entry.description,
		}
		if len(entry.metadata) > 0 {
			record.Metadata = entry.Metadata()
		}
		d.Entries = append(d.Entries, record)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}

	dir := filepath.Dir(p.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(p.file)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary descriptor: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary descriptor: %w", err)
	}
	// CreateTemp files are 0600; the descriptor is meant to be readable.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set descriptor permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.file); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move descriptor into place: %w", err)
	}
	return nil
}

// SyncQuietly syncs and logs any failure instead of returning it. The
// in-memory project is unaffected by a failed save either way.
func (p *Project) SyncQuietly() {
	if err := p.Sync(); err != nil {
		slog.Error("failed to sync project", "file", p.file, "err", err)
	}
}

// Load reads a project descriptor and reconstructs the project rooted
// at the descriptor's directory. Entry identities, order, names,
// descriptions and metadata are preserved; stored paths are re-resolved
// against the descriptor's current location, so a relocated project
// folder keeps access to every entry stored under the base directory.
func Load(path string, factory imageserver.Factory) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read project descriptor: %w", err)
	}
	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse project descriptor %s: %w", abs, err)
	}

	p := &Project{
		baseDir:    filepath.Dir(abs),
		file:       abs,
		name:       d.Name,
		maskNames:  d.MaskNames,
		entries:    NewEntryStore(),
		factory:    factory,
		codec:      analysis.JSONCodec{},
		createdAt:  d.CreatedAt,
		modifiedAt: d.ModifiedAt,
	}
	p.SetLabels(d.Labels)
	p.modifiedAt = d.ModifiedAt

	for _, record := range d.Entries {
		entry := &ImageEntry{
			project:      p,
			id:           record.ID,
			storedPath:   record.Path,
			resolvedPath: paths.FromStored(record.Path, p.baseDir),
			name:         record.Name,
			originalName: record.OriginalName,
			maskedName:   record.MaskedName,
			description:  record.Description,
			metadata:     record.Metadata,
		}
		if entry.id == "" {
			entry.id = naming.NewIdentity()
		}
		if entry.maskedName == "" {
			entry.maskedName = naming.NewMaskedName()
		}
		if entry.metadata == nil {
			entry.metadata = make(map[string]string)
		}
		if !p.entries.Add(entry) {
			slog.Warn("dropping duplicate entry from descriptor", "path", record.Path, "id", record.ID)
		}
	}
	return p, nil
}

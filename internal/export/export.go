// Package export flattens a project's entry listing into Parquet or
// YAML files for downstream analysis.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/slidecat/slidecat/internal/project"
)

// EntryRow is one catalog entry flattened for export. Metadata is
// serialized as a JSON string so rows stay flat for columnar formats.
type EntryRow struct {
	ID           string `parquet:"id" yaml:"id"`
	Path         string `parquet:"path" yaml:"path"`
	Name         string `parquet:"name" yaml:"name"`
	OriginalName string `parquet:"original_name" yaml:"originalname"`
	Description  string `parquet:"description" yaml:"description,omitempty"`
	MetadataJSON string `parquet:"metadata_json" yaml:"metadatajson,omitempty"`
	HasData      bool   `parquet:"has_data" yaml:"hasdata"`
}

// Rows flattens the project's entries in listing order.
func Rows(p *project.Project) ([]EntryRow, error) {
	rows := make([]EntryRow, 0, p.Size())
	for _, entry := range p.Entries() {
		row := EntryRow{
			ID:           entry.ID(),
			Path:         entry.StoredPath(),
			Name:         entry.Name(),
			OriginalName: entry.OriginalName(),
			Description:  entry.Description(),
			HasData:      entry.HasData(),
		}
		if metadata := entry.Metadata(); len(metadata) > 0 {
			encoded, err := json.Marshal(metadata)
			if err != nil {
				return nil, fmt.Errorf("failed to encode metadata for entry %s: %w", entry.ID(), err)
			}
			row.MetadataJSON = string(encoded)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteParquet writes the entry listing to a Parquet file at path.
func WriteParquet(path string, p *project.Project) error {
	rows, err := Rows(p)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[EntryRow](f)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			writer.Close()
			f.Close()
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	return nil
}

// Summary is the YAML snapshot of a project.
type Summary struct {
	Project    string     `yaml:"project"`
	Descriptor string     `yaml:"descriptor"`
	EntryCount int        `yaml:"entrycount"`
	MaskNames  bool       `yaml:"masknames"`
	Labels     []string   `yaml:"labels,omitempty"`
	CreatedAt  string     `yaml:"createdat"`
	ModifiedAt string     `yaml:"modifiedat"`
	Entries    []EntryRow `yaml:"entries"`
}

// NewSummary builds a Summary for the project.
func NewSummary(p *project.Project) (*Summary, error) {
	rows, err := Rows(p)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Project:    p.Name(),
		Descriptor: p.File(),
		EntryCount: p.Size(),
		MaskNames:  p.MaskNames(),
		Labels:     p.Labels(),
		CreatedAt:  time.UnixMilli(p.CreatedAt()).Format(time.RFC3339),
		ModifiedAt: time.UnixMilli(p.ModifiedAt()).Format(time.RFC3339),
		Entries:    rows,
	}, nil
}

// WriteYAML writes the project summary to a YAML file at path.
func WriteYAML(path string, p *project.Project) error {
	summary, err := NewSummary(p)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

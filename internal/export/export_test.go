package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/project"
)

func testProject(t *testing.T, imageNames ...string) *project.Project {
	t.Helper()
	base := t.TempDir()
	for _, name := range imageNames {
		if err := os.WriteFile(filepath.Join(base, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	p, err := project.New(filepath.Join(base, "project"+project.DescriptorExt), imageserver.NewRegistry(imageserver.FileBuilder{}))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range imageNames {
		if _, err := p.AddImage(filepath.Join(base, name)); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestRows(t *testing.T) {
	p := testProject(t, "a.tiff", "b.tiff")
	p.Entries()[0].SetMetadataValue("stain", "H&E")

	rows, err := Rows(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "a.tiff" || rows[1].Name != "b.tiff" {
		t.Errorf("expected rows in listing order, got %q, %q", rows[0].Name, rows[1].Name)
	}
	if rows[0].MetadataJSON == "" {
		t.Error("expected metadata to be serialized")
	}
	if rows[1].MetadataJSON != "" {
		t.Error("expected no metadata for the second row")
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	p := testProject(t, "a.tiff", "b.tiff", "c.tiff")
	out := filepath.Join(t.TempDir(), "entries.parquet")

	if err := WriteParquet(out, p); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		t.Fatal(err)
	}
	reader := parquet.NewGenericReader[EntryRow](pf)
	defer reader.Close()

	rows := make([]EntryRow, 3)
	n, _ := reader.Read(rows)
	if n != 3 {
		t.Fatalf("expected 3 rows back, got %d", n)
	}
	if rows[0].Name != "a.tiff" {
		t.Errorf("expected first row a.tiff, got %q", rows[0].Name)
	}
}

func TestWriteYAML(t *testing.T) {
	p := testProject(t, "a.tiff")
	p.SetName("study-1")
	p.SetLabels([]string{"tumour"})
	out := filepath.Join(t.TempDir(), "summary.yaml")

	if err := WriteYAML(out, p); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var summary Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Project != "study-1" {
		t.Errorf("expected project study-1, got %q", summary.Project)
	}
	if summary.EntryCount != 1 || len(summary.Entries) != 1 {
		t.Errorf("expected one entry, got count=%d len=%d", summary.EntryCount, len(summary.Entries))
	}
	if len(summary.Labels) != 1 || summary.Labels[0] != "tumour" {
		t.Errorf("expected labels preserved, got %v", summary.Labels)
	}
}

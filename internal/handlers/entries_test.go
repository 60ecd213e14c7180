package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/project"
)

func testHandler(t *testing.T) (*Handler, *project.Project) {
	t.Helper()
	base := t.TempDir()
	image := filepath.Join(base, "slide.tiff")
	if err := os.WriteFile(image, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := project.New(filepath.Join(base, "project"+project.DescriptorExt), imageserver.NewRegistry(imageserver.FileBuilder{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddImage(image); err != nil {
		t.Fatal(err)
	}
	return New(p), p
}

func TestHandleEntriesList(t *testing.T) {
	h, p := testHandler(t)

	req := httptest.NewRequest("GET", "/api/entries", nil)
	rec := httptest.NewRecorder()
	h.HandleEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var views []entryView
	if err := json.NewDecoder(rec.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(views))
	}
	if views[0].ID != p.Entries()[0].ID() {
		t.Errorf("expected entry identity in view")
	}
}

func TestHandleEntryDetailNotFound(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/api/entries/no-such-id", nil)
	rec := httptest.NewRecorder()
	h.HandleEntryDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEntryDetailPut(t *testing.T) {
	h, p := testHandler(t)
	entry := p.Entries()[0]

	body := `{"name":"renamed","description":"edited","metadata":{"stain":"H&E"}}`
	req := httptest.NewRequest("PUT", "/api/entries/"+entry.ID(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleEntryDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if entry.Name() != "renamed" {
		t.Errorf("expected name updated, got %q", entry.Name())
	}
	if entry.Description() != "edited" {
		t.Errorf("expected description updated, got %q", entry.Description())
	}
	if v, _ := entry.MetadataValue("stain"); v != "H&E" {
		t.Errorf("expected metadata updated, got %q", v)
	}
	if entry.ID() == "" || entry.OriginalName() != "slide.tiff" {
		t.Error("expected identity and original name untouched by edits")
	}
}

func TestHandleEntryDetailConcurrentPuts(t *testing.T) {
	h, p := testHandler(t)
	entry := p.Entries()[0]

	// Every request mutates the same entry; the handler's lock is what
	// keeps the single-writer project safe under a concurrent server.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name":"writer-%d","metadata":{"writer":"%d"}}`, n, n)
			req := httptest.NewRequest("PUT", "/api/entries/"+entry.ID(), strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.HandleEntryDetail(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
		}(i)
	}
	wg.Wait()

	// One of the writers won; name and metadata come from the same one.
	name := entry.Name()
	if !strings.HasPrefix(name, "writer-") {
		t.Fatalf("expected a writer's name, got %q", name)
	}
	if v, _ := entry.MetadataValue("writer"); "writer-"+v != name {
		t.Errorf("expected name %q and metadata %q from the same update", name, v)
	}
}

func TestHandleEntryDetailPartialUpdate(t *testing.T) {
	h, p := testHandler(t)
	entry := p.Entries()[0]
	entry.SetDescription("keep me")

	body := `{"name":"renamed"}`
	req := httptest.NewRequest("PUT", "/api/entries/"+entry.ID(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleEntryDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if entry.Description() != "keep me" {
		t.Errorf("expected untouched description, got %q", entry.Description())
	}
}

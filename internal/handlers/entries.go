package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/slidecat/slidecat/internal/project"
)

// entryView is the JSON shape of one catalog entry.
type entryView struct {
	ID           string            `json:"id"`
	Path         string            `json:"path"`
	Name         string            `json:"name"`
	OriginalName string            `json:"original_name"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	HasData      bool              `json:"has_data"`
}

// entryUpdate carries the editable fields of an entry. Nil fields are
// left unchanged.
type entryUpdate struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Metadata    *map[string]string `json:"metadata"`
}

func viewOf(entry *project.ImageEntry) entryView {
	return entryView{
		ID:           entry.ID(),
		Path:         entry.StoredPath(),
		Name:         entry.Name(),
		OriginalName: entry.OriginalName(),
		Description:  entry.Description(),
		Metadata:     entry.Metadata(),
		HasData:      entry.HasData(),
	}
}

func (h *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.mu.RLock()
		entries := h.project.Entries()
		views := make([]entryView, 0, len(entries))
		for _, entry := range entries {
			views = append(views, viewOf(entry))
		}
		h.mu.RUnlock()
		h.writeJSON(w, views)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleEntryDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/entries/")

	switch r.Method {
	case "GET":
		h.mu.RLock()
		entry, ok := h.getEntryOrError(w, id)
		if !ok {
			h.mu.RUnlock()
			return
		}
		view := viewOf(entry)
		h.mu.RUnlock()
		h.writeJSON(w, view)
	case "PUT":
		var update entryUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		h.mu.Lock()
		entry, ok := h.getEntryOrError(w, id)
		if !ok {
			h.mu.Unlock()
			return
		}
		if update.Name != nil {
			entry.SetName(*update.Name)
		}
		if update.Description != nil {
			entry.SetDescription(*update.Description)
		}
		if update.Metadata != nil {
			entry.ClearMetadata()
			for k, v := range *update.Metadata {
				entry.SetMetadataValue(k, v)
			}
		}
		h.project.SyncQuietly()
		view := viewOf(entry)
		h.mu.Unlock()
		h.writeJSON(w, view)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

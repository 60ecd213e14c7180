package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/slidecat/slidecat/internal/project"
)

// Handler serves the local read/edit API over one open project. The
// project assumes a single logical writer, so the handler serializes
// every request behind its own lock; nothing else may mutate the
// project while the server runs.
type Handler struct {
	project *project.Project
	mu      sync.RWMutex
}

func New(p *project.Project) *Handler {
	return &Handler{project: p}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Entry helpers
func (h *Handler) getEntryOrError(w http.ResponseWriter, id string) (*project.ImageEntry, bool) {
	entry, exists := h.project.EntryByID(id)
	if !exists {
		h.writeError(w, "Entry not found", http.StatusNotFound)
		return nil, false
	}
	return entry, true
}

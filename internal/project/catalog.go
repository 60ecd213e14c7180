package project

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/paths"
)

// AddImage resolves path, opens it through the project's image factory
// and adds one entry for the image plus one per sub-image. It reports
// whether any entry was added. A path that cannot be resolved or whose
// root handle cannot be opened returns an error; sub-image failures are
// logged and skipped.
func (p *Project) AddImage(path string) (bool, error) {
	resolved, err := paths.Resolve(path)
	if err != nil {
		return false, err
	}
	server, err := p.factory.Open(resolved)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := server.Close(); err != nil {
			slog.Warn("failed to close image handle", "path", resolved, "err", err)
		}
	}()
	return p.AddImagesForServer(server, true), nil
}

// AddImages adds every path in turn, continuing past individual
// failures so one bad image never aborts the batch. It reports whether
// any entry was added.
func (p *Project) AddImages(pathList []string) bool {
	changed := false
	for _, path := range pathList {
		added, err := p.AddImage(path)
		if err != nil {
			slog.Error("failed to add image", "path", path, "err", err)
			continue
		}
		changed = changed || added
	}
	return changed
}

// AddImagesForServer adds an entry for an already-open server plus,
// when includeSubImages is true, one entry per sub-image. Expansion is
// exactly one level deep: sub-images are added with includeSubImages
// false and never recursed into. A failure opening one sub-image is
// logged and the remaining sub-images are still processed.
func (p *Project) AddImagesForServer(server imageserver.Server, includeSubImages bool) bool {
	changed := p.addEntry(server.Path(), server.DisplayName())
	if !includeSubImages {
		return changed
	}

	for _, name := range server.SubImageNames() {
		sub, err := p.factory.Open(server.SubImagePath(name))
		if err != nil {
			slog.Error("failed to add sub-image", "name", name, "parent", server.Path(), "err", err)
			continue
		}
		if p.AddImagesForServer(sub, false) {
			changed = true
		}
		if err := sub.Close(); err != nil {
			slog.Warn("failed to close sub-image handle", "name", name, "err", err)
		}
	}
	return changed
}

// addEntry creates and stores an entry for path unless one with the
// same resolved path already exists.
func (p *Project) addEntry(path, name string) bool {
	resolved, err := paths.Resolve(path)
	if err != nil {
		slog.Error("skipping entry with unresolvable path", "path", path, "err", err)
		return false
	}
	if _, exists := p.entries.Get(resolved); exists {
		return false
	}
	if !p.entries.Add(newImageEntry(p, resolved, name)) {
		return false
	}
	p.touch()
	return true
}

// RemoveImage removes the entry whose identity or path matches key.
// Removing an absent entry is a no-op, never an error.
func (p *Project) RemoveImage(key string) {
	if entry, ok := p.entries.GetByID(key); ok {
		p.entries.Remove(entry.resolvedPath)
		p.touch()
		return
	}
	for _, candidate := range p.removalCandidates(key) {
		if p.entries.Remove(candidate) {
			p.touch()
			return
		}
	}
}

// RemoveImages removes every key in turn, idempotently.
func (p *Project) RemoveImages(keys []string) {
	for _, key := range keys {
		p.RemoveImage(key)
	}
}

// removalCandidates expands key into the path forms an entry may be
// stored under: as given, token-expanded, and absolute.
func (p *Project) removalCandidates(key string) []string {
	candidates := []string{key, paths.FromStored(key, p.baseDir)}
	if abs, err := filepath.Abs(key); err == nil {
		candidates = append(candidates, abs)
	}
	if resolved, err := paths.Resolve(key); err == nil {
		candidates = append(candidates, resolved)
	}
	return candidates
}

// BuildServer opens the entry's image through the project factory. When
// the entry's metadata requests a 180-degree rotation, the handle is
// wrapped in the rotation adapter; any other or missing value yields
// the plain handle. The transform is declarative and applied only at
// open time.
func (p *Project) BuildServer(entry *ImageEntry) (imageserver.Server, error) {
	server, err := p.factory.Open(entry.resolvedPath)
	if err != nil {
		return nil, err
	}
	if value, ok := entry.MetadataValue(imageserver.MetadataKeyRotate180); ok && strings.EqualFold(value, "true") {
		return imageserver.NewRotated(server, imageserver.Rotate180), nil
	}
	return server, nil
}

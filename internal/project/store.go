package project

// EntryStore is an ordered, deduplicated mapping of resolved image path
// to entry, with a secondary index by identity. It assumes a single
// logical writer; callers serialize mutation externally.
type EntryStore struct {
	byPath map[string]*ImageEntry
	byID   map[string]*ImageEntry
	order  []string
}

// NewEntryStore returns an empty store.
func NewEntryStore() *EntryStore {
	return &EntryStore{
		byPath: make(map[string]*ImageEntry),
		byID:   make(map[string]*ImageEntry),
	}
}

// Add stores entry under its resolved path. It returns false without
// changing anything when an entry with the same resolved path is
// already present: first writer wins silently.
func (s *EntryStore) Add(entry *ImageEntry) bool {
	key := entry.resolvedPath
	if _, exists := s.byPath[key]; exists {
		return false
	}
	s.byPath[key] = entry
	s.byID[entry.id] = entry
	s.order = append(s.order, key)
	return true
}

// Get looks up an entry by its resolved path.
func (s *EntryStore) Get(resolvedPath string) (*ImageEntry, bool) {
	entry, ok := s.byPath[resolvedPath]
	return entry, ok
}

// GetByID looks up an entry by its identity.
func (s *EntryStore) GetByID(id string) (*ImageEntry, bool) {
	entry, ok := s.byID[id]
	return entry, ok
}

// Remove deletes the entry stored under resolvedPath. Removing an
// absent entry is a no-op. It reports whether an entry was removed.
func (s *EntryStore) Remove(resolvedPath string) bool {
	entry, ok := s.byPath[resolvedPath]
	if !ok {
		return false
	}
	delete(s.byPath, resolvedPath)
	delete(s.byID, entry.id)
	for i, key := range s.order {
		if key == resolvedPath {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveByID deletes the entry with the given identity, idempotently.
func (s *EntryStore) RemoveByID(id string) bool {
	entry, ok := s.byID[id]
	if !ok {
		return false
	}
	return s.Remove(entry.resolvedPath)
}

// List returns the entries in insertion order.
func (s *EntryStore) List() []*ImageEntry {
	entries := make([]*ImageEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, s.byPath[key])
	}
	return entries
}

// Size returns the number of entries.
func (s *EntryStore) Size() int {
	return len(s.byPath)
}

// IsEmpty reports whether the store has no entries.
func (s *EntryStore) IsEmpty() bool {
	return len(s.byPath) == 0
}

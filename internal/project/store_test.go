package project

import "testing"

func storeEntry(path string) *ImageEntry {
	p := &Project{entries: NewEntryStore(), baseDir: "/tmp/none"}
	return newImageEntry(p, path, "")
}

func TestEntryStoreAddIsFirstWriterWins(t *testing.T) {
	store := NewEntryStore()
	first := storeEntry("fake://proj/a")
	second := storeEntry("fake://proj/a")

	if !store.Add(first) {
		t.Fatal("expected first add to succeed")
	}
	if store.Add(second) {
		t.Fatal("expected duplicate add to be a silent no-op")
	}
	if store.Size() != 1 {
		t.Fatalf("expected size 1, got %d", store.Size())
	}
	got, ok := store.Get("fake://proj/a")
	if !ok || got != first {
		t.Error("expected the first entry to remain stored")
	}
}

func TestEntryStorePreservesInsertionOrder(t *testing.T) {
	store := NewEntryStore()
	paths := []string{"fake://proj/c", "fake://proj/a", "fake://proj/b"}
	for _, p := range paths {
		store.Add(storeEntry(p))
	}

	list := store.List()
	if len(list) != len(paths) {
		t.Fatalf("expected %d entries, got %d", len(paths), len(list))
	}
	for i, p := range paths {
		if list[i].ResolvedPath() != p {
			t.Errorf("position %d: expected %q, got %q", i, p, list[i].ResolvedPath())
		}
	}
}

func TestEntryStoreRemoveIsIdempotent(t *testing.T) {
	store := NewEntryStore()
	entry := storeEntry("fake://proj/a")
	store.Add(entry)

	if !store.Remove("fake://proj/a") {
		t.Error("expected removal of a present entry to report true")
	}
	if store.Remove("fake://proj/a") {
		t.Error("expected removing an absent entry to be a no-op")
	}
	if store.RemoveByID(entry.ID()) {
		t.Error("expected removing an absent identity to be a no-op")
	}
	if !store.IsEmpty() {
		t.Error("expected store to be empty")
	}
}

func TestEntryStoreLookupByIdentity(t *testing.T) {
	store := NewEntryStore()
	entry := storeEntry("fake://proj/a")
	store.Add(entry)

	got, ok := store.GetByID(entry.ID())
	if !ok || got != entry {
		t.Fatal("expected lookup by identity to find the entry")
	}

	if !store.RemoveByID(entry.ID()) {
		t.Error("expected removal by identity to report true")
	}
	if _, ok := store.Get("fake://proj/a"); ok {
		t.Error("expected path index to be cleared after removal by identity")
	}
}

package store

import (
	"testing"
	"time"

	"github.com/existflow/easyclip/internal/storage"
)

const legacyFolderDoc = `{
	"folder-b": [
		{"id": "shared", "type": "text", "name": "Shared", "content": "shared body", "createdAt": "2024-03-01T10:00:00Z", "isFavorite": true},
		{"id": "b-only", "type": "color", "name": "Accent", "content": "#ff8800", "createdAt": "2024-03-02T10:00:00Z"}
	],
	"folder-a": [
		{"id": "a-only", "type": "text", "name": "Alpha", "content": "alpha body", "createdAt": "2024-03-03T10:00:00Z"}
	]
}`

const legacyRecentDoc = `[
	{"id": "shared", "type": "text", "name": "Shared", "content": "shared body", "createdAt": "2024-04-01T10:00:00Z"},
	{"id": "recent-only", "type": "text", "name": "Loose", "content": "loose body", "createdAt": "2024-04-02T10:00:00Z"}
]`

func seedLegacy(t *testing.T, kv *storage.Memory, folderDoc, recentDoc string) {
	t.Helper()
	if folderDoc != "" {
		if err := kv.Set(legacyFolderKey, folderDoc); err != nil {
			t.Fatalf("seed folder doc: %v", err)
		}
	}
	if recentDoc != "" {
		if err := kv.Set(legacyRecentKey, recentDoc); err != nil {
			t.Fatalf("seed recent doc: %v", err)
		}
	}
}

func TestMigrationMergesBothLayouts(t *testing.T) {
	s, kv := newTestClips(t)
	seedLegacy(t, kv, legacyFolderDoc, legacyRecentDoc)

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 4 {
		t.Fatalf("migrated %d clips, want 4", len(clips))
	}

	byID := map[string]int{}
	for i, c := range clips {
		byID[c.ID] = i
	}

	// Folder keys are visited in sorted order, then the recent list.
	wantOrder := []string{"a-only", "shared", "b-only", "recent-only"}
	for i, id := range wantOrder {
		if clips[i].ID != id {
			t.Errorf("clips[%d] = %s, want %s", i, clips[i].ID, id)
		}
	}

	shared := clips[byID["shared"]]
	if shared.FolderID == nil || *shared.FolderID != "folder-b" {
		t.Errorf("shared clip folderId = %v, want folder-b", shared.FolderID)
	}
	if !shared.IsFavorite {
		t.Error("shared clip lost its favorite flag")
	}
	if shared.LastCopiedAt == nil {
		t.Fatal("shared clip missing copy timestamp from recent list")
	}
	wantCopied := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	if !shared.LastCopiedAt.Equal(wantCopied) {
		t.Errorf("shared clip lastCopiedAt = %v, want %v", shared.LastCopiedAt, wantCopied)
	}

	aOnly := clips[byID["a-only"]]
	if aOnly.LastCopiedAt != nil {
		t.Error("folder-sourced clip entered the recency list")
	}
	if !aOnly.UpdatedAt.Equal(aOnly.CreatedAt) {
		t.Errorf("migrated clip updatedAt = %v, want createdAt %v", aOnly.UpdatedAt, aOnly.CreatedAt)
	}

	recentOnly := clips[byID["recent-only"]]
	if recentOnly.FolderID != nil {
		t.Errorf("recent-only clip folderId = %v, want unfiled", *recentOnly.FolderID)
	}
	if recentOnly.LastCopiedAt == nil {
		t.Error("recent-only clip missing copy timestamp")
	}

	// Migration persists the primary document and leaves the legacy keys.
	if _, ok, _ := kv.Get(ClipKey); !ok {
		t.Error("migration did not persist the primary document")
	}
	if _, ok, _ := kv.Get(legacyFolderKey); !ok {
		t.Error("migration removed the legacy folder document")
	}
}

func TestMigrationIsDeterministic(t *testing.T) {
	run := func() string {
		kv := storage.NewMemory()
		s := NewClips(kv)
		s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
		seedLegacy(t, kv, legacyFolderDoc, legacyRecentDoc)
		if _, err := s.ReadAll(); err != nil {
			t.Fatalf("readAll: %v", err)
		}
		raw, ok, err := kv.Get(ClipKey)
		if err != nil || !ok {
			t.Fatalf("primary document missing after migration: ok=%v err=%v", ok, err)
		}
		return raw
	}

	first := run()
	for i := 0; i < 5; i++ {
		if got := run(); got != first {
			t.Fatalf("migration run %d produced a different document:\n%s\nwant:\n%s", i, got, first)
		}
	}
}

func TestMigrationSkipsMalformedRecords(t *testing.T) {
	s, kv := newTestClips(t)
	seedLegacy(t, kv, `{
		"folder-a": [
			{"id": "good", "type": "text", "name": "Good", "content": "fine"},
			{"id": "", "type": "text", "name": "No ID", "content": "dropped"},
			{"id": "bad-type", "type": "video", "name": "Bad", "content": "dropped"}
		]
	}`, `[
		{"id": "also-good", "type": "text", "name": "Fine", "content": "fine"},
		"not an object"
	]`)

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("migrated %d clips, want 2 (malformed records skipped)", len(clips))
	}
	if clips[0].ID != "good" || clips[1].ID != "also-good" {
		t.Errorf("migrated ids = [%s %s], want [good also-good]", clips[0].ID, clips[1].ID)
	}
}

func TestMigrationSkippedWhenPrimaryExists(t *testing.T) {
	s, kv := newTestClips(t)
	if err := kv.Set(ClipKey, `[]`); err != nil {
		t.Fatalf("seed primary: %v", err)
	}
	seedLegacy(t, kv, legacyFolderDoc, legacyRecentDoc)

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 0 {
		t.Errorf("got %d clips, want 0: legacy data must not override an existing primary document", len(clips))
	}
}

func TestMigrationWithNoLegacyData(t *testing.T) {
	s, kv := newTestClips(t)

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 0 {
		t.Errorf("got %d clips from empty storage, want 0", len(clips))
	}
	// Nothing to migrate means nothing to write.
	if _, ok, _ := kv.Get(ClipKey); ok {
		t.Error("empty read persisted a primary document")
	}
}

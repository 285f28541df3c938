package store

import (
	"testing"
	"time"

	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
)

func TestFolderCreateKeepsOrder(t *testing.T) {
	s := NewFolders(storage.NewMemory())

	names := []string{"Work", "Personal", "Snippets"}
	for _, name := range names {
		if _, err := s.Create(name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	folders, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(folders) != len(names) {
		t.Fatalf("got %d folders, want %d", len(folders), len(names))
	}
	for i, name := range names {
		if folders[i].Name != name {
			t.Errorf("folders[%d].Name = %q, want %q", i, folders[i].Name, name)
		}
		if folders[i].ID == "" {
			t.Errorf("folders[%d] has empty id", i)
		}
	}
}

func TestFolderRename(t *testing.T) {
	s := NewFolders(storage.NewMemory())
	folder, err := s.Create("Work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Rename(folder.ID, "Projects"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, ok, err := s.Find(folder.ID)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if got.Name != "Projects" {
		t.Errorf("name = %q, want Projects", got.Name)
	}

	if err := s.Rename("missing", "x"); err != ErrFolderNotFound {
		t.Errorf("rename of missing folder returned %v, want ErrFolderNotFound", err)
	}
}

func TestFolderMoveClampsIndex(t *testing.T) {
	s := NewFolders(storage.NewMemory())
	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		f, err := s.Create(name)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, f.ID)
	}

	tests := []struct {
		name  string
		id    string
		index int
		want  []string
	}{
		{"to front", ids[2], 0, []string{"c", "a", "b"}},
		{"to back", ids[2], 2, []string{"a", "b", "c"}},
		{"clamped low", ids[1], -5, []string{"b", "a", "c"}},
		{"clamped high", ids[1], 99, []string{"a", "c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset to a-b-c.
			for i, id := range ids {
				if err := s.Move(id, i); err != nil {
					t.Fatalf("reset move: %v", err)
				}
			}
			if err := s.Move(tt.id, tt.index); err != nil {
				t.Fatalf("move: %v", err)
			}
			folders, err := s.List()
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			for i, name := range tt.want {
				if folders[i].Name != name {
					t.Errorf("folders[%d] = %s, want %s", i, folders[i].Name, name)
				}
			}
		})
	}

	if err := s.Move("missing", 0); err != ErrFolderNotFound {
		t.Errorf("move of missing folder returned %v, want ErrFolderNotFound", err)
	}
}

func TestFolderDeleteLeavesClips(t *testing.T) {
	kv := storage.NewMemory()
	folders := NewFolders(kv)
	clips := NewClips(kv)
	clips.now = testClock()

	folder, err := folders.Create("Work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := clips.Upsert(textClip("c1", folder.ID, at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := folders.Delete(folder.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if list, _ := folders.List(); len(list) != 0 {
		t.Errorf("folder list has %d entries after delete, want 0", len(list))
	}
	// The clip survives with its dangling folder id.
	clip, ok, err := clips.Find("c1")
	if err != nil || !ok {
		t.Fatalf("find clip: ok=%v err=%v", ok, err)
	}
	if clip.FolderID == nil || *clip.FolderID != folder.ID {
		t.Errorf("clip folderId = %v, want dangling %s", clip.FolderID, folder.ID)
	}
}

func TestFolderMalformedDocumentReadsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Set(FolderKey, "[broken"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewFolders(kv)

	folders, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("got %d folders from malformed document, want 0", len(folders))
	}
}

func TestSettingsDefaultsAndToggle(t *testing.T) {
	kv := storage.NewMemory()
	s := NewSettings(kv)

	got, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Theme != model.ThemeDark || got.Language != model.LanguageEN {
		t.Errorf("defaults = %+v, want dark/en", got)
	}

	next, err := s.ToggleTheme()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next != model.ThemeLight {
		t.Errorf("toggle from dark = %s, want light", next)
	}
	next, err = s.ToggleTheme()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next != model.ThemeDark {
		t.Errorf("toggle from light = %s, want dark", next)
	}

	if err := s.SetLanguage(model.LanguageKO); err != nil {
		t.Fatalf("setLanguage: %v", err)
	}
	got, err = s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Theme != model.ThemeDark || got.Language != model.LanguageKO {
		t.Errorf("settings = %+v, want dark/ko", got)
	}
}

func TestSettingsBackfillsMissingFields(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Set(SettingsKey, `{"theme": "light"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewSettings(kv)

	got, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Theme != model.ThemeLight {
		t.Errorf("theme = %s, want light", got.Theme)
	}
	if got.Language != model.LanguageEN {
		t.Errorf("language = %s, want default en", got.Language)
	}
}

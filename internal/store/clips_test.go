package store

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
)

// testClock hands out strictly increasing timestamps.
func testClock() func() time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func newTestClips(t *testing.T) (*Clips, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	s := NewClips(kv)
	s.now = testClock()
	return s, kv
}

func textClip(id, folderID string, at time.Time) model.Clip {
	c := model.Clip{
		ID:        id,
		Type:      model.TypeText,
		Name:      "Text Clip",
		Content:   "content-" + id,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if folderID != "" {
		c.FolderID = &folderID
	}
	return c
}

func TestUpsertKeepsIDsUnique(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Upsert(textClip("c1", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Upsert(textClip("c2", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	replacement := textClip("c1", "", at)
	replacement.Name = "Renamed"
	if err := s.Upsert(replacement); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("got %d clips, want 2", len(clips))
	}
	seen := map[string]int{}
	for _, c := range clips {
		seen[c.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears %d times", id, n)
		}
	}
	// Replacement keeps the clip's position; new clips go to the front.
	if clips[0].ID != "c2" {
		t.Errorf("front clip = %s, want c2 (new clips prepend)", clips[0].ID)
	}
	if clips[1].Name != "Renamed" {
		t.Errorf("replaced clip name = %q, want Renamed", clips[1].Name)
	}
}

func TestRecordCopyPrunesToBound(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	total := MaxRecentClips + 10
	for i := 0; i < total; i++ {
		clip := textClip(fmt.Sprintf("c%02d", i), "", at)
		clip.LastCopiedAt = nil
		if err := s.Upsert(clip); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	for i := 0; i < total; i++ {
		if err := s.RecordCopy(fmt.Sprintf("c%02d", i)); err != nil {
			t.Fatalf("recordCopy: %v", err)
		}
		clips, err := s.ReadAll()
		if err != nil {
			t.Fatalf("readAll: %v", err)
		}
		count := 0
		for _, c := range clips {
			if c.LastCopiedAt != nil {
				count++
			}
		}
		if count > MaxRecentClips {
			t.Fatalf("after copy %d: %d clips in recency list, bound is %d", i, count, MaxRecentClips)
		}
	}

	// The survivors are exactly the most recently copied.
	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	for _, c := range clips {
		id := c.ID
		recent := c.LastCopiedAt != nil
		wantRecent := id >= fmt.Sprintf("c%02d", total-MaxRecentClips)
		if recent != wantRecent {
			t.Errorf("clip %s: in recency list = %v, want %v", id, recent, wantRecent)
		}
	}
}

func TestRecentOrderingAndTruncation(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Upsert(textClip(id, "", at)); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	// Copy out of insertion order.
	for _, id := range []string{"b", "a", "c"} {
		if err := s.RecordCopy(id); err != nil {
			t.Fatalf("recordCopy: %v", err)
		}
	}

	recent, err := s.Recent()
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	wantOrder := []string{"c", "a", "b"}
	if len(recent) != len(wantOrder) {
		t.Fatalf("got %d recent clips, want %d", len(recent), len(wantOrder))
	}
	for i, id := range wantOrder {
		if recent[i].ID != id {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, id)
		}
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].LastCopiedAt.After(*recent[i-1].LastCopiedAt) {
			t.Errorf("recent not descending at index %d", i)
		}
	}
	for _, c := range recent {
		if c.LastCopiedAt == nil {
			t.Errorf("recent includes clip %s with no copy timestamp", c.ID)
		}
	}
}

func TestClearFolderScopeIsolation(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []model.Clip{
		textClip("a1", "folder-a", at),
		textClip("a2", "folder-a", at),
		textClip("b1", "folder-b", at),
		textClip("u1", "", at),
	} {
		if err := s.Upsert(c); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	if err := s.ClearFolder("folder-a"); err != nil {
		t.Fatalf("clearFolder: %v", err)
	}

	if got, _ := s.ByFolder("folder-a"); len(got) != 0 {
		t.Errorf("folder-a has %d clips after clear, want 0", len(got))
	}
	if got, _ := s.ByFolder("folder-b"); len(got) != 1 {
		t.Errorf("folder-b has %d clips, want 1", len(got))
	}
	if got, _ := s.ByFolder(""); len(got) != 1 {
		t.Errorf("unfiled has %d clips, want 1", len(got))
	}
}

func TestClearRecentKeepsClips(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b"} {
		if err := s.Upsert(textClip(id, "", at)); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if err := s.RecordCopy(id); err != nil {
			t.Fatalf("recordCopy: %v", err)
		}
	}

	if err := s.ClearRecent(); err != nil {
		t.Fatalf("clearRecent: %v", err)
	}

	recent, err := s.Recent()
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("recency list has %d entries after clear, want 0", len(recent))
	}
	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 2 {
		t.Errorf("collection has %d clips after clearRecent, want 2", len(clips))
	}
}

func TestUpdateMissingIDIsNoop(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	name := "ghost"
	if err := s.Update("missing", ClipPatch{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	clips, _ := s.ReadAll()
	if len(clips) != 1 || clips[0].ID != "a" || clips[0].Name != "Text Clip" {
		t.Errorf("collection changed by update of missing id: %+v", clips)
	}
}

func TestMalformedDocumentReadsEmpty(t *testing.T) {
	s, kv := newTestClips(t)
	if err := kv.Set(ClipKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 0 {
		t.Errorf("got %d clips from malformed document, want 0", len(clips))
	}
}

func TestWriteFailureIsRecoverable(t *testing.T) {
	s, kv := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	kv.FailWrites = true
	if err := s.Upsert(textClip("b", "", at)); err == nil {
		t.Fatal("upsert with failing storage returned nil error")
	}

	kv.FailWrites = false
	clips, err := s.ReadAll()
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(clips) != 1 || clips[0].ID != "a" {
		t.Errorf("failed write mutated state: %+v", clips)
	}
	// The operation can simply be retried.
	if err := s.Upsert(textClip("b", "", at)); err != nil {
		t.Fatalf("retry upsert: %v", err)
	}
	if clips, _ := s.ReadAll(); len(clips) != 2 {
		t.Errorf("retry did not persist, got %d clips", len(clips))
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if calls != 1 {
		t.Fatalf("got %d notifications after one mutation, want 1", calls)
	}

	// External signals share the same channel.
	s.Broadcast()
	if calls != 2 {
		t.Fatalf("got %d notifications after broadcast, want 2", calls)
	}

	unsubscribe()
	if err := s.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d notifications after unsubscribe, want 2", calls)
	}
}

type fakeCopier struct {
	fail  bool
	wrote []string
}

func (f *fakeCopier) Write(c model.Clip) error {
	if f.fail {
		return fmt.Errorf("clipboard unavailable")
	}
	f.wrote = append(f.wrote, c.Content)
	return nil
}

func TestCopyRecordsEvenWhenClipboardFails(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cp := &fakeCopier{fail: true}
	clipped, err := s.Copy("a", cp)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if clipped {
		t.Error("clipped = true with failing clipboard")
	}

	recent, _ := s.Recent()
	if len(recent) != 1 || recent[0].ID != "a" {
		t.Errorf("copy not recorded despite clipboard failure: %+v", recent)
	}
}

func TestCopyReportsClipboardSuccess(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cp := &fakeCopier{}
	clipped, err := s.Copy("a", cp)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if !clipped {
		t.Error("clipped = false with working clipboard")
	}
	if len(cp.wrote) != 1 || cp.wrote[0] != "content-a" {
		t.Errorf("clipboard received %v", cp.wrote)
	}

	if _, err := s.Copy("missing", cp); err != ErrNotFound {
		t.Errorf("copy of missing id returned %v, want ErrNotFound", err)
	}
}

func TestEndToEndLifecycle(t *testing.T) {
	s, _ := newTestClips(t)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	clip := textClip("c1", "f1", at)
	clip.Content = "hello"
	if err := s.Upsert(clip); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	inFolder, err := s.ByFolder("f1")
	if err != nil {
		t.Fatalf("byFolder: %v", err)
	}
	if len(inFolder) != 1 || inFolder[0].ID != "c1" {
		t.Fatalf("byFolder(f1) = %+v, want [c1]", inFolder)
	}

	if err := s.RecordCopy("c1"); err != nil {
		t.Fatalf("recordCopy: %v", err)
	}
	recent, _ := s.Recent()
	if len(recent) != 1 || recent[0].ID != "c1" || recent[0].LastCopiedAt == nil {
		t.Fatalf("recent = %+v, want [c1] with copy timestamp", recent)
	}

	fav := true
	now := time.Now()
	if err := s.Update("c1", ClipPatch{IsFavorite: &fav, UpdatedAt: &now}); err != nil {
		t.Fatalf("update: %v", err)
	}
	favorites, _ := s.Favorites()
	if len(favorites) != 1 || favorites[0].ID != "c1" {
		t.Fatalf("favorites = %+v, want [c1]", favorites)
	}

	if err := s.Remove("c1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, _ := s.ByFolder("f1"); len(got) != 0 {
		t.Errorf("byFolder after remove = %+v, want []", got)
	}
	if got, _ := s.Favorites(); len(got) != 0 {
		t.Errorf("favorites after remove = %+v, want []", got)
	}
	if got, _ := s.Recent(); len(got) != 0 {
		t.Errorf("recent after remove = %+v, want []", got)
	}
}

func TestPersistedTimestampsAreISO8601(t *testing.T) {
	s, kv := newTestClips(t)
	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := s.Upsert(textClip("a", "", at)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	raw, ok, err := kv.Get(ClipKey)
	if err != nil || !ok {
		t.Fatalf("get document: ok=%v err=%v", ok, err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	created, _ := decoded[0]["createdAt"].(string)
	if _, err := time.Parse(time.RFC3339, created); err != nil {
		t.Errorf("createdAt %q is not RFC 3339: %v", created, err)
	}
	if _, present := decoded[0]["lastCopiedAt"]; !present {
		t.Error("lastCopiedAt field missing from persisted record")
	}
	if decoded[0]["lastCopiedAt"] != nil {
		t.Errorf("lastCopiedAt = %v, want JSON null", decoded[0]["lastCopiedAt"])
	}
}

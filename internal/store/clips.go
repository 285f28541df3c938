// Package store implements the clip, folder, and settings stores: the single
// writers for their storage keys. Every mutation runs a full
// read-modify-prune-write cycle under the store lock and broadcasts a change
// notification once the new document is persisted.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/existflow/easyclip/internal/copier"
	"github.com/existflow/easyclip/internal/logger"
	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
)

// Storage keys. The primary and legacy keys are carried over from the
// original desktop app so existing data migrates.
const (
	ClipKey     = "easy-clip-clips"
	FolderKey   = "easy-clip-folders"
	SettingsKey = "easy-clip-settings"

	legacyFolderKey = "easy-clip-folder-clips"
	legacyRecentKey = "easy-clip-recent-clips"
)

// MaxRecentClips caps how many clips may carry a copy timestamp at once.
const MaxRecentClips = 50

// ErrNotFound is returned when an operation targets a clip id that does not
// exist in the collection.
var ErrNotFound = errors.New("store: clip not found")

// Clips is the single source of truth for the clip collection. All access to
// the clip document must go through it so the pruning and notification
// invariants hold.
type Clips struct {
	notifier

	kv  storage.KV
	mu  sync.Mutex
	now func() time.Time
}

// NewClips creates a clip store over the given document store.
func NewClips(kv storage.KV) *Clips {
	return &Clips{kv: kv, now: time.Now}
}

// ClipPatch is a partial update applied by Update. Nil fields are left
// untouched. Callers set UpdatedAt when the change is a user-visible edit.
type ClipPatch struct {
	Name         *string
	Content      *string
	IsFavorite   *bool
	LastCopiedAt *time.Time
	UpdatedAt    *time.Time
}

// ReadAll returns every clip in storage order. Absent, empty, or malformed
// data reads as an empty collection. The first read that finds no primary
// document triggers the one-time legacy migration.
func (s *Clips) ReadAll() ([]model.Clip, error) {
	s.mu.Lock()
	clips, migrated, err := s.readLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if migrated {
		s.Broadcast()
	}
	return clips, nil
}

// ByFolder returns the clips filed under folderID, in storage order. An empty
// folderID selects unfiled clips.
func (s *Clips) ByFolder(folderID string) ([]model.Clip, error) {
	clips, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	out := []model.Clip{}
	for _, c := range clips {
		if c.InFolder(folderID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Favorites returns every favorited clip across all folders.
func (s *Clips) Favorites() ([]model.Clip, error) {
	clips, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	out := []model.Clip{}
	for _, c := range clips {
		if c.IsFavorite {
			out = append(out, c)
		}
	}
	return out, nil
}

// Recent returns the clips with a copy timestamp, most recently copied first,
// truncated to MaxRecentClips. Same-instant copies keep their storage order.
func (s *Clips) Recent() ([]model.Clip, error) {
	clips, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	recent := []model.Clip{}
	for _, c := range clips {
		if c.LastCopiedAt != nil {
			recent = append(recent, c)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastCopiedAt.After(*recent[j].LastCopiedAt)
	})
	if len(recent) > MaxRecentClips {
		recent = recent[:MaxRecentClips]
	}
	return recent, nil
}

// Find returns the clip with the given id.
func (s *Clips) Find(id string) (model.Clip, bool, error) {
	clips, err := s.ReadAll()
	if err != nil {
		return model.Clip{}, false, err
	}
	for _, c := range clips {
		if c.ID == id {
			return c, true, nil
		}
	}
	return model.Clip{}, false, nil
}

// Upsert replaces the clip with the same id, or prepends the clip to the
// front of the collection when the id is new.
func (s *Clips) Upsert(clip model.Clip) error {
	return s.mutate(func(clips []model.Clip) []model.Clip {
		for i, c := range clips {
			if c.ID == clip.ID {
				clips[i] = clip
				return clips
			}
		}
		return append([]model.Clip{clip}, clips...)
	})
}

// Update merges the patch into the clip with the given id. Missing ids are a
// no-op (the collection is still rewritten and a change broadcast, matching
// the write-through behavior of every other mutation).
func (s *Clips) Update(id string, patch ClipPatch) error {
	return s.mutate(func(clips []model.Clip) []model.Clip {
		for i := range clips {
			if clips[i].ID != id {
				continue
			}
			if patch.Name != nil {
				clips[i].Name = *patch.Name
			}
			if patch.Content != nil {
				clips[i].Content = *patch.Content
			}
			if patch.IsFavorite != nil {
				clips[i].IsFavorite = *patch.IsFavorite
			}
			if patch.LastCopiedAt != nil {
				t := *patch.LastCopiedAt
				clips[i].LastCopiedAt = &t
			}
			if patch.UpdatedAt != nil {
				clips[i].UpdatedAt = *patch.UpdatedAt
			}
			break
		}
		return clips
	})
}

// Remove deletes the clip with the given id. Missing ids are a no-op.
func (s *Clips) Remove(id string) error {
	return s.mutate(func(clips []model.Clip) []model.Clip {
		out := clips[:0]
		for _, c := range clips {
			if c.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
}

// ClearFolder deletes every clip filed under folderID. Clips in other folders
// and unfiled clips are untouched.
func (s *Clips) ClearFolder(folderID string) error {
	return s.mutate(func(clips []model.Clip) []model.Clip {
		out := clips[:0]
		for _, c := range clips {
			if !c.InFolder(folderID) {
				out = append(out, c)
			}
		}
		return out
	})
}

// ClearRecent clears the copy timestamp on every clip, emptying the recency
// list without deleting anything.
func (s *Clips) ClearRecent() error {
	return s.mutate(func(clips []model.Clip) []model.Clip {
		for i := range clips {
			clips[i].LastCopiedAt = nil
		}
		return clips
	})
}

// RecordCopy marks the clip as just copied, stamping both the copy timestamp
// and the update timestamp.
func (s *Clips) RecordCopy(id string) error {
	now := s.now()
	return s.Update(id, ClipPatch{LastCopiedAt: &now, UpdatedAt: &now})
}

// Copy writes the clip's content to the system clipboard and records the
// copy. The copy is recorded even when the clipboard write fails; clipped
// reports whether the clipboard write itself succeeded, err whether the
// record persisted. Returns ErrNotFound when the id is unknown.
func (s *Clips) Copy(id string, cp copier.Copier) (clipped bool, err error) {
	clip, ok, err := s.Find(id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotFound
	}

	if werr := cp.Write(clip); werr != nil {
		logger.Warn("Clipboard write failed", logger.F("clip", id), logger.F("error", werr))
	} else {
		clipped = true
	}

	return clipped, s.RecordCopy(id)
}

// Raw returns the persisted clip document as stored, or the empty string when
// no document exists. Snapshot caches key on this value.
func (s *Clips) Raw() (string, error) {
	raw, _, err := s.kv.Get(ClipKey)
	return raw, err
}

// mutate runs one read-modify-prune-write cycle and broadcasts on success.
func (s *Clips) mutate(fn func([]model.Clip) []model.Clip) error {
	s.mu.Lock()
	// The mutation's own broadcast covers any migration write, so the
	// migrated flag is irrelevant here.
	clips, _, err := s.readLocked()
	if err == nil {
		err = s.writeLocked(fn(clips))
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Broadcast()
	return nil
}

// readLocked loads the collection, running the legacy migration when the
// primary document is missing. migrated reports whether a migration write
// happened, so callers can broadcast after releasing the lock.
func (s *Clips) readLocked() (clips []model.Clip, migrated bool, err error) {
	raw, ok, err := s.kv.Get(ClipKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read clips: %w", err)
	}
	if ok && raw != "" {
		return parseClips(raw), false, nil
	}

	merged, skipped := s.migrateLegacy()
	if skipped > 0 {
		logger.Warn("Skipped malformed legacy clip records", logger.F("count", skipped))
	}
	if len(merged) == 0 {
		return []model.Clip{}, false, nil
	}

	if err := s.writeLocked(merged); err != nil {
		return nil, false, fmt.Errorf("failed to persist migrated clips: %w", err)
	}
	logger.Info("Migrated legacy clip data", logger.F("clips", len(merged)))
	return merged, true, nil
}

// writeLocked prunes the recency set and persists the collection.
func (s *Clips) writeLocked(clips []model.Clip) error {
	pruned := pruneRecent(clips)
	data, err := json.Marshal(pruned)
	if err != nil {
		return fmt.Errorf("failed to encode clips: %w", err)
	}
	if err := s.kv.Set(ClipKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist clips: %w", err)
	}
	return nil
}

// pruneRecent enforces the recency bound: at most MaxRecentClips clips keep a
// copy timestamp, and the survivors are the most recently copied. Runs on
// every write so the bound self-heals after bulk operations.
func pruneRecent(clips []model.Clip) []model.Clip {
	recent := []model.Clip{}
	for _, c := range clips {
		if c.LastCopiedAt != nil {
			recent = append(recent, c)
		}
	}
	if len(recent) <= MaxRecentClips {
		return clips
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastCopiedAt.After(*recent[j].LastCopiedAt)
	})
	allowed := make(map[string]struct{}, MaxRecentClips)
	for _, c := range recent[:MaxRecentClips] {
		allowed[c.ID] = struct{}{}
	}

	for i := range clips {
		if clips[i].LastCopiedAt == nil {
			continue
		}
		if _, ok := allowed[clips[i].ID]; !ok {
			clips[i].LastCopiedAt = nil
		}
	}
	return clips
}

// parseClips decodes the primary document. Malformed data reads as an empty
// collection rather than an error.
func parseClips(raw string) []model.Clip {
	var clips []model.Clip
	if err := json.Unmarshal([]byte(raw), &clips); err != nil {
		logger.Warn("Malformed clip document, treating as empty", logger.F("error", err))
		return []model.Clip{}
	}
	if clips == nil {
		return []model.Clip{}
	}
	return clips
}

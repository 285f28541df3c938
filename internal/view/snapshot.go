// Package view provides the snapshot adapter that lets each UI surface
// observe a store without re-deriving its projection on every refresh. A
// snapshot recomputes only when the raw persisted document or the scope
// changes; otherwise it hands back the previous result unchanged, so callers
// may skip re-rendering on simple equality.
package view

import (
	"sync"

	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/store"
)

// Snapshot caches one derived view of a store. The cache key is the pair
// (raw persisted document, scope): a byte-identical document with an
// unchanged scope returns the cached slice itself; a scope change alone
// forces a recompute even when the document did not move.
//
// The returned slice is shared between calls and must not be mutated.
type Snapshot[T any] struct {
	raw       func() (string, error)
	query     func(scope string) ([]T, error)
	subscribe func(func()) func()

	mu        sync.Mutex
	cached    []T
	lastRaw   string
	lastScope string
	primed    bool
}

// New builds a snapshot from a raw-document accessor, a scoped query, and the
// store's subscribe hook.
func New[T any](
	raw func() (string, error),
	query func(scope string) ([]T, error),
	subscribe func(func()) func(),
) *Snapshot[T] {
	return &Snapshot[T]{raw: raw, query: query, subscribe: subscribe}
}

// Get returns the view for the given scope, recomputing only when the
// underlying document or the scope changed since the last call.
func (s *Snapshot[T]) Get(scope string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.raw()
	if err != nil {
		return nil, err
	}
	if s.primed && raw == s.lastRaw && scope == s.lastScope {
		return s.cached, nil
	}

	result, err := s.query(scope)
	if err != nil {
		return nil, err
	}
	// The query may have written (first-read migration); key the cache on
	// the document it actually derived from.
	if after, rerr := s.raw(); rerr == nil {
		raw = after
	}

	s.cached = result
	s.lastRaw = raw
	s.lastScope = scope
	s.primed = true
	return result, nil
}

// Subscribe relays the store's change notification. The returned function
// releases the registration; after it returns the callback is never invoked
// again.
func (s *Snapshot[T]) Subscribe(onChange func()) (unsubscribe func()) {
	return s.subscribe(onChange)
}

// FolderClips observes one folder's clips; the scope is the folder id.
func FolderClips(clips *store.Clips) *Snapshot[model.Clip] {
	return New(clips.Raw, clips.ByFolder, clips.Subscribe)
}

// Favorites observes the favorites list; the scope is ignored.
func Favorites(clips *store.Clips) *Snapshot[model.Clip] {
	return New(clips.Raw, func(string) ([]model.Clip, error) {
		return clips.Favorites()
	}, clips.Subscribe)
}

// Recent observes the recency list; the scope is ignored.
func Recent(clips *store.Clips) *Snapshot[model.Clip] {
	return New(clips.Raw, func(string) ([]model.Clip, error) {
		return clips.Recent()
	}, clips.Subscribe)
}

// Folders observes the sidebar folder list; the scope is ignored.
func Folders(folders *store.Folders) *Snapshot[model.Folder] {
	return New(folders.Raw, func(string) ([]model.Folder, error) {
		return folders.List()
	}, folders.Subscribe)
}

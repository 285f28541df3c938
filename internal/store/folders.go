package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/easyclip/internal/logger"
	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
)

// ErrFolderNotFound is returned when an operation targets a folder id that
// does not exist.
var ErrFolderNotFound = errors.New("store: folder not found")

// Folders owns the folder list. Array order is display order.
//
// Deleting a folder does not touch its clips; they keep their dangling
// folderId and simply stop showing up in folder views. Readers everywhere
// tolerate such orphans.
type Folders struct {
	notifier

	kv storage.KV
	mu sync.Mutex
}

// NewFolders creates a folder store over the given document store.
func NewFolders(kv storage.KV) *Folders {
	return &Folders{kv: kv}
}

// List returns every folder in display order. Absent or malformed data reads
// as an empty list.
func (s *Folders) List() ([]model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Find returns the folder with the given id.
func (s *Folders) Find(id string) (model.Folder, bool, error) {
	folders, err := s.List()
	if err != nil {
		return model.Folder{}, false, err
	}
	for _, f := range folders {
		if f.ID == id {
			return f, true, nil
		}
	}
	return model.Folder{}, false, nil
}

// Create appends a new folder to the end of the list.
func (s *Folders) Create(name string) (model.Folder, error) {
	folder := model.NewFolder(name)
	err := s.mutate(func(folders []model.Folder) ([]model.Folder, error) {
		return append(folders, folder), nil
	})
	return folder, err
}

// Rename changes the folder's display name.
func (s *Folders) Rename(id, name string) error {
	return s.mutate(func(folders []model.Folder) ([]model.Folder, error) {
		for i := range folders {
			if folders[i].ID == id {
				folders[i].Name = name
				return folders, nil
			}
		}
		return nil, ErrFolderNotFound
	})
}

// Move reorders the folder to the given index, clamped to the list bounds.
func (s *Folders) Move(id string, index int) error {
	return s.mutate(func(folders []model.Folder) ([]model.Folder, error) {
		from := -1
		for i := range folders {
			if folders[i].ID == id {
				from = i
				break
			}
		}
		if from < 0 {
			return nil, ErrFolderNotFound
		}
		if index < 0 {
			index = 0
		}
		if index > len(folders)-1 {
			index = len(folders) - 1
		}

		folder := folders[from]
		folders = append(folders[:from], folders[from+1:]...)
		folders = append(folders[:index], append([]model.Folder{folder}, folders[index:]...)...)
		return folders, nil
	})
}

// Delete removes the folder. Its clips are left in place with their dangling
// folderId.
func (s *Folders) Delete(id string) error {
	return s.mutate(func(folders []model.Folder) ([]model.Folder, error) {
		out := folders[:0]
		for _, f := range folders {
			if f.ID != id {
				out = append(out, f)
			}
		}
		return out, nil
	})
}

// Raw returns the persisted folder document as stored, or the empty string
// when no document exists.
func (s *Folders) Raw() (string, error) {
	raw, _, err := s.kv.Get(FolderKey)
	return raw, err
}

func (s *Folders) mutate(fn func([]model.Folder) ([]model.Folder, error)) error {
	s.mu.Lock()
	folders, err := s.readLocked()
	if err == nil {
		folders, err = fn(folders)
	}
	if err == nil {
		err = s.writeLocked(folders)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Broadcast()
	return nil
}

func (s *Folders) readLocked() ([]model.Folder, error) {
	raw, ok, err := s.kv.Get(FolderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	if !ok || raw == "" {
		return []model.Folder{}, nil
	}
	var folders []model.Folder
	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		logger.Warn("Malformed folder document, treating as empty", logger.F("error", err))
		return []model.Folder{}, nil
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return folders, nil
}

func (s *Folders) writeLocked(folders []model.Folder) error {
	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("failed to encode folders: %w", err)
	}
	if err := s.kv.Set(FolderKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist folders: %w", err)
	}
	return nil
}

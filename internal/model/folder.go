package model

import "github.com/google/uuid"

// Folder is a user-defined named grouping that clips can optionally belong
// to. The persisted array order is the display order.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewFolder creates a folder with a fresh id.
func NewFolder(name string) Folder {
	return Folder{
		ID:   uuid.New().String(),
		Name: name,
	}
}

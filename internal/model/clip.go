package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ClipType identifies how a clip's content is interpreted and rendered.
// It is fixed at creation and never reinterpreted.
type ClipType string

const (
	TypeText  ClipType = "text"
	TypeColor ClipType = "color"
	TypeImage ClipType = "image"
)

// Valid reports whether t is one of the known clip types.
func (t ClipType) Valid() bool {
	switch t {
	case TypeText, TypeColor, TypeImage:
		return true
	}
	return false
}

// colorPattern matches #RGB and #RRGGBB hex color strings.
var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsColorContent reports whether content looks like a hex color value.
// Text captured in this shape becomes a color clip instead of a text clip.
func IsColorContent(content string) bool {
	return colorPattern.MatchString(content)
}

// Clip represents a single captured snippet of text, color, or image content.
// FolderID is nil for unfiled clips. LastCopiedAt is nil when the clip is not
// in the recency list; the store caps how many clips may carry a non-nil
// value at once.
type Clip struct {
	ID           string     `json:"id"`
	FolderID     *string    `json:"folderId"`
	Type         ClipType   `json:"type"`
	Name         string     `json:"name"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastCopiedAt *time.Time `json:"lastCopiedAt"`
	IsFavorite   bool       `json:"isFavorite"`
}

// InFolder reports whether the clip belongs to the given folder id.
// An empty folderID matches unfiled clips.
func (c *Clip) InFolder(folderID string) bool {
	if c.FolderID == nil {
		return folderID == ""
	}
	return *c.FolderID == folderID
}

// NewTextClip creates a text or color clip from captured content. Content
// matching a hex color pattern is captured as a color clip, mirroring the
// paste heuristic of the desktop app. folderID may be empty for unfiled.
func NewTextClip(folderID, content string) Clip {
	typ := TypeText
	name := "Text Clip"
	if IsColorContent(content) {
		typ = TypeColor
		name = "Color Clip"
	}
	return newClip(folderID, typ, name, content)
}

// NewImageClip creates an image clip whose content is a data URL.
func NewImageClip(folderID, dataURL string) Clip {
	return newClip(folderID, TypeImage, "Image Clip", dataURL)
}

func newClip(folderID string, typ ClipType, name, content string) Clip {
	now := time.Now()
	c := Clip{
		ID:           uuid.New().String(),
		Type:         typ,
		Name:         name,
		Content:      content,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastCopiedAt: &now,
	}
	if folderID != "" {
		c.FolderID = &folderID
	}
	return c
}

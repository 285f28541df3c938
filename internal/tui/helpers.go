package tui

import (
	"strings"
	"time"

	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/store"
)

var nowFunc = time.Now

// truncate shortens a string to n runes of output with ellipsis
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// containsFold reports whether s contains substr, case-insensitively
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// clipLabel picks the display text for a clip: image clips show their name,
// everything else shows content.
func clipLabel(c model.Clip) string {
	if c.Type == model.TypeImage {
		return c.Name
	}
	return strings.ReplaceAll(c.Content, "\n", " ")
}

// clipPatch builds a favorite-toggle patch stamped as a user edit.
func clipPatch(favorite bool, now time.Time) store.ClipPatch {
	return store.ClipPatch{IsFavorite: &favorite, UpdatedAt: &now}
}

// namePatch builds a rename patch stamped as a user edit.
func namePatch(name string, now time.Time) store.ClipPatch {
	return store.ClipPatch{Name: &name, UpdatedAt: &now}
}

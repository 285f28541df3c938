// Package copier writes clip content to the system clipboard. It sits behind
// an interface so "copy recorded" and "clipboard write succeeded" stay
// independently observable: the store records a copy whether or not the
// system write went through.
package copier

import (
	"github.com/atotto/clipboard"

	"github.com/existflow/easyclip/internal/model"
)

// Copier writes a clip's content to a clipboard.
type Copier interface {
	Write(clip model.Clip) error
}

// System writes through the OS clipboard. Image clips are written as their
// data URL string; pasting targets that understand data URLs reconstruct the
// image from it.
type System struct{}

var _ Copier = System{}

// Write places the clip's content on the system clipboard.
func (System) Write(clip model.Clip) error {
	return clipboard.WriteAll(clip.Content)
}

// ReadText returns the current text content of the system clipboard. Used by
// capture commands.
func ReadText() (string, error) {
	return clipboard.ReadAll()
}

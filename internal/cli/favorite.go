package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/easyclip/internal/store"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite [clip-id]",
	Aliases: []string{"fav"},
	Short:   "Toggle a clip's favorite mark",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavorite,
}

func runFavorite(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	clip, err := findClip(app.Clips, args[0])
	if err != nil {
		return err
	}

	next := !clip.IsFavorite
	now := time.Now()
	if err := app.Clips.Update(clip.ID, store.ClipPatch{
		IsFavorite: &next,
		UpdatedAt:  &now,
	}); err != nil {
		return fmt.Errorf("failed to update clip: %w", err)
	}

	if next {
		fmt.Printf("★ Favorited: %q\n", preview(contentOrName(clip)))
	} else {
		fmt.Printf("☆ Unfavorited: %q\n", preview(contentOrName(clip)))
	}
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/easyclip/internal/store"
)

var renameCmd = &cobra.Command{
	Use:   "rename [clip-id] [name]",
	Short: "Rename a clip",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	clip, err := findClip(app.Clips, args[0])
	if err != nil {
		return err
	}

	name := args[1]
	now := time.Now()
	if err := app.Clips.Update(clip.ID, store.ClipPatch{
		Name:      &name,
		UpdatedAt: &now,
	}); err != nil {
		return fmt.Errorf("failed to rename clip: %w", err)
	}

	fmt.Printf("✓ Renamed %s: %q → %q\n", shortID(clip.ID), clip.Name, name)
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/easyclip/internal/copier"
)

var copyCmd = &cobra.Command{
	Use:   "copy [clip-id]",
	Short: "Copy a clip to the system clipboard",
	Long: `Copy a clip's content to the system clipboard and record it in the
recency list. The copy is recorded even if the system clipboard is
unavailable.

Examples:
  easyclip copy 3f2a
  easyclip copy 3f2a91c0-...-d41d`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	clip, err := findClip(app.Clips, args[0])
	if err != nil {
		return err
	}

	clipped, err := app.Clips.Copy(clip.ID, copier.System{})
	if err != nil {
		return fmt.Errorf("failed to record copy: %w", err)
	}

	if clipped {
		fmt.Printf("✓ Copied %s: %q\n", shortID(clip.ID), preview(contentOrName(clip)))
	} else {
		fmt.Printf("○ Recorded %s, but the system clipboard was unavailable\n", shortID(clip.ID))
	}
	return nil
}

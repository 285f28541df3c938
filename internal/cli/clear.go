package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear clips by scope",
	Long: `Clear all clips in a folder, or empty the recency list.

Clearing a folder deletes its clips. Clearing the recency list only removes
clips from the Recent view; the clips themselves are kept.

Examples:
  easyclip clear --folder work
  easyclip clear --recent --force`,
	RunE: runClear,
}

var (
	clearFolder string
	clearRecent bool
	clearForce  bool
)

func init() {
	clearCmd.Flags().StringVarP(&clearFolder, "folder", "F", "", "Delete all clips in this folder")
	clearCmd.Flags().BoolVarP(&clearRecent, "recent", "r", false, "Empty the recency list (keeps the clips)")
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	if clearFolder == "" && !clearRecent {
		return fmt.Errorf("nothing to clear; pass --folder or --recent")
	}

	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	if !clearForce {
		fmt.Printf("Are you sure you want to clear? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if clearFolder != "" {
		folder, err := resolveFolder(app.Folders, clearFolder)
		if err != nil {
			return err
		}
		if err := app.Clips.ClearFolder(folder.ID); err != nil {
			return fmt.Errorf("failed to clear folder: %w", err)
		}
		fmt.Printf("🧹 Cleared all clips in [%s]\n", folder.Name)
	}

	if clearRecent {
		if err := app.Clips.ClearRecent(); err != nil {
			return fmt.Errorf("failed to clear recency list: %w", err)
		}
		fmt.Println("🧹 Recency list emptied.")
	}

	return nil
}

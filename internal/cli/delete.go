package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [clip-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a clip",
	Long: `Delete a clip by its ID or a unique ID prefix.

Examples:
  easyclip delete 3f2a
  easyclip rm 3f2a --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	clip, err := findClip(app.Clips, args[0])
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete && !deleteForce {
		fmt.Printf("Delete clip %q? (y/N): ", preview(contentOrName(clip)))
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.Clips.Remove(clip.ID); err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}

	fmt.Printf("🗑  Deleted: %q\n", preview(contentOrName(clip)))
	return nil
}

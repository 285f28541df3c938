package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
	Long:  `Create, list, rename, reorder, and delete folders for organizing clips.`,
}

var folderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderAdd,
}

var folderListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List folders in display order",
	RunE:    runFolderList,
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename [folder] [name]",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runFolderRename,
}

var folderMoveCmd = &cobra.Command{
	Use:   "move [folder] [position]",
	Short: "Move a folder to a new position (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE:  runFolderMove,
}

var folderDeleteCmd = &cobra.Command{
	Use:     "delete [folder]",
	Aliases: []string{"rm"},
	Short:   "Delete a folder (its clips are kept, unfiled from view)",
	Args:    cobra.ExactArgs(1),
	RunE:    runFolderDelete,
}

func init() {
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderMoveCmd)
	folderCmd.AddCommand(folderDeleteCmd)
}

func runFolderAdd(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folder, err := app.Folders.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	fmt.Printf("✓ Created folder: %s (id: %s)\n", folder.Name, shortID(folder.ID))
	return nil
}

func runFolderList(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folders, err := app.Folders.List()
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	if len(folders) == 0 {
		fmt.Println("No folders found. Create one with: easyclip folder add \"Name\"")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-20s  %s\n", "#", "ID", "Name", "Clips")
	fmt.Println(strings.Repeat("─", 50))

	for i, f := range folders {
		clips, _ := app.Clips.ByFolder(f.ID)
		fmt.Printf("  %-4d  %-10s  %-20s  %d\n", i+1, shortID(f.ID), f.Name, len(clips))
	}
	fmt.Println()

	return nil
}

func runFolderRename(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folder, err := resolveFolder(app.Folders, args[0])
	if err != nil {
		return err
	}

	if err := app.Folders.Rename(folder.ID, args[1]); err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}

	fmt.Printf("✓ Renamed folder: %q → %q\n", folder.Name, args[1])
	return nil
}

func runFolderMove(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folder, err := resolveFolder(app.Folders, args[0])
	if err != nil {
		return err
	}

	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("position must be a number: %s", args[1])
	}

	if err := app.Folders.Move(folder.ID, position-1); err != nil {
		return fmt.Errorf("failed to move folder: %w", err)
	}

	fmt.Printf("✓ Moved folder %q to position %d\n", folder.Name, position)
	return nil
}

func runFolderDelete(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folder, err := resolveFolder(app.Folders, args[0])
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete {
		fmt.Printf("Delete folder %q? Its clips are kept but leave folder views. (y/N): ", folder.Name)
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.Folders.Delete(folder.ID); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	fmt.Printf("🗑  Deleted folder: %s\n", folder.Name)
	return nil
}

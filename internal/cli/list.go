package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/easyclip/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clips",
	Long: `List clips, filtered by folder, favorites, or recency.

Examples:
  easyclip list
  easyclip list --folder work
  easyclip list --favorites
  easyclip list --recent`,
	RunE: runList,
}

var (
	listFolder    string
	listFavorites bool
	listRecent    bool
	listUnfiled   bool
)

func init() {
	listCmd.Flags().StringVarP(&listFolder, "folder", "F", "", "Show clips in one folder")
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "Show favorite clips")
	listCmd.Flags().BoolVarP(&listRecent, "recent", "r", false, "Show recently copied clips")
	listCmd.Flags().BoolVarP(&listUnfiled, "unfiled", "u", false, "Show unfiled clips")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	switch {
	case listFavorites:
		clips, err := app.Clips.Favorites()
		if err != nil {
			return fmt.Errorf("failed to list favorites: %w", err)
		}
		printClips("★ Favorites", clips)
		return nil

	case listRecent:
		clips, err := app.Clips.Recent()
		if err != nil {
			return fmt.Errorf("failed to list recent clips: %w", err)
		}
		printClips("⏱ Recent", clips)
		return nil

	case listUnfiled:
		clips, err := app.Clips.ByFolder("")
		if err != nil {
			return fmt.Errorf("failed to list unfiled clips: %w", err)
		}
		printClips("Unfiled", clips)
		return nil

	case listFolder != "":
		folder, err := resolveFolder(app.Folders, listFolder)
		if err != nil {
			return err
		}
		clips, err := app.Clips.ByFolder(folder.ID)
		if err != nil {
			return fmt.Errorf("failed to list clips: %w", err)
		}
		printClips("📁 "+folder.Name, clips)
		return nil
	}

	return printAllByFolder(app)
}

func printAllByFolder(app *App) error {
	clips, err := app.Clips.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to list clips: %w", err)
	}
	if len(clips) == 0 {
		fmt.Println("No clips found. Capture one with: easyclip add \"content\"")
		return nil
	}

	folders, err := app.Folders.List()
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}
	names := make(map[string]string, len(folders))
	for _, f := range folders {
		names[f.ID] = f.Name
	}

	grouped := map[string][]model.Clip{}
	for _, c := range clips {
		key := ""
		if c.FolderID != nil {
			key = *c.FolderID
		}
		grouped[key] = append(grouped[key], c)
	}

	if unfiled := grouped[""]; len(unfiled) > 0 {
		printClips("Unfiled", unfiled)
	}
	for _, f := range folders {
		if group := grouped[f.ID]; len(group) > 0 {
			printClips("📁 "+f.Name, group)
		}
	}
	// Orphans: clips whose folder was deleted still exist and still list.
	for key, group := range grouped {
		if key == "" {
			continue
		}
		if _, ok := names[key]; !ok {
			printClips("📁 (deleted folder "+shortID(key)+")", group)
		}
	}
	return nil
}

func printClips(heading string, clips []model.Clip) {
	fmt.Printf("\n%s (%d)\n", heading, len(clips))
	fmt.Println(strings.Repeat("─", 68))
	if len(clips) == 0 {
		fmt.Println("  (empty)")
		fmt.Println()
		return
	}
	for _, c := range clips {
		printClip(c)
	}
	fmt.Println()
}

func printClip(c model.Clip) {
	marker := " "
	if c.IsFavorite {
		marker = "★"
	}

	copied := ""
	if c.LastCopiedAt != nil {
		copied = c.LastCopiedAt.Format("Jan 2 15:04")
	}

	fmt.Printf("  %s %-8s  %-5s  %-34s  %-12s  %s\n",
		marker, shortID(c.ID), c.Type, preview(contentOrName(c)), copied, c.CreatedAt.Format(time.DateOnly))
}

// contentOrName shows image clips by name (their content is a data URL blob).
func contentOrName(c model.Clip) string {
	if c.Type == model.TypeImage {
		return c.Name
	}
	return c.Content
}

package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/easyclip/internal/copier"
	"github.com/existflow/easyclip/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Capture a new clip",
	Long: `Capture a clip into a folder (or unfiled). Content that looks like a hex
color (#RGB or #RRGGBB) is captured as a color clip.

Examples:
  easyclip add "meeting notes link"
  easyclip add "#1e293b" -F work
  echo "piped text" | easyclip add
  easyclip add --from-clipboard
  easyclip add --image ./screenshot.png -n "Login screen"`,
	RunE: runAdd,
}

var (
	addFolder        string
	addName          string
	addFromClipboard bool
	addImage         string
)

func init() {
	addCmd.Flags().StringVarP(&addFolder, "folder", "F", "", "Folder to file the clip under")
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Display name for the clip")
	addCmd.Flags().BoolVar(&addFromClipboard, "from-clipboard", false, "Capture the current system clipboard")
	addCmd.Flags().StringVar(&addImage, "image", "", "Capture an image file as a data URL clip")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openStores()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer app.Close()

	folderID := ""
	if addFolder != "" {
		folder, err := resolveFolder(app.Folders, addFolder)
		if err != nil {
			return err
		}
		folderID = folder.ID
	}

	var clip model.Clip
	switch {
	case addImage != "":
		dataURL, err := imageDataURL(addImage)
		if err != nil {
			return err
		}
		clip = model.NewImageClip(folderID, dataURL)
	default:
		content, err := captureText(args)
		if err != nil {
			return err
		}
		clip = model.NewTextClip(folderID, content)
	}

	if addName != "" {
		clip.Name = addName
	}

	if err := app.Clips.Upsert(clip); err != nil {
		return fmt.Errorf("failed to save clip: %w", err)
	}

	scope := "unfiled"
	if addFolder != "" {
		scope = addFolder
	}
	fmt.Printf("✓ Captured %s clip %s in [%s]: %q\n", clip.Type, shortID(clip.ID), scope, preview(clip.Content))
	return nil
}

// captureText picks the content source: arguments, the system clipboard, or
// piped stdin, in that order of explicitness.
func captureText(args []string) (string, error) {
	if len(args) > 0 {
		content := strings.TrimSpace(strings.Join(args, " "))
		if content == "" {
			return "", fmt.Errorf("content is empty")
		}
		return content, nil
	}

	if addFromClipboard {
		content, err := copier.ReadText()
		if err != nil {
			return "", fmt.Errorf("failed to read system clipboard: %w", err)
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return "", fmt.Errorf("system clipboard is empty")
		}
		return content, nil
	}

	// No argument: accept piped stdin, but not an interactive terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no content given; pass an argument, pipe stdin, or use --from-clipboard")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("stdin is empty")
	}
	return content, nil
}

// imageDataURL reads an image file and encodes it the way the desktop app
// stored pasted images: a base64 data URL.
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// preview truncates clip content for terminal output.
func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) > 40 {
		return content[:37] + "..."
	}
	return content
}

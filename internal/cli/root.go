package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/easyclip/internal/config"
	"github.com/existflow/easyclip/internal/logger"
	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
	"github.com/existflow/easyclip/internal/store"
	"github.com/existflow/easyclip/internal/tui"
)

var (
	cfg *config.Config

	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "easyclip",
	Short: "EasyClip - Clipboard history manager",
	Long: `EasyClip keeps a local history of copied snippets (text, colors, images),
organized into folders with favorites and a bounded recency list.

Run 'easyclip' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Flag overrides stick for future runs
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("EasyClip started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openStores()
		if err != nil {
			logger.Error("Failed to open storage", logger.F("error", err))
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() {
			_ = app.Close()
			logger.Info("Storage closed")
		}()

		logger.Info("Launching TUI")
		m := tui.NewModel(app.Clips, app.Folders, app.Settings)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("EasyClip exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(folderCmd)
}

// App bundles the stores every command works against.
type App struct {
	KV       storage.KV
	Clips    *store.Clips
	Folders  *store.Folders
	Settings *store.Settings
}

// Close closes the underlying document store.
func (a *App) Close() error {
	return a.KV.Close()
}

// openStores opens the document store from config (or the default path) and
// wires the three stores over it.
func openStores() (*App, error) {
	path := ""
	if cfg != nil {
		path = cfg.DatabasePath
	}
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	kv, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	return &App{
		KV:       kv,
		Clips:    store.NewClips(kv),
		Folders:  store.NewFolders(kv),
		Settings: store.NewSettings(kv),
	}, nil
}

// findClip resolves a clip by full id or unique id prefix.
func findClip(clips *store.Clips, id string) (model.Clip, error) {
	all, err := clips.ReadAll()
	if err != nil {
		return model.Clip{}, fmt.Errorf("failed to read clips: %w", err)
	}

	var matches []model.Clip
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
		if strings.HasPrefix(c.ID, id) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return model.Clip{}, fmt.Errorf("clip not found: %s", id)
	case 1:
		return matches[0], nil
	default:
		return model.Clip{}, fmt.Errorf("ambiguous clip id %q matches %d clips", id, len(matches))
	}
}

// resolveFolder resolves a folder by id, id prefix, or exact name.
func resolveFolder(folders *store.Folders, ref string) (model.Folder, error) {
	all, err := folders.List()
	if err != nil {
		return model.Folder{}, fmt.Errorf("failed to read folders: %w", err)
	}

	var matches []model.Folder
	for _, f := range all {
		if f.ID == ref || f.Name == ref {
			return f, nil
		}
		if strings.HasPrefix(f.ID, ref) {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return model.Folder{}, fmt.Errorf("folder not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Folder{}, fmt.Errorf("ambiguous folder %q matches %d folders", ref, len(matches))
	}
}

// shortID trims a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

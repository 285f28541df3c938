package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/easyclip/internal/logger"
	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/store"
	"github.com/existflow/easyclip/internal/view"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneClipList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddFolder
	ModeRenameClip
	ModeRenameFolder
	ModeFilter
	ModeConfirmClear
	ModeHelp
)

// The sidebar lists three fixed scopes ahead of the user's folders.
const (
	scopeFavorites = 0
	scopeRecent    = 1
	scopeUnfiled   = 2
	scopeFolders   = 3 // first folder entry
)

// Model is the main TUI model
type Model struct {
	clips    *store.Clips
	folders  *store.Folders
	settings *store.Settings

	// Snapshots back every pane so an unchanged store re-renders from
	// cache instead of re-deriving the projection.
	folderClips *view.Snapshot[model.Clip]
	favorites   *view.Snapshot[model.Clip]
	recent      *view.Snapshot[model.Clip]
	folderList  *view.Snapshot[model.Folder]

	// Loaded state
	folderItems []model.Folder
	items       []model.Clip

	// Store change notifications funneled into the event loop
	refreshChan chan struct{}
	unsubscribe []func()

	theme  styles
	dark   bool
	width  int
	height int

	pane        Pane
	mode        Mode
	scopeCursor int
	clipCursor  int

	input      textinput.Model
	filterText string

	message string
}

// NewModel creates a new TUI model
func NewModel(clips *store.Clips, folders *store.Folders, settings *store.Settings) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Folder name..."
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		clips:       clips,
		folders:     folders,
		settings:    settings,
		folderClips: view.FolderClips(clips),
		favorites:   view.Favorites(clips),
		recent:      view.Recent(clips),
		folderList:  view.Folders(folders),
		refreshChan: make(chan struct{}, 1), // Buffered to avoid blocking
		pane:        PaneSidebar,
		mode:        ModeNormal,
		input:       ti,
	}

	// Any store change, from any scope, pings the refresh channel; the
	// event loop re-derives whatever view is showing.
	notify := func() {
		select {
		case m.refreshChan <- struct{}{}:
		default:
		}
	}
	m.unsubscribe = []func(){
		clips.Subscribe(notify),
		folders.Subscribe(notify),
		settings.Subscribe(notify),
	}

	prefs, err := settings.Get()
	if err != nil {
		logger.Warn("Failed to load settings", logger.F("error", err))
		prefs = model.DefaultSettings()
	}
	m.dark = prefs.Theme == model.ThemeDark
	m.theme = newStyles(m.dark)

	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("folders", len(m.folderItems)),
		logger.F("clips", len(m.items)))
	return m
}

// loadData re-derives the sidebar and the active clip view through the
// snapshot adapters.
func (m *Model) loadData() {
	folders, err := m.folderList.Get("")
	if err != nil {
		logger.Error("Failed to load folders", logger.F("error", err))
		folders = nil
	}
	m.folderItems = folders

	if m.scopeCursor >= scopeFolders+len(m.folderItems) {
		m.scopeCursor = 0
	}

	var clips []model.Clip
	switch {
	case m.scopeCursor == scopeFavorites:
		clips, err = m.favorites.Get("")
	case m.scopeCursor == scopeRecent:
		clips, err = m.recent.Get("")
	case m.scopeCursor == scopeUnfiled:
		clips, err = m.folderClips.Get("")
	default:
		clips, err = m.folderClips.Get(m.currentFolder().ID)
	}
	if err != nil {
		logger.Error("Failed to load clips", logger.F("error", err))
		clips = nil
	}

	m.items = m.applyFilter(clips)
	if m.clipCursor >= len(m.items) {
		m.clipCursor = 0
	}
}

// applyFilter narrows the clip list to entries whose name or content contains
// the filter text.
func (m *Model) applyFilter(clips []model.Clip) []model.Clip {
	if m.filterText == "" {
		return clips
	}
	filtered := make([]model.Clip, 0, len(clips))
	for _, c := range clips {
		if containsFold(c.Name, m.filterText) || containsFold(c.Content, m.filterText) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// currentFolder returns the folder selected in the sidebar, or nil when a
// fixed scope is selected.
func (m *Model) currentFolder() *model.Folder {
	idx := m.scopeCursor - scopeFolders
	if idx >= 0 && idx < len(m.folderItems) {
		return &m.folderItems[idx]
	}
	return nil
}

// currentClip returns the clip under the cursor.
func (m *Model) currentClip() *model.Clip {
	if m.clipCursor < len(m.items) {
		return &m.items[m.clipCursor]
	}
	return nil
}

// scopeFolderID returns the folder id clips captured in the current scope
// should be filed under. Fixed scopes capture unfiled.
func (m *Model) scopeFolderID() string {
	if f := m.currentFolder(); f != nil {
		return f.ID
	}
	return ""
}

// teardown releases the store subscriptions.
func (m *Model) teardown() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

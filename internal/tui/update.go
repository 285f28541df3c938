package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/easyclip/internal/copier"
	"github.com/existflow/easyclip/internal/model"
)

// refreshMsg is sent when a store broadcast arrives
type refreshMsg struct{}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.waitForRefresh()
}

// waitForRefresh listens for store change notifications
func (m Model) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		<-m.refreshChan
		return refreshMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.loadData()
		return m, m.waitForRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddFolder, ModeRenameClip, ModeRenameFolder:
			return m.updateInput(msg)
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeConfirmClear:
			return m.updateConfirmClear(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneClipList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneClipList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case msg.String() == "G":
		m.handleGoBottom()

	case msg.String() == "K":
		m.handleMoveFolder(-1)

	case msg.String() == "J":
		m.handleMoveFolder(1)

	case key.Matches(msg, keys.Enter):
		m.handleCopy()

	case key.Matches(msg, keys.Capture):
		m.handleCapture()

	case key.Matches(msg, keys.Favorite):
		m.handleToggleFavorite()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Rename):
		return m.startRename()

	case key.Matches(msg, keys.NewFolder):
		return m.startAddFolder()

	case key.Matches(msg, keys.Clear):
		return m.startClear()

	case key.Matches(msg, keys.Theme):
		m.handleToggleTheme()

	case key.Matches(msg, keys.Filter):
		return m.startFilter()

	case key.Matches(msg, keys.Escape):
		if m.filterText != "" {
			m.filterText = ""
			m.loadData()
			m.message = "Filter cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.scopeCursor > 0 {
			m.scopeCursor--
			m.clipCursor = 0
			m.loadData()
		}
	} else {
		if m.clipCursor > 0 {
			m.clipCursor--
		}
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.scopeCursor < scopeFolders+len(m.folderItems)-1 {
			m.scopeCursor++
			m.clipCursor = 0
			m.loadData()
		}
	} else {
		if m.clipCursor < len(m.items)-1 {
			m.clipCursor++
		}
	}
}

func (m *Model) handleGoBottom() {
	if m.pane == PaneSidebar {
		m.scopeCursor = scopeFolders + len(m.folderItems) - 1
		m.clipCursor = 0
		m.loadData()
	} else {
		m.clipCursor = len(m.items) - 1
	}
}

// handleMoveFolder reorders the selected folder up or down the sidebar.
func (m *Model) handleMoveFolder(delta int) {
	folder := m.currentFolder()
	if m.pane != PaneSidebar || folder == nil {
		return
	}
	idx := m.scopeCursor - scopeFolders + delta
	if idx < 0 || idx >= len(m.folderItems) {
		return
	}
	if err := m.folders.Move(folder.ID, idx); err != nil {
		m.message = fmt.Sprintf("Move failed: %v", err)
		return
	}
	m.scopeCursor = scopeFolders + idx
	m.loadData()
}

// handleCopy copies the selected clip to the system clipboard and records it.
// The recency entry is recorded even when the system clipboard write fails.
func (m *Model) handleCopy() {
	clip := m.currentClip()
	if m.pane != PaneClipList || clip == nil {
		return
	}
	clipped, err := m.clips.Copy(clip.ID, copier.System{})
	if err != nil {
		m.message = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.loadData()
	if clipped {
		m.message = fmt.Sprintf("Copied: %s", truncate(clipLabel(*clip), 40))
	} else {
		m.message = "Recorded, but system clipboard unavailable"
	}
}

// handleCapture captures the current system clipboard into the active scope.
func (m *Model) handleCapture() {
	content, err := copier.ReadText()
	if err != nil {
		m.message = fmt.Sprintf("Clipboard read failed: %v", err)
		return
	}
	content = strings.TrimSpace(content)
	if content == "" {
		m.message = "System clipboard is empty"
		return
	}
	clip := model.NewTextClip(m.scopeFolderID(), content)
	if err := m.clips.Upsert(clip); err != nil {
		m.message = fmt.Sprintf("Capture failed: %v", err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Captured %s clip: %s", clip.Type, truncate(content, 40))
}

func (m *Model) handleToggleFavorite() {
	clip := m.currentClip()
	if m.pane != PaneClipList || clip == nil {
		return
	}
	next := !clip.IsFavorite
	now := nowFunc()
	if err := m.clips.Update(clip.ID, clipPatch(next, now)); err != nil {
		m.message = fmt.Sprintf("Update failed: %v", err)
		return
	}
	m.loadData()
	if next {
		m.message = "Favorited"
	} else {
		m.message = "Unfavorited"
	}
}

func (m *Model) handleDelete() {
	if m.pane == PaneClipList {
		clip := m.currentClip()
		if clip == nil {
			return
		}
		if err := m.clips.Remove(clip.ID); err != nil {
			m.message = fmt.Sprintf("Delete failed: %v", err)
			return
		}
		m.loadData()
		if m.clipCursor >= len(m.items) && m.clipCursor > 0 {
			m.clipCursor--
		}
		m.message = "Clip deleted"
		return
	}

	// Sidebar: delete the selected folder. Its clips are kept, orphaned
	// from folder views.
	folder := m.currentFolder()
	if folder == nil {
		return
	}
	if err := m.folders.Delete(folder.ID); err != nil {
		m.message = fmt.Sprintf("Delete failed: %v", err)
		return
	}
	if m.scopeCursor > 0 {
		m.scopeCursor--
	}
	m.loadData()
	m.message = fmt.Sprintf("Folder deleted: %s (clips kept)", folder.Name)
}

func (m *Model) handleToggleTheme() {
	theme, err := m.settings.ToggleTheme()
	if err != nil {
		m.message = fmt.Sprintf("Theme change failed: %v", err)
		return
	}
	m.dark = theme == model.ThemeDark
	m.theme = newStyles(m.dark)
	m.message = "Theme: " + theme
}

func (m Model) startAddFolder() (tea.Model, tea.Cmd) {
	m.mode = ModeAddFolder
	m.input.SetValue("")
	m.input.Placeholder = "Folder name..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startRename() (tea.Model, tea.Cmd) {
	if m.pane == PaneClipList {
		clip := m.currentClip()
		if clip == nil {
			return m, nil
		}
		m.mode = ModeRenameClip
		m.input.SetValue(clip.Name)
		m.input.Placeholder = "Clip name..."
		m.input.Focus()
		m.input.CursorEnd()
		return m, textinput.Blink
	}

	folder := m.currentFolder()
	if folder == nil {
		return m, nil
	}
	m.mode = ModeRenameFolder
	m.input.SetValue(folder.Name)
	m.input.Placeholder = "Folder name..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

// startClear arms the confirm prompt for the scopes that support clearing:
// the recency list and folders.
func (m Model) startClear() (tea.Model, tea.Cmd) {
	if m.scopeCursor == scopeRecent || m.currentFolder() != nil || m.scopeCursor == scopeUnfiled {
		m.mode = ModeConfirmClear
	}
	return m, nil
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		var err error
		switch {
		case m.scopeCursor == scopeRecent:
			err = m.clips.ClearRecent()
			m.message = "Recency list emptied"
		case m.scopeCursor == scopeUnfiled:
			err = m.clips.ClearFolder("")
			m.message = "Unfiled clips deleted"
		default:
			folder := m.currentFolder()
			if folder != nil {
				err = m.clips.ClearFolder(folder.ID)
				m.message = fmt.Sprintf("Cleared folder: %s", folder.Name)
			}
		}
		if err != nil {
			m.message = fmt.Sprintf("Clear failed: %v", err)
		}
		m.loadData()
		m.mode = ModeNormal
		return m, nil
	default:
		m.mode = ModeNormal
		return m, nil
	}
}

func (m Model) startFilter() (tea.Model, tea.Cmd) {
	m.mode = ModeFilter
	m.input.SetValue(m.filterText)
	m.input.Placeholder = "/"
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		switch m.mode {
		case ModeAddFolder:
			if _, err := m.folders.Create(value); err != nil {
				m.message = fmt.Sprintf("Error creating folder: %v", err)
			} else {
				m.message = fmt.Sprintf("Created folder: %s", value)
			}

		case ModeRenameClip:
			if clip := m.currentClip(); clip != nil {
				now := nowFunc()
				if err := m.clips.Update(clip.ID, namePatch(value, now)); err != nil {
					m.message = fmt.Sprintf("Error renaming clip: %v", err)
				} else {
					m.message = fmt.Sprintf("Renamed: %s", value)
				}
			}

		case ModeRenameFolder:
			if folder := m.currentFolder(); folder != nil {
				if err := m.folders.Rename(folder.ID, value); err != nil {
					m.message = fmt.Sprintf("Error renaming folder: %v", err)
				} else {
					m.message = fmt.Sprintf("Renamed folder: %s", value)
				}
			}
		}

		m.loadData()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.filterText = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filterText = m.input.Value()
	m.loadData()
	return m, cmd
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/existflow/easyclip/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	clipList := m.renderClipList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, clipList)

	switch m.mode {
	case ModeAddFolder, ModeRenameClip, ModeRenameFolder:
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeConfirmClear:
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmClear(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 24
	var s string

	s += m.theme.Header.Render("EasyClip") + "\n"
	s += m.theme.Divider.Render("───────────────────") + "\n\n"

	fixed := []string{"★ Favorites", "⏱ Recent", "· Unfiled"}
	for i, label := range fixed {
		s += m.renderScopeLine(i, label) + "\n"
	}

	s += "\n" + m.theme.Help.Render("Folders") + "\n"
	if len(m.folderItems) == 0 {
		s += m.theme.Help.Render("  (none, press n)") + "\n"
	}
	for i, f := range m.folderItems {
		s += m.renderScopeLine(scopeFolders+i, "📁 "+truncate(f.Name, 14)) + "\n"
	}

	s += "\n" + m.theme.Divider.Render("───────────────────") + "\n"
	s += m.theme.Help.Render("n new folder")

	return m.theme.Sidebar.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

func (m Model) renderScopeLine(index int, label string) string {
	cursor := "  "
	style := m.theme.ScopeItem
	if index == m.scopeCursor {
		cursor = "❯ "
		if m.pane == PaneSidebar {
			style = m.theme.ScopeSelected
		}
	}
	return style.Render(cursor + label)
}

func (m Model) renderClipList() string {
	width := m.width - 26
	var s string

	header := m.scopeTitle()
	if m.filterText != "" {
		header += fmt.Sprintf("  /%s", m.filterText)
	}
	s += m.theme.Header.Render(header) + "\n"
	s += m.theme.Divider.Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	if len(m.items) == 0 {
		s += m.theme.Help.Render("  No clips here. Press 'a' to capture the clipboard.")
	}

	for i, c := range m.items {
		cursor := "  "
		style := m.theme.ClipItem
		if i == m.clipCursor && m.pane == PaneClipList {
			cursor = "❯ "
			style = m.theme.ClipSelected
		}

		marker := " "
		if c.IsFavorite {
			marker = m.theme.FavoriteMark.Render("★")
		}

		badge := m.renderTypeBadge(c)
		label := truncate(clipLabel(c), max(width-24, 8))

		copied := ""
		if c.LastCopiedAt != nil {
			copied = m.theme.Help.Render(c.LastCopiedAt.Format("Jan 2 15:04"))
		}

		line := style.Render(fmt.Sprintf("%s%s %-*s", cursor, marker, max(width-24, 8), label))
		s += line + " " + badge + " " + copied + "\n"
	}

	return m.theme.ClipList.Width(width).Height(m.height - 2).Render(s)
}

// renderTypeBadge renders a type tag; color clips get a swatch in their own
// color.
func (m Model) renderTypeBadge(c model.Clip) string {
	switch c.Type {
	case model.TypeColor:
		if col, err := colorful.Hex(c.Content); err == nil {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(col.Hex())).Render("  ")
			return swatch + m.theme.TypeBadge.Render(" "+c.Content)
		}
		return m.theme.TypeBadge.Render("color")
	case model.TypeImage:
		return m.theme.TypeBadge.Render("image")
	default:
		return m.theme.TypeBadge.Render("text ")
	}
}

func (m Model) scopeTitle() string {
	switch {
	case m.scopeCursor == scopeFavorites:
		return fmt.Sprintf("★ Favorites (%d)", len(m.items))
	case m.scopeCursor == scopeRecent:
		return fmt.Sprintf("⏱ Recent (%d)", len(m.items))
	case m.scopeCursor == scopeUnfiled:
		return fmt.Sprintf("Unfiled (%d)", len(m.items))
	default:
		if f := m.currentFolder(); f != nil {
			return fmt.Sprintf("📁 %s (%d)", f.Name, len(m.items))
		}
		return "Clips"
	}
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeFilter {
		count := fmt.Sprintf(" [%d]", len(m.items))
		return m.theme.StatusBar.Width(m.width).Render("/" + m.input.View() + count)
	}

	help := "enter:copy  a:capture  f:fav  r:rename  x:del  n:folder  /:filter  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return m.theme.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "New Folder"
	switch m.mode {
	case ModeRenameClip:
		title = "Rename Clip"
	case ModeRenameFolder:
		title = "Rename Folder"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += m.theme.Help.Render("Enter:save  Esc:cancel")

	return m.theme.Modal.Render(content)
}

func (m Model) renderConfirmClear() string {
	target := "this scope"
	switch {
	case m.scopeCursor == scopeRecent:
		target = "the recency list (clips are kept)"
	case m.scopeCursor == scopeUnfiled:
		target = "all unfiled clips"
	default:
		if f := m.currentFolder(); f != nil {
			target = fmt.Sprintf("all clips in %q", f.Name)
		}
	}

	content := lipgloss.NewStyle().Bold(true).Render("Clear "+target+"?") + "\n\n"
	content += m.theme.Help.Render("y:confirm  any other key:cancel")
	return m.theme.Modal.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ────╮
│                           │
│  Navigation               │
│  ──────────               │
│  j/↓     Move down        │
│  k/↑     Move up          │
│  h/l     Switch pane      │
│  Tab     Switch pane      │
│  G       Go to bottom     │
│                           │
│  Clips                    │
│  ─────                    │
│  enter/y Copy clip        │
│  a/p     Capture clipboard│
│  f       Toggle favorite  │
│  r       Rename           │
│  x/d     Delete           │
│  C       Clear scope      │
│                           │
│  Folders                  │
│  ───────                  │
│  n       New folder       │
│  J/K     Reorder folder   │
│                           │
│  Other                    │
│  ─────                    │
│  t       Toggle theme     │
│  /       Filter           │
│  ?       Toggle help      │
│  q       Quit             │
│                           │
╰───────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}

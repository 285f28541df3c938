package tui

import "github.com/charmbracelet/lipgloss"

// styles holds the themed style set. Both palettes mirror the desktop app's
// light/dark themes.
type styles struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color
	Favorite  lipgloss.Color

	Header        lipgloss.Style
	Sidebar       lipgloss.Style
	ClipList      lipgloss.Style
	ScopeItem     lipgloss.Style
	ScopeSelected lipgloss.Style
	ClipItem      lipgloss.Style
	ClipSelected  lipgloss.Style
	FavoriteMark  lipgloss.Style
	TypeBadge     lipgloss.Style
	StatusBar     lipgloss.Style
	Modal         lipgloss.Style
	Help          lipgloss.Style
	Divider       lipgloss.Style
}

func newStyles(dark bool) styles {
	s := styles{
		Primary:   lipgloss.Color("#64748B"),
		Text:      lipgloss.Color("#1E293B"),
		TextMuted: lipgloss.Color("#64748B"),
		Surface:   lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#CBD5E1"),
		Favorite:  lipgloss.Color("#F59E0B"),
	}
	if dark {
		s.Primary = lipgloss.Color("#94A3B8")
		s.Text = lipgloss.Color("#F1F5F9")
		s.TextMuted = lipgloss.Color("#888888")
		s.Surface = lipgloss.Color("#16213E")
		s.Border = lipgloss.Color("#333333")
	}

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.Primary).
		Padding(0, 1)

	s.Sidebar = lipgloss.NewStyle().
		Width(24).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(s.Border).
		Padding(1, 1)

	s.ClipList = lipgloss.NewStyle().
		Padding(1, 2)

	s.ScopeItem = lipgloss.NewStyle().
		Padding(0, 1)

	s.ScopeSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(s.Surface).
		Bold(true)

	s.ClipItem = lipgloss.NewStyle().
		Padding(0, 1)

	s.ClipSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(s.Surface).
		Bold(true)

	s.FavoriteMark = lipgloss.NewStyle().
		Foreground(s.Favorite).
		Bold(true)

	s.TypeBadge = lipgloss.NewStyle().
		Foreground(s.TextMuted)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(s.TextMuted).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(s.Border)

	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Primary).
		Padding(1, 2)

	s.Help = lipgloss.NewStyle().
		Foreground(s.TextMuted)

	s.Divider = lipgloss.NewStyle().
		Foreground(s.Border)

	return s
}

package reader

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/docreader/internal/kvstore"
)

// Palette is the colour set of one theme.
type Palette struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Code   lipgloss.Color
	Mark   lipgloss.Color
	Fading lipgloss.Color
	Border lipgloss.Color
}

var (
	lightPalette = Palette{
		Accent: lipgloss.Color("#228be6"),
		Text:   lipgloss.Color("#212529"),
		Muted:  lipgloss.Color("#868e96"),
		Code:   lipgloss.Color("#495057"),
		Mark:   lipgloss.Color("#ffe066"),
		Fading: lipgloss.Color("#fff3bf"),
		Border: lipgloss.Color("#dee2e6"),
	}
	darkPalette = Palette{
		Accent: lipgloss.Color("#7aa2f7"),
		Text:   lipgloss.Color("#c0caf5"),
		Muted:  lipgloss.Color("#565f89"),
		Code:   lipgloss.Color("#a9b1d6"),
		Mark:   lipgloss.Color("#8c6d1f"),
		Fading: lipgloss.Color("#3b3420"),
		Border: lipgloss.Color("#292e42"),
	}
)

// Styles are the lipgloss styles the reader renders with.
type Styles struct {
	Heading  lipgloss.Style
	Code     lipgloss.Style
	Link     lipgloss.Style
	Mark     lipgloss.Style
	Fading   lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Modal    lipgloss.Style
}

// NewStyles returns the styles for theme. The system theme follows the
// terminal background.
func NewStyles(theme kvstore.Theme) Styles {
	p := lightPalette
	if theme == kvstore.ThemeDark || (theme == kvstore.ThemeSystem && lipgloss.HasDarkBackground()) {
		p = darkPalette
	}
	return Styles{
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Code:     lipgloss.NewStyle().Foreground(p.Code),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(p.Accent),
		Mark:     lipgloss.NewStyle().Background(p.Mark).Foreground(p.Text),
		Fading:   lipgloss.NewStyle().Background(p.Fading).Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(p.Accent).PaddingLeft(1),
		Status:   lipgloss.NewStyle().Foreground(p.Muted).BorderTop(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(p.Border),
		Modal:    lipgloss.NewStyle().Padding(0, 1),
	}
}

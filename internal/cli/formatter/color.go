package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Warm palette; gentle items use the softer purple.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TypeStyle colors an item by its kind.
func TypeStyle(t domain.ItemType) lipgloss.Style {
	switch t {
	case domain.ItemMedication:
		return StyleRed
	case domain.ItemMeal:
		return StyleYellow
	case domain.ItemRest:
		return StyleBlue
	case domain.ItemActivity:
		return StyleGreen
	default:
		return StyleFg
	}
}

// TypeIcon is a one-glyph marker for an item kind.
func TypeIcon(t domain.ItemType) string {
	switch t {
	case domain.ItemMedication:
		return "✚"
	case domain.ItemMeal:
		return "◆"
	case domain.ItemRest:
		return "☾"
	case domain.ItemActivity:
		return "★"
	default:
		return "•"
	}
}

// StatusPill renders an item's status.
func StatusPill(s domain.ItemStatus) string {
	switch s {
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ done")
	case domain.StatusSkipped:
		return StyleDim.Render("⊘ skipped")
	case domain.StatusPending:
		return StyleFg.Render("○ pending")
	default:
		return StyleDim.Render(string(s))
	}
}

// IncidentBadge renders an incident category, or a dim dash when none.
func IncidentBadge(inc *domain.Incident) string {
	if inc == nil {
		return StyleDim.Render("--")
	}
	if *inc == domain.IncidentFeelingBetter {
		return StyleGreen.Render("▲ " + string(*inc))
	}
	return StyleYellow.Render("▼ " + string(*inc))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

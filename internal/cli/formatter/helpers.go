package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDay renders a YYYY-MM-DD key relative to now.
func HumanDay(date string, now time.Time) string {
	t, err := time.ParseInLocation(domain.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	today := now.Format(domain.DateLayout)
	switch date {
	case today:
		return "Today"
	case now.AddDate(0, 0, -1).Format(domain.DateLayout):
		return "Yesterday"
	}
	return t.Format("Mon, Jan 2")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// SourceNote explains where a plan came from. Empty for stored plans.
func SourceNote(src planner.Source) string {
	switch src {
	case planner.SourceAssisted:
		return StylePurple.Render("✦ adjusted by assistant")
	case planner.SourceFallback:
		return StyleYellow.Render("assistant unavailable, using the built-in planner")
	case planner.SourceLocal:
		return Dim("built-in planner")
	default:
		return ""
	}
}

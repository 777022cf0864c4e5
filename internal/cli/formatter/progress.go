package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/thea/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderDayProgress renders how much of the plan has been dealt with, like
// [████░░░░] 4/8. Skipped items count as handled.
func RenderDayProgress(items []domain.PlanItem, width int) string {
	if width < 2 {
		width = 2
	}
	handled := 0
	for _, it := range items {
		if it.Status.Terminal() {
			handled++
		}
	}
	filled := 0
	if len(items) > 0 {
		filled = handled * width / len(items)
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %d/%d", StyleGreen.Render(bar), handled, len(items))
}

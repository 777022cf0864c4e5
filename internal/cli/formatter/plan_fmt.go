package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/scheduler"
)

// FormatPlan renders a day plan as a timeline, one item per line.
func FormatPlan(resp *app.PlanResponse, now time.Time) string {
	var b strings.Builder

	title := "Plan · " + HumanDay(resp.Date, now)
	b.WriteString(Header(title))
	b.WriteString("\n")

	if note := SourceNote(resp.Source); note != "" {
		b.WriteString(note + "\n")
	}
	if resp.Incident != nil {
		b.WriteString("Incident: " + IncidentBadge(resp.Incident) + "\n")
	}
	if resp.Gentle {
		b.WriteString(StylePurple.Render("Gentle mode: keeping things calm for the rest of the day") + "\n")
	}
	if !resp.Saved && resp.Source != "" {
		b.WriteString(StyleYellow.Render("This plan could not be saved; it will be rebuilt next time.") + "\n")
	}
	b.WriteString("\n")

	if len(resp.Items) == 0 {
		b.WriteString(Dim("Nothing scheduled for this day.") + "\n")
		return b.String()
	}

	for _, it := range resp.Items {
		b.WriteString(formatItemLine(it))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderDayProgress(resp.Items, 20))
	b.WriteString("\n")
	return b.String()
}

func formatItemLine(it domain.PlanItem) string {
	style := TypeStyle(it.Type)
	title := style.Render(TypeIcon(it.Type) + " " + it.Title)
	if it.Status.Terminal() {
		title = StyleDim.Render(TypeIcon(it.Type) + " " + it.Title)
	}
	line := fmt.Sprintf("  %s  %s  %s  %s", StyleBold.Render(it.Time), title, StatusPill(it.Status), TruncID(it.ID))
	if it.IsGentle {
		line += " " + StylePurple.Render("♡")
	}
	if it.Description != "" && !it.Status.Terminal() {
		line += "\n         " + Dim(it.Description)
	}
	return line
}

// FormatItemUpdate reports the outcome of a done/skip command.
func FormatItemUpdate(itemID string, want domain.ItemStatus, res *app.UpdateStatusResult) string {
	switch {
	case !res.Found:
		return StyleRed.Render("No item "+itemID+" in this day's plan.") + "\n"
	case !res.Applied:
		return StyleYellow.Render(fmt.Sprintf("%q is already %s.", res.Item.Title, res.Item.Status)) + "\n"
	default:
		verb := "Marked done"
		if want == domain.StatusSkipped {
			verb = "Skipped"
		}
		return fmt.Sprintf("%s %s %s\n", StatusPill(res.Item.Status), verb+":", Bold(res.Item.Title))
	}
}

// FormatHistory renders one row per stored day, newest first as given.
func FormatHistory(records []*domain.DayRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("History"))
	b.WriteString("\n")
	if len(records) == 0 {
		b.WriteString(Dim("No days recorded yet.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			HumanDay(r.Date, now),
			r.Profile.Name,
			strings.Join(r.Profile.IllnessNames(), ", "),
			RenderDayProgress(r.Plan, 10),
			fmt.Sprintf("%d", len(r.Incidents)),
		})
	}
	b.WriteString(RenderTable([]string{"DAY", "CHILD", "ILLNESS", "PROGRESS", "INCIDENTS"}, rows))

	for _, r := range records {
		if len(r.Incidents) == 0 {
			continue
		}
		b.WriteString("\n" + Bold(HumanDay(r.Date, now)) + "\n")
		for _, inc := range r.Incidents {
			line := fmt.Sprintf("  %s  %s", Dim(inc.Timestamp.In(now.Location()).Format("15:04")), IncidentBadge(inc.Category))
			if inc.Description != "" {
				line += "  " + inc.Description
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// FormatClassification shows what the keyword classifier made of a report.
func FormatClassification(text string, c scheduler.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Report:"), text)
	if c.Incident == nil {
		b.WriteString(Dim("No incident category matched.") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s %s  %s\n", Dim("Category:"), IncidentBadge(c.Incident), Dim(fmt.Sprintf("confidence %.0f%%", c.Confidence*100)))
	if scheduler.GentleMode(c.Incident) {
		b.WriteString(StylePurple.Render("Would switch the day to gentle mode.") + "\n")
	}
	return b.String()
}

// FormatProfile renders the onboarding state for a device.
func FormatProfile(resp *app.ProfileResponse) string {
	p := resp.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s, age %d\n", Dim("Child:"), Bold(p.Name), p.Age)
	fmt.Fprintf(&b, "%s %s\n", Dim("Illness:"), strings.Join(p.IllnessNames(), ", "))
	fmt.Fprintf(&b, "%s child %s · parent %s\n", Dim("Energy:"), p.ChildEnergyLevel, p.ParentEnergyLevel)

	b.WriteString("\n")
	b.WriteString(FormatMedications(resp.Medications))
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}

// FormatMedications renders the medication list as a table.
func FormatMedications(meds []domain.Medication) string {
	if len(meds) == 0 {
		return Dim("No medications.") + "\n"
	}
	rows := make([][]string, 0, len(meds))
	for _, m := range meds {
		rows = append(rows, []string{m.Name, m.Dosage, "every " + string(m.Frequency), m.TimeLastGiven})
	}
	return RenderTable([]string{"MEDICATION", "DOSE", "FREQUENCY", "LAST GIVEN"}, rows)
}

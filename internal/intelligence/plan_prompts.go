package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
)

const planAdjustSystemPromptTmpl = `You are Thea, a caring AI assistant helping parents manage their child's sick day. You modify care plans when incidents happen during the day.

RULES:
- Output ONLY a valid JSON array of plan items, no other text
- Each item must have: type ("activity"|"medication"|"meal"|"rest"), title (string), description (string), time (HH:mm 24h format), tags (string array), isGentle (boolean)
- Generate items from %s until %s
- Time blocks should be 20-45 minutes apart
- Keep any existing medication schedules
- Be age-appropriate for a %d-year-old
- Adapt the plan based on the incident that occurred
- Activities should be realistic indoor sick-day activities
- Include hydration checks every 1-2 hours
- Balance rest with gentle activities based on energy level`

func planAdjustSystemPrompt(req planner.PlanRequest) string {
	end := clock.EndOfDay(req.Now)
	return fmt.Sprintf(planAdjustSystemPromptTmpl, req.Now, end, req.Profile.Age)
}

func planAdjustUserPrompt(req planner.PlanRequest) string {
	var b strings.Builder
	p := req.Profile

	fmt.Fprintf(&b, "CHILD: %s, age %d\n", p.Name, p.Age)
	fmt.Fprintf(&b, "ILLNESS: %s\n", strings.Join(p.IllnessNames(), ", "))
	fmt.Fprintf(&b, "CHILD ENERGY: %s\n", p.ChildEnergyLevel)
	fmt.Fprintf(&b, "PARENT ENERGY: %s\n", p.ParentEnergyLevel)
	fmt.Fprintf(&b, "MEDICATIONS: %s\n", medicationSummary(req.Medications))
	fmt.Fprintf(&b, "CURRENT TIME: %s\n\n", req.Now)

	if req.Incident != nil {
		fmt.Fprintf(&b, "INCIDENT TYPE: %s\n", *req.Incident)
	} else {
		b.WriteString("INCIDENT TYPE: Not specified (infer from description below)\n")
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		fmt.Fprintf(&b, "PARENT'S DESCRIPTION: %q\n", d)
	}

	b.WriteString("\nCURRENT PLAN (pending items):\n")
	b.WriteString(pendingSummary(req.ExistingPlan))

	b.WriteString("\n\nBased on this update from the parent, generate an updated care plan for the rest of the day. " +
		"Use the parent's description to understand what happened and adjust activities accordingly. " +
		"If the child's condition worsened, make the plan gentler with more rest. " +
		"If they're feeling better, allow slightly more active things.\n\n")
	b.WriteString("Respond with ONLY a JSON array like:\n")
	b.WriteString(`[{"type":"rest","title":"...","description":"...","time":"HH:mm","tags":["..."],"isGentle":true}]`)
	return b.String()
}

func medicationSummary(meds []domain.Medication) string {
	if len(meds) == 0 {
		return "None"
	}
	parts := make([]string, len(meds))
	for i, m := range meds {
		parts[i] = fmt.Sprintf("%s (%s, every %s)", m.Name, m.Dosage, m.Frequency)
	}
	return strings.Join(parts, ", ")
}

func pendingSummary(plan []domain.PlanItem) string {
	var lines []string
	for _, item := range domain.Pending(plan) {
		line := fmt.Sprintf("%s - [%s] %s", item.Time, item.Type, item.Title)
		if item.Description != "" {
			line += ": " + item.Description
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "No existing plan items."
	}
	return strings.Join(lines, "\n")
}

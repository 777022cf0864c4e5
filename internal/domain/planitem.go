package domain

// PlanItem is one scheduled unit of care.
type PlanItem struct {
	ID          string
	Type        ItemType
	Title       string
	Description string
	Time        string // HH:MM slot start
	Category    string // presentation hint, e.g. "rest" or "hydration"
	Tags        []string
	Status      ItemStatus
	IsGentle    bool
}

// Transition moves a pending item to completed or skipped. Terminal items
// never change again.
func (p *PlanItem) Transition(to ItemStatus) error {
	if to != StatusCompleted && to != StatusSkipped {
		return invalid("status", "status must be completed or skipped, got %q", to)
	}
	if p.Status.Terminal() {
		return ErrTerminalStatus
	}
	p.Status = to
	return nil
}

// Pending filters items still awaiting action.
func Pending(items []PlanItem) []PlanItem {
	var out []PlanItem
	for _, it := range items {
		if it.Status == StatusPending {
			out = append(out, it)
		}
	}
	return out
}

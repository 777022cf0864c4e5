// Package notify turns pending medication items into reminders and sends
// them when their dose time arrives.
package notify

import (
	"time"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
)

// staleAfter is how long past its slot a reminder is still worth sending.
const staleAfter = time.Minute

const defaultBody = "Time to give the next dose."

type Reminder struct {
	ItemID string
	At     clock.Time
	Title  string
	Body   string
}

// Reminders selects the pending medication items of a plan. Items with an
// unparseable time are dropped.
func Reminders(plan []domain.PlanItem) []Reminder {
	var out []Reminder
	for _, it := range plan {
		if it.Type != domain.ItemMedication || it.Status != domain.StatusPending {
			continue
		}
		at, err := clock.Parse(it.Time)
		if err != nil {
			continue
		}
		body := it.Description
		if body == "" {
			body = defaultBody
		}
		out = append(out, Reminder{
			ItemID: it.ID,
			At:     at,
			Title:  "Medication Reminder: " + it.Title,
			Body:   body,
		})
	}
	return out
}

// Due returns reminders whose slot started no more than a minute before
// now, skipping ids already in fired. The slot is taken on now's date.
func Due(reminders []Reminder, now time.Time, fired map[string]bool) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if fired[r.ItemID] {
			continue
		}
		slot := time.Date(now.Year(), now.Month(), now.Day(), r.At.Hour(), r.At.Minute(), 0, 0, now.Location())
		late := now.Sub(slot)
		if late < 0 || late > staleAfter {
			continue
		}
		out = append(out, r)
	}
	return out
}

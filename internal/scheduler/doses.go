package scheduler

import (
	"fmt"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
)

// ProjectDoses emits a reminder for every future dose before end. Doses are
// projected from each medication's last-given time at its frequency; doses at
// or before now are not resurfaced. Projection stops at a midnight wrap.
func ProjectDoses(meds []domain.Medication, now, end clock.Time, newID IDSource) []domain.PlanItem {
	var items []domain.PlanItem
	for _, med := range meds {
		freq := med.Frequency.Minutes()
		last, err := clock.Parse(med.TimeLastGiven)
		if freq == 0 || err != nil {
			continue
		}

		next, wrapped := last.Add(freq)
		for !wrapped && next.Before(end) {
			if next.After(now) {
				items = append(items, doseItem(med, next, newID()))
			}
			next, wrapped = next.Add(freq)
		}
	}
	return items
}

func doseItem(med domain.Medication, at clock.Time, id string) domain.PlanItem {
	return domain.PlanItem{
		ID:          id,
		Type:        domain.ItemMedication,
		Title:       fmt.Sprintf("Give %s", med.Name),
		Description: fmt.Sprintf("Dosage: %s", med.Dosage),
		Time:        at.String(),
		Category:    "medication",
		Tags:        []string{"medication", "important"},
		Status:      domain.StatusPending,
		IsGentle:    false,
	}
}

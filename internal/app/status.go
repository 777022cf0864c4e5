package app

import "github.com/alexanderramin/thea/internal/domain"

type UpdateStatusRequest struct {
	DeviceID string
	Date     string // YYYY-MM-DD; empty means today
	ItemID   string
	Status   domain.ItemStatus
}

// UpdateStatusResult is a soft outcome: an unknown id or an item that has
// already been completed or skipped is reported here, not as an error.
type UpdateStatusResult struct {
	Found   bool
	Applied bool
	Item    *domain.PlanItem
}

package repository

import (
	"context"

	"github.com/alexanderramin/thea/internal/domain"
)

// SessionRepo stores the per-device onboarding state.
type SessionRepo interface {
	Upsert(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, deviceID string) (*domain.Session, error)
}

// DayRecordRepo stores one snapshot per device and date. Plan items and
// incidents live in their own repos and are joined by the service layer.
type DayRecordRepo interface {
	// Ensure inserts rec unless a record for its device and date exists.
	// created reports whether a row was written.
	Ensure(ctx context.Context, rec *domain.DayRecord) (created bool, err error)
	Get(ctx context.Context, deviceID, date string) (*domain.DayRecord, error)
	// ListByDevice returns records newest date first.
	ListByDevice(ctx context.Context, deviceID string) ([]*domain.DayRecord, error)
}

type PlanItemRepo interface {
	// ReplacePlan deletes the day's items and inserts items in order. Run it
	// inside a unit of work so readers never see a partial plan.
	ReplacePlan(ctx context.Context, deviceID, date string, items []domain.PlanItem) error
	// ListByDay returns items ordered by time, then insertion order.
	ListByDay(ctx context.Context, deviceID, date string) ([]domain.PlanItem, error)
	GetByID(ctx context.Context, deviceID, date, itemID string) (*domain.PlanItem, error)
	// SetStatusIfPending moves a pending item to status. It reports false,
	// without error, when the item is missing or already terminal.
	SetStatusIfPending(ctx context.Context, deviceID, date, itemID string, status domain.ItemStatus) (bool, error)
}

type IncidentRepo interface {
	Append(ctx context.Context, deviceID, date string, report *domain.IncidentReport) error
	// ListByDay returns reports ordered by timestamp.
	ListByDay(ctx context.Context, deviceID, date string) ([]domain.IncidentReport, error)
}

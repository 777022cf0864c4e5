package app

import (
	"context"

	"github.com/alexanderramin/thea/internal/domain"
)

type PlanUseCase interface {
	Generate(ctx context.Context, req GeneratePlanRequest) (*PlanResponse, error)
	// Today returns the stored plan for date, generating one on first view.
	Today(ctx context.Context, deviceID, date string) (*PlanResponse, error)
	// Stored returns whatever plan is saved for date, possibly empty. It
	// never generates.
	Stored(ctx context.Context, deviceID, date string) (*PlanResponse, error)
	// ReportIncident regenerates the rest of the day around an incident.
	ReportIncident(ctx context.Context, req GeneratePlanRequest) (*PlanResponse, error)
}

type StatusUseCase interface {
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResult, error)
}

type ProfileUseCase interface {
	SaveProfile(ctx context.Context, req SaveProfileRequest) (*ProfileResponse, error)
	SaveMedications(ctx context.Context, deviceID string, meds []domain.Medication) (*ProfileResponse, error)
	GetProfile(ctx context.Context, deviceID string) (*ProfileResponse, error)
}

type HistoryUseCase interface {
	List(ctx context.Context, deviceID string) ([]*domain.DayRecord, error)
}

package app

import (
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
)

// GeneratePlanRequest asks for a fresh plan for the rest of the day.
type GeneratePlanRequest struct {
	DeviceID string
	// At overrides the service clock. Its date selects the day record and
	// its wall-clock minute is the plan start.
	At       *time.Time
	Incident *domain.Incident
	// Description is the parent's free-text report. When set it must not be
	// blank.
	Description *string
}

// IsIncidentReport reports whether the request carries an incident.
func (r GeneratePlanRequest) IsIncidentReport() bool {
	return r.Incident != nil || r.Description != nil
}

type PlanResponse struct {
	DeviceID string
	Date     string
	Items    []domain.PlanItem
	// Source is empty for a stored plan read back without regeneration.
	Source   planner.Source
	Incident *domain.Incident
	Gentle   bool
	// Saved is false when the plan could not be stored. The plan is still
	// usable; the next view regenerates it.
	Saved bool
}

type PlanErrorCode string

const (
	PlanErrInvalidRequest PlanErrorCode = "INVALID_REQUEST"
	PlanErrNoProfile      PlanErrorCode = "NO_PROFILE"
	PlanErrInternal       PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is returned by plan use cases for failures callers can act on.
type PlanError struct {
	Code    PlanErrorCode
	Field   string
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

package domain

import "time"

// DateLayout is the day-record key format.
const DateLayout = "2006-01-02"

// IncidentReport is an append-only log entry for one day.
type IncidentReport struct {
	ID          string
	Timestamp   time.Time
	Category    *Incident
	Description string
}

// DayRecord is the per-device, per-date snapshot used by history views.
type DayRecord struct {
	DeviceID    string
	Date        string // YYYY-MM-DD
	Profile     ChildProfile
	Medications []Medication
	Plan        []PlanItem
	Incidents   []IncidentReport
	CreatedAt   time.Time
}

// Session is the per-device onboarding state.
type Session struct {
	DeviceID    string
	Profile     ChildProfile
	Medications []Medication
	UpdatedAt   time.Time
}

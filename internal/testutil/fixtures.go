package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/google/uuid"
)

var testItemCounter atomic.Int64

// Profile options
type ProfileOption func(*domain.ChildProfile)

func WithChildEnergy(e domain.ChildEnergy) ProfileOption {
	return func(p *domain.ChildProfile) {
		p.ChildEnergyLevel = e
	}
}

func WithIllnesses(types ...domain.IllnessType) ProfileOption {
	return func(p *domain.ChildProfile) {
		p.IllnessTypes = types
	}
}

func WithAge(age int) ProfileOption {
	return func(p *domain.ChildProfile) {
		p.Age = age
	}
}

func NewTestProfile(name string, opts ...ProfileOption) domain.ChildProfile {
	p := domain.ChildProfile{
		Name:              name,
		Age:               5,
		IllnessTypes:      []domain.IllnessType{domain.IllnessFlu},
		ChildEnergyLevel:  domain.ChildEnergyMedium,
		ParentEnergyLevel: domain.ParentEnergyMedium,
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func NewTestMedication(name string, freq domain.Frequency, lastGiven string) domain.Medication {
	return domain.Medication{
		Name:          name,
		Dosage:        "5ml",
		Frequency:     freq,
		TimeLastGiven: lastGiven,
	}
}

// Plan item options
type ItemOption func(*domain.PlanItem)

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.PlanItem) {
		i.Status = s
	}
}

func WithType(t domain.ItemType) ItemOption {
	return func(i *domain.PlanItem) {
		i.Type = t
	}
}

func WithTags(tags ...string) ItemOption {
	return func(i *domain.PlanItem) {
		i.Tags = tags
	}
}

func WithGentle() ItemOption {
	return func(i *domain.PlanItem) {
		i.IsGentle = true
	}
}

func NewTestItem(title, at string, opts ...ItemOption) domain.PlanItem {
	n := testItemCounter.Add(1)
	item := domain.PlanItem{
		ID:          fmt.Sprintf("item-%d-%s", n, uuid.New().String()[:8]),
		Type:        domain.ItemActivity,
		Title:       title,
		Description: "",
		Time:        at,
		Category:    "play",
		Tags:        []string{},
		Status:      domain.StatusPending,
	}
	for _, o := range opts {
		o(&item)
	}
	return item
}

func NewTestDayRecord(deviceID, date string, profile domain.ChildProfile) *domain.DayRecord {
	return &domain.DayRecord{
		DeviceID:  deviceID,
		Date:      date,
		Profile:   profile,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestIncident(category *domain.Incident, description string, at time.Time) *domain.IncidentReport {
	return &domain.IncidentReport{
		ID:          uuid.New().String(),
		Timestamp:   at,
		Category:    category,
		Description: description,
	}
}

package domain

import (
	"strings"

	"github.com/alexanderramin/thea/internal/clock"
)

const (
	MinChildAge = 1
	MaxChildAge = 8
)

// ChildProfile is captured at onboarding and read-only afterwards.
type ChildProfile struct {
	Name              string
	Age               int
	IllnessTypes      []IllnessType
	ChildEnergyLevel  ChildEnergy
	ParentEnergyLevel ParentEnergy
}

func (p *ChildProfile) Validate() error {
	if p == nil {
		return invalid("profile", "profile is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("childName", "child's name is required")
	}
	if p.Age < MinChildAge || p.Age > MaxChildAge {
		return invalid("childAge", "age must be between %d and %d", MinChildAge, MaxChildAge)
	}
	if len(p.IllnessTypes) == 0 {
		return invalid("illnessTypes", "select at least one illness")
	}
	for _, it := range p.IllnessTypes {
		if !containsValue(IllnessTypes, it) {
			return invalid("illnessTypes", "unknown illness type %q", it)
		}
	}
	if !containsValue(ChildEnergyLevels, p.ChildEnergyLevel) {
		return invalid("childEnergyLevel", "unknown energy level %q", p.ChildEnergyLevel)
	}
	if !containsValue(ParentEnergyLevels, p.ParentEnergyLevel) {
		return invalid("parentEnergyLevel", "unknown energy level %q", p.ParentEnergyLevel)
	}
	return nil
}

// IllnessNames returns the illness tags as plain strings.
func (p *ChildProfile) IllnessNames() []string {
	names := make([]string, len(p.IllnessTypes))
	for i, it := range p.IllnessTypes {
		names[i] = string(it)
	}
	return names
}

type Medication struct {
	Name          string
	Dosage        string
	Frequency     Frequency
	TimeLastGiven string // HH:MM
}

func (m Medication) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return invalid("medications.name", "medication name is required")
	}
	if strings.TrimSpace(m.Dosage) == "" {
		return invalid("medications.dosage", "dosage is required")
	}
	if m.Frequency.Minutes() == 0 {
		return invalid("medications.frequency", "unknown frequency %q", m.Frequency)
	}
	if !clock.Valid(m.TimeLastGiven) {
		return invalid("medications.timeLastGiven", "time must be HH:MM, got %q", m.TimeLastGiven)
	}
	return nil
}

// ValidateMedications checks every entry and reports the first failure.
func ValidateMedications(meds []Medication) error {
	for _, m := range meds {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

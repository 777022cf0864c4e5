package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *ChildProfile {
	return &ChildProfile{
		Name:              "Mia",
		Age:               5,
		IllnessTypes:      []IllnessType{IllnessFlu},
		ChildEnergyLevel:  ChildEnergyMedium,
		ParentEnergyLevel: ParentEnergyLow,
	}
}

func TestChildProfile_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *ChildProfile)
		field  string
	}{
		{"valid", func(p *ChildProfile) {}, ""},
		{"blank name", func(p *ChildProfile) { p.Name = "  " }, "childName"},
		{"age too low", func(p *ChildProfile) { p.Age = 0 }, "childAge"},
		{"age too high", func(p *ChildProfile) { p.Age = 9 }, "childAge"},
		{"no illness", func(p *ChildProfile) { p.IllnessTypes = nil }, "illnessTypes"},
		{"unknown illness", func(p *ChildProfile) { p.IllnessTypes = []IllnessType{"Measles"} }, "illnessTypes"},
		{"child energy High is parent-only", func(p *ChildProfile) { p.ChildEnergyLevel = "High" }, "childEnergyLevel"},
		{"parent energy Okay is child-only", func(p *ChildProfile) { p.ParentEnergyLevel = "Okay" }, "parentEnergyLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestChildProfile_ValidateNil(t *testing.T) {
	var p *ChildProfile
	var vErr *ValidationError
	require.ErrorAs(t, p.Validate(), &vErr)
	assert.Equal(t, "profile", vErr.Field)
}

func TestMedication_Validate(t *testing.T) {
	med := Medication{Name: "Tylenol", Dosage: "5ml", Frequency: Every6h, TimeLastGiven: "08:00"}
	assert.NoError(t, med.Validate())

	bad := med
	bad.Frequency = "5h"
	assert.Error(t, bad.Validate())

	bad = med
	bad.TimeLastGiven = "8:00"
	assert.Error(t, bad.Validate())

	bad = med
	bad.Dosage = ""
	assert.Error(t, ValidateMedications([]Medication{med, bad}))
}

func TestFrequency_Minutes(t *testing.T) {
	assert.Equal(t, 240, Every4h.Minutes())
	assert.Equal(t, 360, Every6h.Minutes())
	assert.Equal(t, 480, Every8h.Minutes())
	assert.Equal(t, 720, Every12h.Minutes())
	assert.Equal(t, 0, Frequency("2h").Minutes())
}

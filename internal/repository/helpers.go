package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
)

// timestampLayout is fixed-width so stored values sort chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// boolToInt converts a Go bool to an integer (0 or 1) for storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a stored integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp returns the zero time for unparseable values.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// encodeJSON marshals a value for a TEXT column.
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decoding column: %w", err)
	}
	return nil
}

// profileColumn is the stored shape of a child profile.
type profileColumn struct {
	Name              string   `json:"childName"`
	Age               int      `json:"childAge"`
	IllnessTypes      []string `json:"illnessTypes"`
	ChildEnergyLevel  string   `json:"childEnergyLevel"`
	ParentEnergyLevel string   `json:"parentEnergyLevel"`
}

func toProfileColumn(p domain.ChildProfile) profileColumn {
	return profileColumn{
		Name:              p.Name,
		Age:               p.Age,
		IllnessTypes:      p.IllnessNames(),
		ChildEnergyLevel:  string(p.ChildEnergyLevel),
		ParentEnergyLevel: string(p.ParentEnergyLevel),
	}
}

func (c profileColumn) toDomain() domain.ChildProfile {
	illnesses := make([]domain.IllnessType, len(c.IllnessTypes))
	for i, s := range c.IllnessTypes {
		illnesses[i] = domain.IllnessType(s)
	}
	return domain.ChildProfile{
		Name:              c.Name,
		Age:               c.Age,
		IllnessTypes:      illnesses,
		ChildEnergyLevel:  domain.ChildEnergy(c.ChildEnergyLevel),
		ParentEnergyLevel: domain.ParentEnergy(c.ParentEnergyLevel),
	}
}

// medicationColumn is the stored shape of one medication.
type medicationColumn struct {
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	Frequency     string `json:"frequency"`
	TimeLastGiven string `json:"timeLastGiven"`
}

func encodeMedications(meds []domain.Medication) (string, error) {
	cols := make([]medicationColumn, len(meds))
	for i, m := range meds {
		cols[i] = medicationColumn{
			Name:          m.Name,
			Dosage:        m.Dosage,
			Frequency:     string(m.Frequency),
			TimeLastGiven: m.TimeLastGiven,
		}
	}
	return encodeJSON(cols)
}

func decodeMedications(s string) ([]domain.Medication, error) {
	var cols []medicationColumn
	if err := decodeJSON(s, &cols); err != nil {
		return nil, err
	}
	meds := make([]domain.Medication, len(cols))
	for i, c := range cols {
		meds[i] = domain.Medication{
			Name:          c.Name,
			Dosage:        c.Dosage,
			Frequency:     domain.Frequency(c.Frequency),
			TimeLastGiven: c.TimeLastGiven,
		}
	}
	return meds, nil
}

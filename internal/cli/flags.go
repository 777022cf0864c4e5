package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value      = (*incidentFlag)(nil)
	_ pflag.Value      = (*clockFlag)(nil)
	_ pflag.Value      = (*dateFlag)(nil)
	_ pflag.SliceValue = (*medicationsFlag)(nil)
)

// incidentFlag accepts one of the incident categories, case-insensitively.
type incidentFlag struct {
	value *domain.Incident
}

func (f *incidentFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *incidentFlag) Set(s string) error {
	for _, inc := range domain.Incidents {
		if strings.EqualFold(string(inc), strings.TrimSpace(s)) {
			v := inc
			f.value = &v
			return nil
		}
	}
	return fmt.Errorf("unknown incident %q (want one of: %s)", s, incidentChoices())
}

func (f *incidentFlag) Type() string { return "incident" }

func incidentChoices() string {
	names := make([]string, len(domain.Incidents))
	for i, inc := range domain.Incidents {
		names[i] = string(inc)
	}
	return strings.Join(names, ", ")
}

// clockFlag holds an optional HH:MM wall-clock time.
type clockFlag struct {
	value *clock.Time
}

func (f *clockFlag) String() string {
	if f.value == nil {
		return ""
	}
	return f.value.String()
}

func (f *clockFlag) Set(s string) error {
	t, err := clock.Parse(s)
	if err != nil {
		return err
	}
	f.value = &t
	return nil
}

func (f *clockFlag) Type() string { return "HH:MM" }

// on places the flag's time on now's date. Nil when the flag is unset.
func (f *clockFlag) on(now time.Time) *time.Time {
	if f.value == nil {
		return nil
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), f.value.Hour(), f.value.Minute(), 0, 0, now.Location())
	return &at
}

// dateFlag holds a YYYY-MM-DD day key.
type dateFlag struct {
	value string
}

func (f *dateFlag) String() string { return f.value }

func (f *dateFlag) Set(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	f.value = s
	return nil
}

func (f *dateFlag) Type() string { return "date" }

// or returns the flag value, or now's date when unset.
func (f *dateFlag) or(now time.Time) string {
	if f.value != "" {
		return f.value
	}
	return now.Format(domain.DateLayout)
}

// medicationsFlag collects repeated "name,dosage,frequency,last-given"
// entries.
type medicationsFlag struct {
	meds []domain.Medication
}

func (f *medicationsFlag) String() string {
	parts := make([]string, len(f.meds))
	for i, m := range f.meds {
		parts[i] = formatMedication(m)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (f *medicationsFlag) Set(s string) error {
	m, err := parseMedication(s)
	if err != nil {
		return err
	}
	f.meds = append(f.meds, m)
	return nil
}

func (f *medicationsFlag) Type() string { return "medication" }

func (f *medicationsFlag) Append(s string) error { return f.Set(s) }

func (f *medicationsFlag) Replace(vals []string) error {
	f.meds = nil
	for _, v := range vals {
		if err := f.Set(v); err != nil {
			return err
		}
	}
	return nil
}

func (f *medicationsFlag) GetSlice() []string {
	out := make([]string, len(f.meds))
	for i, m := range f.meds {
		out[i] = formatMedication(m)
	}
	return out
}

func parseMedication(s string) (domain.Medication, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.Medication{}, fmt.Errorf("medication must be name,dosage,frequency,last-given; got %q", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	m := domain.Medication{
		Name:          parts[0],
		Dosage:        parts[1],
		Frequency:     domain.Frequency(strings.ToLower(parts[2])),
		TimeLastGiven: parts[3],
	}
	if err := m.Validate(); err != nil {
		return domain.Medication{}, err
	}
	return m, nil
}

func formatMedication(m domain.Medication) string {
	return strings.Join([]string{m.Name, m.Dosage, string(m.Frequency), m.TimeLastGiven}, ",")
}

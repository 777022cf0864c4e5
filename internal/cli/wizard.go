package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// theaHuhTheme returns a huh theme matching the formatter palette.
func theaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// profileAnswers is the raw wizard state before conversion.
type profileAnswers struct {
	name         string
	age          string
	illnesses    []domain.IllnessType
	childEnergy  domain.ChildEnergy
	parentEnergy domain.ParentEnergy
}

func (p profileAnswers) toProfile() domain.ChildProfile {
	age, _ := strconv.Atoi(strings.TrimSpace(p.age))
	return domain.ChildProfile{
		Name:              strings.TrimSpace(p.name),
		Age:               age,
		IllnessTypes:      p.illnesses,
		ChildEnergyLevel:  p.childEnergy,
		ParentEnergyLevel: p.parentEnergy,
	}
}

func options[T ~string](vals []T) []huh.Option[T] {
	out := make([]huh.Option[T], len(vals))
	for i, v := range vals {
		out[i] = huh.NewOption(string(v), v)
	}
	return out
}

// profileForm walks through the child's details.
func profileForm(ans *profileAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Child's name").
				Value(&ans.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title(fmt.Sprintf("Age (%d-%d)", domain.MinChildAge, domain.MaxChildAge)).
				Placeholder("5").
				Value(&ans.age).
				Validate(validateAge),
		),
		huh.NewGroup(
			huh.NewMultiSelect[domain.IllnessType]().
				Title("What's going on?").
				Options(options(domain.IllnessTypes)...).
				Value(&ans.illnesses).
				Validate(func(v []domain.IllnessType) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[domain.ChildEnergy]().
				Title("Child's energy").
				Options(options(domain.ChildEnergyLevels)...).
				Value(&ans.childEnergy),
			huh.NewSelect[domain.ParentEnergy]().
				Title("Your energy").
				Options(options(domain.ParentEnergyLevels)...).
				Value(&ans.parentEnergy),
		),
	).WithTheme(theaHuhTheme()).WithShowHelp(false)
}

type medicationAnswers struct {
	name      string
	dosage    string
	frequency domain.Frequency
	lastGiven string
}

func (m medicationAnswers) toMedication() domain.Medication {
	return domain.Medication{
		Name:          strings.TrimSpace(m.name),
		Dosage:        strings.TrimSpace(m.dosage),
		Frequency:     m.frequency,
		TimeLastGiven: strings.TrimSpace(m.lastGiven),
	}
}

func medicationForm(ans *medicationAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Medication").Placeholder("Tylenol").Value(&ans.name).Validate(required("medication name")),
			huh.NewInput().Title("Dosage").Placeholder("5ml").Value(&ans.dosage).Validate(required("dosage")),
			huh.NewSelect[domain.Frequency]().
				Title("How often").
				Options(options(domain.Frequencies)...).
				Value(&ans.frequency),
			huh.NewInput().Title("Last given (HH:MM)").Placeholder("08:00").Value(&ans.lastGiven).Validate(validateClock),
		),
	).WithTheme(theaHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(huh.NewConfirm().Title(title).Value(value)),
	).WithTheme(theaHuhTheme()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateAge(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < domain.MinChildAge || n > domain.MaxChildAge {
		return fmt.Errorf("age must be between %d and %d", domain.MinChildAge, domain.MaxChildAge)
	}
	return nil
}

func validateClock(s string) error {
	if !clock.Valid(strings.TrimSpace(s)) {
		return fmt.Errorf("use HH:MM, like 08:30")
	}
	return nil
}

// runMedicationWizard asks for medications until the parent is done.
func runMedicationWizard() ([]domain.Medication, error) {
	var meds []domain.Medication
	for {
		more := len(meds) == 0
		title := "Add a medication?"
		if len(meds) > 0 {
			title = "Add another medication?"
		}
		if err := confirmForm(title, &more).Run(); err != nil {
			return nil, err
		}
		if !more {
			return meds, nil
		}
		ans := medicationAnswers{frequency: domain.Every6h}
		if err := medicationForm(&ans).Run(); err != nil {
			return nil, err
		}
		meds = append(meds, ans.toMedication())
	}
}

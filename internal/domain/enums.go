package domain

type IllnessType string

const (
	IllnessCold         IllnessType = "Cold"
	IllnessFlu          IllnessType = "Flu"
	IllnessStomachBug   IllnessType = "Stomach Bug"
	IllnessFever        IllnessType = "Fever"
	IllnessCough        IllnessType = "Cough"
	IllnessEarInfection IllnessType = "Ear Infection"
)

// IllnessTypes lists the accepted symptom tags in presentation order.
var IllnessTypes = []IllnessType{
	IllnessCold, IllnessFlu, IllnessStomachBug, IllnessFever, IllnessCough, IllnessEarInfection,
}

// ChildEnergy is the child's stated energy tier. It doubles as the activity
// tier used by the synthesizer.
type ChildEnergy string

const (
	ChildEnergyLow    ChildEnergy = "Low"
	ChildEnergyMedium ChildEnergy = "Medium"
	ChildEnergyOkay   ChildEnergy = "Okay"
)

var ChildEnergyLevels = []ChildEnergy{ChildEnergyLow, ChildEnergyMedium, ChildEnergyOkay}

type ParentEnergy string

const (
	ParentEnergyLow    ParentEnergy = "Low"
	ParentEnergyMedium ParentEnergy = "Medium"
	ParentEnergyHigh   ParentEnergy = "High"
)

var ParentEnergyLevels = []ParentEnergy{ParentEnergyLow, ParentEnergyMedium, ParentEnergyHigh}

// Frequency is a dosing interval expressed as "<hours>h".
type Frequency string

const (
	Every4h  Frequency = "4h"
	Every6h  Frequency = "6h"
	Every8h  Frequency = "8h"
	Every12h Frequency = "12h"
)

var Frequencies = []Frequency{Every4h, Every6h, Every8h, Every12h}

// Minutes returns the interval length, or 0 for an unknown frequency.
func (f Frequency) Minutes() int {
	switch f {
	case Every4h:
		return 4 * 60
	case Every6h:
		return 6 * 60
	case Every8h:
		return 8 * 60
	case Every12h:
		return 12 * 60
	default:
		return 0
	}
}

type ItemType string

const (
	ItemActivity   ItemType = "activity"
	ItemMedication ItemType = "medication"
	ItemMeal       ItemType = "meal"
	ItemRest       ItemType = "rest"
)

// ValidItemTypes is the canonical set of accepted plan item type strings.
var ValidItemTypes = map[string]bool{
	"activity": true, "medication": true, "meal": true, "rest": true,
}

type ItemStatus string

const (
	StatusPending   ItemStatus = "pending"
	StatusCompleted ItemStatus = "completed"
	StatusSkipped   ItemStatus = "skipped"
)

// Terminal reports whether no further transition is allowed from s.
func (s ItemStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// Incident is a reported change in the child's condition.
type Incident string

const (
	IncidentFeverSpike    Incident = "Fever spike"
	IncidentThrewUp       Incident = "Threw up"
	IncidentEnergyCrashed Incident = "Energy crashed"
	IncidentFeelingBetter Incident = "Feeling better"
	IncidentWontEatDrink  Incident = "Won't eat/drink"
)

// Incidents lists every category in declaration order. Classifier ties are
// broken by this order.
var Incidents = []Incident{
	IncidentFeverSpike, IncidentThrewUp, IncidentEnergyCrashed, IncidentFeelingBetter, IncidentWontEatDrink,
}

// ParseIncident matches s against the known categories exactly.
func ParseIncident(s string) (Incident, bool) {
	for _, inc := range Incidents {
		if string(inc) == s {
			return inc, true
		}
	}
	return "", false
}

func containsValue[T ~string](vals []T, v T) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

package scheduler

import (
	"strings"

	"github.com/alexanderramin/thea/internal/domain"
)

// ResolveIncident returns the explicit category when given, otherwise the
// classification of a non-blank description. The result may be nil.
func ResolveIncident(explicit *domain.Incident, description string) *domain.Incident {
	if explicit != nil {
		return explicit
	}
	if strings.TrimSpace(description) == "" {
		return nil
	}
	return Classify(description).Incident
}

// GentleMode reports whether an incident forces the lowest energy tier.
// "Feeling better" and no incident leave the child's stated tier in effect.
func GentleMode(incident *domain.Incident) bool {
	if incident == nil {
		return false
	}
	switch *incident {
	case domain.IncidentFeverSpike, domain.IncidentThrewUp, domain.IncidentEnergyCrashed, domain.IncidentWontEatDrink:
		return true
	default:
		return false
	}
}

// EffectiveTier is the activity tier the synthesizer draws from.
func EffectiveTier(stated domain.ChildEnergy, gentle bool) domain.ChildEnergy {
	if gentle {
		return domain.ChildEnergyLow
	}
	return stated
}

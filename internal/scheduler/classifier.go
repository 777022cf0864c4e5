package scheduler

import (
	"math"
	"strings"

	"github.com/alexanderramin/thea/internal/domain"
)

// confidenceSaturation is the keyword-word count at which confidence reaches 1.
const confidenceSaturation = 3.0

type incidentPattern struct {
	incident domain.Incident
	keywords []string
}

// incidentPatterns is ordered like domain.Incidents; ties resolve to the
// earlier entry.
var incidentPatterns = []incidentPattern{
	{domain.IncidentFeverSpike, []string{
		"fever", "temperature", "hot", "burning up", "thermometer", "degrees", "temp spike", "high temp",
	}},
	{domain.IncidentThrewUp, []string{
		"threw up", "vomit", "vomiting", "throw up", "throwing up", "puked", "puke",
		"sick to stomach", "nauseous", "nausea",
	}},
	{domain.IncidentEnergyCrashed, []string{
		"tired", "exhausted", "no energy", "energy crashed", "crash", "lethargic", "sleepy",
		"can't move", "wiped out", "sluggish", "drained",
	}},
	{domain.IncidentFeelingBetter, []string{
		"feeling better", "better now", "improved", "getting better", "perked up", "more energy",
		"seems good", "doing well", "bouncing back", "recovering",
	}},
	{domain.IncidentWontEatDrink, []string{
		"won't eat", "won't drink", "not eating", "not drinking", "refuses food", "refuses water",
		"no appetite", "can't eat", "doesn't want food",
	}},
}

// Classification is the outcome of keyword scoring. A nil Incident means no
// category matched; that is a normal result, not an error.
type Classification struct {
	Incident   *domain.Incident
	Score      int
	Confidence float64
}

// Classify scores free text against each incident's keyword list. Every
// keyword found as a case-insensitive substring contributes its word count.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	var best Classification
	for _, p := range incidentPatterns {
		score := 0
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				score += len(strings.Fields(kw))
			}
		}
		if score > best.Score {
			inc := p.incident
			best = Classification{Incident: &inc, Score: score}
		}
	}
	if best.Incident == nil {
		return Classification{}
	}
	best.Confidence = math.Min(float64(best.Score)/confidenceSaturation, 1)
	return best
}

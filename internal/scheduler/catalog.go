package scheduler

import "github.com/alexanderramin/thea/internal/domain"

// Entry is a catalog template for a plan item. Category is a stable
// presentation key; renderers map it to whatever icon they like.
type Entry struct {
	Title       string
	Description string
	Category    string
	Tags        []string
}

var activityCatalog = map[domain.ChildEnergy][]Entry{
	domain.ChildEnergyLow: {
		{Title: "Audiobook Time", Category: "rest", Tags: []string{"rest", "quiet"}},
		{Title: "Gentle Stretching", Category: "movement", Tags: []string{"movement"}},
		{Title: "Watch a Comfort Movie", Category: "screen", Tags: []string{"screen"}},
		{Title: "Listen to Soft Music", Category: "rest", Tags: []string{"rest"}},
	},
	domain.ChildEnergyMedium: {
		{Title: "Coloring / Drawing", Category: "creative", Tags: []string{"creative"}},
		{Title: "Build a Fort", Category: "play", Tags: []string{"play"}},
		{Title: "Play with Lego/Blocks", Category: "play", Tags: []string{"play"}},
		{Title: "Read a Book Together", Category: "bonding", Tags: []string{"bonding"}},
	},
	domain.ChildEnergyOkay: {
		{Title: "Dance Party (Short)", Category: "active", Tags: []string{"active"}},
		{Title: "Simple Board Game", Category: "play", Tags: []string{"play"}},
		{Title: "Help with Simple Chores", Category: "helper", Tags: []string{"helper"}},
		{Title: "Indoor Scavenger Hunt", Category: "active", Tags: []string{"active"}},
	},
}

var restCatalog = []Entry{
	{Title: "Nap / Quiet Time", Category: "rest", Tags: []string{"rest"}},
	{Title: "Cuddle Time", Category: "bonding", Tags: []string{"bonding"}},
	{Title: "Screen Free Rest", Category: "rest", Tags: []string{"rest"}},
}

var (
	snackEntry = Entry{Title: "Light Snack", Description: "Fruit, crackers, or toast", Category: "snack"}
	mealEntry  = Entry{Title: "Meal Time", Description: "Easy to digest food", Category: "meal"}
)

// Block lengths in minutes.
const (
	mealMinutes     = 45
	snackMinutes    = 20
	restMinutes     = 45
	activityMinutes = 30
	comfortMinutes  = 30
)

// ActivityPool returns the entries eligible at a tier. Okay draws from
// Medium and Okay, so the lowest-exertion items drop out once the child is up.
func ActivityPool(tier domain.ChildEnergy) []Entry {
	switch tier {
	case domain.ChildEnergyMedium:
		return concatEntries(activityCatalog[domain.ChildEnergyLow], activityCatalog[domain.ChildEnergyMedium])
	case domain.ChildEnergyOkay:
		return concatEntries(activityCatalog[domain.ChildEnergyMedium], activityCatalog[domain.ChildEnergyOkay])
	default:
		return activityCatalog[domain.ChildEnergyLow]
	}
}

// RestPool returns the rest catalog.
func RestPool() []Entry {
	return restCatalog
}

// restProbability is the chance a free slot becomes a rest block.
func restProbability(tier domain.ChildEnergy) float64 {
	switch tier {
	case domain.ChildEnergyLow:
		return 0.7
	case domain.ChildEnergyMedium:
		return 0.5
	default:
		return 0.3
	}
}

func concatEntries(parts ...[]Entry) []Entry {
	var out []Entry
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

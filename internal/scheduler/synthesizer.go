package scheduler

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
)

// SynthesisInput is everything the local generator needs for one day plan.
type SynthesisInput struct {
	Profile     domain.ChildProfile
	Medications []domain.Medication
	Now         clock.Time
	// Incident is the explicit category, if any. When nil, a non-blank
	// Description is classified instead.
	Incident    *domain.Incident
	Description string
}

// Synthesizer is the deterministic local plan generator: a greedy slot filler
// that walks the clock from now to the end of the day. It never looks ahead
// or backtracks.
type Synthesizer struct {
	rand  RandSource
	newID IDSource
}

type Option func(*Synthesizer)

// WithRand replaces the random source.
func WithRand(r RandSource) Option {
	return func(s *Synthesizer) { s.rand = r }
}

// WithRandSeed seeds the default source, for reproducible plans.
func WithRandSeed(seed uint64) Option {
	return func(s *Synthesizer) { s.rand = NewRandSource(seed) }
}

// WithIDSource replaces the item id generator.
func WithIDSource(ids IDSource) Option {
	return func(s *Synthesizer) { s.newID = ids }
}

func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rand:  NewRandSource(rand.Uint64()),
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the plan for [in.Now, EndOfDay(in.Now)): an optional
// comfort block, the main rest/activity/meal loop, then medication reminders,
// stably sorted by time.
func (s *Synthesizer) Synthesize(in SynthesisInput) []domain.PlanItem {
	incident := ResolveIncident(in.Incident, in.Description)
	gentle := GentleMode(incident)
	tier := EffectiveTier(in.Profile.ChildEnergyLevel, gentle)
	end := clock.EndOfDay(in.Now)

	var plan []domain.PlanItem
	cursor := in.Now
	exhausted := false

	if incident != nil {
		plan = append(plan, s.comfortItem(*incident, cursor))
		cursor, exhausted = cursor.Add(comfortMinutes)
	}

	lastType := domain.ItemType("")
	for !exhausted && end.Sub(cursor) > 0 {
		itemType, entry, minutes := s.nextBlock(cursor, lastType, tier)
		plan = append(plan, s.item(itemType, entry, cursor, gentle))
		lastType = itemType
		cursor, exhausted = cursor.Add(minutes)
	}

	plan = append(plan, ProjectDoses(in.Medications, in.Now, end, s.newID)...)
	SortByTime(plan)
	return plan
}

// nextBlock decides the block at cursor. Meals are pinned to the lunch and
// dinner hours, snacks to mid-morning and mid-afternoon; back-to-back meal
// blocks are never emitted.
func (s *Synthesizer) nextBlock(cursor clock.Time, lastType domain.ItemType, tier domain.ChildEnergy) (domain.ItemType, Entry, int) {
	hour := cursor.Hour()
	afterMeal := lastType == domain.ItemMeal

	switch {
	case (hour == 12 || hour == 18) && !afterMeal:
		return domain.ItemMeal, mealEntry, mealMinutes
	case (hour == 10 || hour == 15) && !afterMeal:
		return domain.ItemMeal, snackEntry, snackMinutes
	}

	if s.rand.Float64() < restProbability(tier) {
		return domain.ItemRest, s.pick(RestPool()), restMinutes
	}
	return domain.ItemActivity, s.pick(ActivityPool(tier)), activityMinutes
}

func (s *Synthesizer) pick(entries []Entry) Entry {
	return entries[s.rand.IntN(len(entries))]
}

func (s *Synthesizer) item(t domain.ItemType, e Entry, at clock.Time, gentle bool) domain.PlanItem {
	return domain.PlanItem{
		ID:          s.newID(),
		Type:        t,
		Title:       e.Title,
		Description: e.Description,
		Time:        at.String(),
		Category:    e.Category,
		Tags:        append([]string{}, e.Tags...),
		Status:      domain.StatusPending,
		IsGentle:    gentle,
	}
}

func (s *Synthesizer) comfortItem(incident domain.Incident, at clock.Time) domain.PlanItem {
	return domain.PlanItem{
		ID:          s.newID(),
		Type:        domain.ItemRest,
		Title:       "Immediate Rest & Comfort",
		Description: fmt.Sprintf("Take a moment to handle the %s.", strings.ToLower(string(incident))),
		Time:        at.String(),
		Category:    "care",
		Tags:        []string{"incident"},
		Status:      domain.StatusPending,
		IsGentle:    true,
	}
}

// SortByTime orders items by slot start. The sort is stable, so items
// sharing a slot keep their emission order.
func SortByTime(items []domain.PlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return clock.Compare(items[i].Time, items[j].Time) < 0
	})
}

package scheduler

import (
	"testing"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesOf(entries []Entry) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		out[e.Title] = true
	}
	return out
}

func TestSynthesize_AllRestAfternoon(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0}}), WithIDSource(sequentialIDs()))

	plan := s.Synthesize(SynthesisInput{
		Profile: testProfile(domain.ChildEnergyLow),
		Now:     clock.MustParse("13:00"),
	})

	wantTimes := []string{"13:00", "13:45", "14:30", "15:15", "15:35", "16:20", "17:05", "17:50", "18:35", "19:20"}
	wantTypes := []domain.ItemType{
		domain.ItemRest, domain.ItemRest, domain.ItemRest, domain.ItemMeal, domain.ItemRest,
		domain.ItemRest, domain.ItemRest, domain.ItemRest, domain.ItemMeal, domain.ItemRest,
	}
	require.Len(t, plan, len(wantTimes))
	for i := range plan {
		assert.Equal(t, wantTimes[i], plan[i].Time, "item %d", i)
		assert.Equal(t, wantTypes[i], plan[i].Type, "item %d", i)
	}
	assert.Equal(t, "Light Snack", plan[3].Title)
	assert.Equal(t, "Meal Time", plan[8].Title)
}

func TestSynthesize_Invariants(t *testing.T) {
	for _, energy := range domain.ChildEnergyLevels {
		for _, now := range []string{"06:00", "09:17", "12:00", "18:59", "19:00", "22:40"} {
			s := NewSynthesizer(WithRand(NewRandSource(42)))
			plan := s.Synthesize(SynthesisInput{
				Profile: testProfile(energy),
				Medications: []domain.Medication{
					{Name: "Tylenol", Dosage: "5ml", Frequency: domain.Every4h, TimeLastGiven: "07:00"},
				},
				Now: clock.MustParse(now),
			})

			end := clock.EndOfDay(clock.MustParse(now)).String()
			ids := make(map[string]bool)
			prevType := domain.ItemType("")
			for i, item := range plan {
				assert.Equal(t, domain.StatusPending, item.Status)
				assert.False(t, ids[item.ID], "duplicate id")
				ids[item.ID] = true
				assert.GreaterOrEqual(t, item.Time, now)
				assert.Less(t, item.Time, end)
				if i > 0 {
					assert.LessOrEqual(t, plan[i-1].Time, item.Time)
				}
				if item.Type != domain.ItemMedication {
					assert.False(t, prevType == domain.ItemMeal && item.Type == domain.ItemMeal, "back-to-back meals at %s", item.Time)
					prevType = item.Type
				}
			}
			require.NotEmpty(t, plan, "energy=%s now=%s", energy, now)
			assert.Equal(t, now, plan[0].Time)
		}
	}
}

func TestSynthesize_GentleIncidentForcesLowTier(t *testing.T) {
	s := NewSynthesizer(
		WithRand(&scriptedRand{floats: []float64{0.95}, ints: []int{0, 1, 2, 3}}),
		WithIDSource(sequentialIDs()),
	)

	plan := s.Synthesize(SynthesisInput{
		Profile:  testProfile(domain.ChildEnergyOkay),
		Now:      clock.MustParse("09:00"),
		Incident: incidentPtr(domain.IncidentFeverSpike),
	})

	require.NotEmpty(t, plan)
	first := plan[0]
	assert.Equal(t, domain.ItemRest, first.Type)
	assert.Equal(t, "Immediate Rest & Comfort", first.Title)
	assert.Equal(t, "Take a moment to handle the fever spike.", first.Description)
	assert.Equal(t, "09:00", first.Time)
	assert.True(t, first.IsGentle)
	assert.Equal(t, "09:30", plan[1].Time)

	low := titlesOf(ActivityPool(domain.ChildEnergyLow))
	for _, item := range plan[1:] {
		assert.True(t, item.IsGentle, item.Title)
		if item.Type == domain.ItemActivity {
			assert.True(t, low[item.Title], "non-gentle activity %q", item.Title)
		}
	}
}

func TestSynthesize_FeelingBetterKeepsStatedTier(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0.95}, ints: []int{0, 1, 2, 3, 4, 5, 6, 7}}))

	plan := s.Synthesize(SynthesisInput{
		Profile:  testProfile(domain.ChildEnergyOkay),
		Now:      clock.MustParse("13:00"),
		Incident: incidentPtr(domain.IncidentFeelingBetter),
	})

	require.NotEmpty(t, plan)
	assert.Equal(t, "Immediate Rest & Comfort", plan[0].Title)
	assert.True(t, plan[0].IsGentle)

	okayPool := titlesOf(ActivityPool(domain.ChildEnergyOkay))
	activities := 0
	for _, item := range plan[1:] {
		assert.False(t, item.IsGentle, item.Title)
		if item.Type == domain.ItemActivity {
			activities++
			assert.True(t, okayPool[item.Title], item.Title)
		}
	}
	assert.Positive(t, activities)
}

func TestSynthesize_DescriptionIsClassified(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0.5}}))

	plan := s.Synthesize(SynthesisInput{
		Profile:     testProfile(domain.ChildEnergyOkay),
		Now:         clock.MustParse("16:00"),
		Description: "she is burning up, thermometer says 39 degrees",
	})

	require.NotEmpty(t, plan)
	assert.Equal(t, "Take a moment to handle the fever spike.", plan[0].Description)
	for _, item := range plan {
		assert.True(t, item.IsGentle)
	}
}

func TestSynthesize_UnclassifiedDescriptionHasNoComfortBlock(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0.9}}))

	plan := s.Synthesize(SynthesisInput{
		Profile:     testProfile(domain.ChildEnergyMedium),
		Now:         clock.MustParse("16:00"),
		Description: "grandma came over",
	})

	require.NotEmpty(t, plan)
	assert.NotEqual(t, "Immediate Rest & Comfort", plan[0].Title)
	for _, item := range plan {
		assert.False(t, item.IsGentle)
	}
}

func TestSynthesize_MedicationSharingSlotSortsAfterLoopItem(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0}}), WithIDSource(sequentialIDs()))

	plan := s.Synthesize(SynthesisInput{
		Profile: testProfile(domain.ChildEnergyLow),
		Medications: []domain.Medication{
			{Name: "Advil", Dosage: "2.5ml", Frequency: domain.Every4h, TimeLastGiven: "09:45"},
		},
		Now: clock.MustParse("13:00"),
	})

	var at1345 []domain.PlanItem
	for _, item := range plan {
		if item.Time == "13:45" {
			at1345 = append(at1345, item)
		}
	}
	require.Len(t, at1345, 2)
	assert.Equal(t, domain.ItemRest, at1345[0].Type)
	assert.Equal(t, domain.ItemMedication, at1345[1].Type)
	assert.Equal(t, "Give Advil", at1345[1].Title)
}

func TestSynthesize_LateWindow(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0}}))

	plan := s.Synthesize(SynthesisInput{Profile: testProfile(domain.ChildEnergyLow), Now: clock.MustParse("22:50")})
	require.Len(t, plan, 1)
	assert.Equal(t, "22:50", plan[0].Time)

	plan = s.Synthesize(SynthesisInput{Profile: testProfile(domain.ChildEnergyLow), Now: clock.MustParse("23:10")})
	assert.Empty(t, plan)

	plan = s.Synthesize(SynthesisInput{
		Profile:  testProfile(domain.ChildEnergyLow),
		Now:      clock.MustParse("23:10"),
		Incident: incidentPtr(domain.IncidentThrewUp),
	})
	require.Len(t, plan, 1)
	assert.Equal(t, "Immediate Rest & Comfort", plan[0].Title)
}

func TestSynthesize_CatalogTagsAreCopied(t *testing.T) {
	s := NewSynthesizer(WithRand(&scriptedRand{floats: []float64{0}}))
	plan := s.Synthesize(SynthesisInput{Profile: testProfile(domain.ChildEnergyLow), Now: clock.MustParse("13:00")})
	require.NotEmpty(t, plan)

	plan[0].Tags[0] = "mutated"
	assert.NotEqual(t, "mutated", restCatalog[0].Tags[0])
}

func TestActivityPool(t *testing.T) {
	assert.Len(t, ActivityPool(domain.ChildEnergyLow), 4)
	assert.Len(t, ActivityPool(domain.ChildEnergyMedium), 8)

	okay := titlesOf(ActivityPool(domain.ChildEnergyOkay))
	assert.Len(t, okay, 8)
	assert.False(t, okay["Audiobook Time"])
	assert.True(t, okay["Build a Fort"])
	assert.True(t, okay["Dance Party (Short)"])
}

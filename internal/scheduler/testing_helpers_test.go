package scheduler

import (
	"fmt"

	"github.com/alexanderramin/thea/internal/domain"
)

// scriptedRand replays fixed sequences, cycling when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

func sequentialIDs() IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func testProfile(energy domain.ChildEnergy) domain.ChildProfile {
	return domain.ChildProfile{
		Name:              "Mia",
		Age:               5,
		IllnessTypes:      []domain.IllnessType{domain.IllnessFlu},
		ChildEnergyLevel:  energy,
		ParentEnergyLevel: domain.ParentEnergyMedium,
	}
}

func incidentPtr(i domain.Incident) *domain.Incident { return &i }

package scheduler

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// RandSource supplies the randomness behind rest/activity choice and catalog
// picks. Tests substitute a scripted source.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// IDSource generates plan item ids.
type IDSource func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.New().String()
}

// lockedRand guards a *rand.Rand shared across concurrent synthesis calls.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a goroutine-safe source seeded with seed.
func NewRandSource(seed uint64) RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

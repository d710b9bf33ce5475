// Package customer creates customers and holds the bounded FIFO queue of
// customers waiting at the stall.
package customer

import (
	"github.com/google/uuid"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/rng"
)

const (
	basePatience   = 100
	patienceSpread = 20
	minPatience    = 30
	maxPatience    = 100

	minPosition = 10
	maxPosition = 90
)

// New creates a customer with a random archetype, patience and position.
// The order is left empty; the caller attaches one right after.
func New(seed *int64) domain.Customer {
	src := rng.New(seed)

	arch := domain.Archetypes[src.Intn(0, len(domain.Archetypes)-1)]
	patience := clamp(basePatience-src.Intn(0, patienceSpread), minPatience, maxPatience)

	return domain.Customer{
		ID:        "customer_" + uuid.NewString(),
		Archetype: arch,
		Patience:  patience,
		Position: domain.Position{
			X: src.Intn(minPosition, maxPosition),
			Y: src.Intn(minPosition, maxPosition),
		},
		Mood: domain.MoodNeutral,
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

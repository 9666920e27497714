package rules

import (
	"math/rand"
	"time"

	"github.com/nstehr/necro/necro-core/model"
)

// Random is the engine's only source of randomness. Inject a seeded one for
// deterministic replays.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// NewRandom returns a seeded source. A zero seed uses the current time.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// chooseWeighted picks one kind with probability proportional to its weight.
// Non-positive totals fall back to a uniform pick.
func chooseWeighted(r Random, kinds []model.UnitKind, weights map[model.UnitKind]float64) model.UnitKind {
	if len(kinds) == 0 {
		return model.KindUnknown
	}
	total := 0.0
	for _, k := range kinds {
		total += weights[k]
	}
	if total <= 0 {
		return kinds[r.Intn(len(kinds))]
	}
	x := r.Float64() * total
	upto := 0.0
	for _, k := range kinds {
		upto += weights[k]
		if x < upto {
			return k
		}
	}
	return kinds[len(kinds)-1]
}

// sampleWeights draws a random normalised weight vector over kinds.
func sampleWeights(r Random, kinds []model.UnitKind) map[model.UnitKind]float64 {
	w := make(map[model.UnitKind]float64, len(kinds))
	total := 0.0
	for _, k := range kinds {
		v := r.Float64()
		w[k] = v
		total += v
	}
	if total == 0 {
		return w
	}
	for k := range w {
		w[k] /= total
	}
	return w
}

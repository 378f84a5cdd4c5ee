package bench

import (
	"math"
	"math/rand"
)

// Dataset is a named value sequence the suite measures codecs against.
type Dataset struct {
	Name   string
	Values []uint32
}

// Generator produces synthetic datasets. A generator is deterministic for a
// given seed, so runs are reproducible.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Uniform draws n values uniformly from [0, max].
func (g *Generator) Uniform(n int, max uint32) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = uint32(g.rng.Int63n(int64(max) + 1))
	}
	return values
}

// PowerLaw draws n values in [0, max] skewed towards 0; larger alpha skews
// harder. The occasional large value makes these datasets the overflow
// variant's home ground.
func (g *Generator) PowerLaw(n int, max uint32, alpha float64) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = uint32(float64(max) * math.Pow(g.rng.Float64(), alpha))
	}
	return values
}

// WithOutliers draws n values uniformly from [0, max], replacing roughly
// share of them with values from (max, outlierMax]. outlierMax must exceed
// max.
func (g *Generator) WithOutliers(n int, max, outlierMax uint32, share float64) []uint32 {
	values := g.Uniform(n, max)
	for i := range values {
		if g.rng.Float64() < share {
			values[i] = max + 1 + uint32(g.rng.Int63n(int64(outlierMax)-int64(max)))
		}
	}
	return values
}

// Sequential returns start, start+1, ... start+n-1.
func (g *Generator) Sequential(n int, start uint32) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = start + uint32(i)
	}
	return values
}

// DefaultDatasets is the standard benchmark input: two uniform ranges, a
// power-law distribution, a uniform range with 5% outliers, and a strictly
// increasing sequence.
func DefaultDatasets(seed int64, n int) []Dataset {
	g := NewGenerator(seed)
	return []Dataset{
		{Name: "uniform-small", Values: g.Uniform(n, 255)},
		{Name: "uniform-12bit", Values: g.Uniform(n, 4095)},
		{Name: "power-law", Values: g.PowerLaw(n, 1<<20, 4)},
		{Name: "outliers-5pct", Values: g.WithOutliers(n, 255, 1<<20, 0.05)},
		{Name: "sequential", Values: g.Sequential(n, 0)},
	}
}

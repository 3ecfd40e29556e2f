package particle

import (
	"image/color"
	"math/rand/v2"
)

// Source is the randomness the emitter draws from.
// *rand.Rand from math/rand/v2 satisfies it; tests inject a seeded one.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// globalSource adapts the package-level math/rand/v2 functions.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// DefaultSource is the process-wide unseeded source.
var DefaultSource Source = globalSource{}

// RandomInRange returns a uniform value in [min, max], swapping the bounds when min > max.
func RandomInRange(src Source, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	return min + src.Float64()*(max-min)
}

// Sample draws a uniform value from r.
func (r Range) Sample(src Source) float64 {
	return RandomInRange(src, r.Min, r.Max)
}

// PickColor returns a uniform element of palette, or fallback when it is empty.
func PickColor(src Source, palette []color.RGBA, fallback color.RGBA) color.RGBA {
	if len(palette) == 0 {
		return fallback
	}
	return palette[src.IntN(len(palette))]
}

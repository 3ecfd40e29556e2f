// Package particle provides the value primitives shared by the confetti engine:
// inclusive numeric ranges, an injectable random source and uniform sampling.
//
// Ranges are never rejected. A range whose Min exceeds its Max is swapped at
// sampling time so that emission cannot fail on a badly tuned configuration.
package particle

// Range is an inclusive [Min, Max] interval used for every randomized particle attribute.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// R is shorthand for building a Range.
func R(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Normalized returns the range with Min <= Max, swapping the bounds if needed.
func (r Range) Normalized() Range {
	if r.Min > r.Max {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}

// Lo returns the smaller bound.
func (r Range) Lo() float64 {
	return r.Normalized().Min
}

// Hi returns the larger bound.
func (r Range) Hi() float64 {
	return r.Normalized().Max
}

// Contains reports whether v lies in the normalized range, bounds included.
func (r Range) Contains(v float64) bool {
	n := r.Normalized()
	return v >= n.Min && v <= n.Max
}

// Point is a 2D position in screen pixels (y grows downwards).
type Point struct {
	X float64
	Y float64
}

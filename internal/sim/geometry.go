package sim

import (
	"math"

	"github.com/paulmach/orb"
)

// orb.Point carries no arithmetic, so the few vector operations the step
// needs live here.

func add(a, b orb.Point) orb.Point {
	return orb.Point{a[0] + b[0], a[1] + b[1]}
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func scale(p orb.Point, f float64) orb.Point {
	return orb.Point{p[0] * f, p[1] * f}
}

func length(p orb.Point) float64 {
	return math.Hypot(p[0], p[1])
}

// unit normalizes p. ok is false when p has no usable direction.
func unit(p orb.Point) (u orb.Point, ok bool) {
	l := length(p)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return orb.Point{}, false
	}
	return orb.Point{p[0] / l, p[1] / l}, true
}

// clamp pulls p inside b.
func clamp(p orb.Point, b orb.Bound) orb.Point {
	return orb.Point{
		math.Max(b.Min[0], math.Min(b.Max[0], p[0])),
		math.Max(b.Min[1], math.Min(b.Max[1], p[1])),
	}
}

// Viewport returns the bound [0,width]×[0,height].
func Viewport(width, height float64) orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{width, height}}
}

package sim

import (
	"math"

	"github.com/paulmach/orb"
)

// binSize is the edge of a grid cell.
const binSize = SeparationRadius

type cell struct{ x, y int }

// bins is a uniform grid over snapshot indices.
type bins struct {
	cells map[cell][]int
}

func newBins() *bins {
	return &bins{cells: make(map[cell][]int)}
}

func cellOf(p orb.Point) cell {
	return cell{int(math.Floor(p[0] / binSize)), int(math.Floor(p[1] / binSize))}
}

// build assigns every agent to its cell, reusing the previous frame's slices.
func (b *bins) build(agents []Agent) {
	for k, v := range b.cells {
		b.cells[k] = v[:0]
	}
	for i, a := range agents {
		c := cellOf(a.Position)
		b.cells[c] = append(b.cells[c], i)
	}
}

// within calls fn with every index whose cell overlaps the square of half
// side r around p. Order is unspecified.
func (b *bins) within(p orb.Point, r float64, fn func(i int)) {
	lo := cellOf(orb.Point{p[0] - r, p[1] - r})
	hi := cellOf(orb.Point{p[0] + r, p[1] + r})

	// Wide queries walk the occupied cells instead of the whole square.
	if span := float64(hi.x-lo.x+1) * float64(hi.y-lo.y+1); span > float64(len(b.cells)) {
		for c, idx := range b.cells {
			if c.x < lo.x || c.x > hi.x || c.y < lo.y || c.y > hi.y {
				continue
			}
			for _, i := range idx {
				fn(i)
			}
		}
		return
	}

	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for _, i := range b.cells[cell{x, y}] {
				fn(i)
			}
		}
	}
}

package cuebox

import "math"

// axis a box can be nudged along while resolving conflicts
type axis string

const (
	axisPlusX  axis = "+x"
	axisMinusX axis = "-x"
	axisPlusY  axis = "+y"
	axisMinusY axis = "-y"
)

// edges closer than this are treated as coincident
const epsilon = 1e-9

// box is an axis-aligned rectangle in surface pixels.
type box struct {
	left, top, width, height float64
	lineHeight               float64
}

func (b box) right() float64  { return b.left + b.width }
func (b box) bottom() float64 { return b.top + b.height }

// moves the box by one line height along a
func (b *box) move(a axis) {
	b.moveBy(a, b.lineHeight)
}

func (b *box) moveBy(a axis, delta float64) {
	switch a {
	case axisPlusX:
		b.left += delta
	case axisMinusX:
		b.left -= delta
	case axisPlusY:
		b.top += delta
	case axisMinusY:
		b.top -= delta
	}
}

// touching edges do not overlap
func (b box) overlaps(o box) bool {
	return b.left < o.right()-epsilon &&
		b.right() > o.left+epsilon &&
		b.top < o.bottom()-epsilon &&
		b.bottom() > o.top+epsilon
}

func (b box) overlapsAny(others []box) bool {
	for _, o := range others {
		if b.overlaps(o) {
			return true
		}
	}
	return false
}

func (b box) within(c box) bool {
	return b.top >= c.top-epsilon &&
		b.bottom() <= c.bottom()+epsilon &&
		b.left >= c.left-epsilon &&
		b.right() <= c.right()+epsilon
}

// reports whether the box sticks out of c on the edge it moves away from
// when nudged along a
func (b box) overlapsOppositeAxis(c box, a axis) bool {
	switch a {
	case axisPlusX:
		return b.left < c.left-epsilon
	case axisMinusX:
		return b.right() > c.right()+epsilon
	case axisPlusY:
		return b.top < c.top-epsilon
	case axisMinusY:
		return b.bottom() > c.bottom()+epsilon
	}
	return false
}

// fraction of the box's own area that lies inside c
func (b box) intersectPercentage(c box) float64 {
	area := b.width * b.height
	if area <= 0 {
		return 0
	}
	x := math.Max(0, math.Min(b.right(), c.right())-math.Max(b.left, c.left))
	y := math.Max(0, math.Min(b.bottom(), c.bottom())-math.Max(b.top, c.top))
	return x * y / area
}

// edge offsets of the box measured inward from the edges of c
func (b box) relativeTo(c box) (top, right, bottom, left float64) {
	return b.top - c.top,
		c.right() - b.right(),
		c.bottom() - b.bottom(),
		b.left - c.left
}

package tracking

import (
	"image"
	"math"
)

// Moments are the spatial moments of a closed polygon up to first order.
type Moments struct {
	M00 float64 // enclosed area
	M10 float64 // first moment about the y axis
	M01 float64 // first moment about the x axis
}

// PolygonMoments integrates a closed contour with Green's theorem, the same
// way OpenCV computes contour moments. Orientation is normalised so M00 is
// never negative. Fewer than three points yield zero moments.
func PolygonMoments(pts []image.Point) Moments {
	n := len(pts)
	if n < 3 {
		return Moments{}
	}

	var a00, a10, a01 float64
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		xi, yi := float64(p.X), float64(p.Y)
		xj, yj := float64(q.X), float64(q.Y)

		cross := xi*yj - xj*yi
		a00 += cross
		a10 += cross * (xi + xj)
		a01 += cross * (yi + yj)
	}

	m := Moments{M00: a00 / 2, M10: a10 / 6, M01: a01 / 6}
	if m.M00 < 0 {
		m.M00, m.M10, m.M01 = -m.M00, -m.M10, -m.M01
	}
	return m
}

// Area returns the enclosed area.
func (m Moments) Area() float64 {
	return math.Abs(m.M00)
}

// Centroid returns the area-weighted centre truncated to whole pixels.
// ok is false when the polygon encloses no area.
func (m Moments) Centroid() (c image.Point, ok bool) {
	if m.M00 == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(m.M10/m.M00), int(m.M01/m.M00)), true
}

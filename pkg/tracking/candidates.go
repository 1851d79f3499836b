package tracking

import (
	"image"

	"gocv.io/x/gocv"
)

// MarkerVertices is the vertex count a simplified contour must have to
// be considered a marker.
const MarkerVertices = 4

// Candidate is an outer contour of the mask with its simplified vertex count.
type Candidate struct {
	Contour  []image.Point
	Vertices int
}

// Qualifies reports whether the candidate approximates a quadrilateral.
func (c Candidate) Qualifies() bool {
	return c.Vertices == MarkerVertices
}

// FindCandidates extracts the outermost contours of mask and keeps those whose
// polygon approximation, with tolerance epsilonFactor × perimeter, has exactly
// four vertices. Results keep the contour extraction order, which is what
// Extract uses to break area ties. An empty result is not an error.
func FindCandidates(mask gocv.Mat, epsilonFactor float64) []Candidate {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var out []Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		perimeter := gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, epsilonFactor*perimeter, true)
		c := Candidate{
			Contour:  contour.ToPoints(),
			Vertices: approx.Size(),
		}
		approx.Close()

		if c.Qualifies() {
			out = append(out, c)
		}
	}
	return out
}

package tracking

import "image"

// State is the tracking state threaded through each loop iteration.
// It is a plain value: each iteration takes the previous State and
// returns the next one.
type State struct {
	// Centroid of the selected marker this frame; nil when nothing usable was seen.
	Centroid *image.Point `json:"centroid,omitempty"`

	// Area of the selected marker, or the last known area when nothing was seen.
	Area float64 `json:"area"`

	// PreviousArea is the area held before the most recent detection.
	PreviousArea float64 `json:"previous_area"`
}

// HasTarget reports whether this frame produced a centroid.
func (s State) HasTarget() bool {
	return s.Centroid != nil
}

// hold returns prev with the centroid cleared.
func hold(prev State) State {
	prev.Centroid = nil
	return prev
}

// Extract picks the candidate with the largest enclosed area and computes its
// centroid. Equal areas resolve to the earliest candidate in the slice.
//
// With no candidates, or when the winner encloses zero area, the previous area
// is held and no centroid is reported.
func Extract(candidates []Candidate, prev State) State {
	best := -1
	var bestMoments Moments
	for i, c := range candidates {
		m := PolygonMoments(c.Contour)
		if best < 0 || m.Area() > bestMoments.Area() {
			best, bestMoments = i, m
		}
	}
	if best < 0 {
		return hold(prev)
	}

	centroid, ok := bestMoments.Centroid()
	if !ok {
		return hold(prev)
	}

	return State{
		Centroid:     &centroid,
		Area:         bestMoments.Area(),
		PreviousArea: prev.Area,
	}
}

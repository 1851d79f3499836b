package tracking

import (
	"fmt"

	"gocv.io/x/gocv"
)

// OpenCV 8-bit HSV: hue is halved into [0,180), saturation and value span [0,255].
const (
	HueLimit = 180

	// Saturation and value bounds are fixed policy, not inputs.
	MinSaturation = 100
	MinValue      = 100
	MaxSaturation = 255
	MaxValue      = 255
)

// ColorTarget selects pixels whose hue lies within Tolerance of Hue.
type ColorTarget struct {
	Hue       int
	Tolerance int
}

// HueRange is an inclusive hue interval inside [0, HueLimit).
type HueRange struct {
	Lo, Hi int
}

// Ranges returns the hue intervals covered by [Hue-Tolerance, Hue+Tolerance].
// The window wraps around the hue circle, so a window crossing 0 or 179 is
// split into two intervals. A window as wide as the circle covers everything.
func (t ColorTarget) Ranges() []HueRange {
	lo, hi := t.Hue-t.Tolerance, t.Hue+t.Tolerance
	switch {
	case hi-lo+1 >= HueLimit:
		return []HueRange{{0, HueLimit - 1}}
	case lo < 0:
		return []HueRange{{0, hi}, {lo + HueLimit, HueLimit - 1}}
	case hi >= HueLimit:
		return []HueRange{{lo, HueLimit - 1}, {0, hi - HueLimit}}
	default:
		return []HueRange{{lo, hi}}
	}
}

// Segment converts a BGR frame to HSV and returns a binary mask (0/255,
// single channel, same size as frame) of pixels matching target.
// The caller owns the returned Mat.
func Segment(frame gocv.Mat, target ColorTarget) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("segment: empty frame")
	}
	if frame.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("segment: want 3-channel BGR frame, got %d channels", frame.Channels())
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMatWithSize(frame.Rows(), frame.Cols(), gocv.MatTypeCV8U)
	part := gocv.NewMat()
	defer part.Close()

	for i, r := range target.Ranges() {
		lower := gocv.NewScalar(float64(r.Lo), MinSaturation, MinValue, 0)
		upper := gocv.NewScalar(float64(r.Hi), MaxSaturation, MaxValue, 0)
		if i == 0 {
			gocv.InRangeWithScalar(hsv, lower, upper, &mask)
			continue
		}
		gocv.InRangeWithScalar(hsv, lower, upper, &part)
		gocv.BitwiseOr(mask, part, &mask)
	}

	return mask, nil
}

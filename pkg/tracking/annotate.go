package tracking

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	markerColor = color.RGBA{R: 255, A: 255}
	marginColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Annotate draws the zone margins and, when present, a filled dot at the
// centroid onto frame. It is for operator display only.
func Annotate(frame *gocv.Mat, res Result) {
	if frame.Empty() {
		return
	}

	h := frame.Rows()
	for _, x := range []float64{res.Thresholds.LeftMargin, res.Thresholds.RightMargin} {
		if x <= 0 {
			continue
		}
		gocv.Line(frame, image.Pt(int(x), 0), image.Pt(int(x), h-1), marginColor, 1)
	}

	if c := res.State.Centroid; c != nil {
		gocv.Circle(frame, *c, 5, markerColor, -1)
	}
}

package tracking

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

var (
	yellow = color.RGBA{R: 255, G: 255, A: 255} // BGR (0,255,255) -> HSV (30,255,255)
	blue   = color.RGBA{B: 255, A: 255}         // HSV hue 120
	dimYel = color.RGBA{R: 60, G: 60, A: 255}   // yellow hue, value below 100
)

// blankFrame returns a black BGR frame.
func blankFrame(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC3)
}

// fillRect paints a solid rectangle covering pixels [r.Min, r.Max).
func fillRect(m *gocv.Mat, r image.Rectangle, c color.RGBA) {
	gocv.Rectangle(m, r, c, -1)
}

// squareAt returns a side×side rectangle centred on (cx, cy).
func squareAt(cx, cy, side int) image.Rectangle {
	half := side / 2
	return image.Rect(cx-half, cy-half, cx-half+side, cy-half+side)
}

func rectContour(x0, y0, x1, y1 int) []image.Point {
	return []image.Point{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}}
}

func ptr(x, y int) *image.Point {
	p := image.Pt(x, y)
	return &p
}

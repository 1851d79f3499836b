package tracking

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"gocv.io/x/gocv"
)

func TestColorTarget_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		target ColorTarget
		want   []HueRange
	}{
		{"default yellow", ColorTarget{30, 30}, []HueRange{{0, 60}}},
		{"exact hue", ColorTarget{90, 0}, []HueRange{{90, 90}}},
		{"wraps below zero", ColorTarget{5, 10}, []HueRange{{0, 15}, {175, 179}}},
		{"wraps above 179", ColorTarget{175, 10}, []HueRange{{165, 179}, {0, 5}}},
		{"full circle", ColorTarget{90, 90}, []HueRange{{0, 179}}},
		{"wider than circle", ColorTarget{10, 200}, []HueRange{{0, 179}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.target.Ranges(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Ranges() = %v, want %v", got, tc.want)
			}
		})
	}
}

// pixelMatches applies the mask rule to a single HSV pixel.
func pixelMatches(t ColorTarget, h, s, v uint8) bool {
	if s < MinSaturation || v < MinValue {
		return false
	}
	for _, r := range t.Ranges() {
		if int(h) >= r.Lo && int(h) <= r.Hi {
			return true
		}
	}
	return false
}

func TestColorTarget_PixelRule(t *testing.T) {
	yellowTarget := ColorTarget{30, 30}
	redTarget := ColorTarget{176, 6}

	tests := []struct {
		name    string
		target  ColorTarget
		h, s, v uint8
		want    bool
	}{
		{"saturated yellow", yellowTarget, 30, 255, 255, true},
		{"lower hue edge", yellowTarget, 0, 200, 200, true},
		{"upper hue edge", yellowTarget, 60, 200, 200, true},
		{"outside hue", yellowTarget, 61, 200, 200, false},
		{"saturation at minimum", yellowTarget, 30, 100, 255, true},
		{"washed out", yellowTarget, 30, 99, 255, false},
		{"too dark", yellowTarget, 30, 255, 99, false},
		{"wrapped red high", redTarget, 178, 255, 255, true},
		{"wrapped red low", redTarget, 1, 255, 255, true},
		{"outside wrapped window", redTarget, 10, 255, 255, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pixelMatches(tc.target, tc.h, tc.s, tc.v); got != tc.want {
				t.Errorf("pixelMatches(%d,%d,%d) = %v, want %v", tc.h, tc.s, tc.v, got, tc.want)
			}
		})
	}
}

func TestSegment_NoMatchingPixels(t *testing.T) {
	frame := blankFrame(t, 64, 48)
	defer frame.Close()
	fillRect(&frame, image.Rect(10, 10, 30, 30), blue)
	fillRect(&frame, image.Rect(35, 10, 55, 30), dimYel)

	mask, err := Segment(frame, DefaultConfig().Target())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer mask.Close()

	if mask.Rows() != 48 || mask.Cols() != 64 {
		t.Errorf("mask size = %dx%d, want 64x48", mask.Cols(), mask.Rows())
	}
	if mask.Channels() != 1 {
		t.Errorf("mask channels = %d, want 1", mask.Channels())
	}
	if n := gocv.CountNonZero(mask); n != 0 {
		t.Errorf("mask has %d set pixels, want 0", n)
	}
}

func TestSegment_SelectsTargetColour(t *testing.T) {
	frame := blankFrame(t, 64, 48)
	defer frame.Close()
	fillRect(&frame, image.Rect(10, 10, 20, 20), yellow)
	fillRect(&frame, image.Rect(30, 10, 40, 20), blue)

	mask, err := Segment(frame, DefaultConfig().Target())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer mask.Close()

	if n := gocv.CountNonZero(mask); n != 100 {
		t.Errorf("mask has %d set pixels, want 100", n)
	}
	if v := mask.GetUCharAt(15, 15); v != 255 {
		t.Errorf("yellow pixel mask = %d, want 255", v)
	}
	if v := mask.GetUCharAt(15, 35); v != 0 {
		t.Errorf("blue pixel mask = %d, want 0", v)
	}
}

func TestSegment_WrapsHue(t *testing.T) {
	frame := blankFrame(t, 64, 48)
	defer frame.Close()
	fillRect(&frame, image.Rect(0, 0, 10, 10), color.RGBA{R: 255, A: 255})        // hue 0
	fillRect(&frame, image.Rect(20, 0, 30, 10), color.RGBA{R: 255, B: 43, A: 255}) // hue ~175

	mask, err := Segment(frame, ColorTarget{Hue: 176, Tolerance: 6})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer mask.Close()

	if n := gocv.CountNonZero(mask); n != 200 {
		t.Errorf("mask has %d set pixels, want 200 (both sides of the wrap)", n)
	}
}

func TestSegment_RejectsBadFrames(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	if m, err := Segment(empty, DefaultConfig().Target()); err == nil {
		m.Close()
		t.Error("expected error for empty frame")
	}

	gray := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8U)
	defer gray.Close()
	if m, err := Segment(gray, DefaultConfig().Target()); err == nil {
		m.Close()
		t.Error("expected error for single-channel frame")
	}
}

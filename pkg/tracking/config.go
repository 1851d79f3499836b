package tracking

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("tracking: invalid config")

// Config holds all tunable parameters for colour tracking
type Config struct {
	// Colour target (OpenCV 8-bit HSV: hue 0-179)
	TargetHue    int `json:"target_hue"`    // Centre hue of the marker
	HueTolerance int `json:"hue_tolerance"` // Accepted hue distance either side of TargetHue

	// Shape filter
	EpsilonFactor float64 `json:"epsilon_factor"` // Polygon simplification tolerance as a fraction of perimeter

	// Zones
	LeftMargin        float64 `json:"left_margin"`         // Fraction of frame width at or below which we turn left
	RightMargin       float64 `json:"right_margin"`        // Fraction of frame width at or above which we turn right
	AreaStopThreshold float64 `json:"area_stop_threshold"` // Candidate area (px²) at which we stop approaching

	// AreaChangeThreshold is carried for a planned Forward/Stop hysteresis
	// band and is not consulted by Decide.
	AreaChangeThreshold float64 `json:"area_change_threshold"`

	// Timing
	TargetFPS float64 `json:"target_fps"` // Loop rate; each iteration sleeps out the rest of its period
}

// DefaultConfig returns the tuning used with the yellow square marker
func DefaultConfig() Config {
	return Config{
		TargetHue:    30, // yellow
		HueTolerance: 30,

		EpsilonFactor: 0.04, // 4% of perimeter

		LeftMargin:        0.20,
		RightMargin:       0.80,
		AreaStopThreshold: 25000,

		AreaChangeThreshold: 100,

		TargetFPS: 5,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.TargetHue < 0 || c.TargetHue >= HueLimit:
		return fmt.Errorf("%w: target hue %d outside [0,%d)", ErrInvalidConfig, c.TargetHue, HueLimit)
	case c.HueTolerance < 0:
		return fmt.Errorf("%w: negative hue tolerance %d", ErrInvalidConfig, c.HueTolerance)
	case c.EpsilonFactor <= 0 || c.EpsilonFactor >= 1:
		return fmt.Errorf("%w: epsilon factor %v outside (0,1)", ErrInvalidConfig, c.EpsilonFactor)
	case c.LeftMargin < 0 || c.RightMargin > 1 || c.LeftMargin >= c.RightMargin:
		return fmt.Errorf("%w: margins %v/%v must satisfy 0 <= left < right <= 1",
			ErrInvalidConfig, c.LeftMargin, c.RightMargin)
	case c.AreaStopThreshold <= 0:
		return fmt.Errorf("%w: area stop threshold %v must be positive", ErrInvalidConfig, c.AreaStopThreshold)
	case c.AreaChangeThreshold < 0:
		return fmt.Errorf("%w: negative area change threshold %v", ErrInvalidConfig, c.AreaChangeThreshold)
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target fps %v must be positive", ErrInvalidConfig, c.TargetFPS)
	}
	return nil
}

// Target returns the colour target for segmentation.
func (c Config) Target() ColorTarget {
	return ColorTarget{Hue: c.TargetHue, Tolerance: c.HueTolerance}
}

// Thresholds returns the zone thresholds for a frame of the given width.
func (c Config) Thresholds(frameWidth int) ZoneThresholds {
	return ZoneThresholds{
		LeftMargin:        c.LeftMargin * float64(frameWidth),
		RightMargin:       c.RightMargin * float64(frameWidth),
		AreaStopThreshold: c.AreaStopThreshold,
	}
}

// Period is the target duration of one loop iteration.
func (c Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / c.TargetFPS)
}

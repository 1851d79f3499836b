// Package camera provides the frame source for the tracking loop:
// capture configuration and gocv-backed device and file readers.
package camera

import "fmt"

// Config holds frame acquisition parameters negotiated at session start.
type Config struct {
	// === Source ===
	Device int    `json:"device"` // Capture device index, used when File is empty
	File   string `json:"file"`   // Optional video file or stream URL to replay

	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Requested capture FPS
}

// Capture limits accepted by Validate.
const (
	MinWidth     = 160
	MinHeight    = 120
	MaxWidth     = 3840
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultConfig returns 640x480 at 5 fps from device 0.
// The low frame rate matches the rover's command cadence.
func DefaultConfig() Config {
	return Config{
		Device:    0,
		Width:     640,
		Height:    480,
		Framerate: 5,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device < 0 {
		errors = append(errors, "device must be >= 0")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between %d and %d", MinWidth, MaxWidth))
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between %d and %d", MinHeight, MaxHeight))
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be between 1 and %d", MaxFramerate))
	}

	return errors
}

// Describe returns a short human readable name for the source.
func (c *Config) Describe() string {
	if c.File != "" {
		return c.File
	}
	return fmt.Sprintf("device %d", c.Device)
}

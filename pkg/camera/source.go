package camera

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/internal/log"
)

// ErrEndOfStream is returned by Read when no further frame is available.
// The tracking loop treats it as a normal end of session.
var ErrEndOfStream = errors.New("camera: end of stream")

// Source delivers frames in arrival order.
type Source interface {
	// Read fills frame with the next image (BGR, 8-bit, 3 channels).
	Read(frame *gocv.Mat) error

	// Close releases the underlying device.
	Close() error
}

// Capture reads frames from an OpenCV video capture.
type Capture struct {
	vc     *gocv.VideoCapture
	config Config
}

// Open starts a capture on the configured device or file and requests
// the configured resolution and frame rate.
func Open(cfg Config) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera config: %v", errs)
	}

	var (
		vc  *gocv.VideoCapture
		err error
	)
	if cfg.File != "" {
		vc, err = gocv.VideoCaptureFile(cfg.File)
	} else {
		vc, err = gocv.VideoCaptureDevice(cfg.Device)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Describe(), err)
	}

	if cfg.File == "" {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
		vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}

	log.Info("camera open",
		"source", cfg.Describe(),
		"width", int(vc.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(vc.Get(gocv.VideoCaptureFrameHeight)))

	return &Capture{vc: vc, config: cfg}, nil
}

// Read grabs the next frame. A failed or empty read is end of stream.
func (c *Capture) Read(frame *gocv.Mat) error {
	if ok := c.vc.Read(frame); !ok || frame.Empty() {
		return ErrEndOfStream
	}
	return nil
}

// Config returns the configuration the capture was opened with.
func (c *Capture) Config() Config {
	return c.config
}

// Close releases the capture device.
func (c *Capture) Close() error {
	return c.vc.Close()
}

var _ Source = (*Capture)(nil)

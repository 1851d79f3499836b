package camera

import (
	"sync"

	"gocv.io/x/gocv"
)

// SliceSource replays a fixed list of frames, then reports end of stream.
// Useful for tests and offline replays of captured images.
type SliceSource struct {
	mu     sync.Mutex
	frames []gocv.Mat
	next   int
	closed bool
}

// NewSliceSource takes ownership of frames; Close releases them.
func NewSliceSource(frames ...gocv.Mat) *SliceSource {
	return &SliceSource{frames: frames}
}

// Read copies the next frame into frame.
func (s *SliceSource) Read(frame *gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.next >= len(s.frames) {
		return ErrEndOfStream
	}
	s.frames[s.next].CopyTo(frame)
	s.next++
	return nil
}

// Delivered returns how many frames have been read.
func (s *SliceSource) Delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Closed reports whether Close has been called.
func (s *SliceSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the held frames.
func (s *SliceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for i := range s.frames {
		s.frames[i].Close()
	}
	return nil
}

var _ Source = (*SliceSource)(nil)

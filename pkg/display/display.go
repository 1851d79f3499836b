// Package display provides operator-facing frame sinks.
package display

import (
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/pkg/tracking"
)

// Multi fans one iteration out to several sinks, in order.
type Multi []tracking.Sink

// Show implements tracking.Sink.
func (m Multi) Show(frame gocv.Mat, res tracking.Result) {
	for _, s := range m {
		if s != nil {
			s.Show(frame, res)
		}
	}
}

// SinkFunc adapts a function to tracking.Sink.
type SinkFunc func(frame gocv.Mat, res tracking.Result)

// Show implements tracking.Sink.
func (f SinkFunc) Show(frame gocv.Mat, res tracking.Result) {
	f(frame, res)
}

var (
	_ tracking.Sink = Multi(nil)
	_ tracking.Sink = SinkFunc(nil)
	_ tracking.Sink = (*Window)(nil)
)

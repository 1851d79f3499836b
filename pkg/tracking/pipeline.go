package tracking

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/pkg/robot"
)

// Result is the outcome of running one frame through the pipeline.
type Result struct {
	State      State
	Commands   []robot.Command
	Candidates int // qualifying quadrilaterals found this frame
	Width      int
	Height     int
	Thresholds ZoneThresholds
}

// Pipeline runs segmentation, shape filtering, centroid extraction and zone
// decisions for a single frame. It holds configuration only; all cross-frame
// state is passed in and returned.
type Pipeline struct {
	config Config
}

// NewPipeline validates cfg and returns a pipeline.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{config: cfg}, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Process computes the next state and the commands to emit for frame.
// It does not modify frame and has no side effects, so processing the same
// frame with the same prev always gives the same Result.
func (p *Pipeline) Process(frame gocv.Mat, prev State) (Result, error) {
	mask, err := Segment(frame, p.config.Target())
	if err != nil {
		mask.Close()
		return Result{State: hold(prev)}, fmt.Errorf("process frame: %w", err)
	}
	defer mask.Close()

	candidates := FindCandidates(mask, p.config.EpsilonFactor)
	state := Extract(candidates, prev)
	th := p.config.Thresholds(frame.Cols())

	return Result{
		State:      state,
		Commands:   Decide(state, th),
		Candidates: len(candidates),
		Width:      frame.Cols(),
		Height:     frame.Rows(),
		Thresholds: th,
	}, nil
}

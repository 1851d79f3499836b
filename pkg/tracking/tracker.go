package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/robot"
)

// FrameSource supplies frames in arrival order. Any Read error ends the session.
type FrameSource interface {
	Read(frame *gocv.Mat) error
	Close() error
}

// Sink receives the annotated frame and the result of each iteration.
// Sinks are for observation only and cannot influence decisions.
type Sink interface {
	Show(frame gocv.Mat, res Result)
}

// Phase is the scheduler lifecycle state.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseStopping
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseTerminated:
		return "terminated"
	default:
		return "idle"
	}
}

// Tracker drives the pipeline once per frame at a fixed target rate.
//
// The loop is strictly sequential: acquire, process, emit, display, pace.
// Stop requests and context cancellation are checked between iterations,
// so an iteration that has started always finishes.
type Tracker struct {
	pipeline *Pipeline
	source   FrameSource
	link     robot.Link
	sinks    []Sink
	session  string
	logger   *slog.Logger

	// Injected for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)

	phase    atomic.Int32
	frames   atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once

	// Guards pipeline and last. Tuning swaps the pipeline between iterations.
	mu   sync.RWMutex
	last Result
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSink adds a display sink.
func WithSink(s Sink) Option {
	return func(t *Tracker) {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
}

// WithClock replaces the wall clock and sleep used for pacing.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration)) Option {
	return func(t *Tracker) {
		t.now = now
		t.sleep = sleep
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(t *Tracker) {
		t.session = id
	}
}

// New creates a tracker for one session. The tracker owns source and link
// and closes both when Run returns.
func New(cfg Config, source FrameSource, link robot.Link, opts ...Option) (*Tracker, error) {
	if source == nil {
		return nil, errors.New("tracking: nil frame source")
	}
	if link == nil {
		return nil, errors.New("tracking: nil link (use robot.NewTraceLink for simulate mode)")
	}

	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		pipeline: pipeline,
		source:   source,
		link:     link,
		session:  uuid.NewString(),
		now:      time.Now,
		sleep:    sleepContext,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = log.Session(t.session)
	return t, nil
}

// SessionID identifies this tracking session.
func (t *Tracker) SessionID() string {
	return t.session
}

// Phase returns the current lifecycle phase.
func (t *Tracker) Phase() Phase {
	return Phase(t.phase.Load())
}

// Frames returns the number of completed iterations.
func (t *Tracker) Frames() uint64 {
	return t.frames.Load()
}

// Last returns the result of the most recent iteration.
func (t *Tracker) Last() Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

// Stop asks the loop to finish after the current iteration.
// Safe to call from any goroutine, any number of times.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Run processes frames until end of stream, Stop, or ctx cancellation, all of
// which return nil. A link write failure ends the loop with an error wrapping
// robot.ErrLinkWrite. Source and link are released before Run returns.
// Run may be called once.
func (t *Tracker) Run(ctx context.Context) error {
	if !t.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		return fmt.Errorf("tracking: Run called in phase %s", t.Phase())
	}

	cfg := t.Tuning()
	t.logger.Info("tracker started",
		"target_hue", cfg.TargetHue,
		"tolerance", cfg.HueTolerance,
		"fps", cfg.TargetFPS,
		"stop_area", cfg.AreaStopThreshold)

	frame := gocv.NewMat()
	defer frame.Close()

	// Pacing sleeps wake on Stop as well as on ctx.
	paceCtx, cancelPace := context.WithCancel(ctx)
	defer cancelPace()
	go func() {
		select {
		case <-t.stop:
			cancelPace()
		case <-paceCtx.Done():
		}
	}()

	state := State{}

	var runErr error
	for t.Phase() == PhaseRunning {
		start := t.now()

		t.mu.RLock()
		pipeline := t.pipeline
		t.mu.RUnlock()
		period := pipeline.Config().Period()

		if err := t.source.Read(&frame); err != nil {
			t.logger.Info("cannot receive frame, stopping", "reason", err)
			break
		}

		next, err := t.step(pipeline, frame, state)
		state = next
		if err != nil {
			runErr = err
			break
		}

		// Best effort pacing: no drift compensation, no catch-up.
		if elapsed := t.now().Sub(start); elapsed < period {
			t.sleep(paceCtx, period-elapsed)
		}

		if t.stopRequested(ctx) {
			break
		}
	}

	t.shutdown()
	return runErr
}

// step runs one frame through the pipeline, emits its commands and feeds
// the sinks. It returns the state to carry into the next iteration.
func (t *Tracker) step(pipeline *Pipeline, frame gocv.Mat, prev State) (State, error) {
	n := t.frames.Add(1)

	res, err := pipeline.Process(frame, prev)
	if err != nil {
		// A frame we cannot segment is treated like a frame with no marker.
		t.logger.Warn("frame skipped", "frame", n, "error", err)
		t.record(res)
		return res.State, nil
	}

	if res.State.HasTarget() {
		t.logger.Debug("marker",
			"frame", n,
			"area", res.State.Area,
			"x", res.State.Centroid.X,
			"y", res.State.Centroid.Y,
			"candidates", res.Candidates)
	}

	if err := robot.Emit(t.link, res.Commands...); err != nil {
		t.logger.Error("command failed", "frame", n, "commands", res.Commands, "error", err)
		return res.State, fmt.Errorf("frame %d: %w", n, err)
	}

	t.record(res)

	if len(t.sinks) > 0 {
		Annotate(&frame, res)
		for _, s := range t.sinks {
			s.Show(frame, res)
		}
	}

	return res.State, nil
}

func (t *Tracker) record(res Result) {
	t.mu.Lock()
	t.last = res
	t.mu.Unlock()
}

func (t *Tracker) stopRequested(ctx context.Context) bool {
	select {
	case <-t.stop:
		t.logger.Info("stop requested")
		return true
	case <-ctx.Done():
		t.logger.Info("context done", "reason", ctx.Err())
		return true
	default:
		return false
	}
}

func (t *Tracker) shutdown() {
	t.phase.Store(int32(PhaseStopping))

	if err := t.source.Close(); err != nil {
		t.logger.Warn("frame source close", "error", err)
	}
	if err := t.link.Close(); err != nil {
		t.logger.Warn("link close", "error", err)
	}

	t.phase.Store(int32(PhaseTerminated))
	t.logger.Info("tracker stopped", "frames", t.frames.Load())
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

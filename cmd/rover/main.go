// Rover - drives a serial-controlled vehicle towards a coloured marker
// seen by a camera.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"

	"github.com/teslashibe/go-rover/internal/config"
	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/camera"
	"github.com/teslashibe/go-rover/pkg/display"
	"github.com/teslashibe/go-rover/pkg/robot"
	"github.com/teslashibe/go-rover/pkg/tracking"
	"github.com/teslashibe/go-rover/pkg/web"
)

// HighGUI windows need the main OS thread on macOS.
func init() {
	runtime.LockOSThread()
}

type options struct {
	link     robot.LinkConfig
	camera   camera.Config
	tracking tracking.Config
	logLevel string
	window   bool
	webPort  string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Init(opts.logLevel)

	if err := run(opts); err != nil {
		log.Error("rover stopped", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if err := opts.tracking.Validate(); err != nil {
		return err
	}
	if problems := opts.camera.Validate(); len(problems) > 0 {
		return fmt.Errorf("camera config: %v", problems)
	}

	link, err := robot.Dial(opts.link)
	if err != nil {
		if errors.Is(err, robot.ErrConnect) {
			log.Error("could not connect to rover",
				"port", opts.link.Port,
				"baud", opts.link.BaudRate,
				"hint", "check the cable and port, or run with -simulate")
		}
		return err
	}

	source, err := camera.Open(opts.camera)
	if err != nil {
		link.Close()
		return err
	}

	session := uuid.NewString()

	var tracker *tracking.Tracker
	stop := func() {
		if tracker != nil {
			tracker.Stop()
		}
	}

	var (
		sinks display.Multi
		dash  *web.Server
	)
	if opts.window {
		win := display.NewWindow("rover", stop)
		defer win.Close()
		sinks = append(sinks, win)
	}
	if opts.webPort != "" {
		dash = web.NewServer(web.Options{
			Port:     opts.webPort,
			Session:  session,
			Simulate: opts.link.Simulate,
			Tracking: opts.tracking,
		})
		dash.OnStop = stop
		dash.OnTune = func(p tracking.TuningParams) (tracking.Config, error) {
			if tracker == nil {
				return opts.tracking, errors.New("tracker not started")
			}
			return tracker.SetTuning(p)
		}
		sinks = append(sinks, dash)
	}

	trackerOpts := []tracking.Option{tracking.WithSessionID(session)}
	if len(sinks) > 0 {
		trackerOpts = append(trackerOpts, tracking.WithSink(sinks))
	}

	tracker, err = tracking.New(opts.tracking, source, link, trackerOpts...)
	if err != nil {
		source.Close()
		link.Close()
		return err
	}

	if dash != nil {
		dash.StartAsync()
		defer dash.Shutdown()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = tracker.Run(ctx)
	if dash != nil {
		dash.SetPhase(tracker.Phase())
	}
	return err
}

// parseFlags builds the run configuration from defaults, environment and flags.
func parseFlags(args []string) (options, error) {
	opts := options{
		link:     robot.DefaultLinkConfig(),
		camera:   camera.DefaultConfig(),
		tracking: tracking.DefaultConfig(),
	}

	fs := flag.NewFlagSet("rover", flag.ContinueOnError)

	port := fs.String("port", config.SerialPort(config.DefaultSerialPort), "Serial device or ws:// URL of the rover (ROVER_PORT)")
	baud := fs.Int("baud", config.BaudRate(config.DefaultBaudRate), "Serial baud rate (ROVER_BAUD)")
	simulate := fs.Bool("simulate", false, "Log commands instead of sending them")

	device := fs.Int("camera", config.CameraDevice(config.DefaultCamera), "Capture device index (ROVER_CAMERA)")
	file := fs.String("file", "", "Read frames from a video file instead of a device")
	preset := fs.String("preset", "", "Camera preset: default, qvga, 720p, fast")
	width := fs.Int("width", 0, "Capture width (overrides preset)")
	height := fs.Int("height", 0, "Capture height (overrides preset)")

	hue := fs.Int("hue", opts.tracking.TargetHue, "Target hue (0-179)")
	tolerance := fs.Int("tolerance", opts.tracking.HueTolerance, "Hue tolerance")
	fps := fs.Float64("fps", opts.tracking.TargetFPS, "Control loop and capture rate (defaults to the preset's rate)")
	stopArea := fs.Float64("stop-area", opts.tracking.AreaStopThreshold, "Marker area at which the rover stops")

	window := fs.Bool("window", false, "Show annotated frames in a window (q or ESC stops)")
	web := fs.Bool("web", false, "Serve the operator dashboard (also enabled by setting ROVER_WEB_PORT)")
	webPort := fs.String("web-port", config.WebPort(config.DefaultWebPort), "Dashboard port (ROVER_WEB_PORT)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	debug := fs.Bool("debug", false, "Shorthand for -log-level debug")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fpsSet := false
	fs.Visit(func(f *flag.Flag) { fpsSet = fpsSet || f.Name == "fps" })

	if *preset != "" {
		p := camera.GetPreset(*preset)
		if p == nil {
			return opts, fmt.Errorf("unknown camera preset %q", *preset)
		}
		opts.camera = *p
	}
	opts.camera.Device = *device
	opts.camera.File = *file
	if *width > 0 {
		opts.camera.Width = *width
	}
	if *height > 0 {
		opts.camera.Height = *height
	}

	opts.link.Port, opts.link.BaudRate, opts.link.Simulate = *port, *baud, *simulate

	opts.tracking.TargetHue = *hue
	opts.tracking.HueTolerance = *tolerance
	opts.tracking.TargetFPS = *fps
	if !fpsSet && *preset != "" {
		opts.tracking.TargetFPS = float64(opts.camera.Framerate)
	}
	// One rate drives both capture and pacing.
	opts.camera.Framerate = int(math.Ceil(opts.tracking.TargetFPS))
	opts.tracking.AreaStopThreshold = *stopArea

	opts.window = *window
	if *web || config.WebRequested() {
		opts.webPort = *webPort
	}

	opts.logLevel = *logLevel
	if *debug {
		opts.logLevel = "debug"
	}
	return opts, nil
}

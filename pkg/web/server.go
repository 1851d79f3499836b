// Package web provides the operator dashboard for a tracking session.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/hub"
	"github.com/teslashibe/go-rover/pkg/protocol"
	"github.com/teslashibe/go-rover/pkg/tracking"
)

const maxLogEntries = 500

// LogEntry is one line of the dashboard log.
type LogEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"` // info, warn, error, command
	Message string `json:"message"`
}

// Options describe the session the dashboard is attached to.
type Options struct {
	Port     string
	Session  string
	Simulate bool
	Tracking tracking.Config
}

// Server is the dashboard HTTP server. It is also a tracking.Sink.
type Server struct {
	app    *fiber.App
	opts   Options
	logger *slog.Logger

	stateMu sync.RWMutex
	state   protocol.StateData
	tuning  tracking.Config

	logs   []LogEntry
	logsMu sync.RWMutex

	statusHub *hub.Hub
	logHub    *hub.Hub
	cameraHub *hub.Hub

	// OnStop is called when an operator presses stop.
	OnStop func()

	// OnTune applies operator tuning and returns the resulting config.
	OnTune func(tracking.TuningParams) (tracking.Config, error)
}

var _ tracking.Sink = (*Server)(nil)

// NewServer creates a dashboard server. Call Start or StartAsync to serve.
func NewServer(opts Options) *Server {
	s := &Server{
		opts:      opts,
		logger:    log.With("component", "web"),
		logs:      make([]LogEntry, 0, maxLogEntries),
		statusHub: hub.New("status"),
		logHub:    hub.New("logs"),
		cameraHub: hub.New("camera"),
		tuning:    opts.Tracking,
		state: protocol.StateData{
			Session:  opts.Session,
			Phase:    tracking.PhaseIdle.String(),
			Commands: []string{},
			Simulate: opts.Simulate,
		},
	}

	app := fiber.New(fiber.Config{
		AppName:               "Rover Dashboard",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleConfig)
	api.Get("/logs", s.handleGetLogs)
	api.Post("/stop", s.handleStop)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/logs", websocket.New(s.handleLogsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the hubs and serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.opts.Port)

	go s.statusHub.Run()
	go s.logHub.Run()
	go s.cameraHub.Run()

	return s.app.Listen(":" + s.opts.Port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("dashboard stopped", "error", err)
		}
	}()
}

// SetPhase records the tracker lifecycle phase and pushes it to clients.
func (s *Server) SetPhase(p tracking.Phase) {
	s.stateMu.Lock()
	s.state.Phase = p.String()
	state := s.state
	s.stateMu.Unlock()

	s.broadcastState(state)
}

// AddLog appends a dashboard log line and broadcasts it.
func (s *Server) AddLog(level, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Level:   level,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	msg, err := protocol.NewLogMessage(level, message)
	if err != nil {
		s.logger.Warn("encode log message", "error", err)
		return
	}
	s.logHub.BroadcastMessage(msg)
}

// State returns a copy of the last published tracking state.
func (s *Server) State() protocol.StateData {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	state := s.state
	state.Commands = append([]string(nil), s.state.Commands...)
	return state
}

// Tuning returns the tracking configuration last reported by the tracker.
func (s *Server) Tuning() tracking.Config {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.tuning
}

// Logs returns a copy of the log ring.
func (s *Server) Logs() []LogEntry {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return append([]LogEntry(nil), s.logs...)
}

func (s *Server) broadcastState(state protocol.StateData) {
	msg, err := protocol.NewStateMessage(state)
	if err != nil {
		s.logger.Warn("encode state message", "error", err)
		return
	}
	s.statusHub.BroadcastMessage(msg)
}

// Shutdown stops the HTTP server and disconnects all websocket clients.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.statusHub.Stop()
	s.logHub.Stop()
	s.cameraHub.Stop()
	return err
}

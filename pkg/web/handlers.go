package web

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-rover/pkg/hub"
	"github.com/teslashibe/go-rover/pkg/protocol"
	"github.com/teslashibe/go-rover/pkg/tracking"
)

//go:embed index.html
var indexHTML []byte

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

// handleStatus returns the last tracking state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.State())
}

// handleConfig returns the tracking parameters of this session
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"session":  s.opts.Session,
		"simulate": s.opts.Simulate,
		"tracking": s.Tuning(),
	})
}

// handleGetLogs returns recent log entries
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	return c.JSON(s.Logs())
}

// handleStop asks the tracker to finish its current iteration and stop.
func (s *Server) handleStop(c *fiber.Ctx) error {
	if s.OnStop == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "stop not configured",
		})
	}

	s.OnStop()
	s.SetPhase(tracking.PhaseStopping)
	s.AddLog("info", "stop requested from dashboard")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": tracking.PhaseStopping.String(),
	})
}

// handleGetTuning returns the live tracking parameters
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.Tuning())
}

// handleSetTuning applies a partial update to the live tracking parameters.
func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	if s.OnTune == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "tuning not configured",
		})
	}

	var params tracking.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if params.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no tuning parameters given",
		})
	}

	cfg, err := s.OnTune(params)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, tracking.ErrInvalidConfig) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	s.stateMu.Lock()
	s.tuning = cfg
	s.stateMu.Unlock()

	s.AddLog("info", fmt.Sprintf("tuning: hue=%d tolerance=%d margins=%.2f/%.2f stop_area=%.0f fps=%.1f",
		cfg.TargetHue, cfg.HueTolerance, cfg.LeftMargin, cfg.RightMargin, cfg.AreaStopThreshold, cfg.TargetFPS))

	return c.JSON(cfg)
}

// handleLogsWS replays the log ring, then streams new lines.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	// The write pump has not started yet, so direct writes are safe here.
	for _, entry := range s.Logs() {
		msg, err := protocol.NewLogMessage(entry.Level, entry.Message)
		if err != nil {
			continue
		}
		data, err := msg.Bytes()
		if err != nil {
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	serve(s.logHub, c)
}

// handleCameraWS streams annotated JPEG frames
func (s *Server) handleCameraWS(c *websocket.Conn) {
	serve(s.cameraHub, c)
}

// handleStatusWS sends the current state, then streams updates.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	msg, err := protocol.NewStateMessage(s.State())
	if err == nil {
		if data, err := msg.Bytes(); err == nil {
			c.WriteMessage(websocket.TextMessage, data)
		}
	}
	serve(s.statusHub, c)
}

func serve(h *hub.Hub, c *websocket.Conn) {
	client := hub.NewClient(h, c)
	if client == nil {
		return
	}
	client.Run()
}

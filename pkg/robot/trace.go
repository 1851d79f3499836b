package robot

import (
	"fmt"
	"log/slog"

	"github.com/teslashibe/go-rover/internal/log"
)

// TraceLink stands in for a vehicle in simulate mode.
// Every command is logged as a "simulated command" line and nothing is
// transmitted or retained; the log is the trace.
type TraceLink struct {
	logger *slog.Logger
}

// NewTraceLink returns a simulate-mode link. A nil logger uses the global one.
func NewTraceLink(logger *slog.Logger) *TraceLink {
	if logger == nil {
		logger = log.L()
	}
	return &TraceLink{logger: logger.With("link", "simulated")}
}

// Send logs the command. It never fails for a valid command.
func (t *TraceLink) Send(cmd Command) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}
	t.logger.Info("simulated command", "command", cmd)
	return nil
}

// Close is a no-op; there is no connection to release.
func (t *TraceLink) Close() error {
	return nil
}

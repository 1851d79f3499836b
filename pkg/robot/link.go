package robot

import (
	"strings"

	"github.com/teslashibe/go-rover/internal/config"
)

// LinkConfig selects and parameterises the actuator transport.
type LinkConfig struct {
	Port     string // serial device, or ws:// / wss:// URL
	BaudRate int    // serial only
	Simulate bool   // trace commands instead of transmitting
}

// DefaultLinkConfig returns the settings used by the stock Arduino sketch.
func DefaultLinkConfig() LinkConfig {
	return LinkConfig{
		Port:     config.DefaultSerialPort,
		BaudRate: config.DefaultBaudRate,
	}
}

// Dial opens the link described by cfg. Simulate mode never touches a port,
// so it cannot fail.
func Dial(cfg LinkConfig) (Link, error) {
	if cfg.Simulate {
		return NewTraceLink(nil), nil
	}
	if strings.HasPrefix(cfg.Port, "ws://") || strings.HasPrefix(cfg.Port, "wss://") {
		return DialWebSocket(cfg.Port)
	}
	return OpenSerial(cfg.Port, cfg.BaudRate)
}

// Emit sends cmds in order and stops at the first failure.
// There is no retry: a write failure means the control link is gone.
func Emit(s Sender, cmds ...Command) error {
	for _, cmd := range cmds {
		if err := s.Send(cmd); err != nil {
			return err
		}
	}
	return nil
}

package robot

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.bug.st/serial"

	"github.com/teslashibe/go-rover/internal/log"
)

// SerialLink writes commands to a microcontroller over a serial port.
type SerialLink struct {
	name   string
	port   io.WriteCloser
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// OpenSerial opens port at the given baud rate (8N1).
func OpenSerial(port string, baudRate int) (*SerialLink, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, port, err)
	}
	log.Info("serial link open", "port", port, "baud", baudRate)
	return newSerialLink(port, p), nil
}

func newSerialLink(name string, w io.WriteCloser) *SerialLink {
	return &SerialLink{
		name:   name,
		port:   w,
		logger: log.With("link", "serial", "port", name),
	}
}

// Send writes the command's wire form in a single write.
func (s *SerialLink) Send(cmd Command) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrLinkClosed
	}

	data := cmd.Wire()
	n, err := s.port.Write(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLinkWrite, cmd, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: %s: short write (%d of %d bytes)", ErrLinkWrite, cmd, n, len(data))
	}

	s.logger.Info("sent command", "command", cmd)
	return nil
}

// Close releases the port. Closing twice is a no-op.
func (s *SerialLink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.port.Close()
}

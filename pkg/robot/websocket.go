package robot

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-rover/internal/log"
)

// WebSocketLink drives a rover whose firmware exposes a websocket endpoint
// (e.g. an ESP32 bridge). Each command is one text frame carrying the same
// newline-terminated token used on the serial wire.
type WebSocketLink struct {
	url    string
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// DialWebSocket connects to a ws:// or wss:// URL.
func DialWebSocket(url string) (*WebSocketLink, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, url, err)
	}
	log.Info("websocket link open", "url", url)

	return &WebSocketLink{
		url:    url,
		conn:   conn,
		logger: log.With("link", "websocket", "url", url),
	}, nil
}

// Send writes the command as a single text message.
func (w *WebSocketLink) Send(cmd Command) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrLinkClosed
	}

	if err := w.conn.WriteMessage(websocket.TextMessage, cmd.Wire()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLinkWrite, cmd, err)
	}

	w.logger.Info("sent command", "command", cmd)
	return nil
}

// Close sends a close frame and drops the connection.
func (w *WebSocketLink) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return w.conn.Close()
}

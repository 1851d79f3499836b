package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-rover/pkg/protocol"
)

type fakeConn struct {
	mu      sync.Mutex
	written chan frame
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		written: make(chan frame, 16),
		closed:  make(chan struct{}),
	}
}

func (f *fakeConn) SetReadLimit(int64) {}
func (f *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) WriteMessage(mt int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch mt {
	case websocket.TextMessage:
		f.written <- frame{data: data}
	case websocket.BinaryMessage:
		f.written <- frame{binary: true, data: data}
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, f *fakeConn) frame {
	t.Helper()
	select {
	case m := <-f.written:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no message written")
		return frame{}
	}
}

func TestHubBroadcast(t *testing.T) {
	h := New("test")
	go h.Run()
	defer h.Stop()

	conn := newFakeConn()
	c := NewClient(h, conn)
	if c == nil {
		t.Fatal("NewClient() returned nil on a running hub")
	}
	go c.Run()

	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.BroadcastBinary([]byte{0xff, 0xd8})
	if m := receive(t, conn); !m.binary || len(m.data) != 2 {
		t.Errorf("got %+v, want 2-byte binary frame", m)
	}

	msg, err := protocol.NewLogMessage("info", "hello")
	if err != nil {
		t.Fatalf("NewLogMessage() error = %v", err)
	}
	if err := h.BroadcastMessage(msg); err != nil {
		t.Fatalf("BroadcastMessage() error = %v", err)
	}
	m := receive(t, conn)
	if m.binary {
		t.Fatal("protocol message sent as a binary frame")
	}
	var parsed protocol.Message
	if err := json.Unmarshal(m.data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Type != protocol.TypeLog {
		t.Errorf("Type = %q, want %q", parsed.Type, protocol.TypeLog)
	}
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	h := New("test")
	go h.Run()
	defer h.Stop()

	conn := newFakeConn()
	c := NewClient(h, conn)
	go c.Run()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	conn.Close()
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestHubStop(t *testing.T) {
	h := New("test")
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()
	waitFor(t, h.IsRunning)

	h.Stop()
	h.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	if c := NewClient(h, newFakeConn()); c != nil {
		t.Error("NewClient() on a stopped hub should return nil")
	}
}

func TestBroadcastNeverBlocks(t *testing.T) {
	h := New("idle")
	// Run is not started, so the queue fills up.
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.BroadcastBinary([]byte{byte(i)})
	}
	if h.Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", h.Dropped())
	}
}

// Package robot provides the actuator link for the rover: the command set,
// its wire form, and the transports that carry it.
//
// Interfaces are kept small so consumers depend only on what they use.
// Call sites never branch on whether a real vehicle is attached: simulate
// mode is just another Link.
package robot

// Sender transmits a single command.
type Sender interface {
	Send(cmd Command) error
}

// Link is an open actuator connection.
// Send is synchronous and has no timeout: a stalled transport stalls the caller.
type Link interface {
	Sender
	Close() error
}

var (
	_ Link = (*SerialLink)(nil)
	_ Link = (*TraceLink)(nil)
	_ Link = (*WebSocketLink)(nil)
)

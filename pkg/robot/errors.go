package robot

import "errors"

var (
	// ErrConnect is returned when a link cannot be opened.
	ErrConnect = errors.New("robot: link connect failed")

	// ErrLinkWrite is returned when a command cannot be written.
	// The control loop treats it as fatal.
	ErrLinkWrite = errors.New("robot: link write failed")

	// ErrLinkClosed is returned by Send after Close.
	ErrLinkClosed = errors.New("robot: link closed")

	// ErrInvalidCommand is returned when asked to send an unknown command.
	ErrInvalidCommand = errors.New("robot: invalid command")
)

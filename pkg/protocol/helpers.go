package protocol

// NewStateMessage wraps tracking state.
func NewStateMessage(state StateData) (*Message, error) {
	if state.Commands == nil {
		state.Commands = []string{}
	}
	return NewMessage(TypeState, state)
}

// NewCommandMessage wraps a single command.
func NewCommandMessage(session string, frame uint64, command string) (*Message, error) {
	return NewMessage(TypeCommand, CommandData{
		Session: session,
		Frame:   frame,
		Command: command,
	})
}

// NewLogMessage wraps a dashboard log line.
func NewLogMessage(level, message string) (*Message, error) {
	return NewMessage(TypeLog, LogData{Level: level, Message: message})
}

package robot

// Command is a discrete locomotion instruction for the vehicle.
type Command string

// Commands understood by the vehicle firmware.
const (
	Forward Command = "forward"
	Stop    Command = "stop"
	Left    Command = "left"
	Right   Command = "right"
)

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	switch c {
	case Forward, Stop, Left, Right:
		return true
	}
	return false
}

// Wire returns the bytes written to the link: the ASCII token followed by a newline.
func (c Command) Wire() []byte {
	return append([]byte(c), '\n')
}

func (c Command) String() string {
	return string(c)
}

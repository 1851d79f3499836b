package display

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-rover/pkg/tracking"
)

const (
	keyEsc = 27
	keyQ   = 'q'
)

// IsStopKey reports whether a WaitKey result asks to stop tracking.
func IsStopKey(key int) bool {
	return key == keyEsc || key == keyQ || key == 'Q'
}

// Window shows annotated frames in a HighGUI window.
//
// HighGUI calls must stay on the thread that created the window, which on
// macOS has to be the main thread.
type Window struct {
	win    *gocv.Window
	onStop func()
	once   sync.Once
}

// NewWindow opens a window. onStop runs once, the first time the operator
// presses q or ESC.
func NewWindow(title string, onStop func()) *Window {
	return &Window{
		win:    gocv.NewWindow(title),
		onStop: onStop,
	}
}

// Show draws the frame and polls the keyboard for 1ms.
func (w *Window) Show(frame gocv.Mat, _ tracking.Result) {
	if frame.Empty() {
		return
	}
	w.win.IMShow(frame)
	if IsStopKey(w.win.WaitKey(1)) && w.onStop != nil {
		w.once.Do(w.onStop)
	}
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

package overlay

import (
	"sync"

	"gocv.io/x/gocv"
)

// KeyEscape is the key code that closes the preview window.
const KeyEscape = 27

// Display shows annotated frames. Show reports whether the user asked to quit.
type Display interface {
	Show(img *gocv.Mat) (quit bool)
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a preview window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show draws img and polls the keyboard for one millisecond.
func (w *Window) Show(img *gocv.Mat) bool {
	w.win.IMShow(*img)
	return w.win.WaitKey(1) == KeyEscape
}

func (w *Window) Close() error {
	return w.win.Close()
}

// Recorder is a headless Display. It counts shown frames and can request
// quit after a fixed number of them.
type Recorder struct {
	// QuitAfter makes Show return true on the n-th frame when positive.
	QuitAfter int

	mu     sync.Mutex
	shown  int
	closed bool
}

// NewRecorder creates a headless display.
func NewRecorder(quitAfter int) *Recorder {
	return &Recorder{QuitAfter: quitAfter}
}

func (r *Recorder) Show(img *gocv.Mat) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown++
	return r.QuitAfter > 0 && r.shown >= r.QuitAfter
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Shown returns how many frames were displayed.
func (r *Recorder) Shown() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

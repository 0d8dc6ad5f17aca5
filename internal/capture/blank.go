package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// BlankCamera produces a fixed number of black frames and then reports
// ErrEndOfStream. It drives the frame loop when landmarks come from a
// recording rather than a live device.
type BlankCamera struct {
	width, height int
	limit         int
	mu            sync.Mutex
	served        int
	running       bool
	fps           int
}

// NewBlankCamera creates a source of n black width×height frames.
// A negative n never runs out.
func NewBlankCamera(width, height, n int) *BlankCamera {
	return &BlankCamera{
		width:  width,
		height: height,
		limit:  n,
		fps:    DefaultFPS,
	}
}

func (c *BlankCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.served = 0
	return nil
}

func (c *BlankCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *BlankCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}
	if c.limit >= 0 && c.served >= c.limit {
		return nil, ErrEndOfStream
	}
	c.served++

	mat := gocv.NewMatWithSize(c.height, c.width, gocv.MatTypeCV8UC3)
	return &mat, nil
}

func (c *BlankCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *BlankCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *BlankCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

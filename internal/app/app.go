// Package app runs the frame loop: it reads frames, asks the landmark
// provider for a hand, composes the signal and hands the result to the
// overlay and the sinks.
package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

var (
	// ErrAcquisition wraps frame source failures that end the loop.
	ErrAcquisition = errors.New("frame acquisition failed")
	// ErrMissingSource is returned by New without a camera or detector.
	ErrMissingSource = errors.New("camera and detector are required")
)

// Publisher receives every frame result. server.Hub implements it.
type Publisher interface {
	Publish(v any)
}

// FrameSink receives annotated frames as JPEG. server.FrameBuffer implements it.
type FrameSink interface {
	Put(jpeg []byte)
}

// Observer is told the label of every processed frame. plugin.Dispatcher
// implements it.
type Observer interface {
	Observe(label string, signal any) bool
}

// Config holds the loop's collaborators. Only Camera and Detector are
// required; nil sinks are skipped.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Params   hand.Params
	Loop     config.LoopConfig

	Renderer *overlay.Renderer
	Display  overlay.Display

	// Store enables the signal journal under a new session.
	Store *store.Store
	// Source is recorded on the session, e.g. "camera" or "replay".
	Source string

	Publisher Publisher
	Frames    FrameSink
	Observer  Observer

	// OnSignal is called from the loop goroutine for every frame with a hand.
	OnSignal func(Result)

	Logger *zap.Logger
}

// Stats are the loop's running counters.
type Stats struct {
	Frames  int64 `json:"frames"`
	Hands   int64 `json:"hands"`
	Skipped int64 `json:"skipped"`
}

// App is the frame loop and its state.
type App struct {
	config   Config
	logger   *zap.Logger
	composer *hand.Composer
	motion   *capture.MotionDetector

	mu        sync.RWMutex
	enabled   bool
	running   bool
	sessionID string

	frames  atomic.Int64
	hands   atomic.Int64
	skipped atomic.Int64

	// Loop goroutine only.
	lastMotion time.Time
	active     bool
	lastLabel  string
}

// New creates an App. Zero loop timings fall back to the defaults.
func New(cfg Config) (*App, error) {
	if cfg.Camera == nil || cfg.Detector == nil {
		return nil, ErrMissingSource
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	defaults := config.Default().Loop
	if cfg.Loop.ActiveWait <= 0 {
		cfg.Loop.ActiveWait = defaults.ActiveWait
	}
	if cfg.Loop.IdleWait <= 0 {
		cfg.Loop.IdleWait = defaults.IdleWait
	}
	if cfg.Loop.IdleTimeout <= 0 {
		cfg.Loop.IdleTimeout = defaults.IdleTimeout
	}
	if cfg.Source == "" {
		cfg.Source = "camera"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		config:   cfg,
		logger:   logger.Named("app"),
		composer: hand.NewComposer(cfg.Params),
		motion:   capture.NewMotionDetector(cfg.Loop.MotionThreshold),
		enabled:  true,
	}, nil
}

// SetEnabled pauses or resumes signal processing. While paused no frames
// are read and the tracking state is left alone.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled != enabled {
		a.logger.Info("processing toggled", zap.Bool("enabled", enabled))
	}
	a.enabled = enabled
}

// IsEnabled returns whether signal processing is on.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Stats returns a snapshot of the loop counters.
func (a *App) Stats() Stats {
	return Stats{
		Frames:  a.frames.Load(),
		Hands:   a.hands.Load(),
		Skipped: a.skipped.Load(),
	}
}

// SessionID returns the journal session of the current or last run, or "".
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Tracking returns the composer's tracking state. Only call it after Run
// has returned.
func (a *App) Tracking() hand.TrackingState {
	return a.composer.State()
}

func (a *App) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return fmt.Errorf("app is already running")
	}
	a.running = true
	return nil
}

func (a *App) end() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}

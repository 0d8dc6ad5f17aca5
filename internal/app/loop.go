package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

// Run drives the frame loop until ctx is cancelled, the display asks to
// quit, or a finite source runs out. It returns nil in those cases and a
// wrapped ErrAcquisition when the frame source fails.
//
// Each iteration:
//  1. read a frame (blocking)
//  2. ask the detector for a hand
//  3. compose the signal, draw it and hand the result to the sinks
//  4. show the frame
//  5. wait a bounded time on ctx, shorter while the picture moves
func (a *App) Run(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	a.frames.Store(0)
	a.hands.Store(0)
	a.skipped.Store(0)

	if err := a.config.Camera.Open(); err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer func() {
		if err := a.config.Camera.Close(); err != nil {
			a.logger.Warn("close camera", zap.Error(err))
		}
		a.motion.Close()
		if a.config.Display != nil {
			a.config.Display.Close()
		}
	}()

	a.startSession()
	defer a.finishSession()

	a.lastMotion = time.Now()
	a.active = true
	a.logger.Info("frame loop started", zap.String("source", a.config.Source))

	for {
		if ctx.Err() != nil {
			a.logger.Info("frame loop cancelled")
			return nil
		}

		if !a.IsEnabled() {
			if !sleep(ctx, a.config.Loop.IdleWait) {
				return nil
			}
			continue
		}

		stop, err := a.step()
		if err != nil {
			a.logger.Error("frame loop stopped", zap.Error(err))
			return err
		}
		if stop {
			a.logger.Info("frame loop finished", zap.Int64("frames", a.frames.Load()))
			return nil
		}

		if !sleep(ctx, a.wait()) {
			return nil
		}
	}
}

// step processes one frame. stop is true when the loop should end cleanly.
func (a *App) step() (stop bool, err error) {
	img, err := a.config.Camera.ReadFrame()
	if err != nil {
		if errors.Is(err, capture.ErrEndOfStream) {
			return true, nil
		}
		return false, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer img.Close()

	moved, _ := a.motion.Detect(img)
	if moved {
		a.lastMotion = time.Now()
	}

	snap, err := a.config.Detector.Detect(img)
	if err != nil {
		if errors.Is(err, detector.ErrSequenceExhausted) {
			return true, nil
		}
		a.skipped.Add(1)
		a.logger.Warn("detect hand, frame skipped", zap.Error(err))
		return false, nil
	}

	seq := a.frames.Add(1)
	f, ok := a.composer.Process(snap, img.Cols(), img.Rows())
	if ok {
		a.hands.Add(1)
	}

	if a.config.Renderer != nil {
		a.config.Renderer.Draw(img, snap, f, ok)
	}

	res := newResult(seq, f, ok, moved)
	a.emit(img, res)

	if a.config.Display != nil && a.config.Display.Show(img) {
		a.logger.Info("quit requested from display")
		return true, nil
	}
	return false, nil
}

// emit hands a frame result to every configured sink.
func (a *App) emit(img *gocv.Mat, res Result) {
	if res.Hand && a.config.OnSignal != nil {
		a.config.OnSignal(res)
	}
	if a.config.Publisher != nil {
		a.config.Publisher.Publish(res)
	}
	if a.config.Observer != nil {
		a.config.Observer.Observe(res.Label, res.Signal())
	}
	if a.config.Frames != nil {
		jpeg, err := overlay.EncodeJPEG(img)
		if err != nil {
			a.logger.Debug("encode frame", zap.Error(err))
		} else {
			a.config.Frames.Put(jpeg)
		}
	}
	a.journal(res)
}

// wait picks the pause before the next frame: ActiveWait while the picture
// moves, IdleWait once it has been still for IdleTimeout.
func (a *App) wait() time.Duration {
	idle := time.Since(a.lastMotion) > a.config.Loop.IdleTimeout
	if idle == a.active {
		a.active = !idle
		if a.active {
			a.logger.Debug("switched to active mode")
		} else {
			a.logger.Debug("switched to idle mode")
		}
	}
	if idle {
		return a.config.Loop.IdleWait
	}
	return a.config.Loop.ActiveWait
}

// sleep waits for d or ctx. It reports false when ctx is done.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (a *App) startSession() {
	if a.config.Store == nil {
		return
	}
	sess := &store.Session{ID: uuid.New().String(), Source: a.config.Source}
	if err := a.config.Store.Sessions().Create(sess); err != nil {
		a.logger.Warn("create session, journal disabled", zap.Error(err))
		return
	}
	a.mu.Lock()
	a.sessionID = sess.ID
	a.mu.Unlock()
	a.lastLabel = ""
	a.logger.Info("session started", zap.String("session", sess.ID))
}

func (a *App) finishSession() {
	id := a.SessionID()
	if id == "" {
		return
	}
	stats := a.Stats()
	if err := a.config.Store.Sessions().Finish(id, int(stats.Frames), int(stats.Hands)); err != nil {
		a.logger.Warn("finish session", zap.String("session", id), zap.Error(err))
	}
}

// journal appends a row whenever the emitted label changes. Frames without
// a hand write nothing but let the next signal be recorded again.
func (a *App) journal(res Result) {
	if !res.Hand {
		a.lastLabel = ""
		return
	}
	if res.Label == a.lastLabel {
		return
	}
	a.lastLabel = res.Label

	id := a.SessionID()
	if id == "" {
		return
	}

	sig := res.Signal()
	entry := &store.SignalEntry{
		SessionID: id,
		Frame:     int(res.Seq),
		Kind:      string(sig.Kind),
		Label:     res.Label,
		Text:      res.Text,
		Pitch:     sig.Pitch,
		Yaw:       sig.Yaw,
		Roll:      sig.Roll,
	}
	if c := sig.Cursor; c != nil && sig.Kind == hand.SignalPointer {
		x, y := c.X, c.Y
		entry.CursorX, entry.CursorY = &x, &y
	}
	if err := a.config.Store.Signals().Append(entry); err != nil {
		a.logger.Warn("journal signal", zap.String("label", res.Label), zap.Error(err))
	}
}

// Package detector provides the Landmark Provider: it turns a video frame into
// at most one hand snapshot.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// Detector defines the interface for hand landmark providers.
type Detector interface {
	// Detect analyzes a video frame and returns the landmarks of the tracked hand.
	// It returns a nil snapshot and a nil error when no hand is in view.
	Detect(frame *gocv.Mat) (*hand.Snapshot, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// Script is the path to the MediaPipe service script. Empty means search
	// the usual install locations.
	Script string `yaml:"script"`

	// Python is the interpreter used to run Script. Empty means a venv python
	// if one is found, else python3.
	Python string `yaml:"python"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

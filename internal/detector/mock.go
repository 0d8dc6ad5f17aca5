package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	snap  *hand.Snapshot
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector that sees no hand.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetSnapshot sets the hand returned by Detect. Nil means no hand.
func (m *MockDetector) SetSnapshot(s *hand.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured snapshot or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*hand.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.snap == nil {
		return nil, nil
	}
	s := *m.snap
	return &s, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

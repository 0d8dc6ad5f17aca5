package detector

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// ErrSequenceExhausted is returned once a SequenceDetector has replayed every snapshot.
var ErrSequenceExhausted = errors.New("snapshot sequence exhausted")

// SequenceDetector replays a fixed list of snapshots, one per Detect call,
// ignoring the frame content. Nil entries are frames without a hand.
type SequenceDetector struct {
	mu    sync.Mutex
	snaps []*hand.Snapshot
	next  int
}

// NewSequenceDetector creates a detector that replays snaps in order.
func NewSequenceDetector(snaps []*hand.Snapshot) *SequenceDetector {
	return &SequenceDetector{snaps: snaps}
}

// Len returns the number of snapshots in the sequence.
func (d *SequenceDetector) Len() int {
	return len(d.snaps)
}

// Detect returns the next snapshot in the sequence.
func (d *SequenceDetector) Detect(frame *gocv.Mat) (*hand.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.next >= len(d.snaps) {
		return nil, ErrSequenceExhausted
	}
	s := d.snaps[d.next]
	d.next++
	return s, nil
}

// Close is a no-op.
func (d *SequenceDetector) Close() error {
	return nil
}

// ReadSnapshots parses a JSON-lines recording: each non-blank line is either
// `null` (no hand) or an array of 21 {x,y,z} landmarks.
func ReadSnapshots(r io.Reader) ([]*hand.Snapshot, error) {
	var snaps []*hand.Snapshot

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var points []hand.Landmark
		if err := json.Unmarshal(line, &points); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if points == nil {
			snaps = append(snaps, nil)
			continue
		}

		s, err := hand.NewSnapshot(points)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		snaps = append(snaps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return snaps, nil
}

// Package recordings embeds recorded landmark sequences used by the replay
// tests and as examples of the replay file format.
package recordings

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
)

//go:embed data/*.jsonl
var recordingsFS embed.FS

// ReadRecording returns the raw JSON-lines bytes of a recording.
func ReadRecording(name string) ([]byte, error) {
	data, err := recordingsFS.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", name, err)
	}
	return data, nil
}

// LoadRecording parses a recording into snapshots. Nil entries are frames
// without a hand.
func LoadRecording(name string) ([]*hand.Snapshot, error) {
	data, err := ReadRecording(name)
	if err != nil {
		return nil, err
	}

	snaps, err := detector.ReadSnapshots(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse recording %s: %w", name, err)
	}
	return snaps, nil
}

// Recordings lists the embedded recordings by name.
func Recordings() ([]string, error) {
	entries, err := recordingsFS.ReadDir("data")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

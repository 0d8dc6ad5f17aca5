package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func TestAPI_ActionWorkflow(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Bind an action to a label
	createBody := `{"label": "ZOOM_IN", "plugin_name": "keyboard", "action_name": "press", "config": {"key": "+"}}`
	resp, err := client.Post(ts.URL+"/api/actions", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/actions error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Label != "ZOOM_IN" {
		t.Errorf("created label = %s, want ZOOM_IN", created.Label)
	}

	// 2. List actions
	resp, _ = client.Get(ts.URL + "/api/actions")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/actions status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Actions []struct {
			ID string `json:"id"`
		} `json:"actions"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(listed.Actions))
	}

	// 3. Delete the binding
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/actions/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 4. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/actions/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_SessionJournal(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	if err := s.Sessions().Create(&store.Session{ID: "run-1"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i, label := range []string{"POINT_UP", "NONE", "LIKE"} {
		if err := s.Signals().Append(&store.SignalEntry{SessionID: "run-1", Frame: i * 10, Label: label}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := s.Sessions().Finish("run-1", 30, 20); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	ts := httptest.NewServer(New(Config{Store: s}))
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/sessions/run-1/signals")
	if err != nil {
		t.Fatalf("GET signals error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET signals status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var journal struct {
		Signals []struct {
			Frame int    `json:"frame"`
			Label string `json:"label"`
		} `json:"signals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&journal); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	want := []string{"POINT_UP", "NONE", "LIKE"}
	if len(journal.Signals) != len(want) {
		t.Fatalf("len(signals) = %d, want %d", len(journal.Signals), len(want))
	}
	for i, label := range want {
		if journal.Signals[i].Label != label || journal.Signals[i].Frame != i*10 {
			t.Errorf("signals[%d] = %+v, want frame %d label %s", i, journal.Signals[i], i*10, label)
		}
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

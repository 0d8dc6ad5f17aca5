package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	repo := s.Sessions()

	sess := &Session{ID: "sess-1"}
	if err := repo.Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sess.Source != "camera" {
		t.Errorf("Source = %q, want camera", sess.Source)
	}
	if sess.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}

	got, err := repo.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt != nil {
		t.Error("open session should have no end time")
	}

	if err := repo.Finish("sess-1", 120, 80); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	got, err = repo.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt == nil {
		t.Fatal("finished session should have an end time")
	}
	if got.Frames != 120 || got.Hands != 80 {
		t.Errorf("counters = %d/%d, want 120/80", got.Frames, got.Hands)
	}
}

func TestSessionRepository_NotFound(t *testing.T) {
	repo := newTestStore(t).Sessions()

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err := repo.Finish("missing", 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish() error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_ListNewestFirst(t *testing.T) {
	repo := newTestStore(t).Sessions()
	base := time.Now().Add(-time.Hour)

	for i, id := range []string{"a", "b", "c"} {
		sess := &Session{ID: id, Source: "replay", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(sess); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	if list[0].ID != "c" || list[2].ID != "a" {
		t.Errorf("order = %s,%s,%s, want c,b,a", list[0].ID, list[1].ID, list[2].ID)
	}
	if list[0].Source != "replay" {
		t.Errorf("Source = %q, want replay", list[0].Source)
	}
}

func TestSignalRepository_AppendAndList(t *testing.T) {
	s := newTestStore(t)
	if err := s.Sessions().Create(&Session{ID: "sess"}); err != nil {
		t.Fatalf("Create session: %v", err)
	}

	x, y := 0.25, 0.75
	entries := []*SignalEntry{
		{SessionID: "sess", Frame: 3, Kind: "pointer", Label: "POINT_UP", Text: "POINT=UP x=0.25 y=0.75", CursorX: &x, CursorY: &y},
		{SessionID: "sess", Frame: 1, Kind: "pitch", Label: "PITCH", Text: "PITCH=-36.0 YAW=0.0 ROLL=0.0", Pitch: -36},
		{SessionID: "sess", Frame: 7, Kind: "gesture", Label: "ZOOM_OUT", Text: "GESTURE=ZOOM_OUT"},
	}
	for _, e := range entries {
		if err := s.Signals().Append(e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("Append() should assign an ID")
		}
	}

	got, err := s.Signals().ListBySession("sess", 0)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Label != "PITCH" || got[0].Pitch != -36 {
		t.Errorf("first entry = %+v, want the pitch row", got[0])
	}
	if got[0].CursorX != nil {
		t.Error("pitch row should have no cursor")
	}
	if got[1].CursorX == nil || *got[1].CursorX != 0.25 || *got[1].CursorY != 0.75 {
		t.Errorf("pointer row cursor = %v,%v", got[1].CursorX, got[1].CursorY)
	}

	limited, err := s.Signals().ListBySession("sess", 2)
	if err != nil {
		t.Fatalf("ListBySession(limit) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}

	n, err := s.Signals().CountBySession("sess")
	if err != nil || n != 3 {
		t.Errorf("CountBySession() = %d, %v; want 3", n, err)
	}
}

func TestSignalRepository_RequiresSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Signals().Append(&SignalEntry{SessionID: "ghost", Kind: "none", Label: "NONE", Text: "NONE"})
	if err == nil {
		t.Error("Append() should fail for an unknown session")
	}
}

func TestSignalRepository_CascadeOnSessionDelete(t *testing.T) {
	s := newTestStore(t)
	if err := s.Sessions().Create(&Session{ID: "sess"}); err != nil {
		t.Fatalf("Create session: %v", err)
	}
	if err := s.Signals().Append(&SignalEntry{SessionID: "sess", Kind: "gesture", Label: "LIKE", Text: "GESTURE=LIKE"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := s.Sessions().Delete("sess"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	n, err := s.Signals().CountBySession("sess")
	if err != nil {
		t.Fatalf("CountBySession: %v", err)
	}
	if n != 0 {
		t.Errorf("journal rows left = %d, want 0", n)
	}
}

func TestActionRepository_CRUD(t *testing.T) {
	repo := newTestStore(t).Actions()

	a := &Action{
		ID:         "act-1",
		Label:      "ZOOM_IN",
		PluginName: "keyboard",
		ActionName: "key",
		Config:     json.RawMessage(`{"key":"+"}`),
		Enabled:    true,
	}
	if err := repo.Create(a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID("act-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Label != "ZOOM_IN" || got.PluginName != "keyboard" || !got.Enabled {
		t.Errorf("GetByID() = %+v", got)
	}
	if string(got.Config) != `{"key":"+"}` {
		t.Errorf("Config = %s", got.Config)
	}

	got.Label = "ZOOM_OUT"
	got.Enabled = false
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	again, _ := repo.GetByID("act-1")
	if again.Label != "ZOOM_OUT" || again.Enabled {
		t.Errorf("after Update() = %+v", again)
	}

	if err := repo.Delete("act-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID("act-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Update(got); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of deleted action error = %v, want ErrNotFound", err)
	}
}

func TestActionRepository_ListByLabel(t *testing.T) {
	repo := newTestStore(t).Actions()

	actions := []*Action{
		{ID: "1", Label: "ZOOM_IN", PluginName: "p", ActionName: "a", Enabled: true},
		{ID: "2", Label: "ZOOM_IN", PluginName: "p", ActionName: "b", Enabled: false},
		{ID: "3", Label: "POINT_LEFT", PluginName: "p", ActionName: "c", Enabled: true},
	}
	for _, a := range actions {
		if err := repo.Create(a); err != nil {
			t.Fatalf("Create(%s) error = %v", a.ID, err)
		}
	}

	got, err := repo.ListByLabel("ZOOM_IN")
	if err != nil {
		t.Fatalf("ListByLabel() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("ListByLabel(ZOOM_IN) = %v, want only the enabled binding", got)
	}

	none, err := repo.ListByLabel("LIKE")
	if err != nil {
		t.Fatalf("ListByLabel() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListByLabel(LIKE) len = %d, want 0", len(none))
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() len = %d, want 3", len(all))
	}
}

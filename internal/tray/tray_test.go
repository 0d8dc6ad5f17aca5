package tray

import "testing"

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Fatal("a new tray should start enabled")
	}

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("toggle callbacks = %v, want [false true]", got)
	}
	if !tr.IsEnabled() {
		t.Error("two toggles should leave the tray enabled")
	}
}

func TestTray_SetEnabledDoesNotNotify(t *testing.T) {
	tr := New()
	called := false
	tr.OnToggle(func(bool) { called = true })

	tr.SetEnabled(false)

	if called {
		t.Error("SetEnabled should not call OnToggle")
	}
	if tr.IsEnabled() {
		t.Error("expected tray to be disabled")
	}
}

func TestTray_LastSignal(t *testing.T) {
	tr := New()
	if tr.LastSignal() != "" {
		t.Errorf("LastSignal() = %q, want empty", tr.LastSignal())
	}

	tr.SetLastSignal("ZOOM_IN")
	tr.SetLastSignal("ZOOM_IN")
	if tr.LastSignal() != "ZOOM_IN" {
		t.Errorf("LastSignal() = %q, want ZOOM_IN", tr.LastSignal())
	}
}

func TestTray_Open(t *testing.T) {
	tr := New()
	opened := 0
	tr.OnOpen(func() { opened++ })

	tr.handleOpen()

	if opened != 1 {
		t.Errorf("open callback called %d times, want 1", opened)
	}
}

func TestTitles(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{toggleTitle(true), "● Running"},
		{toggleTitle(false), "○ Paused"},
		{lastTitle(""), "Last: none"},
		{lastTitle("PITCH"), "Last: PITCH"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

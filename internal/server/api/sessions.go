package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// DefaultSignalLimit caps /signals responses when no limit is given.
const DefaultSignalLimit = 500

// SessionHandler serves run sessions and their signal journal.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

// ServeHTTP routes /api/sessions, /api/sessions/{id} and
// /api/sessions/{id}/signals.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]

	if len(parts) == 2 {
		if parts[1] != "signals" {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.signals(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type sessionResponse struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
	Frames    int     `json:"frames"`
	Hands     int     `json:"hands"`
	Signals   *int    `json:"signals,omitempty"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type signalResponse struct {
	ID        int64    `json:"id"`
	Frame     int      `json:"frame"`
	Kind      string   `json:"kind"`
	Label     string   `json:"label"`
	Text      string   `json:"text"`
	Pitch     float64  `json:"pitch"`
	Yaw       float64  `json:"yaw"`
	Roll      float64  `json:"roll"`
	CursorX   *float64 `json:"cursor_x,omitempty"`
	CursorY   *float64 `json:"cursor_y,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type listSignalsResponse struct {
	SessionID string           `json:"session_id"`
	Signals   []signalResponse `json:"signals"`
}

func toSessionResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		Source:    s.Source,
		StartedAt: s.StartedAt.Format(timeLayout),
		Frames:    s.Frames,
		Hands:     s.Hands,
	}
	if s.EndedAt != nil {
		ended := s.EndedAt.Format(timeLayout)
		resp.EndedAt = &ended
	}
	return resp
}

// list handles GET /api/sessions.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id}.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	count, err := h.store.Signals().CountBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count signals")
		return
	}

	resp := toSessionResponse(session)
	resp.Signals = &count
	writeJSON(w, http.StatusOK, resp)
}

// delete handles DELETE /api/sessions/{id}; the journal goes with it.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Sessions().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// signals handles GET /api/sessions/{id}/signals?limit=N.
func (h *SessionHandler) signals(w http.ResponseWriter, r *http.Request, id string) {
	limit := DefaultSignalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	entries, err := h.store.Signals().ListBySession(id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list signals")
		return
	}

	response := listSignalsResponse{
		SessionID: id,
		Signals:   make([]signalResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Signals = append(response.Signals, signalResponse{
			ID:        e.ID,
			Frame:     e.Frame,
			Kind:      e.Kind,
			Label:     e.Label,
			Text:      e.Text,
			Pitch:     e.Pitch,
			Yaw:       e.Yaw,
			Roll:      e.Roll,
			CursorX:   e.CursorX,
			CursorY:   e.CursorY,
			CreatedAt: e.CreatedAt.Format(timeLayout),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

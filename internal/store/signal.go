package store

import (
	"database/sql"
	"time"
)

// SignalEntry is one journal row: the signal emitted at a label change.
type SignalEntry struct {
	ID        int64
	SessionID string
	Frame     int
	Kind      string
	Label     string
	Text      string
	Pitch     float64
	Yaw       float64
	Roll      float64
	CursorX   *float64
	CursorY   *float64
	CreatedAt time.Time
}

// SignalRepository appends to and reads the signal journal.
type SignalRepository struct {
	db *sql.DB
}

// Signals returns the signal journal repository for this store.
func (s *Store) Signals() *SignalRepository {
	return &SignalRepository{db: s.db}
}

// Append writes e and fills in its ID and CreatedAt.
func (r *SignalRepository) Append(e *SignalEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	var cx, cy sql.NullFloat64
	if e.CursorX != nil && e.CursorY != nil {
		cx = sql.NullFloat64{Float64: *e.CursorX, Valid: true}
		cy = sql.NullFloat64{Float64: *e.CursorY, Valid: true}
	}

	result, err := r.db.Exec(
		`INSERT INTO signals (session_id, frame, kind, label, text, pitch, yaw, roll, cursor_x, cursor_y, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Frame, e.Kind, e.Label, e.Text, e.Pitch, e.Yaw, e.Roll, cx, cy, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListBySession returns a session's journal in frame order. A positive limit
// caps the number of rows.
func (r *SignalRepository) ListBySession(sessionID string, limit int) ([]*SignalEntry, error) {
	q := `SELECT id, session_id, frame, kind, label, text, pitch, yaw, roll, cursor_x, cursor_y, created_at
		FROM signals WHERE session_id = ? ORDER BY frame ASC, id ASC`
	args := []any{sessionID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*SignalEntry
	for rows.Next() {
		e := &SignalEntry{}
		var cx, cy sql.NullFloat64
		err := rows.Scan(&e.ID, &e.SessionID, &e.Frame, &e.Kind, &e.Label, &e.Text,
			&e.Pitch, &e.Yaw, &e.Roll, &cx, &cy, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		if cx.Valid && cy.Valid {
			x, y := cx.Float64, cy.Float64
			e.CursorX, e.CursorY = &x, &y
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountBySession returns the number of journal rows for a session.
func (r *SignalRepository) CountBySession(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM signals WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}

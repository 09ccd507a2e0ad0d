package store

import (
	"database/sql"
	"errors"
	"time"
)

// SessionState is how a recorded session ended.
type SessionState string

const (
	// SessionComplete means the session reached its target.
	SessionComplete SessionState = "complete"
	// SessionAborted means the session stopped early.
	SessionAborted SessionState = "aborted"
)

// Session is one finished capture run.
type Session struct {
	ID        string
	Label     string
	State     SessionState
	Target    int
	Captured  int
	Frames    int
	Error     string
	DataFile  string
	StartedAt time.Time
	EndedAt   time.Time
	CreatedAt time.Time
}

// LabelTotal sums the recorded sessions for one label.
type LabelTotal struct {
	Label    string
	Sessions int
	Samples  int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

const sessionColumns = `id, label, state, target, captured, frames, error, data_file, started_at, ended_at, created_at`

// Create inserts a new session into the database.
func (r *SessionRepository) Create(sess *Session) error {
	sess.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (`+sessionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Label, string(sess.State), sess.Target, sess.Captured, sess.Frames,
		sess.Error, sess.DataFile, sess.StartedAt, sess.EndedAt, sess.CreatedAt,
	)
	return err
}

// SetDataFile records where a session's samples were written.
func (r *SessionRepository) SetDataFile(id, path string) error {
	result, err := r.db.Exec(`UPDATE sessions SET data_file = ? WHERE id = ?`, path, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	return r.query(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC`)
}

// ListByLabel retrieves the sessions recorded for one label, newest first.
func (r *SessionRepository) ListByLabel(label string) ([]*Session, error) {
	return r.query(`SELECT `+sessionColumns+` FROM sessions WHERE label = ? ORDER BY started_at DESC`, label)
}

// Totals sums sessions and captured samples per label, in label order.
func (r *SessionRepository) Totals() ([]LabelTotal, error) {
	rows, err := r.db.Query(
		`SELECT label, COUNT(*), COALESCE(SUM(captured), 0)
		 FROM sessions GROUP BY label ORDER BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []LabelTotal
	for rows.Next() {
		var t LabelTotal
		if err := rows.Scan(&t.Label, &t.Sessions, &t.Samples); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// Delete removes a session and its samples.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *SessionRepository) query(q string, args ...any) ([]*Session, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	sess := &Session{}
	var state string

	err := row.Scan(&sess.ID, &sess.Label, &state, &sess.Target, &sess.Captured, &sess.Frames,
		&sess.Error, &sess.DataFile, &sess.StartedAt, &sess.EndedAt, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}

	sess.State = SessionState(state)
	return sess, nil
}

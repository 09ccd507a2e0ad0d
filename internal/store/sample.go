package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Sample is one committed feature vector stored in the database.
type Sample struct {
	ID          int64
	SessionID   string
	SampleIndex int
	Label       string
	Values      []float64
	CapturedAt  time.Time
}

// SampleRepository provides CRUD operations for session samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create inserts a session's samples in a single transaction, numbering them
// in order. It also updates the captured count on the session.
func (r *SampleRepository) Create(sessionID string, samples []Sample) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO session_samples (session_id, sample_index, label, data, captured_at) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sample := range samples {
		data, err := json.Marshal(sample.Values)
		if err != nil {
			return fmt.Errorf("encode sample %d: %w", i, err)
		}
		if _, err := stmt.Exec(sessionID, i, sample.Label, string(data), sample.CapturedAt); err != nil {
			return err
		}
	}

	result, err := tx.Exec(
		`UPDATE sessions SET captured = (SELECT COUNT(*) FROM session_samples WHERE session_id = ?) WHERE id = ?`,
		sessionID, sessionID,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// GetBySessionID retrieves all samples for a given session in capture order.
func (r *SampleRepository) GetBySessionID(sessionID string) ([]Sample, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, sample_index, label, data, captured_at
		 FROM session_samples
		 WHERE session_id = ?
		 ORDER BY sample_index`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var data string
		if err := rows.Scan(&s.ID, &s.SessionID, &s.SampleIndex, &s.Label, &data, &s.CapturedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &s.Values); err != nil {
			return nil, fmt.Errorf("decode sample %d: %w", s.ID, err)
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

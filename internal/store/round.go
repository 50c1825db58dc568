package store

import (
	"database/sql"
	"time"
)

// Round represents a completed game round stored in the database.
type Round struct {
	ID          string
	SessionID   string
	Target      int
	StartedAt   time.Time
	CompletedAt time.Time
}

// RoundRepository provides CRUD operations for rounds.
type RoundRepository struct {
	db *sql.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

// Create inserts a completed round into the database.
func (r *RoundRepository) Create(round *Round) error {
	_, err := r.db.Exec(
		`INSERT INTO rounds (id, session_id, target, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		round.ID, round.SessionID, round.Target, round.StartedAt, round.CompletedAt,
	)
	return err
}

// ListBySession retrieves all rounds for a session in completion order.
func (r *RoundRepository) ListBySession(sessionID string) ([]Round, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, target, started_at, completed_at
		 FROM rounds WHERE session_id = ? ORDER BY completed_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var round Round
		if err := rows.Scan(&round.ID, &round.SessionID, &round.Target,
			&round.StartedAt, &round.CompletedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// DeleteBySession removes all rounds for a session.
func (r *RoundRepository) DeleteBySession(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM rounds WHERE session_id = ?`, sessionID)
	return err
}

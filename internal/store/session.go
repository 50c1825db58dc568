package store

import (
	"database/sql"
	"errors"
	"time"
)

// GameKind identifies which mini-game a session belongs to.
type GameKind string

const (
	// GameFingers is the finger-counting game.
	GameFingers GameKind = "fingers"
	// GameMirror is the expression mirror game.
	GameMirror GameKind = "mirror"
)

// Session represents one game sitting stored in the database.
type Session struct {
	ID        string
	Game      GameKind
	Score     int
	StartedAt time.Time
	EndedAt   *time.Time
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session into the database.
func (r *SessionRepository) Create(sess *Session) error {
	sess.StartedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, game, score, started_at) VALUES (?, ?, ?, ?)`,
		sess.ID, string(sess.Game), sess.Score, sess.StartedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var game string
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, game, score, started_at, ended_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &game, &sess.Score, &sess.StartedAt, &endedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sess.Game = GameKind(game)
	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, game, score, started_at, ended_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// TopScores retrieves the highest-scoring sessions for a game.
func (r *SessionRepository) TopScores(game GameKind, limit int) ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, game, score, started_at, ended_at FROM sessions
		 WHERE game = ? ORDER BY score DESC, started_at DESC LIMIT ?`,
		string(game), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]*Session, error) {
	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var game string
		var endedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &game, &sess.Score, &sess.StartedAt, &endedAt); err != nil {
			return nil, err
		}

		sess.Game = GameKind(game)
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Finish records the final score and end time of a session.
func (r *SessionRepository) Finish(id string, score int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET score = ?, ended_at = ? WHERE id = ?`,
		score, time.Now(), id,
	)
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

// UpdateScore updates the running score of a session.
func (r *SessionRepository) UpdateScore(id string, score int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET score = ? WHERE id = ?`,
		score, id,
	)
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

// Delete removes a session from the database by its ID.
// Rounds belonging to the session are removed by the cascade.
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

// Package game implements the round logic for the Peekaboo mini-games.
// It consumes the stabilized outputs of the classification pipeline and
// decides when a round is won; it never looks at raw samples.
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Finger game constants.
const (
	// MinTarget and MaxTarget bound the number of fingers a round asks for.
	MinTarget = 1
	MaxTarget = 5
	// PointsPerRound is the score awarded for each completed round.
	PointsPerRound = 10
)

// Round records one finger-counting round.
type Round struct {
	ID          string
	Target      int
	StartedAt   time.Time
	CompletedAt time.Time
}

// FingerGame runs the counting game: show a target number, wait for the
// committed finger count to match, advance. The committed count arrives
// already debounced, so a match is accepted the moment it is seen.
type FingerGame struct {
	mu        sync.Mutex
	sessionID string
	target    int
	score     int
	roundNum  int
	current   Round
	completed []Round
}

// NewFingerGame creates a game with a fresh session ID and a first target.
func NewFingerGame() *FingerGame {
	g := &FingerGame{
		sessionID: uuid.New().String(),
	}
	g.startRound()
	return g
}

// startRound picks the next target and opens a new round.
// Caller must hold g.mu (or be the constructor).
func (g *FingerGame) startRound() {
	next := MinTarget + rand.Intn(MaxTarget-MinTarget+1)
	// Avoid asking for the same number twice in a row.
	for next == g.target {
		next = MinTarget + rand.Intn(MaxTarget-MinTarget+1)
	}

	g.target = next
	g.roundNum++
	g.current = Round{
		ID:        uuid.New().String(),
		Target:    next,
		StartedAt: time.Now(),
	}
}

// Advance feeds the current committed finger count into the game.
// It returns the completed round and true when the count matches the
// target and the game moves on to the next round.
func (g *FingerGame) Advance(committed int) (Round, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if committed != g.target {
		return Round{}, false
	}

	done := g.current
	done.CompletedAt = time.Now()
	g.completed = append(g.completed, done)
	g.score += PointsPerRound

	g.startRound()
	return done, true
}

// SessionID returns the game's session identifier.
func (g *FingerGame) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// Target returns the number of fingers the current round asks for.
func (g *FingerGame) Target() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

// Score returns the accumulated score.
func (g *FingerGame) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// RoundNumber returns the 1-based number of the round in progress.
func (g *FingerGame) RoundNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundNum
}

// CompletedRounds returns a copy of the rounds won so far.
func (g *FingerGame) CompletedRounds() []Round {
	g.mu.Lock()
	defer g.mu.Unlock()
	rounds := make([]Round, len(g.completed))
	copy(rounds, g.completed)
	return rounds
}

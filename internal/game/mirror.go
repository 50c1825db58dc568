package game

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ameya/peekaboo/internal/expression"
)

// MirrorTarget is an expression the mirror game asks the player to make.
type MirrorTarget string

const (
	TargetSmile    MirrorTarget = "smile"
	TargetFrown    MirrorTarget = "frown"
	TargetBigMouth MirrorTarget = "big_mouth"
	TargetPucker   MirrorTarget = "pucker"
	TargetBlink    MirrorTarget = "blink"
	TargetBrowsUp  MirrorTarget = "brows_up"
)

// mirrorTargets is the fixed prompt rotation for the mirror game.
var mirrorTargets = []MirrorTarget{
	TargetSmile,
	TargetBigMouth,
	TargetBlink,
	TargetPucker,
	TargetBrowsUp,
	TargetFrown,
}

// Matches reports whether the given expression signal satisfies the
// target. The intensity thresholds are looser than the classifier's own
// flags where a child has to hold a face on purpose.
func (t MirrorTarget) Matches(sig expression.Signal) bool {
	switch t {
	case TargetSmile:
		return sig.IsSmiling
	case TargetFrown:
		return sig.FrownIntensity > 0.4
	case TargetBigMouth:
		return sig.MouthOpenness > 0.5
	case TargetPucker:
		return sig.MouthPucker > 0.5
	case TargetBlink:
		return sig.IsBlinking
	case TargetBrowsUp:
		return sig.EyebrowPosition > 0.4
	default:
		return false
	}
}

// MirrorGame cycles through expression prompts. Each frame's signal is
// checked against the current target; a match advances to the next
// prompt and scores.
type MirrorGame struct {
	mu        sync.Mutex
	sessionID string
	index     int
	score     int
}

// NewMirrorGame creates a mirror game with a fresh session ID, starting
// at the first prompt.
func NewMirrorGame() *MirrorGame {
	return &MirrorGame{
		sessionID: uuid.New().String(),
	}
}

// SessionID returns the game's session identifier.
func (g *MirrorGame) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// Target returns the expression currently being asked for.
func (g *MirrorGame) Target() MirrorTarget {
	g.mu.Lock()
	defer g.mu.Unlock()
	return mirrorTargets[g.index%len(mirrorTargets)]
}

// Observe checks one frame's signal against the current target.
// It returns true when the target was hit and the game advanced.
func (g *MirrorGame) Observe(sig expression.Signal) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	target := mirrorTargets[g.index%len(mirrorTargets)]
	if !target.Matches(sig) {
		return false
	}

	g.index++
	g.score += PointsPerRound
	return true
}

// Score returns the accumulated score.
func (g *MirrorGame) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

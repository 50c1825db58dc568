package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ameya/peekaboo/internal/expression"
	"github.com/ameya/peekaboo/internal/fingers"
	"github.com/ameya/peekaboo/internal/game"
	"github.com/ameya/peekaboo/internal/server"
	"github.com/ameya/peekaboo/internal/store"
	"github.com/ameya/peekaboo/internal/tracker"
)

func TestE2E_FingerGameWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// Pin the round to a target the preset three-finger sample answers
	fingerGame := game.NewFingerGame()
	for fingerGame.Target() != 3 {
		fingerGame = game.NewFingerGame()
	}
	counter := fingers.NewCounter()

	t.Run("CreateSession", func(t *testing.T) {
		err := s.Sessions().Create(&store.Session{
			ID:   fingerGame.SessionID(),
			Game: store.GameFingers,
		})
		if err != nil {
			t.Fatalf("create session error = %v", err)
		}
	})

	t.Run("WinRound", func(t *testing.T) {
		mock := tracker.NewMockHandTracker()
		mock.SetSample(tracker.ThreeFingersSample())

		// The committed count only appears after a full stable run
		var committed int
		for i := 0; i < fingers.RequiredStableFrames; i++ {
			sample, err := mock.TrackHand(nil)
			if err != nil {
				t.Fatalf("TrackHand() error = %v", err)
			}
			committed = counter.Observe(sample)
			if i < fingers.RequiredStableFrames-1 && committed != 0 {
				t.Fatalf("frame %d: committed = %d before the run completed", i, committed)
			}
		}
		if committed != 3 {
			t.Fatalf("committed = %d, want 3", committed)
		}

		round, won := fingerGame.Advance(committed)
		if !won {
			t.Fatal("expected the round to be won")
		}

		// Persist the way the pipeline does
		err := s.Rounds().Create(&store.Round{
			ID:          round.ID,
			SessionID:   fingerGame.SessionID(),
			Target:      round.Target,
			StartedAt:   round.StartedAt,
			CompletedAt: round.CompletedAt,
		})
		if err != nil {
			t.Fatalf("create round error = %v", err)
		}
		if err := s.Sessions().UpdateScore(fingerGame.SessionID(), fingerGame.Score()); err != nil {
			t.Fatalf("update score error = %v", err)
		}
	})

	t.Run("HandLossResets", func(t *testing.T) {
		if got := counter.Observe(nil); got != 0 {
			t.Errorf("committed after hand loss = %d, want 0", got)
		}
	})

	t.Run("SessionVisibleOverAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions/" + fingerGame.SessionID())
		if err != nil {
			t.Fatalf("get session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var session struct {
			ID     string `json:"id"`
			Game   string `json:"game"`
			Score  int    `json:"score"`
			Rounds []struct {
				Target int `json:"target"`
			} `json:"rounds"`
		}
		json.NewDecoder(resp.Body).Decode(&session)

		if session.Game != "fingers" {
			t.Errorf("game = %s, want fingers", session.Game)
		}
		if session.Score != game.PointsPerRound {
			t.Errorf("score = %d, want %d", session.Score, game.PointsPerRound)
		}
		if len(session.Rounds) != 1 || session.Rounds[0].Target != 3 {
			t.Errorf("rounds = %+v, want one round with target 3", session.Rounds)
		}
	})

	t.Run("LeaderboardVisibleOverAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/scores?game=fingers")
		if err != nil {
			t.Fatalf("get scores error = %v", err)
		}
		defer resp.Body.Close()

		var scores struct {
			Scores []struct {
				SessionID string `json:"session_id"`
				Score     int    `json:"score"`
			} `json:"scores"`
		}
		json.NewDecoder(resp.Body).Decode(&scores)

		if len(scores.Scores) != 1 {
			t.Fatalf("len(scores) = %d, want 1", len(scores.Scores))
		}
		if scores.Scores[0].SessionID != fingerGame.SessionID() {
			t.Errorf("leaderboard session = %s, want %s", scores.Scores[0].SessionID, fingerGame.SessionID())
		}
	})
}

func TestE2E_MirrorGameWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	mock := tracker.NewMockFaceTracker()
	mirror := game.NewMirrorGame()

	if mirror.Target() != game.TargetSmile {
		t.Fatalf("first prompt = %v, want %v", mirror.Target(), game.TargetSmile)
	}

	// A resting face must not advance the game
	mock.SetSample(tracker.RestingFaceSample())
	sample, err := mock.TrackFace(nil)
	if err != nil {
		t.Fatalf("TrackFace() error = %v", err)
	}
	if mirror.Observe(expression.Classify(sample)) {
		t.Fatal("resting face should not match the smile prompt")
	}

	// Smile matches the first prompt
	mock.SetSample(tracker.SmilingFaceSample())
	sample, _ = mock.TrackFace(nil)
	if !mirror.Observe(expression.Classify(sample)) {
		t.Fatal("smiling face should match the smile prompt")
	}

	// The next prompt asks for a wide-open mouth
	if mirror.Target() != game.TargetBigMouth {
		t.Fatalf("second prompt = %v, want %v", mirror.Target(), game.TargetBigMouth)
	}

	mock.SetSample(tracker.SurprisedFaceSample())
	sample, _ = mock.TrackFace(nil)
	if !mirror.Observe(expression.Classify(sample)) {
		t.Fatal("surprised face should match the big mouth prompt")
	}

	if mirror.Score() != 2*game.PointsPerRound {
		t.Errorf("score = %d, want %d", mirror.Score(), 2*game.PointsPerRound)
	}
}

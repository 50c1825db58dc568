package api

import (
	"net/http"
	"strconv"

	"github.com/ameya/peekaboo/internal/store"
)

// DefaultScoreLimit is how many leaderboard entries are returned when the
// request does not specify a limit.
const DefaultScoreLimit = 10

// ScoresHandler serves the per-game leaderboard.
type ScoresHandler struct {
	store *store.Store
}

// NewScoresHandler creates a new ScoresHandler with the given store.
func NewScoresHandler(s *store.Store) *ScoresHandler {
	return &ScoresHandler{store: s}
}

type scoreEntry struct {
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	StartedAt string `json:"started_at"`
}

type scoresResponse struct {
	Game   string       `json:"game"`
	Scores []scoreEntry `json:"scores"`
}

// ServeHTTP handles GET /api/scores?game={fingers|mirror}&limit={n}.
func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	game := store.GameKind(r.URL.Query().Get("game"))
	if game == "" {
		game = store.GameFingers
	}
	if game != store.GameFingers && game != store.GameMirror {
		writeError(w, http.StatusBadRequest, "Invalid game")
		return
	}

	limit := DefaultScoreLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	sessions, err := h.store.Sessions().TopScores(game, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scores")
		return
	}

	response := scoresResponse{
		Game:   string(game),
		Scores: make([]scoreEntry, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Scores = append(response.Scores, scoreEntry{
			SessionID: s.ID,
			Score:     s.Score,
			StartedAt: s.StartedAt.Format(timeFormat),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

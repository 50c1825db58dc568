package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ameya/peekaboo/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "peekaboo-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	// Create a session in the store
	session := &store.Session{
		ID:    "test-session-1",
		Game:  store.GameFingers,
		Score: 30,
	}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	// Make a GET request to list sessions
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Verify response
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(response.Sessions))
	}

	if response.Sessions[0].ID != "test-session-1" {
		t.Errorf("expected session ID 'test-session-1', got %q", response.Sessions[0].ID)
	}

	if response.Sessions[0].Game != "fingers" {
		t.Errorf("expected game 'fingers', got %q", response.Sessions[0].Game)
	}

	if response.Sessions[0].Score != 30 {
		t.Errorf("expected score 30, got %d", response.Sessions[0].Score)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	session := &store.Session{
		ID:    "test-session-1",
		Game:  store.GameMirror,
		Score: 20,
	}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	// Attach a completed round to the session
	now := time.Now()
	round := &store.Round{
		ID:          "test-round-1",
		SessionID:   "test-session-1",
		Target:      3,
		StartedAt:   now.Add(-5 * time.Second),
		CompletedAt: now,
	}
	if err := s.Rounds().Create(round); err != nil {
		t.Fatalf("failed to create round: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/test-session-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID != "test-session-1" {
		t.Errorf("expected ID 'test-session-1', got %q", response.ID)
	}

	if response.Game != "mirror" {
		t.Errorf("expected game 'mirror', got %q", response.Game)
	}

	if len(response.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(response.Rounds))
	}

	if response.Rounds[0].Target != 3 {
		t.Errorf("expected round target 3, got %d", response.Rounds[0].Target)
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/non-existent", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	session := &store.Session{
		ID:   "test-session-1",
		Game: store.GameFingers,
	}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	// Make a DELETE request
	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/test-session-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Verify 204 No Content
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	// Verify the session is deleted - GET should return 404
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/test-session-1", nil)
	rec = httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d after delete, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/non-existent", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	// POST is not allowed on the collection endpoint; sessions are
	// created by the pipeline, not through the API.
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

// Package app wires the Peekaboo capture, tracking, classification and
// game components together.
package app

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ameya/peekaboo/internal/capture"
	"github.com/ameya/peekaboo/internal/expression"
	"github.com/ameya/peekaboo/internal/fingers"
	"github.com/ameya/peekaboo/internal/game"
	"github.com/ameya/peekaboo/internal/store"
	"github.com/ameya/peekaboo/internal/tracker"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a game is being played.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to the idle frame rate.
	IdleTimeoutMs = 2000
	// SampleQueueSize bounds the channel between tracking and
	// classification. One producer, one consumer, so arrival order is
	// preserved end to end.
	SampleQueueSize = 16
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
}

// State is a snapshot of the game-facing pipeline outputs, consumed by
// the rendering layer over the state WebSocket.
type State struct {
	FacePresent   bool              `json:"face_present"`
	Expression    expression.Signal `json:"expression"`
	HandPresent   bool              `json:"hand_present"`
	FingerCount   int               `json:"finger_count"`
	ObservedCount int               `json:"observed_count"`
	Target        int               `json:"target"`
	Score         int               `json:"score"`
	Round         int               `json:"round"`
	MirrorTarget  game.MirrorTarget `json:"mirror_target"`
	MirrorScore   int               `json:"mirror_score"`
	Timestamp     int64             `json:"timestamp"`
}

// withStoredSettings overlays persisted settings onto the config.
// Fields the caller set explicitly win over stored values.
func (c Config) withStoredSettings() Config {
	settings := c.Store.Settings()

	if c.CameraID == 0 {
		if raw, err := settings.Get(store.SettingCameraID); err == nil {
			if id, err := strconv.Atoi(raw); err == nil && id >= 0 {
				c.CameraID = id
			}
		}
	}

	if c.MotionThresh <= 0 {
		if raw, err := settings.Get(store.SettingMotionThreshold); err == nil {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
				c.MotionThresh = v
			}
		}
	}

	return c
}

// App is the main application that runs the classification pipeline and
// the two mini-games.
type App struct {
	config      Config
	camera      capture.Camera
	motion      *capture.MotionDetector
	faceTracker tracker.FaceTracker
	handTracker tracker.HandTracker
	counter     *fingers.Counter
	fingerGame  *game.FingerGame
	mirrorGame  *game.MirrorGame

	enabled atomic.Bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	doneCh  chan struct{}

	state   State
	stateMu sync.RWMutex
}

// New creates a new App instance with the given configuration. Settings
// persisted through the API fill in any field the caller left unset.
func New(config Config) *App {
	if config.Store != nil {
		config = config.withStoredSettings()
	}

	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		counter:    fingers.NewCounter(),
		fingerGame: game.NewFingerGame(),
		mirrorGame: game.NewMirrorGame(),
	}

	// Try MediaPipe, fall back to mocks so the UI still runs without the
	// Python environment.
	if mp, err := tracker.NewMediaPipeTracker(tracker.DefaultConfig()); err == nil {
		a.faceTracker = mp
		a.handTracker = mp
		log.Println("Using MediaPipe face and hand tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock trackers", err)
		a.faceTracker = tracker.NewMockFaceTracker()
		a.handTracker = tracker.NewMockHandTracker()
	}

	return a
}

// SetEnabled enables or disables frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	return a.enabled.Load()
}

// SetCamera replaces the camera implementation (used by tests).
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetFaceTracker sets the face tracker implementation to use.
func (a *App) SetFaceTracker(t tracker.FaceTracker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.faceTracker = t
}

// SetHandTracker sets the hand tracker implementation to use.
func (a *App) SetHandTracker(t tracker.HandTracker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handTracker = t
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	if a.config.Store != nil {
		if err := a.createSessions(); err != nil {
			log.Printf("Failed to create game sessions: %v", err)
		}
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})

	samples := make(chan frameSample, SampleQueueSize)
	go a.runCapture(samples)
	go a.runClassify(samples)

	log.Println("Pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		<-a.doneCh
		a.stopCh = nil
		a.doneCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.faceTracker != nil {
		if err := a.faceTracker.Close(); err != nil {
			log.Printf("Error closing face tracker: %v", err)
		}
	}
	// The MediaPipe tracker serves both roles through one process; only
	// close the hand tracker separately when it is a distinct object.
	if a.handTracker != nil && tracksSeparately(a.faceTracker, a.handTracker) {
		if err := a.handTracker.Close(); err != nil {
			log.Printf("Error closing hand tracker: %v", err)
		}
	}

	if a.config.Store != nil {
		a.finishSessions()
	}

	log.Println("Pipeline stopped")
}

func tracksSeparately(face tracker.FaceTracker, hand tracker.HandTracker) bool {
	same, ok := face.(tracker.HandTracker)
	return !ok || same != hand
}

// createSessions persists a session row per game.
func (a *App) createSessions() error {
	sessions := a.config.Store.Sessions()

	if err := sessions.Create(&store.Session{
		ID:   a.fingerGame.SessionID(),
		Game: store.GameFingers,
	}); err != nil {
		return err
	}
	if err := sessions.Create(&store.Session{
		ID:   a.mirrorGame.SessionID(),
		Game: store.GameMirror,
	}); err != nil {
		return err
	}
	return nil
}

// finishSessions records final scores.
func (a *App) finishSessions() {
	sessions := a.config.Store.Sessions()
	if err := sessions.Finish(a.fingerGame.SessionID(), a.fingerGame.Score()); err != nil {
		log.Printf("Failed to finish finger session: %v", err)
	}
	if err := sessions.Finish(a.mirrorGame.SessionID(), a.mirrorGame.Score()); err != nil {
		log.Printf("Failed to finish mirror session: %v", err)
	}
}

// State returns the latest pipeline snapshot.
func (a *App) State() State {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state
}

func (a *App) setState(s State) {
	a.stateMu.Lock()
	a.state = s
	a.stateMu.Unlock()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// FingerGame returns the finger-counting game.
func (a *App) FingerGame() *game.FingerGame {
	return a.fingerGame
}

// MirrorGame returns the expression mirror game.
func (a *App) MirrorGame() *game.MirrorGame {
	return a.mirrorGame
}

// FaceTracker returns the face tracker.
func (a *App) FaceTracker() tracker.FaceTracker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.faceTracker
}

// HandTracker returns the hand tracker.
func (a *App) HandTracker() tracker.HandTracker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.handTracker
}

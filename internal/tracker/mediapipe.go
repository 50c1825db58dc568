package tracker

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MediaPipeTracker implements FaceTracker and HandTracker using a Python
// MediaPipe subprocess. One subprocess serves both models; each request
// carries a JPEG frame and the response carries whatever the frame yielded
// (face coefficients, hand landmarks, both, or neither).
type MediaPipeTracker struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeTracker creates a new MediaPipe tracker.
// The Python process is started lazily on the first tracking call.
func NewMediaPipeTracker(config Config) (*MediaPipeTracker, error) {
	scriptPath := findTrackerScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("mediapipe_tracker.py not found")
	}

	return &MediaPipeTracker{
		config: config,
	}, nil
}

// TrackFace analyzes a frame and returns blend shape coefficients for the
// most prominent face, or nil when no face is present.
func (t *MediaPipeTracker) TrackFace(frame *gocv.Mat) (BlendShapeSample, error) {
	resp, err := t.analyze(frame)
	if err != nil {
		return nil, err
	}
	if resp.Face == nil {
		return nil, nil
	}
	return BlendShapeSample(resp.Face), nil
}

// TrackHand analyzes a frame and returns landmarks for the most prominent
// hand, or nil when no hand is present.
func (t *MediaPipeTracker) TrackHand(frame *gocv.Mat) (HandLandmarkSample, error) {
	resp, err := t.analyze(frame)
	if err != nil {
		return nil, err
	}
	if len(resp.Hands) == 0 {
		return nil, nil
	}
	return resp.Hands[0].toSample(), nil
}

// TrackFrame analyzes a frame once and returns both the face and hand
// results. One subprocess round trip serves both models.
func (t *MediaPipeTracker) TrackFrame(frame *gocv.Mat) (BlendShapeSample, HandLandmarkSample, error) {
	resp, err := t.analyze(frame)
	if err != nil {
		return nil, nil, err
	}

	var face BlendShapeSample
	if resp.Face != nil {
		face = BlendShapeSample(resp.Face)
	}

	var hand HandLandmarkSample
	if len(resp.Hands) > 0 {
		hand = resp.Hands[0].toSample()
	}

	return face, hand, nil
}

// Close shuts down the Python process.
func (t *MediaPipeTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shutdown()
}

// trackerResponse is the JSON structure from the Python service.
type trackerResponse struct {
	Face  map[string]float64 `json:"face"`
	Hands []jsonHand         `json:"hands"`
}

type jsonHand struct {
	Joints map[string]jsonJoint `json:"joints"`
	Score  float64              `json:"score"`
}

type jsonJoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// toSample converts the service's image-space joints to a sample in the
// up-positive coordinate convention the finger rules expect.
func (h jsonHand) toSample() HandLandmarkSample {
	sample := make(HandLandmarkSample, len(h.Joints))
	for name, j := range h.Joints {
		sample[name] = Landmark{
			X:          j.X,
			Y:          1.0 - j.Y, // image space has Y growing downward
			Confidence: j.Score,
		}
	}
	return sample
}

func (t *MediaPipeTracker) analyze(frame *gocv.Mat) (*trackerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := t.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := t.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := t.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response trackerResponse
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	t.lastUsed = time.Now()
	t.resetIdleTimer()

	return &response, nil
}

func (t *MediaPipeTracker) ensureStarted() error {
	if t.started {
		return nil
	}

	scriptPath := findTrackerScript()
	if scriptPath == "" {
		return fmt.Errorf("mediapipe_tracker.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	t.cmd = exec.Command(pythonPath, scriptPath)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe tracker: %w", err)
	}

	t.stdin = stdin
	t.stdout = bufio.NewReader(stdout)
	t.started = true
	t.lastUsed = time.Now()

	return nil
}

func (t *MediaPipeTracker) shutdown() error {
	if !t.started {
		return nil
	}

	if t.idleTimer != nil {
		t.idleTimer.Stop()
		t.idleTimer = nil
	}

	if t.stdin != nil {
		t.stdin.Close()
	}

	err := t.cmd.Wait()
	t.started = false
	t.cmd = nil
	t.stdin = nil
	t.stdout = nil

	return err
}

func (t *MediaPipeTracker) resetIdleTimer() {
	if t.idleTimer != nil {
		t.idleTimer.Stop()
	}
	t.idleTimer = time.AfterFunc(30*time.Second, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.shutdown()
	})
}

func findTrackerScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/mediapipe_tracker.py",
		"../scripts/mediapipe_tracker.py",
		filepath.Join(execDir, "scripts/mediapipe_tracker.py"),
		filepath.Join(os.Getenv("HOME"), ".peekaboo/scripts/mediapipe_tracker.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".peekaboo/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

package tracker

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockFaceTracker is a test implementation of the FaceTracker interface.
// It allows tests to control the tracking results.
type MockFaceTracker struct {
	mu     sync.Mutex
	sample BlendShapeSample
	err    error
}

// NewMockFaceTracker creates a new MockFaceTracker instance.
func NewMockFaceTracker() *MockFaceTracker {
	return &MockFaceTracker{}
}

// SetSample sets the sample that will be returned by TrackFace.
// A nil sample simulates a frame without a face.
func (m *MockFaceTracker) SetSample(sample BlendShapeSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample = sample
}

// SetError sets the error that will be returned by TrackFace.
func (m *MockFaceTracker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// TrackFace returns the pre-configured sample or error.
func (m *MockFaceTracker) TrackFace(frame *gocv.Mat) (BlendShapeSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sample, nil
}

// Close is a no-op for the mock tracker.
func (m *MockFaceTracker) Close() error {
	return nil
}

// MockHandTracker is a test implementation of the HandTracker interface.
// Besides a fixed sample it can play back a sequence of samples, one per
// TrackHand call, which is how the debouncing tests drive the counter
// through multi-frame runs. Nil entries simulate frames without a hand.
type MockHandTracker struct {
	mu      sync.Mutex
	sample  HandLandmarkSample
	samples []HandLandmarkSample
	index   int
	err     error
}

// NewMockHandTracker creates a new MockHandTracker instance.
func NewMockHandTracker() *MockHandTracker {
	return &MockHandTracker{}
}

// SetSample sets a fixed sample returned by every TrackHand call.
// It clears any playback sequence.
func (m *MockHandTracker) SetSample(sample HandLandmarkSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample = sample
	m.samples = nil
	m.index = 0
}

// SetSamples sets a sequence played back one sample per TrackHand call.
// Once exhausted, the last entry repeats.
func (m *MockHandTracker) SetSamples(samples []HandLandmarkSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = samples
	m.index = 0
}

// SetError sets the error that will be returned by TrackHand.
func (m *MockHandTracker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// TrackHand returns the pre-configured sample, the next sample of the
// playback sequence, or the pre-configured error.
func (m *MockHandTracker) TrackHand(frame *gocv.Mat) (HandLandmarkSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	if len(m.samples) > 0 {
		sample := m.samples[m.index]
		if m.index < len(m.samples)-1 {
			m.index++
		}
		return sample, nil
	}

	return m.sample, nil
}

// Close is a no-op for the mock tracker.
func (m *MockHandTracker) Close() error {
	return nil
}

// OpenPalmSample returns a preset HandLandmarkSample representing an open
// palm with all five fingers extended. Coordinates use the up-positive Y
// convention with the wrist near the bottom of the frame.
func OpenPalmSample() HandLandmarkSample {
	return HandLandmarkSample{
		ThumbCMC: {X: 0.42, Y: 0.30, Confidence: 0.95},
		ThumbIP:  {X: 0.55, Y: 0.42, Confidence: 0.95},
		ThumbTip: {X: 0.62, Y: 0.50, Confidence: 0.95},

		IndexPIP: {X: 0.46, Y: 0.55, Confidence: 0.95},
		IndexTip: {X: 0.47, Y: 0.68, Confidence: 0.95},

		MiddlePIP: {X: 0.50, Y: 0.57, Confidence: 0.95},
		MiddleTip: {X: 0.50, Y: 0.72, Confidence: 0.95},

		RingPIP: {X: 0.54, Y: 0.55, Confidence: 0.95},
		RingTip: {X: 0.55, Y: 0.69, Confidence: 0.95},

		LittlePIP: {X: 0.58, Y: 0.50, Confidence: 0.95},
		LittleTip: {X: 0.60, Y: 0.60, Confidence: 0.95},
	}
}

// FistSample returns a preset HandLandmarkSample representing a closed
// fist with no fingers extended. Every tip sits below its PIP joint and
// the thumb is tucked against the palm.
func FistSample() HandLandmarkSample {
	return HandLandmarkSample{
		ThumbCMC: {X: 0.42, Y: 0.30, Confidence: 0.95},
		ThumbIP:  {X: 0.48, Y: 0.36, Confidence: 0.95},
		ThumbTip: {X: 0.50, Y: 0.34, Confidence: 0.95},

		IndexPIP: {X: 0.46, Y: 0.50, Confidence: 0.95},
		IndexTip: {X: 0.47, Y: 0.42, Confidence: 0.95},

		MiddlePIP: {X: 0.50, Y: 0.52, Confidence: 0.95},
		MiddleTip: {X: 0.50, Y: 0.43, Confidence: 0.95},

		RingPIP: {X: 0.54, Y: 0.50, Confidence: 0.95},
		RingTip: {X: 0.54, Y: 0.42, Confidence: 0.95},

		LittlePIP: {X: 0.58, Y: 0.47, Confidence: 0.95},
		LittleTip: {X: 0.58, Y: 0.40, Confidence: 0.95},
	}
}

// ThreeFingersSample returns a preset HandLandmarkSample with the index,
// middle and ring fingers extended and the thumb and little finger curled.
func ThreeFingersSample() HandLandmarkSample {
	return HandLandmarkSample{
		ThumbCMC: {X: 0.42, Y: 0.30, Confidence: 0.95},
		ThumbIP:  {X: 0.46, Y: 0.35, Confidence: 0.95},
		ThumbTip: {X: 0.47, Y: 0.33, Confidence: 0.95},

		IndexPIP: {X: 0.46, Y: 0.55, Confidence: 0.95},
		IndexTip: {X: 0.47, Y: 0.68, Confidence: 0.95},

		MiddlePIP: {X: 0.50, Y: 0.57, Confidence: 0.95},
		MiddleTip: {X: 0.50, Y: 0.72, Confidence: 0.95},

		RingPIP: {X: 0.54, Y: 0.55, Confidence: 0.95},
		RingTip: {X: 0.55, Y: 0.69, Confidence: 0.95},

		LittlePIP: {X: 0.58, Y: 0.50, Confidence: 0.95},
		LittleTip: {X: 0.58, Y: 0.45, Confidence: 0.95},
	}
}

// SmilingFaceSample returns a preset BlendShapeSample for a clear smile.
func SmilingFaceSample() BlendShapeSample {
	return BlendShapeSample{
		MouthSmileLeft:  0.72,
		MouthSmileRight: 0.68,
		BrowInnerUp:     0.12,
		JawOpen:         0.10,
		EyeBlinkLeft:    0.05,
		EyeBlinkRight:   0.06,
	}
}

// RestingFaceSample returns a preset BlendShapeSample for a neutral face.
func RestingFaceSample() BlendShapeSample {
	return BlendShapeSample{
		MouthSmileLeft:  0.04,
		MouthSmileRight: 0.05,
		MouthClose:      0.10,
		EyeBlinkLeft:    0.08,
		EyeBlinkRight:   0.07,
	}
}

// SurprisedFaceSample returns a preset BlendShapeSample for a wide-open
// mouth with raised eyebrows.
func SurprisedFaceSample() BlendShapeSample {
	return BlendShapeSample{
		JawOpen:       0.85,
		MouthClose:    0.05,
		BrowInnerUp:   0.65,
		MouthFunnel:   0.30,
		EyeBlinkLeft:  0.02,
		EyeBlinkRight: 0.03,
	}
}

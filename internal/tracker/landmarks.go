package tracker

import "math"

// Hand joint names following the MediaPipe hand landmarker convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
// Only the joints the finger rules consume are named here.
const (
	ThumbCMC  = "thumbCMC"
	ThumbIP   = "thumbIP"
	ThumbTip  = "thumbTip"
	IndexPIP  = "indexPIP"
	IndexTip  = "indexTip"
	MiddlePIP = "middlePIP"
	MiddleTip = "middleTip"
	RingPIP   = "ringPIP"
	RingTip   = "ringTip"
	LittlePIP = "littlePIP"
	LittleTip = "littleTip"
)

// Landmark is a tracked 2-D joint position with its detection confidence.
// Coordinates are normalized to the frame, with Y increasing upward. The
// MediaPipe tracker flips the image-space Y axis before handing samples
// over, so every consumer sees the same up-positive convention.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// HandLandmarkSample maps joint names to landmarks for a single frame.
// At most one hand is tracked per sample; a frame without a hand produces
// no sample (nil) rather than an empty map.
type HandLandmarkSample map[string]Landmark

// Joint returns the landmark for the given joint name and whether it was
// present in the sample.
func (s HandLandmarkSample) Joint(name string) (Landmark, bool) {
	if s == nil {
		return Landmark{}, false
	}
	l, ok := s[name]
	return l, ok
}

// Distance returns the Euclidean distance between two landmarks.
func Distance(a, b Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Package tracker provides face and hand tracking interfaces and sample
// types for the Peekaboo mini-games.
package tracker

// Blend shape coefficient names following the ARKit face-tracking convention.
// Only the coefficients the games actually consume are listed; trackers may
// deliver more, and the games ignore them.
const (
	MouthSmileLeft   = "mouthSmileLeft"
	MouthSmileRight  = "mouthSmileRight"
	MouthFrownLeft   = "mouthFrownLeft"
	MouthFrownRight  = "mouthFrownRight"
	MouthPucker      = "mouthPucker"
	MouthStretchLeft = "mouthStretchLeft"
	MouthPressLeft   = "mouthPressLeft"
	MouthFunnel      = "mouthFunnel"
	EyeBlinkLeft     = "eyeBlinkLeft"
	EyeBlinkRight    = "eyeBlinkRight"
	BrowInnerUp      = "browInnerUp"
	BrowDownLeft     = "browDownLeft"
	JawOpen          = "jawOpen"
	MouthClose       = "mouthClose"
)

// BlendShapeSample maps blend shape names to normalized coefficients in
// [0,1] for a single video frame. A fresh sample is produced every frame
// the tracker sees a face; frames without a face produce no sample at all.
type BlendShapeSample map[string]float64

// Coefficient returns the coefficient for the given blend shape name.
// Missing names read as 0.0 so callers never have to distinguish between
// "not tracked" and "not active".
func (s BlendShapeSample) Coefficient(name string) float64 {
	if s == nil {
		return 0
	}
	return s[name]
}

// Package expression turns per-frame blend shape samples into the signals
// the mirror game renders. Classification is memoryless: each frame is
// classified on its own, with no smoothing across frames.
package expression

import "github.com/ameya/peekaboo/internal/tracker"

// Thresholds for the boolean flags.
const (
	// SmileThreshold is the average smile coefficient above which the
	// face counts as smiling (strictly greater).
	SmileThreshold = 0.3
	// BlinkThreshold is the average blink coefficient above which both
	// eyes count as closed (strictly greater).
	BlinkThreshold = 0.5
)

// Signal holds the derived expression values for one frame. Intensities
// are in [0,1], EyebrowPosition nominally in [-1,1] (not clamped), and
// MouthOpenness is clamped to be non-negative.
type Signal struct {
	SmileIntensity  float64 `json:"smile_intensity"`
	FrownIntensity  float64 `json:"frown_intensity"`
	MouthPucker     float64 `json:"mouth_pucker"`
	MouthStretch    float64 `json:"mouth_stretch"`
	LipPress        float64 `json:"lip_press"`
	MouthFunnel     float64 `json:"mouth_funnel"`
	EyebrowPosition float64 `json:"eyebrow_position"`
	MouthOpenness   float64 `json:"mouth_openness"`
	IsSmiling       bool    `json:"is_smiling"`
	IsBlinking      bool    `json:"is_blinking"`
}

// Classify derives the expression signal from one blend shape sample.
// Missing coefficients read as 0.0, so the function succeeds for any
// input, including a nil sample.
//
// Stretch, press and brow-down deliberately sample only the left-side
// coefficient; the game thresholds were tuned against that behavior.
func Classify(sample tracker.BlendShapeSample) Signal {
	smile := avg(sample.Coefficient(tracker.MouthSmileLeft), sample.Coefficient(tracker.MouthSmileRight))
	frown := avg(sample.Coefficient(tracker.MouthFrownLeft), sample.Coefficient(tracker.MouthFrownRight))
	blink := avg(sample.Coefficient(tracker.EyeBlinkLeft), sample.Coefficient(tracker.EyeBlinkRight))

	openness := sample.Coefficient(tracker.JawOpen) - sample.Coefficient(tracker.MouthClose)
	if openness < 0 {
		openness = 0
	}

	return Signal{
		SmileIntensity:  smile,
		FrownIntensity:  frown,
		MouthPucker:     sample.Coefficient(tracker.MouthPucker),
		MouthStretch:    sample.Coefficient(tracker.MouthStretchLeft),
		LipPress:        sample.Coefficient(tracker.MouthPressLeft),
		MouthFunnel:     sample.Coefficient(tracker.MouthFunnel),
		EyebrowPosition: sample.Coefficient(tracker.BrowInnerUp) - sample.Coefficient(tracker.BrowDownLeft),
		MouthOpenness:   openness,
		IsSmiling:       smile > SmileThreshold,
		IsBlinking:      blink > BlinkThreshold,
	}
}

func avg(a, b float64) float64 {
	return (a + b) / 2
}

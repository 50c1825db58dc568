// Package fingers classifies hand landmark samples into a stable extended
// finger count for the counting game. Per-frame geometry lives in the
// extension rules; the only temporal state lives in Counter.
package fingers

import (
	"math"

	"github.com/ameya/peekaboo/internal/tracker"
)

// Geometric thresholds for the extension rules. Coordinates are in the
// tracker's normalized, up-positive space.
const (
	// ThumbMinConfidence gates the three thumb joints.
	ThumbMinConfidence = 0.7
	// ThumbMinSpreadX is the minimum horizontal tip-to-CMC spread.
	ThumbMinSpreadX = 0.08
	// ThumbMinSpreadY is the minimum vertical tip-to-CMC spread.
	ThumbMinSpreadY = 0.05
	// ThumbMinTipIPDist is the minimum tip-to-IP distance.
	ThumbMinTipIPDist = 0.06

	// FingerMinConfidence gates the tip and PIP joints of the four fingers.
	FingerMinConfidence = 0.6
	// FingerMinTipMargin is how far above its PIP joint a fingertip must
	// sit to count as extended.
	FingerMinTipMargin = 0.04
)

// ThumbExtended reports whether the thumb is extended. The thumb extends
// along a diagonal axis, so it gets a stricter test than the other
// fingers: horizontal and vertical tip-to-CMC spread plus tip-to-IP
// distance must all clear their thresholds. Low-confidence joints fail
// closed to "not extended".
func ThumbExtended(sample tracker.HandLandmarkSample) bool {
	tip, ok := sample.Joint(tracker.ThumbTip)
	if !ok || tip.Confidence <= ThumbMinConfidence {
		return false
	}
	ip, ok := sample.Joint(tracker.ThumbIP)
	if !ok || ip.Confidence <= ThumbMinConfidence {
		return false
	}
	cmc, ok := sample.Joint(tracker.ThumbCMC)
	if !ok || cmc.Confidence <= ThumbMinConfidence {
		return false
	}

	return math.Abs(tip.X-cmc.X) > ThumbMinSpreadX &&
		math.Abs(tip.Y-cmc.Y) > ThumbMinSpreadY &&
		tracker.Distance(tip, ip) > ThumbMinTipIPDist
}

// fingerExtended reports whether a non-thumb finger is extended: its tip
// must sit above the PIP joint by at least FingerMinTipMargin.
func fingerExtended(sample tracker.HandLandmarkSample, tipName, pipName string) bool {
	tip, ok := sample.Joint(tipName)
	if !ok || tip.Confidence <= FingerMinConfidence {
		return false
	}
	pip, ok := sample.Joint(pipName)
	if !ok || pip.Confidence <= FingerMinConfidence {
		return false
	}

	return tip.Y > pip.Y+FingerMinTipMargin
}

// IndexExtended reports whether the index finger is extended.
func IndexExtended(sample tracker.HandLandmarkSample) bool {
	return fingerExtended(sample, tracker.IndexTip, tracker.IndexPIP)
}

// MiddleExtended reports whether the middle finger is extended.
func MiddleExtended(sample tracker.HandLandmarkSample) bool {
	return fingerExtended(sample, tracker.MiddleTip, tracker.MiddlePIP)
}

// RingExtended reports whether the ring finger is extended.
func RingExtended(sample tracker.HandLandmarkSample) bool {
	return fingerExtended(sample, tracker.RingTip, tracker.RingPIP)
}

// LittleExtended reports whether the little finger is extended.
func LittleExtended(sample tracker.HandLandmarkSample) bool {
	return fingerExtended(sample, tracker.LittleTip, tracker.LittlePIP)
}

// CountExtended returns how many of the five fingers are extended in the
// given sample. The caller must handle "no hand" as a distinct case; a
// nil sample simply counts zero extended fingers.
func CountExtended(sample tracker.HandLandmarkSample) int {
	count := 0
	if ThumbExtended(sample) {
		count++
	}
	if IndexExtended(sample) {
		count++
	}
	if MiddleExtended(sample) {
		count++
	}
	if RingExtended(sample) {
		count++
	}
	if LittleExtended(sample) {
		count++
	}
	return count
}

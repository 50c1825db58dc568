package tracker

import "gocv.io/x/gocv"

// FaceTracker defines the interface for face blend shape trackers.
type FaceTracker interface {
	// TrackFace analyzes a video frame and returns the blend shape
	// coefficients for the most prominent face, or nil if no face is
	// detected.
	TrackFace(frame *gocv.Mat) (BlendShapeSample, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// HandTracker defines the interface for hand landmark trackers.
type HandTracker interface {
	// TrackHand analyzes a video frame and returns the landmarks for the
	// most prominent hand, or nil if no hand is detected.
	TrackHand(frame *gocv.Mat) (HandLandmarkSample, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// FrameTracker is implemented by trackers that produce both samples from
// a single analysis of the frame. The pipeline prefers it over separate
// TrackFace/TrackHand calls when one object serves both roles, so each
// frame is analyzed once.
type FrameTracker interface {
	// TrackFrame analyzes a video frame and returns whatever it yielded:
	// blend shape coefficients, hand landmarks, both, or neither (nils).
	TrackFrame(frame *gocv.Mat) (BlendShapeSample, HandLandmarkSample, error)
}

// Config holds configuration options for the trackers.
type Config struct {
	// MinFaceConfidence is the minimum face detection confidence (0.0-1.0).
	MinFaceConfidence float64

	// MinHandConfidence is the minimum hand detection confidence (0.0-1.0).
	MinHandConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinFaceConfidence: 0.5,
		MinHandConfidence: 0.5,
		MinTrackingConf:   0.5,
	}
}

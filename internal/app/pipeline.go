package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ameya/peekaboo/internal/expression"
	"github.com/ameya/peekaboo/internal/game"
	"github.com/ameya/peekaboo/internal/store"
	"github.com/ameya/peekaboo/internal/tracker"
)

// frameSample carries one frame's tracking results from the capture
// goroutine to the classification goroutine. Nil maps mean the tracker
// saw nothing this frame.
type frameSample struct {
	face tracker.BlendShapeSample
	hand tracker.HandLandmarkSample
}

// runCapture is the producer half of the pipeline: it paces the camera,
// gates on motion, runs the trackers and pushes one frameSample per
// processed frame into the samples channel.
//
// Capture logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. In active mode, run face and hand tracking on every frame
// 4. After IdleTimeoutMs without motion, drop back to idle mode
//
// Being the only sender, it preserves frame order into the channel.
func (a *App) runCapture(samples chan<- frameSample) {
	defer close(samples)

	// Camera and trackers are fixed for the lifetime of a run; grabbing
	// them once keeps the loop off the app mutex while Stop waits for
	// the pipeline to drain.
	camera := a.Camera()
	faceTracker := a.FaceTracker()
	handTracker := a.HandTracker()

	// When one object serves both roles it gets a single combined pass
	// per frame instead of two subprocess round trips.
	var combined tracker.FrameTracker
	if !tracksSeparately(faceTracker, handTracker) {
		combined, _ = faceTracker.(tracker.FrameTracker)
	}

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			sample := trackSample(frame, combined, faceTracker, handTracker)

			frame.Close()

			// Block rather than drop when the queue is full: the
			// debounce threshold assumes every processed frame reaches
			// the counter.
			select {
			case samples <- sample:
			case <-a.stopCh:
				return
			}
		}
	}
}

// trackSample runs the trackers over one frame. A combined tracker gets
// a single analysis pass; otherwise face and hand are tracked separately.
// Tracking errors leave the corresponding sample nil, which downstream
// reads as "nothing detected this frame".
func trackSample(frame *gocv.Mat, combined tracker.FrameTracker, faceTracker tracker.FaceTracker, handTracker tracker.HandTracker) frameSample {
	var sample frameSample

	if combined != nil {
		face, hand, err := combined.TrackFrame(frame)
		if err != nil {
			log.Printf("Error tracking frame: %v", err)
			return sample
		}
		sample.face = face
		sample.hand = hand
		return sample
	}

	if faceTracker != nil {
		face, err := faceTracker.TrackFace(frame)
		if err != nil {
			log.Printf("Error tracking face: %v", err)
		} else {
			sample.face = face
		}
	}

	if handTracker != nil {
		hand, err := handTracker.TrackHand(frame)
		if err != nil {
			log.Printf("Error tracking hand: %v", err)
		} else {
			sample.hand = hand
		}
	}

	return sample
}

// runClassify is the consumer half of the pipeline. It is the ONLY
// goroutine that touches the counter and the games, and it applies
// samples strictly in arrival order: the counter's stability run is not
// commutative across reordering.
func (a *App) runClassify(samples <-chan frameSample) {
	defer close(a.doneCh)

	for sample := range samples {
		a.classifyFrame(sample)
	}
}

// classifyFrame applies one frame's samples to the classifiers and games
// and publishes the resulting snapshot.
func (a *App) classifyFrame(sample frameSample) {
	now := time.Now()

	state := State{
		Target:       a.fingerGame.Target(),
		Score:        a.fingerGame.Score(),
		Round:        a.fingerGame.RoundNumber(),
		MirrorTarget: a.mirrorGame.Target(),
		MirrorScore:  a.mirrorGame.Score(),
		Timestamp:    now.UnixMilli(),
	}

	if sample.face != nil {
		state.FacePresent = true
		state.Expression = expression.Classify(sample.face)

		if a.mirrorGame.Observe(state.Expression) {
			log.Printf("Mirror prompt matched, next: %s", a.mirrorGame.Target())
			a.persistMirrorScore()

			state.MirrorTarget = a.mirrorGame.Target()
			state.MirrorScore = a.mirrorGame.Score()
		}
	}

	state.HandPresent = sample.hand != nil
	state.FingerCount = a.counter.Observe(sample.hand)
	state.ObservedCount, _ = a.counter.Observed()

	if round, ok := a.fingerGame.Advance(state.FingerCount); ok {
		log.Printf("Round %d complete: counted %d fingers", state.Round, round.Target)
		a.persistRound(round)

		state.Target = a.fingerGame.Target()
		state.Score = a.fingerGame.Score()
		state.Round = a.fingerGame.RoundNumber()
	}

	a.setState(state)
}

// persistRound records a completed round and the running score.
func (a *App) persistRound(round game.Round) {
	if a.config.Store == nil {
		return
	}

	err := a.config.Store.Rounds().Create(&store.Round{
		ID:          round.ID,
		SessionID:   a.fingerGame.SessionID(),
		Target:      round.Target,
		StartedAt:   round.StartedAt,
		CompletedAt: round.CompletedAt,
	})
	if err != nil {
		log.Printf("Failed to persist round: %v", err)
	}

	if err := a.config.Store.Sessions().UpdateScore(a.fingerGame.SessionID(), a.fingerGame.Score()); err != nil {
		log.Printf("Failed to update session score: %v", err)
	}
}

// persistMirrorScore records the mirror game's running score.
func (a *App) persistMirrorScore() {
	if a.config.Store == nil {
		return
	}

	if err := a.config.Store.Sessions().UpdateScore(a.mirrorGame.SessionID(), a.mirrorGame.Score()); err != nil {
		log.Printf("Failed to update mirror session score: %v", err)
	}
}

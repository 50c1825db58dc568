package fingers

import "github.com/ameya/peekaboo/internal/tracker"

// RequiredStableFrames is how many consecutive frames must observe the
// same count before it is committed. At the pipeline's active frame rate
// this is well under a second, which reads as instant to a child while
// still swallowing single-frame tracking noise.
const RequiredStableFrames = 10

// Counter debounces per-frame finger counts into a stable committed
// count. A new count is committed only after it has been observed for
// RequiredStableFrames consecutive frames; losing the hand resets the
// committed count to zero immediately, with no debounce on the way down.
//
// Counter is not safe for concurrent use. Exactly one goroutine must feed
// it frames, in arrival order, since the stability run is not commutative
// across reordering.
type Counter struct {
	lastObserved int
	stableRun    int
	committed    int
}

// NewCounter creates a Counter in its initial state: nothing observed,
// nothing committed.
func NewCounter() *Counter {
	return &Counter{}
}

// Observe processes one frame's hand sample and returns the committed
// count after the transition. A nil sample means no hand was detected
// this frame.
func (c *Counter) Observe(sample tracker.HandLandmarkSample) int {
	if sample == nil {
		return c.ObserveLoss()
	}
	return c.ObserveCount(CountExtended(sample))
}

// ObserveCount processes one frame's instantaneous count and returns the
// committed count after the transition.
func (c *Counter) ObserveCount(observed int) int {
	if observed == c.lastObserved {
		c.stableRun++
	} else {
		c.lastObserved = observed
		c.stableRun = 1
	}

	if c.stableRun >= RequiredStableFrames {
		c.committed = observed
	}

	return c.committed
}

// ObserveLoss processes a frame with no hand detected. The committed
// count drops to zero immediately; the run state is only cleared when
// there was something committed, so an already-empty counter is left
// untouched.
func (c *Counter) ObserveLoss() int {
	if c.committed != 0 {
		c.committed = 0
		c.lastObserved = 0
		c.stableRun = 0
	}
	return c.committed
}

// Committed returns the current stable count.
func (c *Counter) Committed() int {
	return c.committed
}

// Observed returns the most recent instantaneous count and the length of
// its stability run.
func (c *Counter) Observed() (count, run int) {
	return c.lastObserved, c.stableRun
}

// Reset returns the counter to its initial state.
func (c *Counter) Reset() {
	c.lastObserved = 0
	c.stableRun = 0
	c.committed = 0
}

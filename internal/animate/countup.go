// Package animate maps elapsed time to displayed values.
//
// Nothing here schedules frames. Callers feed elapsed durations from whatever
// clock drives them (Bubble Tea frame ticks in the TUI, fixed steps in tests).
package animate

import (
	"math"
	"time"
)

// DefaultDuration is the length of the result animations.
const DefaultDuration = 1500 * time.Millisecond

// FrameInterval is the redraw cadence used by the TUI (about 60 fps).
const FrameInterval = time.Second / 60

// Progress returns elapsed/duration clamped to [0, 1]. A non-positive
// duration completes immediately.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}

// CountUp animates an integer from From to To.
type CountUp struct {
	From     int64
	To       int64
	Duration time.Duration
}

// NewCountUp counts from 0 to the rounded target over DefaultDuration.
func NewCountUp(target float64) CountUp {
	return CountUp{From: 0, To: int64(math.Round(target)), Duration: DefaultDuration}
}

// ValueAt returns floor(progress*(To-From)+From) at elapsed.
func (c CountUp) ValueAt(elapsed time.Duration) int64 {
	p := Progress(elapsed, c.Duration)
	return int64(math.Floor(p*float64(c.To-c.From) + float64(c.From)))
}

// Done reports whether the animation has reached its target at elapsed.
func (c CountUp) Done(elapsed time.Duration) bool {
	return Progress(elapsed, c.Duration) >= 1
}

// EaseOutQuart decelerates towards the end: 1-(1-p)^4 for p in [0, 1].
func EaseOutQuart(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	inv := 1 - p
	return 1 - inv*inv*inv*inv
}

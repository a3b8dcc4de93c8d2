// Package playback provides the playback-clock sampler and the controller
// capability through which the session core drives a playback surface.
package playback

import "github.com/replaykit/replay/pkg/timeutil"

// DefaultSampleThresholdMs is the minimum divergence between the raw
// playback time and the last sampled value before a new sample is emitted.
// Raw player ticks arrive many times per second; sampling keeps derived
// lookups (active sentence/group/chapter) from recomputing on every frame.
const DefaultSampleThresholdMs = 180

// State is the sampler's current mode.
type State string

const (
	// StateTracking emits samples normally.
	StateTracking State = "tracking"

	// StateSuspended records raw time but emits nothing. Entered while a
	// text-selection gesture is in progress or a selection menu is
	// visible, so the highlighted element cannot shift out from under the
	// user's selection.
	StateSuspended State = "suspended"
)

// Clock throttles high-frequency playback time updates into coarser sampled
// changes. It is not safe for concurrent use; all updates arrive on the
// session's single event goroutine.
type Clock struct {
	thresholdMs int
	onSample    func(sampledMs int)

	rawSec      float64
	sampledMs   int
	selecting   bool
	menuVisible bool
}

// NewClock creates a sampler with the given threshold. A non-positive
// threshold falls back to DefaultSampleThresholdMs. onSample may be nil.
func NewClock(thresholdMs int, onSample func(sampledMs int)) *Clock {
	if thresholdMs <= 0 {
		thresholdMs = DefaultSampleThresholdMs
	}
	return &Clock{thresholdMs: thresholdMs, onSample: onSample}
}

// Tick records a raw player time update and reports whether a new sample
// was emitted. While suspended the raw value is recorded but never sampled.
func (c *Clock) Tick(rawSec float64) bool {
	c.rawSec = rawSec
	if c.State() == StateSuspended {
		return false
	}

	rawMs := timeutil.SecondsToMs(rawSec)
	diff := rawMs - c.sampledMs
	if diff < 0 {
		diff = -diff
	}
	if diff < c.thresholdMs {
		return false
	}

	c.sampledMs = rawMs
	if c.onSample != nil {
		c.onSample(rawMs)
	}
	return true
}

// BeginSelection suspends sampling for the duration of a selection gesture.
func (c *Clock) BeginSelection() {
	c.selecting = true
}

// EndSelection marks the selection gesture finished. Sampling resumes only
// once no selection menu remains visible; the next raw tick then
// re-evaluates against the threshold.
func (c *Clock) EndSelection() {
	c.selecting = false
}

// SetMenuVisible records whether a selection-triggered menu is showing.
func (c *Clock) SetMenuVisible(visible bool) {
	c.menuVisible = visible
}

// State returns the sampler's current mode.
func (c *Clock) State() State {
	if c.selecting || c.menuVisible {
		return StateSuspended
	}
	return StateTracking
}

// RawSec returns the last raw player time seen.
func (c *Clock) RawSec() float64 {
	return c.rawSec
}

// SampledMs returns the last emitted sample.
func (c *Clock) SampledMs() int {
	return c.sampledMs
}

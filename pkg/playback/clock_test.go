package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_ThresholdAgainstLastSample(t *testing.T) {
	var updates []int
	c := NewClock(180, func(ms int) { updates = append(updates, ms) })

	// The divergence is measured against the last sampled value, not the
	// previous raw tick, so only 200ms crosses the threshold.
	for _, rawMs := range []int{0, 50, 100, 170, 200} {
		c.Tick(float64(rawMs) / 1000)
	}

	require.Len(t, updates, 1)
	assert.Equal(t, 200, updates[0])
	assert.Equal(t, 200, c.SampledMs())
}

func TestClock_BackwardSeekTriggers(t *testing.T) {
	c := NewClock(180, nil)
	require.True(t, c.Tick(10.0))
	assert.Equal(t, 10000, c.SampledMs())

	// A seek backwards diverges just as much as forward motion.
	require.True(t, c.Tick(2.0))
	assert.Equal(t, 2000, c.SampledMs())
}

func TestClock_SuspendedDuringSelection(t *testing.T) {
	var updates int
	c := NewClock(180, func(int) { updates++ })

	c.BeginSelection()
	assert.Equal(t, StateSuspended, c.State())

	// Raw time is recorded but nothing is sampled.
	assert.False(t, c.Tick(5.0))
	assert.Equal(t, 5.0, c.RawSec())
	assert.Zero(t, updates)
	assert.Zero(t, c.SampledMs())

	// The gesture ends but a selection menu is still up.
	c.SetMenuVisible(true)
	c.EndSelection()
	assert.Equal(t, StateSuspended, c.State())
	assert.False(t, c.Tick(6.0))

	// Menu dismissed: the next tick samples again.
	c.SetMenuVisible(false)
	assert.Equal(t, StateTracking, c.State())
	assert.True(t, c.Tick(6.2))
	assert.Equal(t, 6200, c.SampledMs())
	assert.Equal(t, 1, updates)
}

func TestClock_DefaultThreshold(t *testing.T) {
	c := NewClock(0, nil)
	assert.False(t, c.Tick(0.179))
	assert.True(t, c.Tick(0.180))
}

func TestSimulator_AdvanceAndClamp(t *testing.T) {
	s := NewSimulator(10.0, 2.0)

	// Paused simulators do not move.
	assert.Equal(t, 0.0, s.Advance(time.Second))

	s.Play()
	assert.InDelta(t, 2.0, s.Advance(time.Second), 1e-9)

	// Runs past the end: clamps and stops.
	s.Advance(10 * time.Second)
	assert.Equal(t, 10.0, s.PositionSec())
	assert.False(t, s.Playing())
	assert.True(t, s.Finished())

	// Play at the end is a no-op.
	s.Play()
	assert.False(t, s.Playing())
}

func TestSimulator_Seek(t *testing.T) {
	s := NewSimulator(10.0, 1.0)

	s.Seek(4500)
	assert.Equal(t, 4.5, s.PositionSec())

	s.Seek(-100)
	assert.Equal(t, 0.0, s.PositionSec())

	s.Seek(99999)
	assert.Equal(t, 10.0, s.PositionSec())
}

func TestSimulator_FrameCapture(t *testing.T) {
	s := NewSimulator(10.0, 1.0)
	s.Seek(3000)

	img, ok := s.CurrentFrameImage()
	require.True(t, ok)
	assert.Contains(t, img, "data:text/plain;base64,")
}

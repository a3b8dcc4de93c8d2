package playback

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/replaykit/replay/pkg/timeutil"
)

// Simulator is a headless Controller used by the CLI's play command and by
// tests. It advances a virtual playback position at a configurable rate and
// clamps at the session duration.
type Simulator struct {
	mu          sync.Mutex
	positionSec float64
	durationSec float64
	rate        float64
	playing     bool
}

// NewSimulator creates a paused simulator for a session of the given
// duration. Rate 1.0 is real time; non-positive rates fall back to 1.0.
func NewSimulator(durationSec, rate float64) *Simulator {
	if rate <= 0 {
		rate = 1.0
	}
	return &Simulator{durationSec: durationSec, rate: rate}
}

// Advance moves the position forward by elapsed wall time when playing and
// returns the new raw position in seconds.
func (s *Simulator) Advance(elapsed time.Duration) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		s.positionSec += elapsed.Seconds() * s.rate
		if s.positionSec >= s.durationSec {
			s.positionSec = s.durationSec
			s.playing = false
		}
	}
	return s.positionSec
}

// Seek implements Controller.
func (s *Simulator) Seek(timeMs int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := timeutil.MsToSeconds(timeMs)
	if pos < 0 {
		pos = 0
	}
	if pos > s.durationSec {
		pos = s.durationSec
	}
	s.positionSec = pos
}

// Play implements Controller.
func (s *Simulator) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.positionSec < s.durationSec {
		s.playing = true
	}
}

// Pause implements Controller.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// CurrentFrameImage implements Controller. The simulator has no real video
// surface, so it synthesizes a tiny placeholder payload stamped with the
// capture position.
func (s *Simulator) CurrentFrameImage() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := fmt.Sprintf("frame@%s", timeutil.FormatSeconds(s.positionSec))
	return "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(stamp)), true
}

// PositionSec returns the current raw position.
func (s *Simulator) PositionSec() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionSec
}

// Playing reports whether the simulator is advancing.
func (s *Simulator) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Finished reports whether playback reached the session duration.
func (s *Simulator) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionSec >= s.durationSec
}

// Package session ties the review-session data streams together: the
// playback clock, the normalized transcript, the agenda timeline, and the
// annotation state. All methods are intended for a single event goroutine,
// matching the UI-loop model of a review surface; nothing here blocks or
// performs I/O.
package session

import (
	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/bus"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/playback"
	"github.com/replaykit/replay/pkg/timeutil"
	"github.com/replaykit/replay/pkg/transcript"
)

// Session is the controller for one recorded-session review.
type Session struct {
	logger logging.Logger
	events *bus.Bus
	marks  *annotation.Store
	notes  *annotation.NoteStore
	clock  *playback.Clock
	ctrl   playback.Controller

	doc      *transcript.Document
	lab      *agenda.Document
	timeline *agenda.Timeline

	// Derived transcript state. Rebuilt wholesale when the source payload
	// changes; consumers keep seeing the old derived state until the new
	// one is fully computed and swapped in.
	dirty     bool
	flat      []transcript.Sentence
	groups    []transcript.SpeakerGroup
	index     transcript.GroupIndex
	groupByID map[string]int
}

// Config configures a Session.
type Config struct {
	// Logger defaults to a nop logger.
	Logger logging.Logger

	// Controller is the playback surface. May be nil for read-only use;
	// playback commands then only publish bus events.
	Controller playback.Controller

	// SampleThresholdMs overrides the clock sampler threshold.
	SampleThresholdMs int
}

// New creates a session with an empty transcript and agenda. The returned
// session owns its event bus; presentation surfaces subscribe through
// Events().
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	events := bus.New()
	s := &Session{
		logger:   logger.With(logging.F("component", "session")),
		events:   events,
		marks:    annotation.NewStore(events),
		notes:    annotation.NewNoteStore(),
		ctrl:     cfg.Controller,
		timeline: agenda.NewTimeline(nil),
	}
	s.clock = playback.NewClock(cfg.SampleThresholdMs, nil)

	// The bus is the seam between presentation surfaces and the core:
	// requests published on it land here.
	events.Subscribe(bus.TopicPlayFromTimeRequested, func(ev bus.Event) {
		if p, ok := ev.Payload.(bus.PlayFromTimeRequested); ok {
			s.seek(p.TimeMs, true)
		}
	})
	events.Subscribe(bus.TopicSentenceChangeRequested, func(ev bus.Event) {
		if p, ok := ev.Payload.(bus.SentenceChangeRequested); ok {
			s.seek(p.TimeMs, false)
		}
	})
	events.Subscribe(bus.TopicNoteCaptureRequested, func(ev bus.Event) {
		if p, ok := ev.Payload.(bus.NoteCaptureRequested); ok {
			s.notes.CaptureFrame(s.ctrl, p.TimeSec)
		}
	})
	events.Subscribe(bus.TopicQuickExtractRequested, func(ev bus.Event) {
		if p, ok := ev.Payload.(bus.QuickExtractRequested); ok {
			s.notes.AddText(p.Text, timeutil.MsToSeconds(p.TimeMs))
		}
	})

	return s
}

// Events returns the session's event bus.
func (s *Session) Events() *bus.Bus { return s.events }

// Marks returns the annotation store.
func (s *Session) Marks() *annotation.Store { return s.marks }

// Notes returns the note store.
func (s *Session) Notes() *annotation.NoteStore { return s.notes }

// Clock returns the playback clock sampler.
func (s *Session) Clock() *playback.Clock { return s.clock }

// SetTranscript swaps in a new transcription document and invalidates the
// derived caches. Recomputation happens on the next derived-state access.
func (s *Session) SetTranscript(doc *transcript.Document) {
	s.doc = doc
	s.dirty = true
	s.logger.Debug("transcript swapped")
}

// ApplyFilteredPayload replaces the transcript payload in place, keeping
// playback URLs and duration, as happens when a speaker-filter response is
// adopted.
func (s *Session) ApplyFilteredPayload(p transcript.Payload) {
	if s.doc == nil {
		s.doc = &transcript.Document{}
	}
	s.doc.Payload = p
	s.dirty = true
	s.logger.Debug("filtered transcript adopted",
		logging.F("paragraphs", len(p.Paragraphs)))
}

// SetAgenda swaps in a new lab-info document and rebuilds the chapter
// timeline.
func (s *Session) SetAgenda(doc *agenda.Document) {
	s.lab = doc
	if doc == nil {
		s.timeline = agenda.NewTimeline(nil)
		return
	}
	s.timeline = agenda.NewTimeline(doc.Agenda)
}

// Agenda returns the lab-info document, which may be nil.
func (s *Session) Agenda() *agenda.Document { return s.lab }

// Timeline returns the dated-chapter timeline.
func (s *Session) Timeline() *agenda.Timeline { return s.timeline }

// DurationSec returns the session duration, or 0 with no transcript.
func (s *Session) DurationSec() float64 {
	if s.doc == nil {
		return 0
	}
	return s.doc.DurationSec
}

// rebuild recomputes the flattened sentences, speaker groups, and index
// map. Derived state is a pure function of the source payload, so the whole
// set is replaced at once.
func (s *Session) rebuild() {
	if !s.dirty {
		return
	}

	var payload transcript.Payload
	if s.doc != nil {
		payload = s.doc.Payload
	}

	flat := transcript.Flatten(payload)
	groups := transcript.GroupBySpeaker(flat)
	index := transcript.BuildGroupIndex(groups)
	byID := make(map[string]int, len(groups))
	for i, g := range groups {
		byID[g.ID] = i
	}

	s.flat, s.groups, s.index, s.groupByID = flat, groups, index, byID
	s.dirty = false

	s.logger.Debug("derived transcript state rebuilt",
		logging.F("sentences", len(flat)),
		logging.F("groups", len(groups)))
}

// Sentences returns the flattened, time-sorted sentence sequence.
func (s *Session) Sentences() []transcript.Sentence {
	s.rebuild()
	return s.flat
}

// Groups returns the speaker groups.
func (s *Session) Groups() []transcript.SpeakerGroup {
	s.rebuild()
	return s.groups
}

// GroupByID returns the group with the given id.
func (s *Session) GroupByID(id string) (transcript.SpeakerGroup, bool) {
	s.rebuild()
	idx, ok := s.groupByID[id]
	if !ok {
		return transcript.SpeakerGroup{}, false
	}
	return s.groups[idx], true
}

// Speakers returns the distinct speaker ids in order of first utterance.
func (s *Session) Speakers() []int {
	s.rebuild()
	return transcript.Speakers(s.flat)
}

func (s *Session) seek(timeMs int, play bool) {
	if s.ctrl == nil {
		return
	}
	s.ctrl.Seek(timeMs)
	if play {
		s.ctrl.Play()
	}
}

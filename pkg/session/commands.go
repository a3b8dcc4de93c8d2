package session

import (
	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/bus"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/timeutil"
	"github.com/replaykit/replay/pkg/transcript"
)

// PlayFrom seeks the playback surface to timeMs, resumes playback, and
// announces the jump on the bus.
func (s *Session) PlayFrom(timeMs int) {
	s.events.Publish(bus.TopicPlayFromTimeRequested, bus.PlayFromTimeRequested{TimeMs: timeMs})
}

// JumpToSentence moves playback to the start of a sentence without changing
// the play/pause state.
func (s *Session) JumpToSentence(sent transcript.Sentence) {
	s.rebuild()
	gid := s.index[sent.ID]
	s.events.Publish(bus.TopicSentenceChangeRequested, bus.SentenceChangeRequested{
		SentenceID: sent.ID,
		GroupID:    gid,
		TimeMs:     sent.BeginMs,
	})
}

// JumpToChapter moves playback to the start of the previous or next agenda
// chapter relative to the current sampled position. At a timeline boundary
// it reports false and playback stays put.
func (s *Session) JumpToChapter(dir Direction) (agenda.Item, bool) {
	timeMs := s.clock.SampledMs()

	var (
		item agenda.Item
		ok   bool
	)
	if dir == Next {
		item, ok = s.timeline.Next(timeMs)
	} else {
		item, ok = s.timeline.Prev(timeMs)
	}
	if !ok {
		return agenda.Item{}, false
	}

	s.logger.Debug("chapter jump",
		logging.F("chapter", item.Title),
		logging.F("startMs", *item.StartMs))
	s.PlayFrom(*item.StartMs)
	return item, true
}

// JumpToAdjacentGroup moves playback to the start of the nearest
// same-speaker group relative to the current sampled position. With no such
// neighbor it reports false and playback stays put.
func (s *Session) JumpToAdjacentGroup(dir Direction) (transcript.SpeakerGroup, bool) {
	g, ok := s.AdjacentGroup(s.clock.SampledMs(), dir)
	if !ok {
		return transcript.SpeakerGroup{}, false
	}
	s.PlayFrom(g.StartMs)
	return g, true
}

// BeginSelection suspends clock sampling while a text-selection gesture is
// in progress.
func (s *Session) BeginSelection() { s.clock.BeginSelection() }

// EndSelection ends the selection gesture.
func (s *Session) EndSelection() { s.clock.EndSelection() }

// SetMenuVisible records whether a selection menu is showing.
func (s *Session) SetMenuVisible(visible bool) { s.clock.SetMenuVisible(visible) }

// MarkSelection records a selection mark over the rune range
// [startOffset, endOffset) of a group's concatenated text, mapping both
// offsets back to playback times.
func (s *Session) MarkSelection(groupID string, startOffset, endOffset int, markType annotation.MarkType, color string) (annotation.SelectionMark, bool) {
	g, ok := s.GroupByID(groupID)
	if !ok {
		return annotation.SelectionMark{}, false
	}

	startMs, ok := annotation.SelectionTime(&g, startOffset)
	if !ok {
		return annotation.SelectionMark{}, false
	}
	endMs, _ := annotation.SelectionTime(&g, endOffset)

	text := selectionText(g.Text, startOffset, endOffset)
	return s.marks.AddSelectionMark(groupID, text, startMs, endMs, markType, color), true
}

// CaptureNote requests a screenshot note at the current raw playback time.
func (s *Session) CaptureNote() {
	s.events.Publish(bus.TopicNoteCaptureRequested, bus.NoteCaptureRequested{
		TimeSec: s.clock.RawSec(),
	})
}

// QuickExtract turns the rune range [startOffset, endOffset) of a group's
// text into a text note stamped with the selection's start time.
func (s *Session) QuickExtract(groupID string, startOffset, endOffset int) bool {
	g, ok := s.GroupByID(groupID)
	if !ok {
		return false
	}
	startMs, ok := annotation.SelectionTime(&g, startOffset)
	if !ok {
		return false
	}

	s.events.Publish(bus.TopicQuickExtractRequested, bus.QuickExtractRequested{
		GroupID: groupID,
		Text:    selectionText(g.Text, startOffset, endOffset),
		TimeMs:  startMs,
	})
	return true
}

// Tick forwards a raw player time update to the clock sampler.
func (s *Session) Tick(rawSec float64) bool {
	return s.clock.Tick(rawSec)
}

// SampledMs returns the clock's last sampled position.
func (s *Session) SampledMs() int { return s.clock.SampledMs() }

// SampledClock returns the sampled position formatted as a wall clock.
func (s *Session) SampledClock() string {
	return timeutil.FormatMs(s.clock.SampledMs())
}

func selectionText(text string, start, end int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

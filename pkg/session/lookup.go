package session

import (
	"sort"

	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/transcript"
)

// Direction selects which neighbor adjacent-navigation moves to.
type Direction int

const (
	Previous Direction = iota
	Next
)

// ActiveSentenceAt returns the sentence whose [BeginMs, EndMs] span contains
// timeMs. Sentences are sorted by begin time, so the candidate is found by
// binary search in O(log n). A time falling in an inter-sentence gap yields
// no match.
func (s *Session) ActiveSentenceAt(timeMs int) (transcript.Sentence, bool) {
	s.rebuild()

	i := sort.Search(len(s.flat), func(i int) bool {
		return s.flat[i].BeginMs > timeMs
	})
	if i == 0 {
		return transcript.Sentence{}, false
	}
	cand := s.flat[i-1]
	if timeMs > cand.EndMs {
		return transcript.Sentence{}, false
	}
	return cand, true
}

// ActiveGroupAt returns the speaker group containing timeMs, resolved
// through the active sentence and the sentence-to-group index.
func (s *Session) ActiveGroupAt(timeMs int) (transcript.SpeakerGroup, bool) {
	sent, ok := s.ActiveSentenceAt(timeMs)
	if !ok {
		return transcript.SpeakerGroup{}, false
	}
	gid, ok := s.index[sent.ID]
	if !ok {
		return transcript.SpeakerGroup{}, false
	}
	return s.groups[s.groupByID[gid]], true
}

// ActiveChapterAt returns the agenda chapter whose span contains timeMs.
func (s *Session) ActiveChapterAt(timeMs int) (agenda.Item, bool) {
	return s.timeline.ActiveAt(timeMs)
}

// AdjacentGroup returns the nearest group in the given direction spoken by
// the same speaker as the group anchoring timeMs. When timeMs falls in a
// gap between groups, the anchor is the last group before the gap. No
// same-speaker neighbor means no match, and callers leave the position
// unchanged.
func (s *Session) AdjacentGroup(timeMs int, dir Direction) (transcript.SpeakerGroup, bool) {
	s.rebuild()

	idx, ok := s.anchorGroupIndex(timeMs)
	if !ok {
		return transcript.SpeakerGroup{}, false
	}

	speaker := s.groups[idx].SpeakerID
	switch dir {
	case Previous:
		for j := idx - 1; j >= 0; j-- {
			if s.groups[j].SpeakerID == speaker {
				return s.groups[j], true
			}
		}
	case Next:
		for j := idx + 1; j < len(s.groups); j++ {
			if s.groups[j].SpeakerID == speaker {
				return s.groups[j], true
			}
		}
	}
	return transcript.SpeakerGroup{}, false
}

// anchorGroupIndex finds the group index that adjacent navigation anchors
// on. Inside a group that is the group itself; in a gap it is the group
// immediately before the gap, located by stepping back one from the first
// group that starts after timeMs.
func (s *Session) anchorGroupIndex(timeMs int) (int, bool) {
	if len(s.groups) == 0 {
		return 0, false
	}

	for i, g := range s.groups {
		if g.Contains(timeMs) {
			return i, true
		}
	}

	following := sort.Search(len(s.groups), func(i int) bool {
		return s.groups[i].StartMs > timeMs
	})
	if following == 0 {
		// Before the first group, nothing to anchor on.
		return 0, false
	}
	return following - 1, true
}

// Package annotation holds the in-memory annotation state for a review
// session: group marks, selection marks on text sub-spans, and captured
// notes. State changes are broadcast on the session bus rather than pushed
// at specific consumers, so the transcript list and progress bar stay
// decoupled from the store.
package annotation

import (
	"github.com/replaykit/replay/pkg/bus"
)

// MarkType is a user-applied annotation tag.
type MarkType string

const (
	MarkImportant MarkType = "important"
	MarkQuestion  MarkType = "question"
	MarkTodo      MarkType = "todo"

	// MarkNone clears a mark; cleared groups are indistinguishable from
	// never-marked ones.
	MarkNone MarkType = ""
)

// Valid reports whether t is one of the three mark tags.
func (t MarkType) Valid() bool {
	switch t {
	case MarkImportant, MarkQuestion, MarkTodo:
		return true
	}
	return false
}

// SelectionMark is a mark scoped to a selected sub-span of a group's text.
type SelectionMark struct {
	ID      string   `json:"id"`
	GroupID string   `json:"groupId"`
	StartMs int      `json:"startTimeMs"`
	EndMs   int      `json:"endTimeMs"`
	Text    string   `json:"text"`
	Type    MarkType `json:"type"`
	Color   string   `json:"color"`
}

// Store is the annotation state store. At most one group mark per group
// (last write wins); selection marks accumulate in insertion order and are
// never deduplicated, so overlapping spans coexist.
type Store struct {
	events     *bus.Bus
	groupMarks map[string]MarkType
	selections []SelectionMark
}

// NewStore creates an empty annotation store broadcasting on events.
func NewStore(events *bus.Bus) *Store {
	return &Store{
		events:     events,
		groupMarks: make(map[string]MarkType),
	}
}

// SetGroupMark upserts the mark for a group. MarkNone removes the entry.
// No history is retained.
func (s *Store) SetGroupMark(groupID string, t MarkType) {
	if t == MarkNone {
		delete(s.groupMarks, groupID)
	} else {
		s.groupMarks[groupID] = t
	}
	s.events.Publish(bus.TopicMarkChanged, bus.MarkChanged{
		GroupID:  groupID,
		MarkType: string(t),
	})
}

// GroupMark returns the mark for a group, if any.
func (s *Store) GroupMark(groupID string) (MarkType, bool) {
	t, ok := s.groupMarks[groupID]
	return t, ok
}

// GroupMarks returns a copy of the group-mark mapping.
func (s *Store) GroupMarks() map[string]MarkType {
	out := make(map[string]MarkType, len(s.groupMarks))
	for k, v := range s.groupMarks {
		out[k] = v
	}
	return out
}

// AddSelectionMark appends a selection mark for a text span and returns it.
func (s *Store) AddSelectionMark(groupID, text string, startMs, endMs int, t MarkType, color string) SelectionMark {
	mark := SelectionMark{
		ID:      NewMarkID(),
		GroupID: groupID,
		StartMs: startMs,
		EndMs:   endMs,
		Text:    text,
		Type:    t,
		Color:   color,
	}
	s.selections = append(s.selections, mark)

	s.events.Publish(bus.TopicSelectionMarkAdded, bus.SelectionMarkAdded{
		MarkID:  mark.ID,
		GroupID: mark.GroupID,
		StartMs: mark.StartMs,
		EndMs:   mark.EndMs,
		Text:    mark.Text,
	})
	return mark
}

// SelectionMarks returns all selection marks in insertion order.
func (s *Store) SelectionMarks() []SelectionMark {
	out := make([]SelectionMark, len(s.selections))
	copy(out, s.selections)
	return out
}

// SelectionMarksFor returns the selection marks on one group, in insertion
// order.
func (s *Store) SelectionMarksFor(groupID string) []SelectionMark {
	var out []SelectionMark
	for _, m := range s.selections {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out
}

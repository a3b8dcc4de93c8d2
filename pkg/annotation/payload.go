package annotation

// GroupMarkRecord is the wire form of a group mark as exchanged with the
// sidecar marks endpoint. TimeMs and Text carry the group's start time and
// text for display in exported summaries.
type GroupMarkRecord struct {
	GroupID string   `json:"groupId"`
	Type    MarkType `json:"type"`
	TimeMs  int      `json:"timeMs,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Snapshot is the wire form of the full annotation state.
type Snapshot struct {
	GroupMarks []GroupMarkRecord `json:"groupMarks"`
	TextMarks  []SelectionMark   `json:"textMarks"`
}

// Snapshot captures the store's current state in wire form. Group marks are
// emitted in unspecified order.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{TextMarks: s.SelectionMarks()}
	for gid, t := range s.groupMarks {
		snap.GroupMarks = append(snap.GroupMarks, GroupMarkRecord{GroupID: gid, Type: t})
	}
	return snap
}

// Restore replaces the store's state with a snapshot. Unlike the mutation
// methods this is a bulk load and publishes nothing; it is used when
// hydrating a session from the sidecar.
func (s *Store) Restore(snap Snapshot) {
	s.groupMarks = make(map[string]MarkType, len(snap.GroupMarks))
	for _, rec := range snap.GroupMarks {
		if rec.Type == MarkNone {
			continue
		}
		s.groupMarks[rec.GroupID] = rec.Type
	}
	s.selections = append([]SelectionMark(nil), snap.TextMarks...)
}

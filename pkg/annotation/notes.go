package annotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/replaykit/replay/pkg/playback"
)

// Note is a free-form annotation created from a screenshot capture or a
// quick-extract of selected transcript text. Notes are created on user
// action, mutated only through text edits, and never auto-deleted.
type Note struct {
	ID           string    `json:"id"`
	TimestampSec float64   `json:"timestampSec"`
	ImageData    string    `json:"imageData,omitempty"` // data URL
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NoteStore holds the session's notes in creation order.
type NoteStore struct {
	notes []Note
	now   func() time.Time
}

// NewNoteStore creates an empty note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{now: time.Now}
}

// CaptureFrame creates a screenshot note at the given playback position.
// Surfaces that cannot capture frames yield a note without image data; the
// capture still succeeds.
func (ns *NoteStore) CaptureFrame(ctrl playback.Controller, timeSec float64) Note {
	note := Note{
		ID:           uuid.New().String(),
		TimestampSec: timeSec,
		CreatedAt:    ns.now(),
	}
	if ctrl != nil {
		if img, ok := ctrl.CurrentFrameImage(); ok {
			note.ImageData = img
		}
	}
	ns.notes = append(ns.notes, note)
	return note
}

// AddText creates a text note, as used by quick-extract from selected
// transcript text.
func (ns *NoteStore) AddText(text string, timeSec float64) Note {
	note := Note{
		ID:           uuid.New().String(),
		TimestampSec: timeSec,
		Text:         text,
		CreatedAt:    ns.now(),
	}
	ns.notes = append(ns.notes, note)
	return note
}

// UpdateText replaces a note's text content. It reports false when the note
// does not exist.
func (ns *NoteStore) UpdateText(id, text string) bool {
	for i := range ns.notes {
		if ns.notes[i].ID == id {
			ns.notes[i].Text = text
			return true
		}
	}
	return false
}

// Notes returns all notes in creation order.
func (ns *NoteStore) Notes() []Note {
	out := make([]Note, len(ns.notes))
	copy(out, ns.notes)
	return out
}

// Package agenda provides the auto-generated agenda/chapter model for a
// recorded session: decoding the lab-info document and time-based chapter
// lookup and navigation.
package agenda

// Item is a titled, optionally time-bounded segment of the session. Items
// without time bounds are excluded from all time-based features.
type Item struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	StartMs *int   `json:"time,omitempty"`
	EndMs   *int   `json:"endTime,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Dated reports whether the item carries both time bounds.
func (it *Item) Dated() bool {
	return it.StartMs != nil && it.EndMs != nil
}

// Contains reports whether the item's span includes the given time.
// Undated items contain nothing.
func (it *Item) Contains(timeMs int) bool {
	return it.Dated() && timeMs >= *it.StartMs && timeMs <= *it.EndMs
}

// SpeakerSummary is a per-speaker generated summary block.
type SpeakerSummary struct {
	SpeakerID int    `json:"speakerId"`
	Name      string `json:"name"`
	Summary   string `json:"summary"`
}

// Document is a decoded lab-info document: the keyed content blocks
// generated for a session.
type Document struct {
	Agenda           []Item           `json:"agenda"`
	Keywords         []string         `json:"keywords"`
	SpeakerSummaries []SpeakerSummary `json:"speakerSummaries"`
}

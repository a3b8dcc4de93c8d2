// Package transcript provides decoding and normalization of recorded-session
// transcripts: flattening paragraph/sentence payloads into a time-ordered
// sentence sequence and grouping consecutive same-speaker sentences into
// speaker groups.
package transcript

// Sentence is a single timestamped utterance fragment. Field tags follow the
// upstream transcription service's wire names. Sentences are immutable once
// loaded.
type Sentence struct {
	ID        int    `json:"id"`
	BeginMs   int    `json:"bt"`
	EndMs     int    `json:"et"`
	SpeakerID int    `json:"si"`
	Text      string `json:"tc"`
}

// Paragraph is an ordered run of sentences as delivered by the transcription
// service.
type Paragraph struct {
	Sentences []Sentence `json:"sc"`
}

// Payload is the decoded transcript body.
type Payload struct {
	Paragraphs []Paragraph `json:"pg"`
}

// SpeakerGroup is a maximal run of time-consecutive sentences attributed to
// the same speaker. StartMs is the first sentence's BeginMs, EndMs the last
// sentence's EndMs, Text the ordered concatenation of sentence texts.
type SpeakerGroup struct {
	ID        string     `json:"id"`
	SpeakerID int        `json:"speakerId"`
	StartMs   int        `json:"startMs"`
	EndMs     int        `json:"endMs"`
	Sentences []Sentence `json:"sentences"`
	Text      string     `json:"text"`
}

// Contains reports whether the group's time span includes the given time.
func (g *SpeakerGroup) Contains(timeMs int) bool {
	return timeMs >= g.StartMs && timeMs <= g.EndMs
}

// Document is a decoded transcription-result document.
type Document struct {
	VideoURL    string
	AudioURL    string
	DurationSec float64
	Payload     Payload
}

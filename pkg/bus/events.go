package bus

// SentenceChangeRequested asks the transcript view to move to a sentence.
type SentenceChangeRequested struct {
	SentenceID int    `json:"sentenceId"`
	GroupID    string `json:"groupId"`
	TimeMs     int    `json:"timeMs"`
}

// MarkChanged announces a group-mark update. MarkType is empty when the
// mark was cleared.
type MarkChanged struct {
	GroupID  string `json:"groupId"`
	MarkType string `json:"markType"`
}

// SelectionMarkAdded announces a new selection mark on a sub-span of a
// group's text.
type SelectionMarkAdded struct {
	MarkID  string `json:"markId"`
	GroupID string `json:"groupId"`
	StartMs int    `json:"startMs"`
	EndMs   int    `json:"endMs"`
	Text    string `json:"text"`
}

// PlayFromTimeRequested asks the playback surface to seek.
type PlayFromTimeRequested struct {
	TimeMs int `json:"timeMs"`
}

// NoteCaptureRequested asks for a screenshot note at the current position.
type NoteCaptureRequested struct {
	TimeSec float64 `json:"timeSec"`
}

// QuickExtractRequested asks for a text note built from selected transcript
// text.
type QuickExtractRequested struct {
	GroupID string `json:"groupId"`
	Text    string `json:"text"`
	TimeMs  int    `json:"timeMs"`
}

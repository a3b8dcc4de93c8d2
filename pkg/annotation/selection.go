package annotation

import "github.com/replaykit/replay/pkg/transcript"

// SelectionTime maps a character offset within a group's concatenated text
// back to a playback time. The containing sentence is located by walking
// the per-sentence text ranges, then the offset is interpolated linearly
// within that sentence's [BeginMs, EndMs] by character-position ratio.
// Speech rate is assumed uniform within a sentence, which is good enough
// for "jump to roughly here" navigation.
//
// Offsets are rune positions into the concatenated text. Out-of-range
// offsets clamp to the group bounds; an empty group reports false.
func SelectionTime(g *transcript.SpeakerGroup, offset int) (int, bool) {
	if g == nil || len(g.Sentences) == 0 {
		return 0, false
	}
	if offset <= 0 {
		return g.StartMs, true
	}

	pos := 0
	for _, s := range g.Sentences {
		runes := []rune(s.Text)
		if offset < pos+len(runes) {
			span := s.EndMs - s.BeginMs
			if len(runes) == 0 || span <= 0 {
				return s.BeginMs, true
			}
			ratio := float64(offset-pos) / float64(len(runes))
			return s.BeginMs + int(ratio*float64(span)), true
		}
		pos += len(runes)
	}
	return g.EndMs, true
}

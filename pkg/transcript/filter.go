package transcript

// FilterBySpeakers returns a copy of the payload keeping only sentences
// whose speaker id is in speakerIDs. Paragraphs left with no sentences are
// dropped. An empty speaker list means no filtering.
func FilterBySpeakers(p Payload, speakerIDs []int) Payload {
	if len(speakerIDs) == 0 {
		return p
	}

	keep := make(map[int]bool, len(speakerIDs))
	for _, id := range speakerIDs {
		keep[id] = true
	}

	out := Payload{Paragraphs: make([]Paragraph, 0, len(p.Paragraphs))}
	for _, para := range p.Paragraphs {
		var kept []Sentence
		for _, s := range para.Sentences {
			if keep[s.SpeakerID] {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out.Paragraphs = append(out.Paragraphs, Paragraph{Sentences: kept})
	}
	return out
}

package transcript

import (
	"fmt"
	"sort"
)

// Flatten collapses a paragraph/sentence payload into a single sentence
// sequence sorted ascending by BeginMs. The sort is stable, so sentences
// with equal begin times keep their original document order.
func Flatten(p Payload) []Sentence {
	var total int
	for _, para := range p.Paragraphs {
		total += len(para.Sentences)
	}

	flat := make([]Sentence, 0, total)
	for _, para := range p.Paragraphs {
		flat = append(flat, para.Sentences...)
	}

	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].BeginMs < flat[j].BeginMs
	})
	return flat
}

// GroupBySpeaker scans a flattened, time-sorted sentence sequence once and
// produces maximal runs of consecutive same-speaker sentences. It is a pure
// function of its input: identical input yields identical output, including
// group ids.
func GroupBySpeaker(sentences []Sentence) []SpeakerGroup {
	if len(sentences) == 0 {
		return nil
	}

	groups := make([]SpeakerGroup, 0, 8)
	var current *SpeakerGroup

	for _, s := range sentences {
		if current == nil || current.SpeakerID != s.SpeakerID {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &SpeakerGroup{
				ID:        fmt.Sprintf("g%d", len(groups)),
				SpeakerID: s.SpeakerID,
				StartMs:   s.BeginMs,
				EndMs:     s.EndMs,
				Sentences: []Sentence{s},
				Text:      s.Text,
			}
			continue
		}
		current.EndMs = s.EndMs
		current.Sentences = append(current.Sentences, s)
		current.Text += s.Text
	}
	groups = append(groups, *current)
	return groups
}

// GroupIndex maps sentence ids to the id of the group containing them.
// It is rebuilt wholesale alongside the groups it describes.
type GroupIndex map[int]string

// BuildGroupIndex builds the sentence-id to group-id mapping for a grouping
// pass. Lookup through the index is O(1).
func BuildGroupIndex(groups []SpeakerGroup) GroupIndex {
	idx := make(GroupIndex)
	for _, g := range groups {
		for _, s := range g.Sentences {
			idx[s.ID] = g.ID
		}
	}
	return idx
}

// Speakers returns the distinct speaker ids in order of first appearance.
func Speakers(sentences []Sentence) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, s := range sentences {
		if !seen[s.SpeakerID] {
			seen[s.SpeakerID] = true
			ids = append(ids, s.SpeakerID)
		}
	}
	return ids
}

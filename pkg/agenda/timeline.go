package agenda

// boundaryOffsetMs is subtracted from an item's end time when locating the
// current chapter for navigation. Without it, a playback position sitting
// exactly on a segment edge flips between the two adjacent chapters; the
// inclusive test below is only consulted when the offset test finds nothing.
const boundaryOffsetMs = 100

// Timeline provides time-based lookup and prev/next navigation over the
// dated agenda items. Items are assumed ascending by start time and
// non-overlapping; neither is validated.
type Timeline struct {
	dated []Item
}

// NewTimeline builds a timeline from the agenda items, keeping only dated
// ones.
func NewTimeline(items []Item) *Timeline {
	tl := &Timeline{}
	for _, it := range items {
		if it.Dated() {
			tl.dated = append(tl.dated, it)
		}
	}
	return tl
}

// Dated returns the dated items in timeline order.
func (tl *Timeline) Dated() []Item {
	return tl.dated
}

// ActiveAt returns the chapter whose span contains timeMs. Agenda lists are
// small, so this is a linear scan; first match wins. A time falling in an
// inter-chapter gap yields no match.
func (tl *Timeline) ActiveAt(timeMs int) (Item, bool) {
	for _, it := range tl.dated {
		if it.Contains(timeMs) {
			return it, true
		}
	}
	return Item{}, false
}

// currentIndex locates the chapter index used as the anchor for prev/next
// navigation. First pass tests against end time minus the boundary offset;
// if that finds nothing, an inclusive [start, end] test is tried.
func (tl *Timeline) currentIndex(timeMs int) (int, bool) {
	for i, it := range tl.dated {
		if timeMs < *it.EndMs-boundaryOffsetMs {
			return i, true
		}
	}
	for i, it := range tl.dated {
		if it.Contains(timeMs) {
			return i, true
		}
	}
	return 0, false
}

// Next returns the chapter after the one anchoring timeMs. At the last
// dated chapter, or when no anchor exists, it reports false and callers
// leave the playback position unchanged.
func (tl *Timeline) Next(timeMs int) (Item, bool) {
	idx, ok := tl.currentIndex(timeMs)
	if !ok || idx+1 >= len(tl.dated) {
		return Item{}, false
	}
	return tl.dated[idx+1], true
}

// Prev returns the chapter before the one anchoring timeMs. At the first
// dated chapter, or when no anchor exists, it reports false.
func (tl *Timeline) Prev(timeMs int) (Item, bool) {
	idx, ok := tl.currentIndex(timeMs)
	if !ok || idx == 0 {
		return Item{}, false
	}
	return tl.dated[idx-1], true
}

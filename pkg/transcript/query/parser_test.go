package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/replay/pkg/transcript"
)

func testSentences() []transcript.Sentence {
	return []transcript.Sentence{
		{ID: 1, BeginMs: 0, EndMs: 2000, SpeakerID: 1, Text: "Welcome back everyone."},
		{ID: 2, BeginMs: 2000, EndMs: 3000, SpeakerID: 1, Text: "Let's review the Budget."},
		{ID: 3, BeginMs: 3500, EndMs: 5000, SpeakerID: 2, Text: "The budget looks fine to me."},
		{ID: 4, BeginMs: 5000, EndMs: 7000, SpeakerID: 1, Text: "Then we are done."},
	}
}

func TestParse_PlainTerms(t *testing.T) {
	q, err := Parse("budget review")
	require.NoError(t, err)

	require.Len(t, q.Terms, 2)
	assert.Equal(t, "budget", q.Terms[0].Text)
	assert.Equal(t, "review", q.Terms[1].Text)
	assert.Empty(t, q.Speakers)
	assert.Nil(t, q.AfterMs)
	assert.Nil(t, q.BeforeMs)
}

func TestParse_QuotedPhrase(t *testing.T) {
	q, err := Parse(`"the budget" fine`)
	require.NoError(t, err)

	require.Len(t, q.Terms, 2)
	assert.Equal(t, "the budget", q.Terms[0].Text)
	assert.True(t, q.Terms[0].Quoted)
	assert.Equal(t, "fine", q.Terms[1].Text)
	assert.False(t, q.Terms[1].Quoted)
}

func TestParse_UnclosedQuote(t *testing.T) {
	_, err := Parse(`"the budget`)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "unclosed")
}

func TestParse_Filters(t *testing.T) {
	q, err := Parse("speaker:2 after:0:02 before:1:00 budget")
	require.NoError(t, err)

	assert.Equal(t, []int{2}, q.Speakers)
	require.NotNil(t, q.AfterMs)
	assert.Equal(t, 2000, *q.AfterMs)
	require.NotNil(t, q.BeforeMs)
	assert.Equal(t, 60000, *q.BeforeMs)
	require.Len(t, q.Terms, 1)
	assert.Equal(t, "budget", q.Terms[0].Text)
}

func TestParse_InvalidFilterValues(t *testing.T) {
	_, err := Parse("speaker:alice")
	assert.Error(t, err)

	_, err = Parse("after:whenever")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestParse_BareClockIsNotAFilter(t *testing.T) {
	// A colon inside a plain word only starts a filter for known keys.
	q, err := Parse("1:30")
	require.NoError(t, err)
	require.Len(t, q.Terms, 1)
	assert.Equal(t, "1:30", q.Terms[0].Text)
}

func TestFilter_TextFolding(t *testing.T) {
	q, err := Parse("BUDGET")
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestFilter_Negation(t *testing.T) {
	q, err := Parse("budget -review")
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestFilter_SpeakerAndTime(t *testing.T) {
	q, err := Parse("speaker:1 after:0:02")
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 4, got[1].ID)
}

func TestFilter_BeforeIsExclusive(t *testing.T) {
	q, err := Parse("before:0:02")
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilter_MultipleSpeakersOr(t *testing.T) {
	q, err := Parse("speaker:1 speaker:2 budget")
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	assert.Len(t, got, 2)
}

func TestFilter_QuotedPhraseMatchesWholeSpan(t *testing.T) {
	q, err := Parse(`"budget looks"`)
	require.NoError(t, err)

	got := Filter(testSentences(), q)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

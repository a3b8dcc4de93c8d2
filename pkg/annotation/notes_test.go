package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/replay/pkg/playback"
)

func TestCaptureFrame(t *testing.T) {
	ns := NewNoteStore()
	sim := playback.NewSimulator(60, 1.0)
	sim.Seek(12000)

	note := ns.CaptureFrame(sim, 12.0)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, 12.0, note.TimestampSec)
	assert.NotEmpty(t, note.ImageData)
	assert.False(t, note.CreatedAt.IsZero())
}

func TestCaptureFrame_NoController(t *testing.T) {
	ns := NewNoteStore()
	note := ns.CaptureFrame(nil, 3.5)
	assert.Empty(t, note.ImageData)
	assert.Equal(t, 3.5, note.TimestampSec)
}

func TestAddTextAndUpdate(t *testing.T) {
	ns := NewNoteStore()

	first := ns.AddText("follow up on budget", 10)
	second := ns.AddText("ping design team", 20)
	assert.NotEqual(t, first.ID, second.ID)

	require.True(t, ns.UpdateText(first.ID, "budget approved"))
	assert.False(t, ns.UpdateText("missing", "x"))

	notes := ns.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "budget approved", notes[0].Text)
	assert.Equal(t, "ping design team", notes[1].Text)
}

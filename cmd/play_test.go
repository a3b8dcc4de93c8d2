package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/replay/pkg/playback"
)

// TestNewPlayCommand verifies the play command structure.
func TestNewPlayCommand(t *testing.T) {
	cmd := NewPlayCommand(DefaultPlayDeps())

	assert.Equal(t, "play", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("from"))
	require.NotNil(t, cmd.Flags().Lookup("rate"))
	require.NotNil(t, cmd.Flags().ShorthandLookup("r"))
	require.NotNil(t, cmd.Flags().Lookup("for"))
	require.NotNil(t, cmd.Flags().Lookup("tick"))
}

func TestRunPlay_PrintsTransitions(t *testing.T) {
	dir := t.TempDir()
	src := sessionSource{
		transcriptPath: writeTranscriptFixture(t, dir),
		labPath:        writeLabFixture(t, dir),
	}
	s, err := src.load(context.Background(), testConfig())
	require.NoError(t, err)

	// A fast rate with fine ticks keeps the test quick while still crossing
	// every turn and chapter boundary.
	sim := playback.NewSimulator(s.DurationSec(), 100)

	buf := &bytes.Buffer{}
	err = runPlay(context.Background(), s, sim, buf, 0, 0, time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "speaker 1: Welcome back everyone. Let's get started.")
	assert.Contains(t, out, "speaker 2: I reviewed the budget.")
	assert.Contains(t, out, "speaker 1: Thanks for that.")
	assert.Contains(t, out, "--- intro ---")
	assert.Contains(t, out, "--- review ---")
	assert.Contains(t, out, "end of session")
	assert.True(t, sim.Finished())
}

func TestRunPlay_FromOffsetSkipsEarlierTurns(t *testing.T) {
	dir := t.TempDir()
	src := sessionSource{transcriptPath: writeTranscriptFixture(t, dir)}
	s, err := src.load(context.Background(), testConfig())
	require.NoError(t, err)

	sim := playback.NewSimulator(s.DurationSec(), 100)

	buf := &bytes.Buffer{}
	err = runPlay(context.Background(), s, sim, buf, 5000, 0, time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "Welcome back")
	assert.Contains(t, out, "Thanks for that.")
	assert.Contains(t, out, "end of session")
}

func TestRunPlay_HonorsContextCancel(t *testing.T) {
	dir := t.TempDir()
	src := sessionSource{transcriptPath: writeTranscriptFixture(t, dir)}
	s, err := src.load(context.Background(), testConfig())
	require.NoError(t, err)

	// Real-time rate would take seconds; cancellation must end it early.
	sim := playback.NewSimulator(s.DurationSec(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	buf := &bytes.Buffer{}
	err = runPlay(ctx, s, sim, buf, 0, 0, time.Millisecond)
	require.NoError(t, err)
	assert.False(t, sim.Finished())
}

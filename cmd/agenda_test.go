package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAgendaCommand verifies the agenda command structure.
func TestNewAgendaCommand(t *testing.T) {
	cmd := NewAgendaCommand(DefaultAgendaDeps())

	assert.Equal(t, "agenda", cmd.Use)
	assert.Contains(t, cmd.Aliases, "chapters")

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "next")
	assert.Contains(t, names, "prev")
}

func TestAgendaList(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeTranscriptFixture(t, dir)
	labPath := writeLabFixture(t, dir)

	cmd := NewAgendaCommand(&AgendaCommandDeps{Config: testConfig()})
	out, err := execute(t, cmd, "list", "-t", transcriptPath, "--lab", labPath)
	require.NoError(t, err)

	assert.Contains(t, out, "[00:00 - 00:03] intro")
	assert.Contains(t, out, "[00:03 - 00:07] review")
	assert.Contains(t, out, "budget walkthrough")
}

func TestAgendaList_NoAgenda(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeTranscriptFixture(t, dir)

	cmd := NewAgendaCommand(&AgendaCommandDeps{Config: testConfig()})
	out, err := execute(t, cmd, "list", "-t", transcriptPath)
	require.NoError(t, err)

	assert.Contains(t, out, "No agenda.")
}

func TestAgendaNext(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeTranscriptFixture(t, dir)
	labPath := writeLabFixture(t, dir)

	cmd := NewAgendaCommand(&AgendaCommandDeps{Config: testConfig()})
	out, err := execute(t, cmd, "next", "0:01", "-t", transcriptPath, "--lab", labPath)
	require.NoError(t, err)

	assert.Contains(t, out, "review")
	assert.NotContains(t, out, "intro")
}

func TestAgendaNext_AtFinalChapter(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeTranscriptFixture(t, dir)
	labPath := writeLabFixture(t, dir)

	cmd := NewAgendaCommand(&AgendaCommandDeps{Config: testConfig()})
	out, err := execute(t, cmd, "next", "0:05", "-t", transcriptPath, "--lab", labPath)
	require.NoError(t, err)

	assert.Contains(t, out, "No chapter in that direction.")
}

func TestAgendaPrev(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeTranscriptFixture(t, dir)
	labPath := writeLabFixture(t, dir)

	cmd := NewAgendaCommand(&AgendaCommandDeps{Config: testConfig()})
	out, err := execute(t, cmd, "prev", "0:05", "-t", transcriptPath, "--lab", labPath)
	require.NoError(t, err)

	assert.Contains(t, out, "intro")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewServeCommand verifies the serve command structure.
func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand(DefaultServeDeps())

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	require.NotNil(t, cmd.Flags().Lookup("listen"))
	require.NotNil(t, cmd.Flags().ShorthandLookup("l"))
	require.NotNil(t, cmd.Flags().Lookup("session-id"))
	require.NotNil(t, cmd.Flags().Lookup("transcript"))
	require.NotNil(t, cmd.Flags().Lookup("lab"))

	sessionFlag := cmd.Flags().Lookup("session-id")
	assert.Equal(t, "local", sessionFlag.DefValue)
}

func TestServeCommand_RequiresTranscript(t *testing.T) {
	cmd := NewServeCommand(&ServeCommandDeps{Config: testConfig()})
	_, err := execute(t, cmd)
	assert.Error(t, err)
}

func TestServeCommand_BadTranscriptPath(t *testing.T) {
	cmd := NewServeCommand(&ServeCommandDeps{Config: testConfig()})
	_, err := execute(t, cmd, "-t", "/nonexistent/transcript.json")
	assert.Error(t, err)
}

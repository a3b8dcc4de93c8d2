package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkID_Format(t *testing.T) {
	id := NewMarkID()

	assert.Len(t, id, 11)
	assert.True(t, strings.HasPrefix(id, "sm-"))
	require.NoError(t, ParseMarkID(id))
}

func TestNewMarkID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewMarkID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParseMarkID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", "sm-abc"},
		{"too long", "sm-abcdefghijk"},
		{"wrong prefix", "nt-abcd1234"},
		{"no dash", "smXabcd1234"},
		{"bad characters", "sm-abcd12!4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseMarkID(tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMarkID)
			assert.False(t, ValidMarkID(tt.id))
		})
	}
}

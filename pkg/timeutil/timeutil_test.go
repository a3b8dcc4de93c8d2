package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "00:00", FormatMs(0))
	assert.Equal(t, "00:05", FormatMs(5579))
	assert.Equal(t, "05:45", FormatMs(345500))
	assert.Equal(t, "1:00:01", FormatMs(3601000))
	assert.Equal(t, "00:00", FormatMs(-250))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "02:03", FormatSeconds(123.4))
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"45", 45000},
		{"02:03", 123000},
		{"1:00:01", 3601000},
		{"1:23.500", 83500},
		{" 12:34 ", 754000},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "a:b", "1:2:3:4", "-5"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestRoundTrip(t *testing.T) {
	ms := SecondsToMs(12.5)
	assert.Equal(t, 12500, ms)
	assert.Equal(t, 12.5, MsToSeconds(ms))
}

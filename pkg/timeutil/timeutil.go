// Package timeutil provides conversions between playback milliseconds,
// seconds, and display clock strings.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// MsPerSecond is the number of milliseconds in one second.
const MsPerSecond = 1000

// SecondsToMs converts a fractional second count to whole milliseconds.
func SecondsToMs(sec float64) int {
	return int(sec * MsPerSecond)
}

// MsToSeconds converts milliseconds to fractional seconds.
func MsToSeconds(ms int) float64 {
	return float64(ms) / MsPerSecond
}

// FormatMs renders a millisecond offset as a clock string.
// Offsets under one hour render as MM:SS, longer ones as H:MM:SS.
// Negative offsets clamp to 00:00.
func FormatMs(ms int) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / MsPerSecond
	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	seconds := totalSec % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatSeconds renders a fractional second offset as a clock string.
func FormatSeconds(sec float64) string {
	return FormatMs(SecondsToMs(sec))
}

// ParseClock parses a clock string back to milliseconds. Accepted forms:
// "SS", "MM:SS", "HH:MM:SS", each segment optionally fractional in the
// last position ("1:23.500").
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid clock string %q", s)
		}
		total = total*60 + v
	}
	return int(total * MsPerSecond), nil
}

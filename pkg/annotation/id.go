package annotation

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// Mark ID format: sm-<base62_ts:4><base62_rand:4> (11 chars including dash).
// The timestamp component uses microseconds since epoch modulo 62^4; the
// random component provides 14M+ combinations so ids stay unique even when
// two marks land in the same instant.

const markIDPrefix = "sm"

// base62 alphabet: 0-9, a-z, A-Z
const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// base62Max is 62^4 = 14,776,336 (used for timestamp wrapping)
const base62Max = 62 * 62 * 62 * 62

// ErrInvalidMarkID reports a malformed selection-mark id.
var ErrInvalidMarkID = errors.New("invalid mark id")

// NewMarkID generates a selection-mark id.
func NewMarkID() string {
	ts := encodeBase62(uint64(time.Now().UnixNano()/1000) % base62Max)
	rnd := randomBase62(4)
	return fmt.Sprintf("%s-%s%s", markIDPrefix, ts, rnd)
}

// ParseMarkID validates a selection-mark id string.
func ParseMarkID(id string) error {
	if len(id) != 11 {
		return fmt.Errorf("%w: expected 11 characters, got %d", ErrInvalidMarkID, len(id))
	}
	if id[:3] != markIDPrefix+"-" {
		return fmt.Errorf("%w: missing %q prefix", ErrInvalidMarkID, markIDPrefix)
	}
	if !isValidBase62(id[3:]) {
		return fmt.Errorf("%w: suffix contains invalid characters", ErrInvalidMarkID)
	}
	return nil
}

// ValidMarkID reports whether id is a well-formed selection-mark id.
func ValidMarkID(id string) bool {
	return ParseMarkID(id) == nil
}

// encodeBase62 encodes a number as a 4-character base62 string.
func encodeBase62(n uint64) string {
	result := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		result[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(result)
}

// randomBase62 generates a random base62 string of the specified length,
// using rejection sampling to eliminate modulo bias.
func randomBase62(length int) string {
	result := make([]byte, length)

	// 256 / 62 = 4 with remainder 8, so values 0-247 map evenly to 0-61.
	const maxUnbiased = 248

	for i := 0; i < length; {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			result[i] = base62Alphabet[0]
			i++
			continue
		}
		if b[0] < maxUnbiased {
			result[i] = base62Alphabet[b[0]%62]
			i++
		}
	}

	return string(result)
}

// isValidBase62 checks if a string contains only base62 characters.
func isValidBase62(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

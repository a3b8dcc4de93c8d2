package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	rperrors "github.com/replaykit/replay/pkg/errors"
)

var (
	// Matches a cue header: 1 "Speaker Name" (speaker_id) or just: 1 "" (0)
	vttCueHeaderRegex = regexp.MustCompile(`^\d+\s+"([^"]*)"(?:\s+\((\d+)\))?`)

	// Matches a timestamp line: 00:00:05.579 --> 00:00:06.858
	vttTimestampRegex = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}\.\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}\.\d{3})`)
)

// ParseVTT decodes a WebVTT transcript export into a Document. Each cue
// becomes one sentence; speakers without an explicit numeric id are numbered
// in order of first appearance. Useful for sessions recorded on platforms
// that export WebVTT instead of the transcription service's JSON.
func ParseVTT(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)

	var (
		sentences   []Sentence
		current     *Sentence
		speakerByNm = map[string]int{}
		nextSpeaker = 1
		lastEndMs   int
	)

	flush := func() {
		if current != nil && current.Text != "" {
			current.ID = len(sentences) + 1
			sentences = append(sentences, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "WEBVTT" {
			continue
		}

		if matches := vttCueHeaderRegex.FindStringSubmatch(line); matches != nil {
			flush()

			name := matches[1]
			speakerID := 0
			switch {
			case len(matches) > 2 && matches[2] != "":
				speakerID, _ = strconv.Atoi(matches[2])
			case name != "":
				id, ok := speakerByNm[name]
				if !ok {
					id = nextSpeaker
					nextSpeaker++
					speakerByNm[name] = id
				}
				speakerID = id
			}

			current = &Sentence{SpeakerID: speakerID}
			continue
		}

		if matches := vttTimestampRegex.FindStringSubmatch(line); matches != nil {
			startMs := parseVTTTimestamp(matches[1])
			endMs := parseVTTTimestamp(matches[2])
			if current != nil {
				current.BeginMs = startMs
				current.EndMs = endMs
			}
			if endMs > lastEndMs {
				lastEndMs = endMs
			}
			continue
		}

		if current != nil {
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += line
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading vtt: %v", rperrors.ErrMalformedDocument, err)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: vtt contains no cues", rperrors.ErrMalformedDocument)
	}

	return &Document{
		DurationSec: float64(lastEndMs) / 1000,
		Payload:     Payload{Paragraphs: []Paragraph{{Sentences: sentences}}},
	}, nil
}

// LoadVTT reads and decodes a WebVTT transcript from disk.
func LoadVTT(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vtt transcript: %w", err)
	}
	defer f.Close()
	return ParseVTT(f)
}

// parseVTTTimestamp parses a VTT timestamp (HH:MM:SS.mmm) to milliseconds.
func parseVTTTimestamp(ts string) int {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	secParts := strings.Split(parts[2], ".")
	seconds, _ := strconv.Atoi(secParts[0])
	milliseconds := 0
	if len(secParts) > 1 {
		milliseconds, _ = strconv.Atoi(secParts[1])
	}

	return hours*3600000 + minutes*60000 + seconds*1000 + milliseconds
}

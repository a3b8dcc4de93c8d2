// Package cmd provides CLI commands for the replay tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/replaykit/replay/client"
	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/session"
	"github.com/replaykit/replay/pkg/timeutil"
	"github.com/replaykit/replay/pkg/transcript"
)

// sessionSource describes where a command reads its session documents from:
// local JSON files exported from the transcription service, or the sidecar
// server by session id.
type sessionSource struct {
	transcriptPath string
	labPath        string
	sessionID      string
}

// addSourceFlags registers the shared document-source flags on cmd.
func addSourceFlags(cmd *cobra.Command, src *sessionSource) {
	cmd.Flags().StringVarP(&src.transcriptPath, "transcript", "t", "", "Path to a transcription-result JSON file (or a .vtt export)")
	cmd.Flags().StringVar(&src.labPath, "lab", "", "Path to a lab-info JSON file (agenda, keywords)")
	cmd.Flags().StringVarP(&src.sessionID, "session", "s", "", "Session id to fetch from the sidecar server")
}

// load builds a session from the configured source. Exactly one of
// --transcript or --session must be given; --lab is optional either way.
func (src *sessionSource) load(ctx context.Context, cfg *config.CLIConfig) (*session.Session, error) {
	s := session.New(session.Config{SampleThresholdMs: cfg.SampleThresholdMs})

	switch {
	case src.sessionID != "":
		c := client.FromConfig(cfg)
		doc, err := c.FetchTranscript(ctx, src.sessionID)
		if err != nil {
			return nil, err
		}
		s.SetTranscript(doc)

		lab, err := c.FetchLabInfo(ctx, src.sessionID)
		if err != nil {
			return nil, err
		}
		s.SetAgenda(lab)

	case src.transcriptPath != "":
		doc, err := loadTranscript(src.transcriptPath)
		if err != nil {
			return nil, err
		}
		s.SetTranscript(doc)

		if src.labPath != "" {
			lab, err := agenda.LoadDocument(src.labPath)
			if err != nil {
				return nil, err
			}
			s.SetAgenda(lab)
		}

	default:
		return nil, fmt.Errorf("either --transcript or --session is required")
	}

	return s, nil
}

// loadTranscript reads a transcript file, picking the decoder by extension:
// .vtt for WebVTT exports, anything else the transcription service's JSON.
func loadTranscript(path string) (*transcript.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".vtt") {
		return transcript.LoadVTT(path)
	}
	return transcript.LoadDocument(path)
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v as YAML.
func outputYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// writeFormatted renders v in the requested format, falling back to textFn
// for human-readable output.
func writeFormatted(w io.Writer, format config.OutputFormat, v any, textFn func(io.Writer) error) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, v)
	case config.OutputFormatYAML:
		return outputYAML(w, v)
	default:
		return textFn(w)
	}
}

// parseTimeArg parses a positional time argument, either a clock string
// (MM:SS, HH:MM:SS) or a bare number of seconds, into milliseconds.
func parseTimeArg(arg string) (int, error) {
	ms, err := timeutil.ParseClock(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", arg, err)
	}
	return ms, nil
}

// groupView is the machine-readable rendering of a speaker group.
type groupView struct {
	ID        string `json:"id"`
	SpeakerID int    `json:"speakerId"`
	StartMs   int    `json:"startMs"`
	EndMs     int    `json:"endMs"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Text      string `json:"text"`
}

func viewOfGroup(g transcript.SpeakerGroup) groupView {
	return groupView{
		ID:        g.ID,
		SpeakerID: g.SpeakerID,
		StartMs:   g.StartMs,
		EndMs:     g.EndMs,
		Start:     timeutil.FormatMs(g.StartMs),
		End:       timeutil.FormatMs(g.EndMs),
		Text:      g.Text,
	}
}

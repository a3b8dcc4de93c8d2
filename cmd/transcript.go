package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/client"
	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/session"
	"github.com/replaykit/replay/pkg/timeutil"
	"github.com/replaykit/replay/pkg/transcript"
	"github.com/replaykit/replay/pkg/transcript/query"
)

// TranscriptCommandDeps holds the dependencies for transcript commands.
type TranscriptCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultTranscriptDeps returns the default dependencies for production use.
func DefaultTranscriptDeps() *TranscriptCommandDeps {
	return &TranscriptCommandDeps{LoadConfig: config.LoadConfig}
}

// NewTranscriptCommand creates the root transcript command with all
// subcommands.
func NewTranscriptCommand(deps *TranscriptCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultTranscriptDeps()
	}

	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Inspect and filter a session transcript",
		Long: `Work with a session's normalized transcript: list speaker turns,
search text, filter by speaker, and find same-speaker turns near a time.

The raw transcription arrives as paragraphs of sentences; these commands
operate on the flattened, time-ordered view grouped into maximal
same-speaker runs.`,
		Aliases: []string{"ts"},
	}

	cmd.AddCommand(newTranscriptListCommand(deps))
	cmd.AddCommand(newTranscriptSpeakersCommand(deps))
	cmd.AddCommand(newTranscriptSearchCommand(deps))
	cmd.AddCommand(newTranscriptFilterCommand(deps))
	cmd.AddCommand(newTranscriptAdjacentCommand(deps))

	return cmd
}

func printGroups(w io.Writer, groups []transcript.SpeakerGroup) {
	for _, g := range groups {
		fmt.Fprintf(w, "%-6s [%s - %s] speaker %d\n", g.ID,
			timeutil.FormatMs(g.StartMs), timeutil.FormatMs(g.EndMs), g.SpeakerID)
		fmt.Fprintf(w, "       %s\n", g.Text)
	}
}

// newTranscriptListCommand creates the 'transcript list' subcommand.
func newTranscriptListCommand(deps *TranscriptCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List speaker turns in time order",
		Long: `List the transcript's speaker groups. Each group is a maximal run of
consecutive sentences by the same speaker, with its text concatenated.

Examples:
  replay transcript list -t transcript.json
  replay transcript list -s lab-42 --output json`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			groups := s.Groups()
			views := make([]groupView, len(groups))
			for i, g := range groups {
				views[i] = viewOfGroup(g)
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, views, func(w io.Writer) error {
				printGroups(w, groups)
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

// newTranscriptSpeakersCommand creates the 'transcript speakers' subcommand.
func newTranscriptSpeakersCommand(deps *TranscriptCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:   "speakers",
		Short: "List distinct speakers in order of first utterance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			speakers := s.Speakers()
			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, speakers, func(w io.Writer) error {
				for _, id := range speakers {
					fmt.Fprintf(w, "speaker %d\n", id)
				}
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

// newTranscriptSearchCommand creates the 'transcript search' subcommand.
func newTranscriptSearchCommand(deps *TranscriptCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search transcript text",
		Long: `Search sentence text case-insensitively and print matches with their
playback times.

The query supports quoted phrases, negated terms, and colon filters:
  speaker:<id>   only sentences by that speaker (repeatable)
  after:<time>   sentences starting at or after the time
  before:<time>  sentences starting before the time

Examples:
  replay transcript search "budget" -t transcript.json
  replay transcript search 'speaker:2 budget -draft' -t transcript.json
  replay transcript search '"action items" after:10:00' -t transcript.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			q, err := query.Parse(args[0])
			if err != nil {
				return err
			}
			matches := query.Filter(s.Sentences(), q)

			type matchView struct {
				SentenceID int    `json:"sentenceId"`
				SpeakerID  int    `json:"speakerId"`
				Time       string `json:"time"`
				TimeMs     int    `json:"timeMs"`
				Text       string `json:"text"`
			}
			views := make([]matchView, len(matches))
			for i, m := range matches {
				views[i] = matchView{
					SentenceID: m.ID,
					SpeakerID:  m.SpeakerID,
					Time:       timeutil.FormatMs(m.BeginMs),
					TimeMs:     m.BeginMs,
					Text:       m.Text,
				}
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, views, func(w io.Writer) error {
				if len(matches) == 0 {
					fmt.Fprintln(w, "No matches.")
					return nil
				}
				for _, v := range views {
					fmt.Fprintf(w, "[%s] speaker %d: %s\n", v.Time, v.SpeakerID, v.Text)
				}
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

// newTranscriptFilterCommand creates the 'transcript filter' subcommand.
func newTranscriptFilterCommand(deps *TranscriptCommandDeps) *cobra.Command {
	var (
		src      sessionSource
		speakers []int
		remote   bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the transcript to selected speakers",
		Long: `Show only the turns spoken by the given speakers. An empty speaker
list shows the full transcript.

By default filtering runs locally. With --remote the sidecar's filter
endpoint is used instead, exercising the same path a review surface
takes; stale responses superseded by newer requests are discarded.

Examples:
  replay transcript filter -t transcript.json --speakers 1,3
  replay transcript filter -s lab-42 --speakers 2 --remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if remote {
				fc := client.NewFilterClient(client.FromConfig(cfg))
				payload, ok, err := fc.Filter(cmd.Context(), speakers)
				if err != nil {
					return err
				}
				if !ok {
					// Superseded by a newer request; nothing to show.
					return nil
				}
				s.ApplyFilteredPayload(payload)
			} else {
				s.ApplyFilteredPayload(transcript.FilterBySpeakers(currentPayload(s), speakers))
			}

			groups := s.Groups()
			views := make([]groupView, len(groups))
			for i, g := range groups {
				views[i] = viewOfGroup(g)
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, views, func(w io.Writer) error {
				printGroups(w, groups)
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().IntSliceVar(&speakers, "speakers", nil, "Speaker ids to keep (comma-separated)")
	cmd.Flags().BoolVar(&remote, "remote", false, "Filter via the sidecar server")
	return cmd
}

// currentPayload reconstructs a payload from the session's flattened view.
// Grouping is insensitive to paragraph boundaries, so a single paragraph is
// equivalent.
func currentPayload(s *session.Session) transcript.Payload {
	return transcript.Payload{Paragraphs: []transcript.Paragraph{{Sentences: s.Sentences()}}}
}

// newTranscriptAdjacentCommand creates the 'transcript adjacent' subcommand.
func newTranscriptAdjacentCommand(deps *TranscriptCommandDeps) *cobra.Command {
	var (
		src       sessionSource
		direction string
	)

	cmd := &cobra.Command{
		Use:   "adjacent <time>",
		Short: "Find the nearest same-speaker turn",
		Long: `Find the previous or next turn by the same speaker as the turn at the
given time. A time falling in a silence gap anchors on the turn before
the gap. Prints nothing but a notice when no such turn exists.

Examples:
  replay transcript adjacent 1:23 -t transcript.json --direction next
  replay transcript adjacent 95 -t transcript.json --direction prev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}

			timeMs, err := parseTimeArg(args[0])
			if err != nil {
				return err
			}

			var dir session.Direction
			switch strings.ToLower(direction) {
			case "next", "n":
				dir = session.Next
			case "prev", "previous", "p":
				dir = session.Previous
			default:
				return fmt.Errorf("invalid direction %q (must be next or prev)", direction)
			}

			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			g, ok := s.AdjacentGroup(timeMs, dir)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No same-speaker turn in that direction.")
				return nil
			}

			view := viewOfGroup(g)
			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, view, func(w io.Writer) error {
				printGroups(w, []transcript.SpeakerGroup{g})
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&direction, "direction", "d", "next", "Direction: next or prev")
	return cmd
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/timeutil"
)

// AtCommandDeps holds the dependencies for the at command.
type AtCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultAtDeps returns the default dependencies for production use.
func DefaultAtDeps() *AtCommandDeps {
	return &AtCommandDeps{LoadConfig: config.LoadConfig}
}

// atView is the machine-readable lookup result for one playback time.
type atView struct {
	Time     string     `json:"time"`
	TimeMs   int        `json:"timeMs"`
	Sentence *struct {
		ID        int    `json:"id"`
		SpeakerID int    `json:"speakerId"`
		Text      string `json:"text"`
	} `json:"sentence,omitempty"`
	Group   *groupView `json:"group,omitempty"`
	Chapter *itemView  `json:"chapter,omitempty"`
}

// NewAtCommand creates the at command.
func NewAtCommand(deps *AtCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAtDeps()
	}

	var src sessionSource

	cmd := &cobra.Command{
		Use:   "at <time>",
		Short: "Show what is active at a playback time",
		Long: `Resolve a playback time to the active sentence, speaker turn, and
agenda chapter, the same lookups a review surface performs as the clock
advances. A time falling in a silence gap has no active sentence.

Examples:
  replay at 1:23 -t transcript.json --lab lab.json
  replay at 95.5 -s lab-42 --output json`,
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

			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			view := atView{Time: timeutil.FormatMs(timeMs), TimeMs: timeMs}

			if sent, ok := s.ActiveSentenceAt(timeMs); ok {
				view.Sentence = &struct {
					ID        int    `json:"id"`
					SpeakerID int    `json:"speakerId"`
					Text      string `json:"text"`
				}{ID: sent.ID, SpeakerID: sent.SpeakerID, Text: sent.Text}
			}
			if g, ok := s.ActiveGroupAt(timeMs); ok {
				gv := viewOfGroup(g)
				view.Group = &gv
			}
			if it, ok := s.ActiveChapterAt(timeMs); ok {
				iv := viewOfItem(it)
				view.Chapter = &iv
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, view, func(w io.Writer) error {
				fmt.Fprintf(w, "At %s:\n", view.Time)
				if view.Sentence != nil {
					fmt.Fprintf(w, "  Sentence: #%d (speaker %d) %s\n",
						view.Sentence.ID, view.Sentence.SpeakerID, view.Sentence.Text)
				} else {
					fmt.Fprintln(w, "  Sentence: none (silence)")
				}
				if view.Group != nil {
					fmt.Fprintf(w, "  Turn:     %s [%s - %s]\n", view.Group.ID, view.Group.Start, view.Group.End)
				}
				if view.Chapter != nil {
					fmt.Fprintf(w, "  Chapter:  %s\n", view.Chapter.Title)
				} else {
					fmt.Fprintln(w, "  Chapter:  none")
				}
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

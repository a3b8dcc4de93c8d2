package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/timeutil"
)

// InspectCommandDeps holds the dependencies for the inspect command.
type InspectCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultInspectDeps returns the default dependencies for production use.
func DefaultInspectDeps() *InspectCommandDeps {
	return &InspectCommandDeps{LoadConfig: config.LoadConfig}
}

// inspectSummary is the machine-readable session overview.
type inspectSummary struct {
	VideoURL   string `json:"videoUrl,omitempty"`
	Duration   string `json:"duration"`
	DurationMs int    `json:"durationMs"`
	Sentences  int    `json:"sentences"`
	Groups     int    `json:"groups"`
	Speakers   []int  `json:"speakers"`
	Chapters   int    `json:"chapters"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(deps *InspectCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultInspectDeps()
	}

	var src sessionSource

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a session's transcript and agenda",
		Long: `Print an overview of a recorded session: duration, speaker turns,
sentence counts, and agenda chapters.

Examples:
  replay inspect -t transcript.json --lab lab.json
  replay inspect -s lab-42
  replay inspect -t transcript.json --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}

			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			summary := inspectSummary{
				Duration:   timeutil.FormatSeconds(s.DurationSec()),
				DurationMs: timeutil.SecondsToMs(s.DurationSec()),
				Sentences:  len(s.Sentences()),
				Groups:     len(s.Groups()),
				Speakers:   s.Speakers(),
				Chapters:   len(s.Timeline().Dated()),
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, summary, func(w io.Writer) error {
				fmt.Fprintf(w, "Duration:  %s\n", summary.Duration)
				fmt.Fprintf(w, "Sentences: %d\n", summary.Sentences)
				fmt.Fprintf(w, "Groups:    %d\n", summary.Groups)
				fmt.Fprintf(w, "Speakers:  %v\n", summary.Speakers)
				fmt.Fprintf(w, "Chapters:  %d\n", summary.Chapters)
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

// resolveConfig returns the preloaded config when present, otherwise loads
// one. Commands never mutate the loaded config.
func resolveConfig(cfg *config.CLIConfig, load func() (*config.CLIConfig, error)) (*config.CLIConfig, error) {
	if cfg != nil {
		return cfg, nil
	}
	if load == nil {
		load = config.LoadConfig
	}
	return load()
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/timeutil"
)

// AgendaCommandDeps holds the dependencies for agenda commands.
type AgendaCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultAgendaDeps returns the default dependencies for production use.
func DefaultAgendaDeps() *AgendaCommandDeps {
	return &AgendaCommandDeps{LoadConfig: config.LoadConfig}
}

// NewAgendaCommand creates the root agenda command with all subcommands.
func NewAgendaCommand(deps *AgendaCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAgendaDeps()
	}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Inspect a session's agenda chapters",
		Long: `Work with the session agenda: list chapters, find the chapter at a
time, and step between chapters the way chapter navigation does during
review. Items without a time span are listed but never matched by time.`,
		Aliases: []string{"chapters"},
	}

	cmd.AddCommand(newAgendaListCommand(deps))
	cmd.AddCommand(newAgendaNextCommand(deps))
	cmd.AddCommand(newAgendaPrevCommand(deps))

	return cmd
}

// itemView is the machine-readable rendering of an agenda item.
type itemView struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	StartMs *int   `json:"startMs,omitempty"`
	EndMs   *int   `json:"endMs,omitempty"`
	Summary string `json:"summary,omitempty"`
}

func viewOfItem(it agenda.Item) itemView {
	v := itemView{ID: it.ID, Title: it.Title, StartMs: it.StartMs, EndMs: it.EndMs, Summary: it.Summary}
	if it.StartMs != nil {
		v.Start = timeutil.FormatMs(*it.StartMs)
	}
	if it.EndMs != nil {
		v.End = timeutil.FormatMs(*it.EndMs)
	}
	return v
}

func printItem(w io.Writer, it agenda.Item) {
	if it.Dated() {
		fmt.Fprintf(w, "[%s - %s] %s\n", timeutil.FormatMs(*it.StartMs), timeutil.FormatMs(*it.EndMs), it.Title)
	} else {
		fmt.Fprintf(w, "[        ] %s\n", it.Title)
	}
	if it.Summary != "" {
		fmt.Fprintf(w, "           %s\n", it.Summary)
	}
}

// newAgendaListCommand creates the 'agenda list' subcommand.
func newAgendaListCommand(deps *AgendaCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List agenda chapters",
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

			doc := s.Agenda()
			if doc == nil || len(doc.Agenda) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No agenda.")
				return nil
			}

			views := make([]itemView, len(doc.Agenda))
			for i, it := range doc.Agenda {
				views[i] = viewOfItem(it)
			}

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, views, func(w io.Writer) error {
				for _, it := range doc.Agenda {
					printItem(w, it)
				}
				return nil
			})
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

func runAgendaStep(deps *AgendaCommandDeps, src *sessionSource, cmd *cobra.Command, arg string, next bool) error {
	cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
	if err != nil {
		return err
	}

	timeMs, err := parseTimeArg(arg)
	if err != nil {
		return err
	}

	s, err := src.load(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var (
		item agenda.Item
		ok   bool
	)
	if next {
		item, ok = s.Timeline().Next(timeMs)
	} else {
		item, ok = s.Timeline().Prev(timeMs)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No chapter in that direction.")
		return nil
	}

	view := viewOfItem(item)
	return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, view, func(w io.Writer) error {
		printItem(w, item)
		return nil
	})
}

// newAgendaNextCommand creates the 'agenda next' subcommand.
func newAgendaNextCommand(deps *AgendaCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:   "next <time>",
		Short: "Find the chapter after the one at a time",
		Long: `Find the chapter that next-chapter navigation would jump to from the
given playback time. At the final chapter there is nothing to jump to
and the position would stay put.

Examples:
  replay agenda next 1:00 -t transcript.json --lab lab.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgendaStep(deps, &src, cmd, args[0], true)
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

// newAgendaPrevCommand creates the 'agenda prev' subcommand.
func newAgendaPrevCommand(deps *AgendaCommandDeps) *cobra.Command {
	var src sessionSource

	cmd := &cobra.Command{
		Use:     "prev <time>",
		Short:   "Find the chapter before the one at a time",
		Aliases: []string{"previous"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgendaStep(deps, &src, cmd, args[0], false)
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

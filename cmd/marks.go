package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/client"
	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/timeutil"
)

// MarksCommandDeps holds the dependencies for marks commands.
type MarksCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultMarksDeps returns the default dependencies for production use.
func DefaultMarksDeps() *MarksCommandDeps {
	return &MarksCommandDeps{LoadConfig: config.LoadConfig}
}

// NewMarksCommand creates the root marks command with all subcommands.
func NewMarksCommand(deps *MarksCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultMarksDeps()
	}

	cmd := &cobra.Command{
		Use:   "marks",
		Short: "Manage annotation marks held by the sidecar",
		Long: `Read and edit the annotation snapshot the sidecar holds for a session:
group marks tagging whole speaker turns and selection marks on text
sub-spans. Edits are read-modify-write against the stored snapshot.`,
	}

	cmd.AddCommand(newMarksShowCommand(deps))
	cmd.AddCommand(newMarksSetCommand(deps))
	cmd.AddCommand(newMarksClearCommand(deps))

	return cmd
}

func printSnapshot(w io.Writer, snap annotation.Snapshot) {
	if len(snap.GroupMarks) == 0 && len(snap.TextMarks) == 0 {
		fmt.Fprintln(w, "No marks.")
		return
	}
	for _, rec := range snap.GroupMarks {
		fmt.Fprintf(w, "%-6s %s\n", rec.GroupID, rec.Type)
	}
	for _, m := range snap.TextMarks {
		fmt.Fprintf(w, "%-6s [%s - %s] %s: %q\n", m.GroupID,
			timeutil.FormatMs(m.StartMs), timeutil.FormatMs(m.EndMs), m.Type, m.Text)
	}
}

// newMarksShowCommand creates the 'marks show' subcommand.
func newMarksShowCommand(deps *MarksCommandDeps) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored marks for a session",
		Long: `Fetch and print the annotation snapshot the sidecar holds.

Examples:
  replay marks show -s lab-42
  replay marks show -s lab-42 --output json`,
		Aliases: []string{"list", "ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			if sessionID == "" {
				return fmt.Errorf("--session is required")
			}

			c := client.FromConfig(cfg)
			snap, err := c.FetchMarks(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			// Snapshot order is unspecified; sort for stable output.
			sort.Slice(snap.GroupMarks, func(i, j int) bool {
				return snap.GroupMarks[i].GroupID < snap.GroupMarks[j].GroupID
			})

			return writeFormatted(cmd.OutOrStdout(), cfg.OutputFormat, snap, func(w io.Writer) error {
				printSnapshot(w, snap)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id")
	return cmd
}

// newMarksSetCommand creates the 'marks set' subcommand.
func newMarksSetCommand(deps *MarksCommandDeps) *cobra.Command {
	var (
		sessionID string
		markType  string
	)

	cmd := &cobra.Command{
		Use:   "set <group-id>",
		Short: "Tag a speaker turn with a mark",
		Long: `Set the mark on a group in the stored snapshot. A group holds at most
one mark; setting again replaces it.

Examples:
  replay marks set g3 -s lab-42 --type important
  replay marks set g7 -s lab-42 --type question`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			if sessionID == "" {
				return fmt.Errorf("--session is required")
			}

			t := annotation.MarkType(markType)
			if !t.Valid() {
				return fmt.Errorf("invalid mark type %q (must be important, question, or todo)", markType)
			}

			c := client.FromConfig(cfg)
			snap, err := c.FetchMarks(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			groupID := args[0]
			replaced := false
			for i, rec := range snap.GroupMarks {
				if rec.GroupID == groupID {
					snap.GroupMarks[i].Type = t
					replaced = true
					break
				}
			}
			if !replaced {
				snap.GroupMarks = append(snap.GroupMarks, annotation.GroupMarkRecord{GroupID: groupID, Type: t})
			}

			if err := c.SaveMarks(cmd.Context(), sessionID, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s.\n", groupID, t)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id")
	cmd.Flags().StringVar(&markType, "type", string(annotation.MarkImportant), "Mark type: important, question, or todo")
	return cmd
}

// newMarksClearCommand creates the 'marks clear' subcommand.
func newMarksClearCommand(deps *MarksCommandDeps) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "clear <group-id>",
		Short: "Remove the mark from a speaker turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}
			if sessionID == "" {
				return fmt.Errorf("--session is required")
			}

			c := client.FromConfig(cfg)
			snap, err := c.FetchMarks(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			groupID := args[0]
			kept := snap.GroupMarks[:0]
			removed := false
			for _, rec := range snap.GroupMarks {
				if rec.GroupID == groupID {
					removed = true
					continue
				}
				kept = append(kept, rec)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No mark on %s.\n", groupID)
				return nil
			}
			snap.GroupMarks = kept

			if err := c.SaveMarks(cmd.Context(), sessionID, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared mark on %s.\n", groupID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id")
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/bus"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/playback"
	"github.com/replaykit/replay/pkg/session"
	"github.com/replaykit/replay/pkg/timeutil"
)

// PlayCommandDeps holds the dependencies for the play command.
type PlayCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultPlayDeps returns the default dependencies for production use.
func DefaultPlayDeps() *PlayCommandDeps {
	return &PlayCommandDeps{LoadConfig: config.LoadConfig}
}

// NewPlayCommand creates the play command.
func NewPlayCommand(deps *PlayCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultPlayDeps()
	}

	var (
		src   sessionSource
		from  string
		rate  float64
		limit time.Duration
		tick  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Simulate playback through a session",
		Long: `Drive a simulated playback clock through the session and print each
speaker-turn and chapter change as the sampled position crosses it.
Raw clock ticks are throttled through the sampling threshold, so output
follows the same cadence a review surface would highlight at.

When the Redis event bridge is enabled in config, session events are
mirrored to Redis pub/sub channels while playing.

Examples:
  replay play -t transcript.json --lab lab.json
  replay play -t transcript.json --from 2:00 --rate 16
  replay play -t transcript.json --for 10s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}

			s, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if rate == 0 {
				rate = cfg.PlaybackRate
			}
			sim := playback.NewSimulator(s.DurationSec(), rate)

			var fromMs int
			if from != "" {
				fromMs, err = parseTimeArg(from)
				if err != nil {
					return err
				}
			}

			if cfg.Redis.Enabled {
				bridge, err := bus.NewBridge(bus.BridgeConfig{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				}, logging.NewNopLogger())
				if err != nil {
					return fmt.Errorf("connecting event bridge: %w", err)
				}
				defer bridge.Close()
				bridge.Attach(s.Events())
			}

			return runPlay(cmd.Context(), s, sim, cmd.OutOrStdout(), fromMs, limit, tick)
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVar(&from, "from", "", "Start position (MM:SS or seconds)")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 0, "Playback rate (default from config)")
	cmd.Flags().DurationVar(&limit, "for", 0, "Stop after this much wall time (0 = play to the end)")
	cmd.Flags().DurationVar(&tick, "tick", 50*time.Millisecond, "Raw clock tick interval")
	return cmd
}

// runPlay advances the simulator on a ticker, feeds raw positions through
// the session clock, and prints turn and chapter transitions on sampled
// changes.
func runPlay(ctx context.Context, s *session.Session, sim *playback.Simulator, w io.Writer, fromMs int, limit, tick time.Duration) error {
	if fromMs > 0 {
		sim.Seek(fromMs)
		s.Tick(sim.PositionSec())
	}
	sim.Play()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if limit > 0 {
		timer := time.NewTimer(limit)
		defer timer.Stop()
		deadline = timer.C
	}

	var (
		lastGroupID   string
		lastChapterID = -1
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline:
			return nil
		case <-ticker.C:
			raw := sim.Advance(tick)
			if !s.Tick(raw) {
				if sim.Finished() {
					fmt.Fprintf(w, "[%s] end of session\n", timeutil.FormatSeconds(raw))
					return nil
				}
				continue
			}

			sampledMs := s.SampledMs()
			if g, ok := s.ActiveGroupAt(sampledMs); ok && g.ID != lastGroupID {
				lastGroupID = g.ID
				fmt.Fprintf(w, "[%s] speaker %d: %s\n", timeutil.FormatMs(sampledMs), g.SpeakerID, g.Text)
			}
			if it, ok := s.ActiveChapterAt(sampledMs); ok && it.ID != lastChapterID {
				lastChapterID = it.ID
				fmt.Fprintf(w, "[%s] --- %s ---\n", timeutil.FormatMs(sampledMs), it.Title)
			}

			if sim.Finished() {
				fmt.Fprintf(w, "[%s] end of session\n", timeutil.FormatSeconds(raw))
				return nil
			}
		}
	}
}

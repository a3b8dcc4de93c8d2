package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/transcript"
	"github.com/replaykit/replay/server"
)

// ServeCommandDeps holds the dependencies for the serve command.
type ServeCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultServeDeps returns the default dependencies for production use.
func DefaultServeDeps() *ServeCommandDeps {
	return &ServeCommandDeps{LoadConfig: config.LoadConfig}
}

// NewServeCommand creates the serve command.
func NewServeCommand(deps *ServeCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultServeDeps()
	}

	var (
		listen         string
		sessionID      string
		transcriptPath string
		labPath        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sidecar server",
		Long: `Run the sidecar HTTP server, serving preloaded session documents to
review surfaces. Loads the transcript (and optionally lab info) given on
the command line and serves it under the given session id.

The server holds annotation snapshots in memory only; they live as long
as the process does.

Examples:
  replay serve -t transcript.json --lab lab.json --session-id lab-42
  replay serve -t transcript.json --session-id lab-42 --listen :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps.Config, deps.LoadConfig)
			if err != nil {
				return err
			}

			if listen == "" {
				listen = cfg.ListenAddress
			}
			if transcriptPath == "" {
				return fmt.Errorf("--transcript is required")
			}

			doc, err := loadTranscript(transcriptPath)
			if err != nil {
				return err
			}

			var lab *agenda.Document
			if labPath != "" {
				lab, err = agenda.LoadDocument(labPath)
				if err != nil {
					return err
				}
			}

			level := logging.LevelInfo
			if cfg.Debug {
				level = logging.LevelDebug
			}
			logger := logging.NewLogger(&logging.Config{
				Level:      level,
				Component:  "replay-server",
				JSONFormat: true,
				Output:     cmd.ErrOrStderr(),
			})

			srv := server.New(server.Config{ListenAddress: listen, Logger: logger})
			srv.Store().Add(sessionID, doc, lab)

			logger.Info("session loaded",
				logging.F("session", sessionID),
				logging.F("sentences", len(transcript.Flatten(doc.Payload))))

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&sessionID, "session-id", "local", "Session id to serve the documents under")
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to a transcription-result JSON file (or a .vtt export)")
	cmd.Flags().StringVar(&labPath, "lab", "", "Path to a lab-info JSON file")
	return cmd
}

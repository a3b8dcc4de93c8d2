// Package main provides the replay CLI entry point.
// replay is the command-line toolkit for reviewing recorded sessions:
// transcripts, agendas, annotations, and playback simulation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/replaykit/replay/cmd"
	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/buildinfo"
)

// Global flags and state.
var (
	serverAddr   string
	timeout      time.Duration
	outputFormat string
	debug        bool

	// cfg holds the loaded configuration.
	cfg *config.CLIConfig
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay - recorded-session review toolkit",
	Long: `replay is the command-line toolkit for reviewing recorded sessions.

It reads transcription results and lab info (agenda, keywords) either
from exported JSON files or from the replay sidecar server, and offers
time-indexed lookups, speaker filtering, annotation management, and a
simulated playback clock.

COMMON WORKFLOWS:
  Inspect a session:   replay inspect -t transcript.json --lab lab.json
  Look up a moment:    replay at 1:23 -t transcript.json
  Filter speakers:     replay transcript filter -t transcript.json --speakers 1,3
  Simulate playback:   replay play -t transcript.json --rate 16
  Serve documents:     replay serve -t transcript.json --session-id lab-42

DISCOVERY:
  replay <command> --help   Subcommands, flags, and examples for any command`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		// Skip initialization for commands that don't need it.
		if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
			return nil
		}

		// Load configuration.
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		// Override with command-line flags.
		if serverAddr != "" {
			cfg.ServerAddress = serverAddr
		}
		if timeout != 0 {
			cfg.Timeout = timeout
		}
		if outputFormat != "" {
			format := config.OutputFormat(outputFormat)
			if !format.IsValid() {
				return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", outputFormat)
			}
			cfg.OutputFormat = format
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of the replay CLI.

Examples:
  replay version`,
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get("replay")
		out := c.OutOrStdout()
		fmt.Fprintf(out, "replay version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
		return nil
	},
}

// configCmd manages CLI configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `View and modify the replay CLI configuration settings.`,
}

// configShowCmd displays current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current CLI configuration values.`,
	RunE: func(c *cobra.Command, args []string) error {
		if cfg == nil {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
		}

		configPath, _ := config.ConfigPath()

		out := c.OutOrStdout()
		fmt.Fprintln(out, "Current configuration:")
		fmt.Fprintf(out, "  Config file:      %s\n", configPath)
		fmt.Fprintf(out, "  Server address:   %s\n", cfg.ServerAddress)
		fmt.Fprintf(out, "  Listen address:   %s\n", cfg.ListenAddress)
		fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Timeout)
		fmt.Fprintf(out, "  Output format:    %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "  Sample threshold: %dms\n", cfg.SampleThresholdMs)
		fmt.Fprintf(out, "  Playback rate:    %g\n", cfg.PlaybackRate)
		fmt.Fprintf(out, "  Debug:            %t\n", cfg.Debug)
		fmt.Fprintf(out, "  Redis bridge:     %t", cfg.Redis.Enabled)
		if cfg.Redis.Enabled {
			fmt.Fprintf(out, " (%s)", cfg.Redis.Addr)
		}
		fmt.Fprintln(out)

		return nil
	},
}

// configInitCmd initializes configuration.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with default values if one doesn't exist.`,
	RunE: func(c *cobra.Command, args []string) error {
		configPath, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("getting config path: %w", err)
		}

		out := c.OutOrStdout()

		// Check if config already exists.
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
			fmt.Fprintln(out, "Use 'replay config show' to view current settings.")
			return nil
		}

		defaultCfg := config.DefaultConfig()
		if err := config.SaveConfig(defaultCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(out, "Created configuration file: %s\n", configPath)
		fmt.Fprintln(out, "\nDefault settings:")
		fmt.Fprintf(out, "  Server address: %s\n", defaultCfg.ServerAddress)
		fmt.Fprintf(out, "  Timeout:        %s\n", defaultCfg.Timeout)
		fmt.Fprintf(out, "  Output format:  %s\n", defaultCfg.OutputFormat)

		return nil
	},
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Available keys:
  server_address       - Sidecar server base URL
  listen_address       - Bind address for 'replay serve' (host:port)
  timeout              - Request timeout (e.g., 30s, 1m)
  output_format        - Default output format (text, json, yaml)
  sample_threshold_ms  - Playback clock sampling threshold in milliseconds
  playback_rate        - Default simulated playback rate
  debug                - Enable debug mode (true/false)

Examples:
  replay config set server_address http://localhost:8098
  replay config set timeout 1m
  replay config set output_format json
  replay config set sample_threshold_ms 180`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Load current config, starting from defaults when none exists.
		currentCfg, err := config.LoadConfig()
		if err != nil {
			currentCfg = config.DefaultConfig()
		}

		switch key {
		case "server_address":
			currentCfg.ServerAddress = value
		case "listen_address":
			currentCfg.ListenAddress = value
		case "timeout":
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout value: %w", err)
			}
			currentCfg.Timeout = duration
		case "output_format":
			format := config.OutputFormat(value)
			if !format.IsValid() {
				return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", value)
			}
			currentCfg.OutputFormat = format
		case "sample_threshold_ms":
			var ms int
			if _, err := fmt.Sscanf(value, "%d", &ms); err != nil || ms < 0 {
				return fmt.Errorf("invalid sample threshold: %s (must be a non-negative integer)", value)
			}
			currentCfg.SampleThresholdMs = ms
		case "playback_rate":
			var rate float64
			if _, err := fmt.Sscanf(value, "%g", &rate); err != nil || rate <= 0 {
				return fmt.Errorf("invalid playback rate: %s (must be a positive number)", value)
			}
			currentCfg.PlaybackRate = rate
		case "debug":
			switch value {
			case "true", "1":
				currentCfg.Debug = true
			case "false", "0":
				currentCfg.Debug = false
			default:
				return fmt.Errorf("invalid debug value: %s (must be true or false)", value)
			}
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if err := config.SaveConfig(currentCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(c.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for replay.

To load completions:

Bash:
  $ source <(replay completion bash)

Zsh:
  $ replay completion zsh > "${fpath[1]}/_replay"

Fish:
  $ replay completion fish | source

PowerShell:
  PS> replay completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(c *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

// loadResolvedConfig returns the flag-overridden global config when the
// persistent pre-run loaded it, otherwise loads a fresh one.
func loadResolvedConfig() (*config.CLIConfig, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig()
}

func init() {
	// Global flags.
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "sidecar server base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (e.g., 30s, 1m)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "", "output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add command groups for organized help output.
	rootCmd.AddGroup(
		&cobra.Group{ID: "session", Title: "Session Review:"},
		&cobra.Group{ID: "annotate", Title: "Annotation:"},
		&cobra.Group{ID: "ops", Title: "Operations:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	// Session review.
	inspectCmd := cmd.NewInspectCommand(&cmd.InspectCommandDeps{LoadConfig: loadResolvedConfig})
	inspectCmd.GroupID = "session"
	rootCmd.AddCommand(inspectCmd)

	transcriptCmd := cmd.NewTranscriptCommand(&cmd.TranscriptCommandDeps{LoadConfig: loadResolvedConfig})
	transcriptCmd.GroupID = "session"
	rootCmd.AddCommand(transcriptCmd)

	agendaCmd := cmd.NewAgendaCommand(&cmd.AgendaCommandDeps{LoadConfig: loadResolvedConfig})
	agendaCmd.GroupID = "session"
	rootCmd.AddCommand(agendaCmd)

	atCmd := cmd.NewAtCommand(&cmd.AtCommandDeps{LoadConfig: loadResolvedConfig})
	atCmd.GroupID = "session"
	rootCmd.AddCommand(atCmd)

	playCmd := cmd.NewPlayCommand(&cmd.PlayCommandDeps{LoadConfig: loadResolvedConfig})
	playCmd.GroupID = "session"
	rootCmd.AddCommand(playCmd)

	// Annotation.
	marksCmd := cmd.NewMarksCommand(&cmd.MarksCommandDeps{LoadConfig: loadResolvedConfig})
	marksCmd.GroupID = "annotate"
	rootCmd.AddCommand(marksCmd)

	// Operations.
	serveCmd := cmd.NewServeCommand(&cmd.ServeCommandDeps{LoadConfig: loadResolvedConfig})
	serveCmd.GroupID = "ops"
	rootCmd.AddCommand(serveCmd)

	// Setup.
	configCmd.GroupID = "setup"
	rootCmd.AddCommand(configCmd)

	completionCmd.GroupID = "setup"
	rootCmd.AddCommand(completionCmd)

	versionCmd.GroupID = "setup"
	rootCmd.AddCommand(versionCmd)

	// Config subcommands.
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}

func main() {
	// Set up signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

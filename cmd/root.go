// ABOUTME: Root command for the skillgenome CLI
// ABOUTME: Handles global flags, configuration, logging and launching the TUI

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/config"
	"github.com/DAVEMANUJ/skill-genome-2/internal/logger"
	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/prompt"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/recentusers"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
	ephemeral  bool
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // The backend or the guard said no
	exitError   = 2 // Connectivity, configuration or input problems
)

// interactive reports whether prompts can be shown; replaced in tests
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// askCredentials fills missing form fields; replaced in tests
var askCredentials = prompt.Credentials

// askConfirm asks a yes/no question; replaced in tests
var askConfirm = prompt.Confirm

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "skillgenome",
	Short: "Terminal client for SkillGenome",
	Long: `skillgenome signs you in to SkillGenome and opens your career dashboard.

Run without a subcommand to start the interactive UI.

Environment Variables:
  SKILLGENOME_API_URL          Backend API URL (default: http://localhost:5000)
  SKILLGENOME_CONFIG_DIR       Directory for session, config.yaml and debug.log
  SKILLGENOME_REQUEST_TIMEOUT  Request timeout, e.g. 30s (default: 30s)
  SKILLGENOME_ALL_PROXY        ssh+socks5://user@host:port?private-key=/path
  SKILLGENOME_LOG_LEVEL        debug, info, warn, error (default: info)
  SKILLGENOME_LOG_FORMAT       text, json (default: text)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		// Logging problems never block a command
		if err := logger.Init(cfg.ConfigDir, cfg.LogLevel, cfg.LogFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTUI(ctx)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SKILLGENOME_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (overrides SKILLGENOME_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only")
}

// resolveConfig loads configuration and applies flag overrides
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	return cfg, nil
}

// GetAPIURL returns the API URL from flag, env, config file, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/")
	}
	cfg, err := resolveConfig()
	if err != nil {
		return config.DefaultAPIURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// printError writes an error line and returns the error exit code
func printError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

// newClient builds the API client from configuration
func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(cfg.APIURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithAllProxy(cfg.AllProxy),
	)
}

// newStore opens the session store in the config directory
func newStore(cfg *config.Config) (session.Store, error) {
	if ephemeral {
		return session.NewStore(session.NewMemoryStorage()), nil
	}
	if cfg.ConfigDir == "" {
		return nil, errors.New("cannot determine config directory; set --config-dir or SKILLGENOME_CONFIG_DIR")
	}
	return session.NewStore(session.NewFileStorage(cfg.ConfigDir)), nil
}

// setup resolves everything a command needs
func setup() (*config.Config, *client.Client, session.Store, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := newClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := newStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, c, store, nil
}

// runTUI starts the interactive UI at the landing page
func runTUI(ctx context.Context) int {
	cfg, c, store, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	if err := tui.Run(ctx, c, store, route.LandingPath, recentusers.New(cfg.ConfigDir)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

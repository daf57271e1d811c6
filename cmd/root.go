// ABOUTME: Root command for the bookhaven CLI
// ABOUTME: Handles global flags, configuration, and client wiring

package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/config"
	"github.com/bookhaven/bookhaven-cli/internal/logger"
	"github.com/bookhaven/bookhaven-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "bookhaven",
	Short: "Terminal client for the BookHaven book review service",
	Long: `bookhaven is a terminal client for the BookHaven book review service.

Run it without a subcommand to launch the interactive browser, or use the
subcommands for scripting: listing books, submitting reviews, and managing
your account.

Environment Variables:
  BOOKHAVEN_API_BASE_URL  Backend API URL (default: http://localhost:5000/api)
  BOOKHAVEN_LOG_LEVEL     Log level: debug, info, warn, error (default: info)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BOOKHAVEN_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// deps bundles the wired client stack for a command invocation.
type deps struct {
	cfg      *config.Config
	log      zerolog.Logger
	recorder *logger.Recorder
	store    *session.FileStore
	client   *api.Client
	sessions *session.Manager
}

// newDeps loads configuration and wires the API client, token store, and
// session manager. The --api-url flag wins over config and environment.
func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	log, recorder := logger.New(cfg.Log.Level, cfg.Log.CollectorURL)
	store := session.NewFileStore(cfg.TokenPath)
	client := api.New(cfg.API.BaseURL, store, log)
	client.SetTimeout(cfg.API.Timeout)
	sessions := session.NewManager(client, store, log)

	return &deps{
		cfg:      cfg,
		log:      log,
		recorder: recorder,
		store:    store,
		client:   client,
		sessions: sessions,
	}, nil
}

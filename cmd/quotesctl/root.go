package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

// cli carries the seams the commands depend on.
type cli struct {
	loadConfig func(profile string) (*config.Config, error)
	newLister  func(cfg *config.Config, logger *slog.Logger) (ports.QuoteLister, error)
}

func defaultCLI() *cli {
	return &cli{
		loadConfig: loadConfig,
		newLister:  newLister,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:          "quotesctl",
		Short:        "Inspect associate quotes from the quote service",
		SilenceUsage: true,
	}

	defaultProfile := os.Getenv("APP_ENVIRONMENT")
	if defaultProfile == "" {
		defaultProfile = "local"
	}

	cmd.PersistentFlags().StringVar(&profile, "profile", defaultProfile, "Config profile (configs/<profile>.yaml)")
	cmd.AddCommand(newListCmd(c, &profile))

	return cmd
}

func loadConfig(profile string) (*config.Config, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger logs to w so stdout stays clean for command output.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  "pretty",
		Service: "quotesctl",
		Version: cfg.App.Version,
	}, w)
}

func newLister(cfg *config.Config, logger *slog.Logger) (ports.QuoteLister, error) {
	clientCfg := &clients.Config{
		BaseURL:     cfg.Services.Quotes.BaseURL,
		ServiceName: cfg.Services.Quotes.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	}

	if token := cfg.Services.Quotes.AuthToken; token != "" {
		clientCfg.AuthFunc = func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	client, err := clients.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return acl.NewLatestQuotesClient(acl.LatestQuotesClientConfig{
		Client: client,
		Path:   cfg.Services.Quotes.LatestQuotesPath,
		Logger: logger,
	}), nil
}

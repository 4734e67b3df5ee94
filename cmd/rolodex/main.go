// Command rolodex is the interactive terminal client for the rolodex API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rolodex/rolodex/internal/client/api"
	"github.com/rolodex/rolodex/internal/client/cli"
	"github.com/rolodex/rolodex/internal/client/config"
	"github.com/rolodex/rolodex/internal/client/session"
	"github.com/rolodex/rolodex/internal/logging"
)

func newRootCmd(getenv func(string) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rolodex",
		Short:         "Manage your contacts and companies from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (env "+config.EnvConfig+")")
	flags.String("server", "", "API base URL (env "+config.EnvServerURL+")")
	flags.String("state", "", "local session state file (env "+config.EnvStateDB+")")
	flags.String("log-level", "", "debug|info|warn|error (env "+config.EnvLogLevel+")")

	cmd.RunE = func(c *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(c, getenv)
		if err != nil {
			return err
		}
		return run(c.Context(), cfg)
	}
	return cmd
}

// resolveConfig applies flags that were set explicitly on top of the file
// and environment settings.
func resolveConfig(c *cobra.Command, getenv func(string) string) (config.Config, error) {
	path, _ := c.Flags().GetString("config")
	cfg, err := config.Load(path, getenv)
	if err != nil {
		return config.Config{}, err
	}
	if c.Flags().Changed("server") {
		cfg.ServerURL, _ = c.Flags().GetString("server")
	}
	if c.Flags().Changed("state") {
		cfg.StateDB, _ = c.Flags().GetString("state")
	}
	if c.Flags().Changed("log-level") {
		cfg.LogLevel, _ = c.Flags().GetString("log-level")
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.SetupText(os.Stderr, cfg.LogLevel)

	if cfg.StateDB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.StateDB), 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	store, err := session.OpenStateStore(ctx, cfg.StateDB)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close state store", "error", err)
		}
	}()

	client := api.NewClient(cfg.ServerURL, api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	manager := session.NewManager(client, store)

	logger.Debug("starting", "server", cfg.ServerURL, "state", cfg.StateDB)
	app := cli.NewApp(cli.Deps{
		Auth:   manager,
		Store:  client,
		Logger: logger,
	})
	return app.Run(ctx)
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Getenv)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rolodex:", err)
		stop()
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/config"
	"github.com/evcraddock/comments/internal/logging"
	"github.com/evcraddock/comments/internal/web"
)

type serveFlags struct {
	opts  config.Options
	port  string
	store string
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start an HTTP server exposing the comments REST API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}

	addConfigFlags(cmd, &f.opts)
	cmd.Flags().StringVar(&f.port, "port", "", "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&f.store, "store", "", "storage engine, mongo or sqlite (overrides STORE_DRIVER)")

	return cmd
}

// loadServerConfig loads config and applies command-line overrides.
func loadServerConfig(opts config.Options, port, storeDriver string) (config.Config, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return config.Config{}, err
	}

	if port != "" {
		cfg.Port = port
	}
	if storeDriver != "" {
		cfg.Store = storeDriver
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, f serveFlags) error {
	cfg, err := loadServerConfig(f.opts, f.port, f.store)
	if err != nil {
		return err
	}

	logging.Setup(cmd.ErrOrStderr(), logging.Options{
		Dev:     cfg.DevLogging(),
		Version: Version,
		Env:     cfg.Env,
	})

	ctx := cmd.Context()

	coll, err := openCollection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeCollection(context.Background(), coll, cmd.ErrOrStderr())

	slog.Info("storage ready", "store", cfg.Store, "env", cfg.Env)

	srv := web.NewServer(comment.NewRepository(coll))
	return srv.ListenAndServe(ctx, cfg.Addr())
}

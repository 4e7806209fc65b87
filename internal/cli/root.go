// Package cli defines the cobra command tree for the comments service.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/client"
	"github.com/evcraddock/comments/internal/config"
	"github.com/evcraddock/comments/internal/store"
	"github.com/evcraddock/comments/internal/store/mongodb"
	"github.com/evcraddock/comments/internal/store/sqlite"
)

const collectionName = "comments"

var (
	flagFormat string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "comments",
		Short:         "Threaded comments for posts",
		Long:          "A REST backend for threaded comments on posts. Run the server, seed fixtures, or manage comments through the API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: $COMMENTS_SERVER_URL or http://localhost:8080)")

	root.AddCommand(
		newAddCmd(),
		newShowCmd(),
		newListCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the comments API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// addConfigFlags registers the flags shared by commands that open storage.
func addConfigFlags(cmd *cobra.Command, opts *config.Options) {
	cmd.Flags().StringVar(&opts.File, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.EnvDir, "env-dir", "", "directory holding .env.<APP_ENV> files")
}

// openCollection connects to the storage engine selected by cfg.
func openCollection(ctx context.Context, cfg config.Config) (store.Collection, error) {
	switch cfg.Store {
	case config.StoreMongo:
		coll, err := mongodb.Connect(ctx, cfg.DBURL, cfg.DBName, collectionName)
		if err != nil {
			return nil, err
		}
		if err := coll.EnsureIndexes(ctx, "postId"); err != nil {
			closeCollection(ctx, coll, io.Discard)
			return nil, err
		}
		return coll, nil

	case config.StoreSQLite:
		path := cfg.SQLitePath
		if path == "" {
			var err error
			path, err = sqlite.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		coll, err := sqlite.Open(ctx, path, collectionName)
		if err != nil {
			return nil, err
		}
		return coll, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// closeCollection closes coll, writing any error to w.
func closeCollection(ctx context.Context, coll store.Collection, w io.Writer) {
	if err := coll.Close(ctx); err != nil {
		fmt.Fprintf(w, "warning: closing storage: %v\n", err)
	}
}

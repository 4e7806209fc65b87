package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/config"
	"github.com/evcraddock/comments/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		opts        config.Options
		storeDriver string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture comments",
		Long:  "Insert the fixture comments on post 1 into the configured store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(opts, "", storeDriver)
			if err != nil {
				return err
			}
			return runSeed(cmd, cfg)
		},
	}

	addConfigFlags(cmd, &opts)
	cmd.Flags().StringVar(&storeDriver, "store", "", "storage engine, mongo or sqlite (overrides STORE_DRIVER)")

	return cmd
}

func runSeed(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()

	coll, err := openCollection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeCollection(ctx, coll, cmd.ErrOrStderr())

	docs, err := seed.Comments(ctx, coll)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), docs)
	}

	for _, d := range docs {
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded comment %s by %s\n", d.ID(), d["author"])
	}
	return nil
}

// Package backfill implements the one-shot community indexing subcommand.
package backfill

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/service"
)

// Command creates the backfill command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill [community]",
		Short: "Index a community's historical top submissions",
		Long: "Add a community to tracking and seed its fingerprint store from the " +
			"all-time, past-year and past-month top listings, without reporting.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return service.Backfill(ctx, settings, args[0])
		},
	}
}

// Package run implements the long-running monitoring subcommand.
package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/service"
)

// Command creates the run command, the unattended scanning service.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the repost detection service",
		Long:  "Continuously scan every tracked community for duplicate image posts until terminated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return service.Run(ctx, settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the run command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().BoolVar(&settings.Monitor.Health.Enabled, "health", viper.GetBool("monitor.health.enabled"), "Enable health/metrics HTTP endpoint")
	cmd.Flags().StringVar(&settings.Monitor.Health.Addr, "listen", viper.GetString("monitor.health.addr"), "Listen address of the health/metrics endpoint")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}

// Package config implements the subcommand that writes a starter
// configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/logging"
)

// Command creates the config command.
func Command(settings *conf.Settings) *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write a starter configuration file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", output)
				}
			}
			if err := conf.SaveSettings(settings, output); err != nil {
				return err
			}
			logging.Info("Wrote configuration file", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "config.yaml", "Path of the configuration file to write")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

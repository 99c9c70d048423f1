package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nickofolas/reposterminator/cmd/backfill"
	"github.com/nickofolas/reposterminator/cmd/communities"
	"github.com/nickofolas/reposterminator/cmd/config"
	"github.com/nickofolas/reposterminator/cmd/run"
	"github.com/nickofolas/reposterminator/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reposterminator",
		Short: "Reddit repost detection bot",
		Long:  "Detects duplicate image posts in moderated subreddits by perceptual fingerprinting.",
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
	}

	subcommands := []*cobra.Command{
		run.Command(settings),
		backfill.Command(settings),
		communities.Command(settings),
		config.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().IntVarP(&settings.Detection.Threshold, "threshold", "t", viper.GetInt("detection.threshold"), "Similarity percentage a match must exceed")
	rootCmd.PersistentFlags().IntVar(&settings.Detection.MaxMatches, "maxmatches", viper.GetInt("detection.maxmatches"), "Match count above which reporting is suppressed")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}

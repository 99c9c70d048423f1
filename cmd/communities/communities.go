// Package communities implements the tracked-community listing subcommand.
package communities

import (
	"github.com/spf13/cobra"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/service"
)

// Command creates the communities command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "communities",
		Short: "List tracked communities and their indexing state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.ListCommunities(settings)
		},
	}
}

// validate.go: configuration validation
package conf

import (
	"fmt"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// ValidateSettings checks the loaded settings for inconsistencies that would
// prevent the service from starting.
func ValidateSettings(settings *Settings) error {
	var problems []string

	if settings.Reddit.ClientID == "" || settings.Reddit.ClientSecret == "" {
		problems = append(problems, "reddit.clientid and reddit.clientsecret must be set")
	}
	if settings.Reddit.Username == "" || settings.Reddit.Password == "" {
		problems = append(problems, "reddit.username and reddit.password must be set")
	}
	if settings.Reddit.RequestsPerMinute <= 0 {
		problems = append(problems, "reddit.requestsperminute must be positive")
	}
	if settings.Reddit.ListingLimit <= 0 || settings.Reddit.ListingLimit > 100 {
		problems = append(problems, "reddit.listinglimit must be between 1 and 100")
	}

	if settings.Detection.Threshold < 0 || settings.Detection.Threshold >= 100 {
		problems = append(problems, "detection.threshold must be between 0 and 99")
	}
	if settings.Detection.MaxMatches < 1 {
		problems = append(problems, "detection.maxmatches must be at least 1")
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		problems = append(problems, "either output.sqlite or output.mysql must be enabled")
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		problems = append(problems, "only one of output.sqlite and output.mysql may be enabled")
	}
	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		problems = append(problems, "output.sqlite.path must be set")
	}

	if settings.Monitor.Health.Enabled && settings.Monitor.Health.Addr == "" {
		problems = append(problems, "monitor.health.addr must be set when health endpoint is enabled")
	}
	if settings.Monitor.Notification.Enabled && len(settings.Monitor.Notification.URLs) == 0 {
		problems = append(problems, "monitor.notification.urls must be set when notifications are enabled")
	}

	if len(problems) > 0 {
		var err error
		for _, p := range problems {
			err = errors.Join(err, errors.NewStd(p))
		}
		return errors.New(fmt.Errorf("invalid configuration: %w", err)).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}

	return nil
}

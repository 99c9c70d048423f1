package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// validSettings returns a settings struct that passes validation; tests break
// one field at a time from this baseline.
func validSettings() *Settings {
	settings := &Settings{}
	settings.Main.Name = "reposterminator"
	settings.Reddit = RedditSettings{
		ClientID:          "id",
		ClientSecret:      "secret",
		Username:          "bot",
		Password:          "pw",
		RequestsPerMinute: 60,
		ListingLimit:      100,
	}
	settings.Detection.Threshold = 88
	settings.Detection.MaxMatches = 10
	settings.Output.SQLite = SQLiteSettings{Enabled: true, Path: "reposterminator.db"}
	return settings
}

func TestValidateSettingsAcceptsBaseline(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing client credentials", func(s *Settings) { s.Reddit.ClientID = "" }},
		{"missing account credentials", func(s *Settings) { s.Reddit.Password = "" }},
		{"zero request rate", func(s *Settings) { s.Reddit.RequestsPerMinute = 0 }},
		{"oversized listing limit", func(s *Settings) { s.Reddit.ListingLimit = 500 }},
		{"threshold at 100", func(s *Settings) { s.Detection.Threshold = 100 }},
		{"negative threshold", func(s *Settings) { s.Detection.Threshold = -1 }},
		{"zero match cap", func(s *Settings) { s.Detection.MaxMatches = 0 }},
		{"no database output", func(s *Settings) { s.Output.SQLite.Enabled = false }},
		{"two database outputs", func(s *Settings) { s.Output.MySQL.Enabled = true }},
		{"sqlite without path", func(s *Settings) { s.Output.SQLite.Path = "" }},
		{"health endpoint without address", func(s *Settings) {
			s.Monitor.Health.Enabled = true
			s.Monitor.Health.Addr = ""
		}},
		{"notifications without urls", func(s *Settings) {
			s.Monitor.Notification.Enabled = true
			s.Monitor.Notification.URLs = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)

			var ee *errors.EnhancedError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, errors.CategoryValidation, ee.Category)
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 88, settings.Detection.Threshold)
	assert.Equal(t, 10, settings.Detection.MaxMatches)
	assert.Equal(t, 60, settings.Reddit.RequestsPerMinute)
	assert.Equal(t, 100, settings.Reddit.ListingLimit)
	assert.True(t, settings.Output.SQLite.Enabled, "sqlite is the default store")
	assert.NotEmpty(t, settings.Output.SQLite.Path)
}

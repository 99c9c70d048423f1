// config.go: settings struct and functions to load and access the service configuration
package conf

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// Log rotation types
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled  bool   // true to enable this log
	Path     string // path to log file
	Rotation string // rotation type
	MaxSize  int64  // max size in bytes for RotationSize
}

// MainSettings contains general application settings
type MainSettings struct {
	Name string    // service instance name, used in logs and user agent
	Log  LogConfig // main log file settings
}

// RedditSettings contains credentials and pacing for the Reddit API
type RedditSettings struct {
	ClientID          string // OAuth application client id
	ClientSecret      string // OAuth application client secret
	Username          string // bot account username
	Password          string // bot account password
	UserAgent         string // user agent sent with every request, runtime value if empty
	RequestsPerMinute int    // API request pacing
	ListingLimit      int    // submissions requested per listing call
}

// DetectionSettings tunes the repost matcher
type DetectionSettings struct {
	Threshold  int // similarity percentage a match must strictly exceed
	MaxMatches int // above this many matches, reporting is suppressed
}

// SQLiteSettings contains SQLite database configuration
type SQLiteSettings struct {
	Enabled bool
	Path    string
}

// MySQLSettings contains MySQL database configuration
type MySQLSettings struct {
	Enabled  bool
	Username string
	Password string
	Database string
	Host     string
	Port     string
}

// OutputSettings selects and configures the backing store
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// HealthSettings configures the optional health/metrics HTTP endpoint
type HealthSettings struct {
	Enabled bool
	Addr    string
}

// NotificationSettings configures optional push notifications on reports
type NotificationSettings struct {
	Enabled bool
	URLs    []string // shoutrrr service URLs
}

// MonitorSettings groups operational extras of the scanning service
type MonitorSettings struct {
	Health       HealthSettings
	Notification NotificationSettings
}

// Settings is the root configuration object
type Settings struct {
	Debug bool // true to enable debug logging

	Main      MainSettings
	Reddit    RedditSettings
	Detection DetectionSettings
	Output    OutputSettings
	Monitor   MonitorSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment into a Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	settingsInstance = settings
	return settings, nil
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("reposterminator")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		// No config file found, defaults and environment apply
	}

	return nil
}

// Setting returns the current settings instance, loading them on first use.
func Setting() *Settings {
	once.Do(func() {
		settingsMutex.RLock()
		loaded := settingsInstance != nil
		settingsMutex.RUnlock()
		if !loaded {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

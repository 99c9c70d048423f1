// defaults.go: default configuration values registered with viper
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig registers all default configuration values.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "reposterminator")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/reposterminator.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 10*1024*1024)

	// Reddit API settings
	viper.SetDefault("reddit.clientid", "")
	viper.SetDefault("reddit.clientsecret", "")
	viper.SetDefault("reddit.username", "")
	viper.SetDefault("reddit.password", "")
	viper.SetDefault("reddit.useragent", "")
	viper.SetDefault("reddit.requestsperminute", 60)
	viper.SetDefault("reddit.listinglimit", 100)

	// Detection settings
	viper.SetDefault("detection.threshold", 88)
	viper.SetDefault("detection.maxmatches", 10)

	// Database output settings
	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "reposterminator.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "reposterminator")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "reposterminator")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	// Monitoring extras
	viper.SetDefault("monitor.health.enabled", false)
	viper.SetDefault("monitor.health.addr", ":8090")
	viper.SetDefault("monitor.notification.enabled", false)
	viper.SetDefault("monitor.notification.urls", []string{})
}

package main

import (
	"os"

	"github.com/nickofolas/reposterminator/cmd"
	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		logging.Init(&conf.Settings{})
		logging.Fatal("Configuration load failed", "error", err)
	}

	logging.Init(settings)

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		logging.Error("Command execution failed", "error", err)
		_ = logging.Close()
		os.Exit(1)
	}
	_ = logging.Close()
}

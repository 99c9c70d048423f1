package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickofolas/reposterminator/internal/conf"
)

func TestInitWritesRotatedLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "service.log")

	settings := &conf.Settings{}
	settings.Main.Log = conf.LogConfig{
		Enabled:  true,
		Path:     logPath,
		Rotation: conf.RotationDaily,
	}

	Init(settings)
	t.Cleanup(func() { require.NoError(t, Close()) })

	ForService("scanner").Info("repost reported", "community", "pics")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err, "enabling the main log must produce a log file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "repost reported", entry["msg"])
	assert.Equal(t, "scanner", entry["service"])
	assert.Equal(t, "pics", entry["community"])
}

func TestInitDisabledLeavesNoFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "service.log")

	settings := &conf.Settings{}
	settings.Main.Log = conf.LogConfig{Enabled: false, Path: logPath}

	Init(settings)
	t.Cleanup(func() { require.NoError(t, Close()) })

	Info("stdout only")

	_, err := os.Stat(logPath)
	assert.True(t, os.IsNotExist(err), "no log file when the main log is disabled")
}

func TestNewLogWriterRotationPolicies(t *testing.T) {
	tests := []struct {
		name       string
		logConf    conf.LogConfig
		maxSizeMB  int
		maxBackups int
		maxAge     int
	}{
		{
			name:       "daily",
			logConf:    conf.LogConfig{Rotation: conf.RotationDaily},
			maxSizeMB:  100,
			maxBackups: 30,
			maxAge:     1,
		},
		{
			name:       "weekly",
			logConf:    conf.LogConfig{Rotation: conf.RotationWeekly},
			maxSizeMB:  100,
			maxBackups: 4,
			maxAge:     7,
		},
		{
			name:       "size",
			logConf:    conf.LogConfig{Rotation: conf.RotationSize, MaxSize: 10 * 1024 * 1024},
			maxSizeMB:  10,
			maxBackups: 3,
			maxAge:     28,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.logConf.Path = filepath.Join(t.TempDir(), "rotation.log")

			writer, err := newLogWriter(tt.logConf)
			require.NoError(t, err)

			assert.Equal(t, tt.logConf.Path, writer.Filename)
			assert.Equal(t, tt.maxSizeMB, writer.MaxSize)
			assert.Equal(t, tt.maxBackups, writer.MaxBackups)
			assert.Equal(t, tt.maxAge, writer.MaxAge)
		})
	}
}

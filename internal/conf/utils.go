// utils.go: configuration path helpers
package conf

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaultConfigPaths returns the search paths for the configuration file,
// in priority order: working directory, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the home directory when XDG paths are unavailable
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return paths, nil
		}
		paths = append(paths, filepath.Join(home, ".config", "reposterminator"))
		return paths, nil
	}

	paths = append(paths, filepath.Join(configDir, "reposterminator"))
	return paths, nil
}

// GetBasePath resolves dir relative to the working directory and ensures it
// exists, returning the absolute path.
func GetBasePath(dir string) string {
	if dir == "" {
		dir = "."
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		fmt.Printf("error creating directory %s: %v\n", absPath, err)
	}
	return absPath
}

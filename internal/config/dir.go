// Package config resolves scribe's configuration directory and loads
// runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the scribe configuration directory.
//
// Resolution:
//   - $SCRIBE_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/scribe if set
//   - %AppData%/scribe on Windows
//   - ~/.config/scribe elsewhere
func Dir() string {
	if dir := os.Getenv("SCRIBE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scribe")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scribe")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scribe")
}

// EnvFiles lists the .env files merged into the environment at startup,
// highest priority first.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}

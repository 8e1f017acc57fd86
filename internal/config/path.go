package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "pushnote"

var candidateFiles = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// DefaultPath returns the first existing config file under the XDG config
// directories, or $XDG_CONFIG_HOME/pushnote/config.yaml when none exists.
func DefaultPath() string {
	for _, name := range candidateFiles {
		if path, err := xdg.SearchConfigFile(filepath.Join(appName, name)); err == nil {
			return path
		}
	}
	return filepath.Join(xdg.ConfigHome, appName, candidateFiles[0])
}

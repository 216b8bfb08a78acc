package cmd

import (
	"github.com/kustodian/kustodian/internal/config"
)

// loadConfig loads the explicit --config file or searches upward for one.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

package configs

import (
	"flag"
	"os"

	"github.com/roach88/nyx/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from --config, NYX_CONFIG,
// or a list of conventional locations. An empty result means run on
// defaults and env overrides alone.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("NYX_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/nyx/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}

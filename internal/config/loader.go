package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadTunnels loads the tunnels configuration.
// Search order: customPath -> ~/.tunnels/configs/tunnels.yaml -> ./configs/tunnels.yaml -> embedded default
func LoadTunnels(customPath string) (TunnelsConfig, error) {
	// A custom path must exist and be valid
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TunnelsConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return TunnelsConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Fallback locations are skipped when missing or invalid
	for _, path := range []string{userConfigPath("tunnels.yaml"), filepath.Join("configs", "tunnels.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := Parse(defaultTunnelsYAML)
	if err != nil {
		return DefaultTunnelsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tunnels", "configs", filename)
}

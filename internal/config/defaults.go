package config

import (
	_ "embed"
)

//go:embed defaults/tunnels.yaml
var defaultTunnelsYAML []byte

//go:embed defaults/tunnels.schema.json
var tunnelsSchemaJSON []byte

// DefaultTunnelsConfig returns the hardcoded tunnels configuration.
func DefaultTunnelsConfig() TunnelsConfig {
	return TunnelsConfig{
		Rules: RulesConfig{
			RuleSeed:        1,
			IdentifiedCells: 6,
			TargetCells:     3,
		},
		Gameplay: GameplayConfig{
			MaxStrikes:      0,
			PointsPerTarget: 100,
			StrikePenalty:   25,
			SolveStepTicks:  6,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultTunnelsYAML
}

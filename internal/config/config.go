// Package config provides YAML-based configuration loading, schema
// validation and difficulty presets for the tunnels game.
package config

import "fmt"

// TunnelsConfig contains all configuration for the tunnels game.
type TunnelsConfig struct {
	Rules    RulesConfig    `yaml:"rules" json:"rules"`
	Gameplay GameplayConfig `yaml:"gameplay" json:"gameplay"`
}

// RulesConfig defines how a puzzle is generated.
type RulesConfig struct {
	RuleSeed        int `yaml:"rule_seed" json:"rule_seed"`               // 1 keeps the canonical symbol layout
	IdentifiedCells int `yaml:"identified_cells" json:"identified_cells"` // Cells whose symbol is shown
	TargetCells     int `yaml:"target_cells" json:"target_cells"`         // Stages per puzzle
}

// GameplayConfig defines scoring and pacing.
type GameplayConfig struct {
	MaxStrikes      int `yaml:"max_strikes" json:"max_strikes"` // 0 means unlimited
	PointsPerTarget int `yaml:"points_per_target" json:"points_per_target"`
	StrikePenalty   int `yaml:"strike_penalty" json:"strike_penalty"`
	SolveStepTicks  int `yaml:"solve_step_ticks" json:"solve_step_ticks"` // Ticks between auto-solve presses
}

// Validate checks constraints the schema cannot express.
// Puzzle setup consumes identified + target + 2 distinct cells.
func (c TunnelsConfig) Validate() error {
	if n := c.Rules.IdentifiedCells + c.Rules.TargetCells + 2; n > 27 {
		return fmt.Errorf("config: identified_cells + target_cells needs %d cells, the cube has 27", n)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// ApplyPreset adjusts landmark count, stage count and strike limit.
// The fixed preset pins the canonical rule seed and leaves the rest alone.
func ApplyPreset(cfg *TunnelsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.IdentifiedCells = 9
		cfg.Rules.TargetCells = 2
		cfg.Gameplay.MaxStrikes = 0
	case DifficultyNormal:
		cfg.Rules.IdentifiedCells = 6
		cfg.Rules.TargetCells = 3
		cfg.Gameplay.MaxStrikes = 5
	case DifficultyHard:
		cfg.Rules.IdentifiedCells = 4
		cfg.Rules.TargetCells = 4
		cfg.Gameplay.MaxStrikes = 3
	case DifficultyFixed:
		cfg.Rules.RuleSeed = 1
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultTunnelsConfig(), cfg)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "rules: [",
		},
		{
			name: "missing section",
			doc:  "rules: {rule_seed: 1, identified_cells: 6, target_cells: 3}\n",
		},
		{
			name: "too few identified cells",
			doc: `rules: {rule_seed: 1, identified_cells: 1, target_cells: 3}
gameplay: {max_strikes: 0, points_per_target: 100, strike_penalty: 25, solve_step_ticks: 6}
`,
		},
		{
			name: "unknown key",
			doc: `rules: {rule_seed: 1, identified_cells: 6, target_cells: 3, bonus: 2}
gameplay: {max_strikes: 0, points_per_target: 100, strike_penalty: 25, solve_step_ticks: 6}
`,
		},
		{
			name: "string where integer expected",
			doc: `rules: {rule_seed: 1, identified_cells: six, target_cells: 3}
gameplay: {max_strikes: 0, points_per_target: 100, strike_penalty: 25, solve_step_ticks: 6}
`,
		},
		{
			name: "more cells than the cube",
			doc: `rules: {rule_seed: 1, identified_cells: 15, target_cells: 12}
gameplay: {max_strikes: 0, points_per_target: 100, strike_penalty: 25, solve_step_ticks: 6}
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTunnelsCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunnels.yaml")
	doc := `rules: {rule_seed: 7, identified_cells: 4, target_cells: 5}
gameplay: {max_strikes: 2, points_per_target: 50, strike_penalty: 10, solve_step_ticks: 3}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadTunnels(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rules.RuleSeed)
	assert.Equal(t, 5, cfg.Rules.TargetCells)
	assert.Equal(t, 2, cfg.Gameplay.MaxStrikes)
	assert.Equal(t, 3, cfg.Gameplay.SolveStepTicks)
}

func TestLoadTunnelsCustomPathErrors(t *testing.T) {
	_, err := LoadTunnels(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: {}\n"), 0o644))
	_, err = LoadTunnels(bad)
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		identified int
		targets    int
		strikes    int
	}{
		{DifficultyEasy, 9, 2, 0},
		{DifficultyNormal, 6, 3, 5},
		{DifficultyHard, 4, 4, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTunnelsConfig()
			ApplyPreset(&cfg, tc.preset)
			assert.Equal(t, tc.identified, cfg.Rules.IdentifiedCells)
			assert.Equal(t, tc.targets, cfg.Rules.TargetCells)
			assert.Equal(t, tc.strikes, cfg.Gameplay.MaxStrikes)
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := DefaultTunnelsConfig()
	cfg.Rules.RuleSeed = 42
	ApplyPreset(&cfg, DifficultyFixed)
	assert.Equal(t, 1, cfg.Rules.RuleSeed)
	assert.Equal(t, 6, cfg.Rules.IdentifiedCells)
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParsePreset("hard"))
	assert.Equal(t, DifficultyFixed, ParsePreset("fixed"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset("nightmare"))
}

package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var snake SnakeConfig
	if err := yaml.Unmarshal(GetDefaultYAML("snake"), &snake); err != nil {
		t.Fatalf("snake.yaml: %v", err)
	}
	if !reflect.DeepEqual(snake, DefaultSnakeConfig()) {
		t.Errorf("embedded snake.yaml drifted from DefaultSnakeConfig():\n%+v\n%+v", snake, DefaultSnakeConfig())
	}

	var slap SlapConfig
	if err := yaml.Unmarshal(GetDefaultYAML("slap"), &slap); err != nil {
		t.Fatalf("slap.yaml: %v", err)
	}
	if !reflect.DeepEqual(slap, DefaultSlapConfig()) {
		t.Errorf("embedded slap.yaml drifted from DefaultSlapConfig():\n%+v\n%+v", slap, DefaultSlapConfig())
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("rules:\n  score_goal: 12\noverlay:\n  variant: steelgrid\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Rules.ScoreGoal != 12 || cfg.Overlay.Variant != "steelgrid" {
		t.Errorf("overrides not applied: %+v", cfg.Rules)
	}
	if cfg.Speed.BaseMs != 100 || cfg.Rules.InitialLength != 3 {
		t.Errorf("unmentioned fields should keep defaults, got %+v %+v", cfg.Speed, cfg.Rules)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadSlap(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("canvas: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSlap(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadSlapRestoresEmptyPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slap.yaml")
	if err := os.WriteFile(path, []byte("palette:\n  glyphs: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadSlap(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Palette.Glyphs) != 10 {
		t.Errorf("empty palette should fall back to defaults, got %v", cfg.Palette.Glyphs)
	}
}

func TestDifficultyStepped(t *testing.T) {
	dm := NewDifficultyManager(DefaultSnakeConfig().Difficulty)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 1.0},
		{4, 1.0},
		{5, 1.02},
		{14, 1.04},
		{25, 1.10},
		{30, 1.12},
		{500, 1.12},
	}

	for _, tc := range tests {
		if got := dm.Multiplier(tc.score); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Multiplier(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyPresets(t *testing.T) {
	cfg := DefaultSnakeConfig().Difficulty
	cfg.ApplyPreset(DifficultyFixed)
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("fixed preset should disable progression")
	}

	cfg.ApplyPreset(DifficultyHard)
	dm := NewDifficultyManager(cfg)
	if !dm.IsEnabled() || dm.Level(0, 0) != 0.7 {
		t.Errorf("hard preset should start at 0.7, got %v", dm.Level(0, 0))
	}
	if math.Abs(dm.Level(1000, 0)-1.0) > 1e-9 {
		t.Errorf("level should cap at 1.0, got %v", dm.Level(1000, 0))
	}
}

func TestDifficultyLinearAndTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	})
	if got := dm.Speed(2, 5, 0); got != 3 {
		t.Errorf("Speed(2, 5) = %v, expected 3", got)
	}

	dm = NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := dm.Level(0, 50); got != 0.5 {
		t.Errorf("Level(ticks=50) = %v, expected 0.5", got)
	}
}

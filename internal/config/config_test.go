package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Render.TargetFPS != 60 {
		t.Errorf("expected target fps 60, got %d", cfg.Render.TargetFPS)
	}
	if cfg.Data.First.Trajectory != "coullet_1" || cfg.Data.First.Section != "heart" {
		t.Errorf("unexpected first dataset %+v", cfg.Data.First)
	}
	if cfg.Controls.MinTime != 1 || cfg.Controls.MaxTime != 10000 {
		t.Errorf("expected time range [1, 10000], got [%d, %d]", cfg.Controls.MinTime, cfg.Controls.MaxTime)
	}
	if cfg.Controls.MinRadius != 0.01 || cfg.Controls.MaxRadius != 0.1 {
		t.Errorf("expected radius range [0.01, 0.1], got [%g, %g]", cfg.Controls.MinRadius, cfg.Controls.MaxRadius)
	}
	if cfg.Controls.DivergenceThreshold != 0.025 {
		t.Errorf("expected divergence threshold 0.025, got %g", cfg.Controls.DivergenceThreshold)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -10 }},
		{"fov too large", func(c *Config) { c.Camera.FieldOfView = 90 }},
		{"fov just above zoom range", func(c *Config) { c.Camera.FieldOfView = 45.5 }},
		{"fov below zoom range", func(c *Config) { c.Camera.FieldOfView = 0.5 }},
		{"near zero", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"fps zero", func(c *Config) { c.Render.TargetFPS = 0 }},
		{"time range inverted", func(c *Config) { c.Controls.MaxTime = 0 }},
		{"time step zero", func(c *Config) { c.Controls.MinTimeStep = 0 }},
		{"radius range inverted", func(c *Config) { c.Controls.MaxRadius = 0.001 }},
		{"screenshot format", func(c *Config) { c.Screenshot.Format = "gif" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			before := *cfg

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if cfg.Window != before.Window || cfg.Camera != before.Camera {
				t.Error("Validate must not modify the config")
			}
		})
	}
}

func TestValidateFieldOfViewBounds(t *testing.T) {
	for _, fov := range []float32{1, 30, 45} {
		cfg := Default()
		cfg.Camera.FieldOfView = fov
		if err := cfg.Validate(); err != nil {
			t.Errorf("fov %g should validate: %v", fov, err)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

render:
  target_fps: 30
  split_matrix_uniforms: true

data:
  root: "/srv/attractors"
  first:
    trajectory: "coullet_3"
    section: "square"

controls:
  time_step: 5
  keys:
    time_forward: "Right"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Render.TargetFPS != 30 {
		t.Errorf("expected target fps 30, got %d", cfg.Render.TargetFPS)
	}
	if !cfg.Render.SplitMatrixUniforms {
		t.Error("expected split matrix uniforms")
	}
	if cfg.Data.First.Trajectory != "coullet_3" || cfg.Data.First.Section != "square" {
		t.Errorf("unexpected first dataset %+v", cfg.Data.First)
	}
	// Untouched keys keep their defaults.
	if cfg.Data.Second.Trajectory != "coullet_2" {
		t.Errorf("expected default second trajectory, got %s", cfg.Data.Second.Trajectory)
	}
	if cfg.Controls.TimeStep != 5 {
		t.Errorf("expected time step 5, got %d", cfg.Controls.TimeStep)
	}
	if cfg.Controls.Keys["time_forward"] != "Right" {
		t.Errorf("expected key override, got %v", cfg.Controls.Keys)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestApplyArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		applied bool
		first   [2]string
		second  [2]string
	}{
		{
			name:    "exactly four",
			args:    []string{"lorenz_1", "square", "lorenz_2", "heart"},
			applied: true,
			first:   [2]string{"lorenz_1", "square"},
			second:  [2]string{"lorenz_2", "heart"},
		},
		{
			name:   "none",
			first:  [2]string{"coullet_1", "heart"},
			second: [2]string{"coullet_2", "heart"},
		},
		{
			name:   "partial is ignored",
			args:   []string{"lorenz_1", "square"},
			first:  [2]string{"coullet_1", "heart"},
			second: [2]string{"coullet_2", "heart"},
		},
		{
			name:   "too many is ignored",
			args:   []string{"a", "b", "c", "d", "e"},
			first:  [2]string{"coullet_1", "heart"},
			second: [2]string{"coullet_2", "heart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if got := applyArgs(cfg, tt.args); got != tt.applied {
				t.Errorf("applyArgs returned %v, want %v", got, tt.applied)
			}
			if got := [2]string{cfg.Data.First.Trajectory, cfg.Data.First.Section}; got != tt.first {
				t.Errorf("first = %v, want %v", got, tt.first)
			}
			if got := [2]string{cfg.Data.Second.Trajectory, cfg.Data.Second.Section}; got != tt.second {
				t.Errorf("second = %v, want %v", got, tt.second)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fps flag",
			setup: func() { *flagFPS = 25 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.TargetFPS != 25 {
					t.Errorf("expected target fps 25, got %d", cfg.Render.TargetFPS)
				}
			},
			teardown: func() { *flagFPS = 0 },
		},
		{
			name:  "data flag",
			setup: func() { *flagData = "/tmp/sets" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Root != "/tmp/sets" {
					t.Errorf("expected data root /tmp/sets, got %s", cfg.Data.Root)
				}
			},
			teardown: func() { *flagData = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Controls.TimeStep = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Controls.TimeStep != 7 {
		t.Errorf("expected time step 7 after reload, got %d", loaded.Controls.TimeStep)
	}
}

func TestSaveRequestedWritesToConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)

	*flagSave = true
	defer func() { *flagSave = false }()
	if !SaveRequested() {
		t.Fatal("expected SaveRequested after --save-config")
	}

	cfg := Default()
	cfg.Render.TargetFPS = 24
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(ConfigDir(), "config.yaml")
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload from %s failed: %v", path, err)
	}
	if loaded.Render.TargetFPS != 24 {
		t.Errorf("expected target fps 24 after reload, got %d", loaded.Render.TargetFPS)
	}
}

func TestDatasetDirs(t *testing.T) {
	d := Default().Data
	if got := d.TrajectoryDir(d.First); got != filepath.Join("data", "coullet_1") {
		t.Errorf("unexpected trajectory dir %s", got)
	}
	if got := d.SectionDir(d.Second); got != filepath.Join("data", "heart") {
		t.Errorf("unexpected section dir %s", got)
	}
}

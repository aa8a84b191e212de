package config

import (
	"flag"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFPS        = flag.Int("fps", 0, "Target frame rate (clamped to 20..60)")
	flagData       = flag.String("data", "", "Root directory of the attractor datasets")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// datasetArgCount is the number of positional arguments that replace the default datasets:
// first trajectory, first section, second trajectory, second section.
const datasetArgCount = 4

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFPS > 0 {
		cfg.Render.TargetFPS = *flagFPS
	}
	if *flagData != "" {
		cfg.Data.Root = *flagData
	}
}

// applyArgs replaces all four dataset directories when exactly four positional
// arguments are given. Any other count leaves the configured datasets in place
// and reports false.
func applyArgs(cfg *Config, args []string) bool {
	if len(args) != datasetArgCount {
		return false
	}
	cfg.Data.First.Trajectory, cfg.Data.First.Section = args[0], args[1]
	cfg.Data.Second.Trajectory, cfg.Data.Second.Section = args[2], args[3]
	return true
}

// IgnoredArgs returns the positional arguments if their count was wrong and
// they were not applied.
func IgnoredArgs() []string {
	if n := flag.NArg(); n == 0 || n == datasetArgCount {
		return nil
	}
	return flag.Args()
}

// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/attractor-viewer/internal/engine/camera"
)

// ErrInvalid is returned by Validate when a setting is out of its accepted range.
var ErrInvalid = errors.New("invalid configuration value")

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Render     RenderConfig     `yaml:"render"`
	Data       DataConfig       `yaml:"data"`
	Controls   ControlsConfig   `yaml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds projection and fly-camera settings.
type CameraConfig struct {
	FieldOfView float32    `yaml:"fov"` // degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
}

// RenderConfig holds frame pacing and color settings.
type RenderConfig struct {
	TargetFPS        int        `yaml:"target_fps"`
	BackgroundTop    [4]float32 `yaml:"background_top"`
	BackgroundBottom [4]float32 `yaml:"background_bottom"`
	LightColor       [4]float32 `yaml:"light_color"`
	LightAzimuth     float32    `yaml:"light_azimuth"`   // degrees around Y from +Z
	LightElevation   float32    `yaml:"light_elevation"` // degrees above the XZ plane

	// SplitMatrixUniforms uploads matrices as four vec4 columns instead of one mat4.
	SplitMatrixUniforms bool `yaml:"split_matrix_uniforms"`
}

// DatasetConfig names the directories holding one attractor's data files.
type DatasetConfig struct {
	Trajectory string `yaml:"trajectory"` // contains x.txt, y.txt, z.txt
	Section    string `yaml:"section"`    // contains x.txt, y.txt

	Color [4]float32 `yaml:"color"` // initial RGBA tube color
}

// DataConfig holds dataset locations.
type DataConfig struct {
	Root   string        `yaml:"root"`
	First  DatasetConfig `yaml:"first"`
	Second DatasetConfig `yaml:"second"`
}

// ControlsConfig holds keyboard adjustment steps and their bounds.
type ControlsConfig struct {
	TimeStep    int `yaml:"time_step"`
	MinTimeStep int `yaml:"min_time_step"`
	MaxTimeStep int `yaml:"max_time_step"`
	MinTime     int `yaml:"min_time"`
	MaxTime     int `yaml:"max_time"`

	ColorDelta float32 `yaml:"color_delta"`

	Radius      float32 `yaml:"radius"`
	RadiusDelta float32 `yaml:"radius_delta"`
	MinRadius   float32 `yaml:"min_radius"`
	MaxRadius   float32 `yaml:"max_radius"`

	RotationDelta float32 `yaml:"rotation_delta"` // radians per frame

	DivergenceThreshold float32 `yaml:"divergence_threshold"`

	// Keys overrides default bindings: action name -> SDL key name.
	Keys map[string]string `yaml:"keys"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the values the viewer ships with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "The Coullet Attractor",
			Width:  1280,
			Height: 720,
			VSync:  false,
		},
		Camera: CameraConfig{
			FieldOfView: 45,
			Near:        0.1,
			Far:         1500,
			Speed:       2.5,
			Sensitivity: 0.1,
			Position:    [3]float32{0, 0, 6},
			Yaw:         -90,
			Pitch:       0,
		},
		Render: RenderConfig{
			TargetFPS:        60,
			BackgroundTop:    [4]float32{0.05, 0.05, 0.12, 1},
			BackgroundBottom: [4]float32{0.35, 0.35, 0.45, 1},
			LightColor:       [4]float32{1, 1, 1, 1},
			LightAzimuth:     35,
			LightElevation:   60,
		},
		Data: DataConfig{
			Root:   "data",
			First: DatasetConfig{
				Trajectory: "coullet_1",
				Section:    "heart",
				Color:      [4]float32{0.9, 0.35, 0.2, 1},
			},
			Second: DatasetConfig{
				Trajectory: "coullet_2",
				Section:    "heart",
				Color:      [4]float32{0.2, 0.55, 0.9, 1},
			},
		},
		Controls: ControlsConfig{
			TimeStep:            1,
			MinTimeStep:         1,
			MaxTimeStep:         100,
			MinTime:             1,
			MaxTime:             10000,
			ColorDelta:          0.001,
			Radius:              0.05,
			RadiusDelta:         0.001,
			MinRadius:           0.01,
			MaxRadius:           0.1,
			RotationDelta:       0.01,
			DivergenceThreshold: 0.025,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the viewer cannot run with. It never modifies c.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0:
		return fmt.Errorf("%w: window width %d", ErrInvalid, c.Window.Width)
	case c.Window.Height <= 0:
		return fmt.Errorf("%w: window height %d", ErrInvalid, c.Window.Height)
	case c.Camera.FieldOfView < camera.MinZoom || c.Camera.FieldOfView > camera.MaxZoom:
		return fmt.Errorf("%w: field of view %g", ErrInvalid, c.Camera.FieldOfView)
	case c.Camera.Near <= 0:
		return fmt.Errorf("%w: near distance %g", ErrInvalid, c.Camera.Near)
	case c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: far distance %g not beyond near %g", ErrInvalid, c.Camera.Far, c.Camera.Near)
	case c.Render.TargetFPS <= 0:
		return fmt.Errorf("%w: target fps %d", ErrInvalid, c.Render.TargetFPS)
	case c.Controls.MinTime < 0 || c.Controls.MaxTime < c.Controls.MinTime:
		return fmt.Errorf("%w: time range [%d, %d]", ErrInvalid, c.Controls.MinTime, c.Controls.MaxTime)
	case c.Controls.MinTimeStep < 1 || c.Controls.MaxTimeStep < c.Controls.MinTimeStep:
		return fmt.Errorf("%w: time step range [%d, %d]", ErrInvalid, c.Controls.MinTimeStep, c.Controls.MaxTimeStep)
	case c.Controls.MinRadius < 0 || c.Controls.MaxRadius < c.Controls.MinRadius:
		return fmt.Errorf("%w: radius range [%g, %g]", ErrInvalid, c.Controls.MinRadius, c.Controls.MaxRadius)
	case c.Controls.DivergenceThreshold < 0:
		return fmt.Errorf("%w: divergence threshold %g", ErrInvalid, c.Controls.DivergenceThreshold)
	}

	switch c.Screenshot.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("%w: screenshot format %q", ErrInvalid, c.Screenshot.Format)
	}
	return nil
}

// Package viewer implements the interactive attractor viewer: it loads two
// datasets, owns the window and GPU resources, and runs the render loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/attractor"
	"github.com/Faultbox/attractor-viewer/internal/config"
	"github.com/Faultbox/attractor-viewer/internal/engine/camera"
	"github.com/Faultbox/attractor-viewer/internal/engine/debug"
	"github.com/Faultbox/attractor-viewer/internal/engine/input"
	"github.com/Faultbox/attractor-viewer/internal/engine/lighting"
	"github.com/Faultbox/attractor-viewer/internal/engine/pacer"
	"github.com/Faultbox/attractor-viewer/internal/engine/renderer"
	"github.com/Faultbox/attractor-viewer/internal/engine/shader"
	"github.com/Faultbox/attractor-viewer/internal/engine/window"
	"github.com/Faultbox/attractor-viewer/internal/logger"
	"github.com/Faultbox/attractor-viewer/internal/viewer/controls"
	"github.com/Faultbox/attractor-viewer/internal/viewer/shaders"
)

const titleInterval = time.Second

var movements = []struct {
	action controls.Action
	dir    camera.Movement
}{
	{controls.MoveForward, camera.Forward},
	{controls.MoveBackward, camera.Backward},
	{controls.MoveLeft, camera.Left},
	{controls.MoveRight, camera.Right},
}

// Dataset is one loaded attractor: its trajectory and the shape swept along it.
type Dataset struct {
	Trajectory attractor.Trajectory
	Section    attractor.Section
}

// LoadDataset reads the trajectory and section directories named by ds.
// Errors wrap attractor.ErrDataFile when a file is missing.
func LoadDataset(data config.DataConfig, ds config.DatasetConfig) (Dataset, error) {
	traj, err := attractor.LoadTrajectory(data.TrajectoryDir(ds))
	if err != nil {
		return Dataset{}, fmt.Errorf("trajectory %s: %w", ds.Trajectory, err)
	}
	sect, err := attractor.LoadSection(data.SectionDir(ds))
	if err != nil {
		return Dataset{}, fmt.Errorf("section %s: %w", ds.Section, err)
	}
	logger.Info("dataset loaded",
		zap.String("trajectory", ds.Trajectory),
		zap.Int("points", len(traj)),
		zap.String("section", ds.Section),
		zap.Int("section_points", len(sect)),
	)
	return Dataset{Trajectory: traj, Section: sect}, nil
}

// Viewer owns every resource of one viewing session.
type Viewer struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	tubeProgram       *shader.Program
	backgroundProgram *shader.Program

	tubes      [2]*attractor.Tube
	background *Background
	mask       []bool

	camera      *camera.FlyCamera
	pacer       *pacer.Pacer
	controls    *controls.Controls
	keymap      Keymap
	screenshots *debug.ScreenshotCapture

	running        bool
	wantScreenshot bool
}

// New loads both datasets, opens the window and builds GPU resources.
// Data and configuration are checked before any window is created.
func New(cfg *config.Config) (*Viewer, error) {
	keymap, err := NewKeymap(cfg.Controls.Keys)
	if err != nil {
		return nil, err
	}
	screenshots, err := debug.NewScreenshotCapture(cfg.Screenshot.Dir, "attractor", cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	first, err := LoadDataset(cfg.Data, cfg.Data.First)
	if err != nil {
		return nil, err
	}
	second, err := LoadDataset(cfg.Data, cfg.Data.Second)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:         cfg,
		keymap:      keymap,
		screenshots: screenshots,
		mask:        attractor.DivergenceMask(first.Trajectory, second.Trajectory, cfg.Controls.DivergenceThreshold),
		camera: camera.NewFlyCamera(
			mgl32.Vec3(cfg.Camera.Position),
			cfg.Camera.Yaw,
			cfg.Camera.Pitch,
		),
		pacer: pacer.New(cfg.Render.TargetFPS),
		controls: controls.New(cfg.Controls,
			mgl32.Vec4(cfg.Data.First.Color),
			mgl32.Vec4(cfg.Data.Second.Color),
		),
		input: input.New(),
	}
	v.camera.Speed = cfg.Camera.Speed
	v.camera.Sensitivity = cfg.Camera.Sensitivity
	v.camera.SetZoom(cfg.Camera.FieldOfView)

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		RelativeMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come AFTER the window, since the GL context must exist
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.initGPU(first, second); err != nil {
		v.Close()
		return nil, err
	}

	logger.Info("viewer initialized",
		zap.Int("first_segments", v.tubes[0].SegmentCount()),
		zap.Int("second_segments", v.tubes[1].SegmentCount()),
		zap.Int("first_cached", v.tubes[0].Cached()),
		zap.Int("second_cached", v.tubes[1].Cached()),
		zap.Int("target_fps", v.pacer.TargetFPS()),
	)
	return v, nil
}

// initGPU compiles the shaders and creates the tubes and background.
func (v *Viewer) initGPU(first, second Dataset) error {
	cfg := v.cfg
	var err error

	tubeVertex := shaders.AttractorVertexShader
	var opts []attractor.Option
	if cfg.Render.SplitMatrixUniforms {
		tubeVertex = shaders.AttractorSplitVertexShader
		opts = append(opts, attractor.WithSplitMatrices())
	}
	opts = append(opts,
		attractor.WithLightColor(mgl32.Vec4(cfg.Render.LightColor)),
		attractor.WithLightDirection(lighting.SunDirection(cfg.Render.LightAzimuth, cfg.Render.LightElevation)),
	)

	v.tubeProgram, err = shader.New("attractor", tubeVertex, shaders.AttractorFragmentShader)
	if err != nil {
		return err
	}
	v.backgroundProgram, err = shader.New("background", shaders.BackgroundVertexShader, shaders.BackgroundFragmentShader)
	if err != nil {
		return err
	}

	for i, ds := range [2]Dataset{first, second} {
		v.tubes[i], err = attractor.NewTube(ds.Trajectory, ds.Section, v.renderer, v.tubeProgram, opts...)
		if err != nil {
			return fmt.Errorf("attractor %d: %w", i+1, err)
		}
		state := v.controls.Attractor(i)
		v.tubes[i].SetRadius(state.Radius)
		v.tubes[i].SetColor(state.Color)
		v.tubes[i].Prepare(state.Time)
	}

	v.background = NewBackground(v.renderer,
		mgl32.Vec4(cfg.Render.BackgroundTop),
		mgl32.Vec4(cfg.Render.BackgroundBottom),
	)
	return nil
}

// Run starts the render loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true
	dt := v.pacer.Budget()
	var sinceTitle time.Duration

	logger.Info("starting render loop")

	for v.running {
		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Update state
		v.update(float32(dt.Seconds()))

		// 3. Render
		v.render()
		if v.wantScreenshot {
			v.wantScreenshot = false
			v.screenshot()
		}

		// 4. Present
		v.window.SwapBuffers()

		dt = v.pacer.EnforceFrameRate()

		sinceTitle += dt
		if sinceTitle >= titleInterval {
			sinceTitle = 0
			v.updateTitle()
		}
	}

	return nil
}

// handleEvents reacts to discrete events: resize, mouse look, zoom and
// one-shot keys.
func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
		case input.EventMouseMove:
			v.camera.ProcessMouseMovement(event.MouseX, event.MouseY, true)
		case input.EventMouseWheel:
			v.camera.ProcessMouseScroll(event.Wheel)
		}
	}
	if v.input.IsKeyPressed(v.keymap[controls.Screenshot]) {
		v.wantScreenshot = true
	}
}

// update applies held keys to the camera and attractor state.
func (v *Viewer) update(dt float32) {
	keys := keyState{keymap: &v.keymap, pressed: v.input.Pressed}

	if keys.Held(controls.Quit) {
		logger.Info("quit requested")
		v.running = false
	}

	for _, m := range movements {
		if keys.Held(m.action) {
			v.camera.ProcessKeyboard(m.dir, dt)
		}
	}

	changes := v.controls.Apply(keys)
	for i, tube := range v.tubes {
		state := v.controls.Attractor(i)
		if changes.Radius[i] {
			tube.SetRadius(state.Radius)
		}
		if changes.Color[i] {
			tube.SetColor(state.Color)
		}
		if changes.Rotation[i] {
			tube.Transform().RotateTo(state.Rotation)
		}
	}
}

// render draws the background and the visible part of both tubes.
func (v *Viewer) render() {
	v.renderer.Begin()

	v.renderer.SetDepthWrite(false)
	v.backgroundProgram.Use()
	v.background.Draw()
	v.renderer.SetDepthWrite(true)

	vp := v.viewProjection()
	v.tubes[0].Draw(vp, 0, v.controls.Attractor(0).Time)
	v.tubes[1].DrawMasked(vp, 0, v.controls.Attractor(1).Time, v.mask)
}

func (v *Viewer) viewProjection() mgl32.Mat4 {
	projection := mgl32.Perspective(
		mgl32.DegToRad(v.camera.Zoom()),
		v.renderer.Aspect(),
		v.cfg.Camera.Near,
		v.cfg.Camera.Far,
	)
	return projection.Mul4(v.camera.ViewMatrix())
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateTitle() {
	first, second := v.controls.Attractor(0), v.controls.Attractor(1)
	logger.Debug("frame stats",
		zap.Float64("fps", v.pacer.CurrentFPS()),
		zap.Duration("work", v.pacer.FrameDuration()),
		zap.Int("first_time", first.Time),
		zap.Int("second_time", second.Time),
		zap.Int("first_cached", v.tubes[0].Cached()),
		zap.Int("second_cached", v.tubes[1].Cached()),
	)
	v.window.SetTitle(fmt.Sprintf("%s - %.0f fps - t=%d/%d step=%d [%s]",
		v.cfg.Window.Title,
		v.pacer.CurrentFPS(),
		first.Time, second.Time,
		v.controls.Step(),
		v.controls.Filter(),
	))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	for _, tube := range v.tubes {
		if tube != nil {
			tube.Close()
		}
	}
	if v.background != nil {
		v.background.Close()
	}
	if v.tubeProgram != nil {
		v.tubeProgram.Delete()
	}
	if v.backgroundProgram != nil {
		v.backgroundProgram.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

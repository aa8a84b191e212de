// Package pacer caps the frame rate of the render loop.
package pacer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/logger"
)

// Target frame rate bounds.
const (
	MinFPS = 20
	MaxFPS = 60

	fpsWindow = 500 * time.Millisecond
)

// Pacer sleeps away the rest of each frame's time budget.
type Pacer struct {
	target int
	budget time.Duration

	frameStart time.Time
	work       time.Duration // time spent before sleeping in the last frame

	// Rolling FPS estimate, refreshed every fpsWindow.
	fps        float64
	frames     int
	fpsElapsed time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a pacer for target frames per second, clamped to [20, 60].
func New(target int) *Pacer {
	p := &Pacer{now: time.Now, sleep: time.Sleep}
	p.SetTargetFPS(target)
	p.frameStart = p.now()
	return p
}

// SetTargetFPS changes the target frame rate, clamped to [20, 60].
func (p *Pacer) SetTargetFPS(fps int) {
	clamped := min(max(fps, MinFPS), MaxFPS)
	if clamped != fps {
		logger.Debug("target fps clamped", zap.Int("requested", fps), zap.Int("target", clamped))
	}
	p.target = clamped
	p.budget = time.Second / time.Duration(clamped)
}

// TargetFPS returns the target frame rate.
func (p *Pacer) TargetFPS() int { return p.target }

// Budget returns the time one frame may take.
func (p *Pacer) Budget() time.Duration { return p.budget }

// EnforceFrameRate ends the current frame. It sleeps for whatever is left of
// the frame budget and returns the full frame time including the sleep.
func (p *Pacer) EnforceFrameRate() time.Duration {
	p.work = p.now().Sub(p.frameStart)
	if rest := p.budget - p.work; rest > 0 {
		p.sleep(rest)
	}

	end := p.now()
	elapsed := end.Sub(p.frameStart)
	p.frameStart = end

	p.frames++
	p.fpsElapsed += elapsed
	if p.fpsElapsed >= fpsWindow {
		p.fps = float64(p.frames) / p.fpsElapsed.Seconds()
		p.frames = 0
		p.fpsElapsed = 0
	}

	return elapsed
}

// FrameDuration returns the time the last frame spent before sleeping.
func (p *Pacer) FrameDuration() time.Duration { return p.work }

// CurrentFPS returns the frame rate measured over the last half second.
func (p *Pacer) CurrentFPS() float64 { return p.fps }

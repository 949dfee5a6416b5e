// Package viewer implements the model viewer's main loop and state.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/config"
	"github.com/Faultbox/gizmo/internal/engine/camera"
	"github.com/Faultbox/gizmo/internal/engine/clock"
	"github.com/Faultbox/gizmo/internal/engine/debug"
	"github.com/Faultbox/gizmo/internal/engine/grid"
	"github.com/Faultbox/gizmo/internal/engine/input"
	"github.com/Faultbox/gizmo/internal/engine/lighting"
	"github.com/Faultbox/gizmo/internal/engine/renderer"
	"github.com/Faultbox/gizmo/internal/engine/texture"
	"github.com/Faultbox/gizmo/internal/engine/window"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/internal/watch"
)

// ErrNoModel is returned when no model path was configured.
var ErrNoModel = errors.New("no model file given")

// Overlay line colors.
var (
	bboxColor   = mgl32.Vec3{1, 0.85, 0.2}
	normalColor = mgl32.Vec3{0.2, 0.6, 1}
)

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	textures *texture.GLLoader
	loader   *Loader
	model    *Model

	light     lighting.OrbitLight
	highlight lighting.Highlight
	ticker    *clock.Ticker
	countdown *clock.Countdown
	watcher   *watch.Watcher
	shots     *debug.ScreenshotCapture

	overlays          Overlays
	title             string
	screenshotPending bool
}

// New creates the window, the GL context and loads the configured model.
// Any failure here is fatal for the process.
func New(cfg *config.Config) (*Viewer, error) {
	if cfg.Viewer.Model == "" {
		return nil, ErrNoModel
	}
	path := config.ExpandPath(cfg.Viewer.Model)

	v := &Viewer{
		cfg:       cfg,
		log:       logger.Named("viewer"),
		input:     input.New(),
		camera:    camera.New(cameraSettings(cfg.Camera)),
		light:     orbitLight(cfg.Lighting),
		highlight: lighting.Highlight{Match: cfg.Viewer.Highlight, Color: mgl32.Vec3(cfg.Lighting.HighlightColor)},
		ticker:    clock.NewTicker(clock.DefaultInterval, clock.DefaultTickEvery, clock.DefaultToggleEvery),
		countdown: clock.NewCountdown(cfg.Viewer.Duration, time.Second),
		shots:     debug.NewScreenshotCapture(config.ExpandPath(cfg.Viewer.ScreenshotDir), "gizmo"),
		overlays: Overlays{
			Wireframe: cfg.Debug.Wireframe,
			Normals:   cfg.Debug.Normals,
			BBox:      cfg.Debug.BBox,
			Grid:      cfg.Grid.Enabled,
		},
	}

	v.log.Info("initializing viewer",
		zap.String("model", path),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window: the GL context must exist.
	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:   fbWidth,
		Height:  fbHeight,
		Samples: cfg.Window.Samples,
		Grid:    gridParams(cfg.Grid),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.textures = &texture.GLLoader{FlipFiles: cfg.Textures.FlipFiles}
	v.loader = &Loader{
		Textures:     v.textures,
		Strict:       cfg.Textures.Strict,
		NormalLength: cfg.Debug.NormalLength,
	}

	model, err := v.loader.Load(path)
	if err != nil {
		v.Close()
		return nil, err
	}
	if err := v.install(model); err != nil {
		model.Release(v.textures)
		v.Close()
		return nil, err
	}
	if cfg.Camera.AutoFit && model.HasBounds {
		v.camera.FitToBounds(model.Bounds.Min, model.Bounds.Max)
	}

	if cfg.Viewer.Watch {
		if v.watcher, err = watch.New(path, watch.DefaultDebounce); err != nil {
			v.log.Warn("hot reload disabled", zap.Error(err))
			v.watcher = nil
		}
	}

	v.log.Info("viewer initialized successfully")
	return v, nil
}

func cameraSettings(c config.CameraConfig) camera.Settings {
	return camera.Settings{
		Yaw:            c.Yaw,
		Pitch:          c.Pitch,
		Distance:       c.Distance,
		Target:         mgl32.Vec3(c.Target),
		OrbitSpeed:     c.OrbitSpeed,
		PanSpeed:       c.PanSpeed,
		ZoomSpeed:      c.ZoomSpeed,
		ConstrainPitch: c.ConstrainPitch,
		FOV:            c.FOV,
		Near:           c.Near,
		Far:            c.Far,
	}
}

func orbitLight(c config.LightingConfig) lighting.OrbitLight {
	return lighting.OrbitLight{
		Radius: c.Radius,
		Height: c.Height,
		Step:   c.Step,
		Color:  mgl32.Vec3(c.Color),
		Attenuation: lighting.Attenuation{
			Constant:  c.Constant,
			Linear:    c.Linear,
			Quadratic: c.Quadratic,
		},
		Ambient:   c.Ambient,
		Shininess: c.Shininess,
	}
}

func gridParams(c config.GridConfig) grid.Params {
	return grid.Params{
		Size:             c.Size,
		CellSize:         c.CellSize,
		ThinColor:        mgl32.Vec4(c.ThinColor),
		ThickColor:       mgl32.Vec4(c.ThickColor),
		MinPixelsBetween: c.MinPixelsBetween,
	}
}

// install uploads m and makes it current, releasing the previous model.
func (v *Viewer) install(m *Model) error {
	gpu, err := renderer.Upload(m.Geometry)
	if err != nil {
		return fmt.Errorf("upload %s: %w", m.Path, err)
	}
	m.GPU = gpu

	old := v.model
	v.model = m
	old.Release(v.textures)
	return nil
}

// reload replaces the model; on failure the current one stays.
func (v *Viewer) reload() {
	path := v.model.Path
	m, err := v.loader.Load(path)
	if err != nil {
		v.log.Error("reload failed, keeping current model", zap.String("path", path), zap.Error(err))
		return
	}
	if err := v.install(m); err != nil {
		m.Release(v.textures)
		v.log.Error("reload failed, keeping current model", zap.String("path", path), zap.Error(err))
		return
	}
	v.log.Info("model reloaded", zap.String("path", path))
}

// Run starts the main loop. It returns when the window closes, Escape is
// pressed, the countdown expires or ctx is canceled.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.ticker.Start(ctx)
	defer v.ticker.Stop()

	if v.cfg.CountdownEnabled() {
		v.countdown.Start(ctx)
		defer v.countdown.Stop()
	}

	var reloads <-chan struct{}
	if v.watcher != nil {
		v.watcher.Start(ctx)
		reloads = v.watcher.Reloads()
	}

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-v.countdown.Done():
			v.log.Info("countdown expired, shutting down")
			return nil
		case <-reloads:
			v.reload()
		default:
		}

		if quit := v.handleInput(); quit {
			return nil
		}

		v.render()
		v.window.SwapBuffers()
		v.updateTitle()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// handleInput processes this frame's events and reports whether to quit.
func (v *Viewer) handleInput() bool {
	quit := v.input.Update()

	for _, ev := range v.input.Events() {
		a := applyEvent(v.camera, ev)
		if v.overlays.toggle(a) {
			v.log.Debug("overlay toggled", zap.Any("overlays", v.overlays))
			continue
		}
		switch a {
		case ActionQuit:
			quit = true
		case ActionResize:
			v.renderer.Resize(v.window.DrawableSize())
		case ActionResetView:
			v.log.Debug("view reset")
		case ActionHold:
			if v.countdown.Active() {
				v.countdown.Hold()
				v.log.Info("running indefinitely")
			}
		case ActionScreenshot:
			v.screenshotPending = true
		case ActionReload:
			v.reload()
		}
	}
	return quit
}

func (v *Viewer) render() {
	snap := v.ticker.Snapshot()
	f := renderer.Frame{
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(v.renderer.Aspect()),
		CameraPos:  v.camera.Position(),
		Light:      v.light.At(snap.Tick),
		Ambient:    v.light.Ambient,
		Shininess:  v.light.Shininess,
		PhaseOn:    snap.PhaseOn,
	}

	ctx := v.renderer.Context()
	v.renderer.Begin()
	ctx.DrawScene(&f, v.model.GPU, v.model.Layout, v.model.Materials, renderer.SceneOptions{
		Wireframe: v.overlays.Wireframe,
		Highlight: v.highlight,
	})

	if v.overlays.Grid {
		ctx.DrawGrid(&f)
	}
	if v.overlays.BBox {
		ctx.DrawLines(&f, v.model.bboxLines, bboxColor)
	}
	if v.overlays.Normals {
		ctx.DrawLines(&f, v.model.normalLines, normalColor)
	}

	if v.screenshotPending {
		v.screenshotPending = false
		v.screenshot()
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateTitle() {
	t := windowTitle(v.cfg.Window.Title, v.model.Name(), v.countdown.Remaining(),
		v.cfg.CountdownEnabled() && v.countdown.Active())
	if t != v.title {
		v.window.SetTitle(t)
		v.title = t
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("closing watcher", zap.Error(err))
		}
		v.watcher = nil
	}
	if v.model != nil {
		v.model.Release(v.textures)
		v.model = nil
	}
	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}

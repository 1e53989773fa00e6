package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/Brooklyn-Dev/ray-tracing/engine/camera"
	"github.com/Brooklyn-Dev/ray-tracing/engine/profiler"
	"github.com/Brooklyn-Dev/ray-tracing/engine/renderer"
	"github.com/Brooklyn-Dev/ray-tracing/engine/scene"
	"github.com/Brooklyn-Dev/ray-tracing/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Key binding step sizes.
const (
	GammaStep    = float32(0.1)
	MinGamma     = float32(0.1)
	SunAngleStep = float32(5)
	ExposureStep = float32(0.5)
	ScrollEVStep = float32(0.25)
)

// DefaultExportPath is where P and headless runs write the rendered image.
const DefaultExportPath = "render.png"

var (
	// ErrNoRenderer is returned by NewEngine when no renderer was supplied.
	ErrNoRenderer = errors.New("engine: no renderer")
	// ErrNothingRendered is returned by a headless run in which every pass was skipped.
	ErrNothingRendered = errors.New("engine: no pass was accumulated")
)

// engine implements the Engine interface.
// Every method runs on the thread that owns the window and the graphics device.
type engine struct {
	window     window.Window
	renderer   renderer.Renderer
	camera     camera.Camera
	controller camera.CameraController

	profiler         *profiler.Profiler
	profilingEnabled bool

	scenePath      string
	exportPath     string
	headlessFrames int
	current        *scene.Scene

	lastUpdate time.Time
	now        func() time.Time

	releaseOnce sync.Once
}

// Engine is the viewer application: it feeds window input to the camera,
// drives one accumulation pass per window update and presents the result.
type Engine interface {
	// Window returns the window, or nil when headless.
	Window() window.Window

	// Renderer returns the path tracing core.
	Renderer() renderer.Renderer

	// Camera returns the camera whose pose is traced each frame.
	Camera() camera.Camera

	// Scene returns the active scene, or nil before the first successful load.
	Scene() *scene.Scene

	// LoadScene reads the scene file at path and makes it active.
	// On failure the previously active scene stays loaded.
	//
	// Parameters:
	//   - path: the JSON scene file
	//
	// Returns:
	//   - error: the read, parse or validation error
	LoadScene(path string) error

	// ReloadScene reloads the file the active scene came from.
	ReloadScene() error

	// SaveImage writes the display surface to the export path.
	SaveImage() error

	// HandleKey applies the parameter binding for keyCode, if any.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	//
	// Returns:
	//   - bool: true if keyCode is bound to a parameter action
	HandleKey(keyCode uint32) bool

	// Step advances the camera by deltaTime seconds and renders one pass.
	//
	// Returns:
	//   - bool: true if a pass was accumulated
	Step(deltaTime float32) bool

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run renders until the window closes. Without a window it renders the
	// configured number of headless frames and saves the result.
	Run() error

	// Release frees the renderer and closes the window. Safe to call more than once.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// The scene path, if set, is loaded immediately and the camera placed at the scene's camera.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoRenderer, or the initial scene load error
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		exportPath:     DefaultExportPath,
		headlessFrames: 1,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}

	if e.controller == nil {
		if e.camera != nil {
			e.controller = e.camera.Controller()
		} else {
			e.controller = camera.NewCameraController()
		}
	}
	if e.camera == nil {
		e.camera = camera.NewCamera(camera.WithController(e.controller))
	} else if e.camera.Controller() != e.controller {
		e.camera.SetController(e.controller)
	}

	e.profiler = profiler.NewProfiler(time.Second)
	e.profiler.SetQuiet(!e.profilingEnabled)

	if e.scenePath != "" {
		if err := e.LoadScene(e.scenePath); err != nil {
			return nil, err
		}
	}

	if e.window != nil {
		e.bindWindow()
	}
	return e, nil
}

// bindWindow routes window events to the controller, the renderer and the key bindings.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if !e.HandleKey(keyCode) {
			e.controller.KeyDown(keyCode)
		}
	})
	e.window.SetKeyUpCallback(e.controller.KeyUp)
	e.window.SetLookButtonDownCallback(e.controller.BeginDrag)
	e.window.SetLookButtonUpCallback(func(x, y int32) {
		e.controller.EndDrag()
	})
	e.window.SetMouseMoveCallback(e.controller.MouseMove)
	e.window.SetScrollCallback(func(delta float32) {
		env := e.renderer.Environment()
		e.renderer.SetSkyboxExposure(env.ExposureEV() + delta*ScrollEVStep)
	})
	e.window.SetUpdateCallback(e.update)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Scene() *scene.Scene {
	return e.current
}

func (e *engine) LoadScene(path string) error {
	s, err := scene.Load(path)
	if err != nil {
		log.Printf("[Engine] keeping current scene: %v", err)
		return err
	}
	if err := e.renderer.LoadScene(s); err != nil {
		log.Printf("[Engine] keeping current scene: %v", err)
		return fmt.Errorf("load scene %s: %w", path, err)
	}

	e.current = s
	e.scenePath = path
	c := s.Camera
	e.controller.Place(mgl32.Vec3(c.Position), c.Yaw, c.Pitch)
	e.camera.Update(0)
	return nil
}

func (e *engine) ReloadScene() error {
	if e.scenePath == "" {
		return nil
	}
	return e.LoadScene(e.scenePath)
}

func (e *engine) SaveImage() error {
	if err := e.renderer.SaveImage(e.exportPath); err != nil {
		log.Printf("[Engine] failed to save %s: %v", e.exportPath, err)
		return err
	}
	log.Printf("[Engine] saved %s at frame %d", e.exportPath, e.renderer.Frame())
	return nil
}

func (e *engine) HandleKey(keyCode uint32) bool {
	r := e.renderer
	switch keyCode {
	case common.KeyLeftBracket:
		r.SetSamplesPerPixel(r.SamplesPerPixel() / 2)
	case common.KeyRightBracket:
		r.SetSamplesPerPixel(r.SamplesPerPixel() * 2)
	case common.KeyMinus:
		r.SetMaxBounces(r.MaxBounces() - 1)
	case common.KeyEqual:
		r.SetMaxBounces(r.MaxBounces() + 1)
	case common.KeyG:
		r.SetGamma(max(r.Gamma()-GammaStep, MinGamma))
	case common.KeyH:
		r.SetGamma(r.Gamma() + GammaStep)
	case common.KeyK, common.KeyN, common.KeyJ, common.KeyL:
		env := r.Environment()
		pitch, yaw := env.SunPitch(), env.SunYaw()
		switch keyCode {
		case common.KeyK:
			pitch += SunAngleStep
		case common.KeyN:
			pitch -= SunAngleStep
		case common.KeyJ:
			yaw -= SunAngleStep
		case common.KeyL:
			yaw += SunAngleStep
		}
		r.SetSunAngles(common.Clamp(pitch, -90, 90), yaw)
	case common.KeyB:
		r.SetSkyboxExposure(r.Environment().ExposureEV() + ExposureStep)
	case common.KeyZ:
		r.SetSkyboxExposure(r.Environment().ExposureEV() - ExposureStep)
	case common.KeyX:
		r.SetSkybox("")
	case common.KeyR:
		_ = e.ReloadScene()
	case common.KeyP:
		_ = e.SaveImage()
	default:
		return false
	}
	return true
}

func (e *engine) Step(deltaTime float32) bool {
	e.camera.Update(deltaTime)
	return e.renderer.Render(e.camera.Pose())
}

// update runs once per window message loop iteration.
func (e *engine) update() {
	now := e.now()
	var dt float32
	if !e.lastUpdate.IsZero() {
		dt = float32(now.Sub(e.lastUpdate).Seconds())
	}
	e.lastUpdate = now

	rendered := e.Step(dt)
	if err := e.renderer.Present(); err != nil {
		log.Printf("[Engine] present failed: %v", err)
	}

	var renderTime time.Duration
	if rendered {
		renderTime = e.renderer.LastRenderTime()
	}
	if e.profiler.Tick(e.renderer.Frame(), renderTime) {
		e.window.SetTitle(e.title())
	}
}

// title formats the window title from the active scene and the last profiler interval.
func (e *engine) title() string {
	name := scene.UnnamedSceneName
	if e.current != nil {
		name = e.current.Name
	}
	return fmt.Sprintf("%s | %s | SPP: %d | Bounces: %d",
		name, e.profiler.Last(), e.renderer.SamplesPerPixel(), e.renderer.MaxBounces())
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	e.profiler.SetQuiet(false)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
	e.profiler.SetQuiet(true)
}

func (e *engine) Run() error {
	if e.window == nil {
		return e.runHeadless()
	}
	e.window.SetTitle(e.title())
	e.window.ProcessMessages()
	return nil
}

// runHeadless accumulates the configured number of passes from the scene camera and exports the result.
func (e *engine) runHeadless() error {
	start := e.now()
	rendered := 0
	for i := 0; i < e.headlessFrames; i++ {
		if e.Step(0) {
			rendered++
		}
		if e.profiler.Tick(e.renderer.Frame(), e.renderer.LastRenderTime()) && e.profilingEnabled {
			log.Printf("[Engine] %d/%d passes", i+1, e.headlessFrames)
		}
	}
	log.Printf("[Engine] accumulated %d of %d passes in %s", rendered, e.headlessFrames, e.now().Sub(start))
	if rendered == 0 {
		return ErrNothingRendered
	}
	return e.SaveImage()
}

func (e *engine) Release() {
	e.releaseOnce.Do(func() {
		if e.renderer != nil {
			e.renderer.Release()
		}
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				log.Printf("[Engine] failed to close window: %v", err)
			}
		}
	})
}

package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadow/engine/shadow"
)

// SceneShadows is the shadow output of one scene for one frame.
type SceneShadows struct {
	Key     int
	Scene   scene.Scene
	Results []*shadow.Result
}

// engine implements the Engine interface.
// Coordinates the tick and render goroutines.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler *profiler.Profiler

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32, shadows []SceneShadows)

	scenes map[int]scene.Scene

	targets      renderer.TargetPool
	rasterizer   renderer.Rasterizer
	orchestrator shadow.Orchestrator
	workers      int
	debugTargets bool
	system       shadow.System
	lastDebug    *shadow.DebugTargets

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives shadow computation for a set of scenes, either one frame at a time
// through Frame or continuously through Run.
type Engine interface {
	// EnableProfiler enables shadow statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables shadow statistics output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic and moving nodes, lights and cameras.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each frame's shadows are computed.
	// The shadow targets stay valid until the next frame starts.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds and the frame's shadows
	SetRenderCallback(callback func(deltaTime float32, shadows []SceneShadows))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are processed in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining processing order (lower goes first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Targets returns the depth target pool shared by every scene.
	//
	// Returns:
	//   - renderer.TargetPool: the pool
	Targets() renderer.TargetPool

	// DebugTargets returns the depth targets registered during the last frame, or nil
	// when debug capture is off.
	//
	// Returns:
	//   - *shadow.DebugTargets: the registry of the last frame
	DebugTargets() *shadow.DebugTargets

	// Frame returns the previous frame's targets to the pool, updates every scene and
	// computes the shadows of its lights. A scene whose lights fail still reports the
	// lights that succeeded.
	//
	// Returns:
	//   - []SceneShadows: the shadows per scene in ascending key order
	//   - error: the joined errors of every failed light, or nil
	Frame() ([]SceneShadows, error)

	// Run starts the tick and render goroutines and blocks until Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithTargetPool the engine hands out descriptor-only depth targets.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		running:         false,
		wg:              sync.WaitGroup{},
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		workers:         1,
	}

	e.profiler.SetEnabled(false)
	for _, opt := range options {
		opt(e)
	}

	if e.targets == nil {
		e.targets = renderer.NewTemporaryPool()
	}
	systemOptions := []shadow.SystemBuilderOption{
		shadow.WithWorkers(e.workers),
		shadow.WithProfiler(e.profiler),
	}
	if e.orchestrator != nil {
		systemOptions = append(systemOptions, shadow.WithOrchestrator(e.orchestrator))
	}
	e.system = shadow.NewSystem(systemOptions...)

	return e
}

func (e *engine) Frame() ([]SceneShadows, error) {
	e.mu.Lock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	scenes := make([]scene.Scene, len(keys))
	for i, k := range keys {
		scenes[i] = e.scenes[k]
	}
	e.mu.Unlock()

	e.targets.EndFrame()

	var debug *shadow.DebugTargets
	if e.debugTargets {
		debug = shadow.NewDebugTargets()
	}

	out := make([]SceneShadows, 0, len(scenes))
	var errs []error
	for i, s := range scenes {
		s.Update()
		ctx := &shadow.FrameContext{
			Scene:      s,
			Camera:     s.Camera(),
			Targets:    e.targets,
			Rasterizer: e.rasterizer,
			Debug:      debug,
		}
		results, err := e.system.Render(ctx, s.Lights())
		if err != nil {
			errs = append(errs, fmt.Errorf("scene %q: %w", s.Name(), err))
		}
		out = append(out, SceneShadows{Key: keys[i], Scene: s, Results: results})
	}

	e.mu.Lock()
	e.lastDebug = debug
	e.mu.Unlock()
	return out, errors.Join(errs...)
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if cb := e.tick(); cb != nil {
				cb(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleRender runs the uncapped (or frame-limited) shadow loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			shadows, err := e.Frame()
			if err != nil {
				common.Logger().Warn("shadow frame had failures", "error", err)
			}

			e.mu.Lock()
			cb, limit := e.renderCallback, e.renderFrameLimit
			e.mu.Unlock()
			if cb != nil {
				cb(dt, shadows)
			}

			// Frame rate limiting
			if limit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := limit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engine) tickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

func (e *engine) tick() func(float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickCallback
}

// EnableProfiler enables shadow statistics output to the log.
func (e *engine) EnableProfiler() {
	e.profiler.SetEnabled(true)
}

// DisableProfiler disables shadow statistics output.
func (e *engine) DisableProfiler() {
	e.profiler.SetEnabled(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called after each frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32, shadows []SceneShadows)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameLimit(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) Targets() renderer.TargetPool {
	return e.targets
}

func (e *engine) DebugTargets() *shadow.DebugTargets {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastDebug
}

// tickInterval converts a tick rate to a ticker period, 60Hz for fps <= 0.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameLimit converts a frame cap to a minimum frame duration, 0 for uncapped.
func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

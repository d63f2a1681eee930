package scene

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/camera"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/frame"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/light"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/model"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRotationStep is the angle in radians the animation advances each frame.
const DefaultRotationStep float32 = 0.01

// InstanceStride is the distance between consecutive instances in the Color and
// ModelUniforms buffers. Both are bound as uniforms with a dynamic offset per draw, so each
// instance starts on the dynamic offset alignment.
const InstanceStride = frame.UniformOffsetAlignment

// Scene holds the camera, lights and models of a frame and turns them into the records
// uploaded at each BufferIndex slot.
// Thread-safe for concurrent access.
type Scene interface {
	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Lights returns a copy of the active lights in upload order.
	Lights() []light.Light

	// AddLight appends a light.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Models returns a copy of the models in draw order.
	Models() []model.Model

	// AddModel appends a model.
	//
	// Parameters:
	//   - m: the model to add
	AddModel(m model.Model)

	// Rotation returns the current animation angle in radians.
	Rotation() float32

	// Ring returns the uniform ring the scene writes Uniforms into.
	Ring() *frame.Ring

	// Frame advances the animation by one step and prepares the next frame's uploads.
	// It waits for two free uniform slots, one for the shadow pass and one for the main pass.
	//
	// Parameters:
	//   - ctx: cancels the wait for uniform slots
	//
	// Returns:
	//   - *Packet: the frame's records and buffer writes
	//   - error: the context error if ctx ends first
	Frame(ctx context.Context) (*Packet, error)

	// Release returns the packet's uniform slots to the ring. Call it once the GPU has
	// completed the frame. Both slots are released even if one of them fails.
	//
	// Parameters:
	//   - p: a packet returned by Frame
	//
	// Returns:
	//   - error: frame.ErrNotAcquired if the packet was already released
	Release(p *Packet) error

	// Close stops the scene's worker pool.
	Close()
}

// Packet is everything one frame uploads.
type Packet struct {
	// ShadowSlot holds Shadow; bind it at BufferIndexUniforms for the shadow pass.
	ShadowSlot frame.Slot

	// MainSlot holds Main; bind it at BufferIndexUniforms for the G-buffer and composition passes.
	MainSlot frame.Slot

	// Shadow carries the sunlight's orthographic projection and look-at view.
	Shadow shadertypes.Uniforms

	// Main carries the camera matrices and Shadow's view-projection as its shadow matrix.
	Main shadertypes.Uniforms

	// Instances holds one entry per model, in draw order.
	Instances []Instance

	// LightCount is the value uploaded at BufferIndexLightCount.
	LightCount uint32

	// Writes are the buffer uploads for BufferIndexUniforms, BufferIndexColor,
	// BufferIndexModelUniforms, BufferIndexLightCount and BufferIndexLights.
	Writes []frame.BufferWrite
}

// Instance is one model's per-draw data.
type Instance struct {
	Model    model.Model
	Uniforms shadertypes.InstanceUniforms
	Color    mgl32.Vec4

	// Offset is the dynamic offset of this instance in the Color and ModelUniforms buffers.
	Offset uint64
}

// Write returns the packet's write for slot, the first one if the slot is written more than
// once.
//
// Parameters:
//   - slot: the buffer slot
//
// Returns:
//   - frame.BufferWrite: the write
//   - bool: false if the packet does not write slot
func (p *Packet) Write(slot shadertypes.BufferIndex) (frame.BufferWrite, bool) {
	for _, w := range p.Writes {
		if w.Slot == slot {
			return w, true
		}
	}
	return frame.BufferWrite{}, false
}

type scene struct {
	mu *sync.RWMutex

	// frameMu serializes Frame. Each frame holds two ring slots.
	frameMu *sync.Mutex

	cam      camera.Camera
	lights   []light.Light
	models   []model.Model
	rotation float32
	step     float32
	logger   *slog.Logger

	shadowHalfExtent float32
	shadowNear       float32
	shadowFar        float32

	ring            *frame.Ring
	buffersInFlight int

	// pool runs the per-instance work of Frame. Workers persist across frames.
	pool    worker.DynamicWorkerPool
	workers int

	// profileInterval > 0 enables the frame profiler
	profileInterval time.Duration
	profiler        *profiler.Profiler
}

var _ Scene = &scene{}

// NewScene creates a Scene. Without options it has the default camera, no lights and no
// models.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:               &sync.RWMutex{},
		frameMu:          &sync.Mutex{},
		step:             DefaultRotationStep,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		shadowHalfExtent: light.DefaultShadowHalfExtent,
		shadowNear:       light.DefaultShadowNear,
		shadowFar:        light.DefaultShadowFar,
		buffersInFlight:  frame.MaxBuffersInFlight,
		workers:          max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}

	s.ring = frame.NewRing(frame.WithBuffersInFlight(s.buffersInFlight))
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	if s.profileInterval > 0 {
		s.profiler = profiler.NewProfiler(s.logger, profiler.WithInterval(s.profileInterval))
	}
	s.logger.Debug("scene created",
		"lights", len(s.lights),
		"models", len(s.models),
		"workers", s.workers,
		"buffers_in_flight", s.buffersInFlight,
	)
	return s
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]light.Light(nil), s.lights...)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Models() []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Model(nil), s.models...)
}

func (s *scene) AddModel(m model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

func (s *scene) Rotation() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rotation
}

func (s *scene) Ring() *frame.Ring {
	return s.ring
}

func (s *scene) Frame(ctx context.Context) (*Packet, error) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()

	shadowSlot, err := s.ring.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	mainSlot, err := s.ring.Acquire(ctx)
	if err != nil {
		_ = s.ring.Release(shadowSlot)
		return nil, err
	}

	s.mu.Lock()
	s.rotation += s.step
	rotation := s.rotation
	lights := append([]light.Light(nil), s.lights...)
	models := append([]model.Model(nil), s.models...)
	s.mu.Unlock()

	p := &Packet{
		ShadowSlot: shadowSlot,
		MainSlot:   mainSlot,
		LightCount: uint32(len(lights)),
	}

	p.Shadow = s.shadowUniforms(lights)
	p.Main = s.cam.Uniforms(p.Shadow.ShadowMatrix)
	p.Instances = s.prepareInstances(models, rotation)

	if err := errors.Join(s.ring.Write(shadowSlot, p.Shadow), s.ring.Write(mainSlot, p.Main)); err != nil {
		return nil, errors.Join(err, s.Release(p))
	}

	count, data := light.Marshal(lights)
	p.Writes = []frame.BufferWrite{
		{Slot: shadertypes.BufferIndexUniforms, Offset: shadowSlot.Offset, Data: clone(s.ring.SlotBytes(shadowSlot))},
		{Slot: shadertypes.BufferIndexUniforms, Offset: mainSlot.Offset, Data: clone(s.ring.SlotBytes(mainSlot))},
		{Slot: shadertypes.BufferIndexColor, Data: packColors(p.Instances)},
		{Slot: shadertypes.BufferIndexModelUniforms, Data: packInstanceUniforms(p.Instances)},
		{Slot: shadertypes.BufferIndexLightCount, Data: count},
		{Slot: shadertypes.BufferIndexLights, Data: data},
	}

	s.logger.Debug("frame prepared",
		"shadow_slot", shadowSlot.Index,
		"main_slot", mainSlot.Index,
		"instances", len(p.Instances),
		"lights", p.LightCount,
	)
	if s.profiler != nil {
		s.profiler.Tick()
	}
	return p, nil
}

func (s *scene) Release(p *Packet) error {
	return errors.Join(s.ring.Release(p.ShadowSlot), s.ring.Release(p.MainSlot))
}

func (s *scene) Close() {
	s.pool.Stop()
}

// shadowUniforms builds the shadow pass uniforms from the first sunlight. Without a
// sunlight every matrix is the identity.
func (s *scene) shadowUniforms(lights []light.Light) shadertypes.Uniforms {
	sun, ok := light.FirstSunlight(lights)
	if !ok {
		s.logger.Debug("no sunlight, shadow matrix is identity")
		return shadertypes.Uniforms{
			ProjectionMatrix: mgl32.Ident4(),
			ViewMatrix:       mgl32.Ident4(),
			ShadowMatrix:     mgl32.Ident4(),
		}
	}
	proj, view, shadow := common.ShadowMatrix(sun.Position(), sun.Target(), s.shadowHalfExtent, s.shadowNear, s.shadowFar)
	return shadertypes.Uniforms{
		ProjectionMatrix: proj,
		ViewMatrix:       view,
		ShadowMatrix:     shadow,
	}
}

// prepareInstances animates each model and computes its instance record on the worker pool.
// A WaitGroup is the per-frame barrier since pool.Wait() only returns once workers go idle.
func (s *scene) prepareInstances(models []model.Model, rotation float32) []Instance {
	instances := make([]Instance, len(models))
	var wg sync.WaitGroup
	for i, m := range models {
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if m.Animated() {
					m.SetRotationY(rotation * float32(i+1))
				}
				instances[i] = Instance{
					Model:    m,
					Uniforms: m.InstanceUniforms(),
					Color:    m.Color(),
					Offset:   uint64(i) * InstanceStride,
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return instances
}

func packColors(instances []Instance) []byte {
	enc := layout.NewEncoder(uint64(len(instances)) * InstanceStride)
	for _, inst := range instances {
		enc.PutFloats(inst.Offset, inst.Color[:])
	}
	return enc.Bytes()
}

func packInstanceUniforms(instances []Instance) []byte {
	out := make([]byte, uint64(len(instances))*InstanceStride)
	for _, inst := range instances {
		copy(out[inst.Offset:], inst.Uniforms.Marshal())
	}
	return out
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

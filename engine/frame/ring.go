// Package frame holds the per-frame upload state shared between the host and the GPU: a
// ring of uniform slots that limits how many frames may be in flight, and the buffer writes
// describing one frame's uploads.
package frame

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/layout"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"golang.org/x/sync/semaphore"
)

// MaxBuffersInFlight is the default number of frames the host may prepare before the GPU
// has finished with the oldest one.
const MaxBuffersInFlight = 6

// UniformOffsetAlignment is the dynamic uniform buffer offset alignment required by WebGPU
// (minUniformBufferOffsetAlignment) and by Metal on macOS.
const UniformOffsetAlignment = 256

// AlignedUniformsSize is the stride of one Uniforms slot in the ring.
var AlignedUniformsSize = layout.RoundUp(UniformOffsetAlignment, shadertypes.UniformsSize)

// ErrNotAcquired is returned when a slot is written or released without being acquired.
var ErrNotAcquired = errors.New("frame: slot not acquired")

// Slot is one acquired region of the ring.
type Slot struct {
	// Index is the slot number in [0, MaxBuffersInFlight).
	Index int

	// Offset is the byte offset of the slot within Bytes, used as the dynamic binding offset.
	Offset uint64

	// gen is the acquisition the handle came from; a handle from an earlier one is stale.
	gen uint64
}

// Ring is a fixed set of Uniforms slots inside one buffer. A slot is acquired before the
// frame's uniforms are written and released once the GPU has completed the frame, so the host
// never overwrites data the GPU may still be reading.
type Ring struct {
	mu       sync.Mutex
	sem      *semaphore.Weighted
	buf      []byte
	slots    int
	stride   uint64
	next     int
	inFlight []bool
	gens     []uint64
}

// RingOption configures a Ring during construction.
type RingOption func(*Ring)

// WithBuffersInFlight sets the number of slots.
//
// Parameters:
//   - n: the number of frames that may be in flight; must be positive
//
// Returns:
//   - RingOption: a function that applies the slot count to a Ring
func WithBuffersInFlight(n int) RingOption {
	return func(r *Ring) {
		r.slots = n
	}
}

// NewRing creates a Ring of MaxBuffersInFlight slots of AlignedUniformsSize bytes.
// It panics if the slot count is not positive.
//
// Parameters:
//   - options: ring options
//
// Returns:
//   - *Ring: the ring
func NewRing(options ...RingOption) *Ring {
	r := &Ring{
		slots:  MaxBuffersInFlight,
		stride: AlignedUniformsSize,
	}
	for _, option := range options {
		option(r)
	}
	if r.slots <= 0 {
		panic(fmt.Sprintf("frame: buffers in flight must be positive, got %d", r.slots))
	}
	r.sem = semaphore.NewWeighted(int64(r.slots))
	r.buf = make([]byte, uint64(r.slots)*r.stride)
	r.inFlight = make([]bool, r.slots)
	r.gens = make([]uint64, r.slots)
	return r
}

// Len returns the number of slots.
//
// Returns:
//   - int: the slot count
func (r *Ring) Len() int {
	return r.slots
}

// Stride returns the byte distance between consecutive slots.
//
// Returns:
//   - uint64: the slot stride
func (r *Ring) Stride() uint64 {
	return r.stride
}

// Acquire waits until a slot is free and claims the next one in rotation.
//
// Parameters:
//   - ctx: cancels the wait
//
// Returns:
//   - Slot: the claimed slot
//   - error: ctx.Err() if the context ends before a slot frees up
func (r *Ring) Acquire(ctx context.Context) (Slot, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return Slot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.inFlight[r.next] {
		r.next = (r.next + 1) % r.slots
	}
	idx := r.next
	r.inFlight[idx] = true
	r.gens[idx]++
	r.next = (r.next + 1) % r.slots
	return Slot{Index: idx, Offset: uint64(idx) * r.stride, gen: r.gens[idx]}, nil
}

// Write encodes u into the slot.
//
// Parameters:
//   - slot: an acquired slot
//   - u: the frame's uniforms
//
// Returns:
//   - error: ErrNotAcquired (wrapped) if the slot is not in flight or the handle is stale
func (r *Ring) Write(slot Slot, u shadertypes.Uniforms) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(slot); err != nil {
		return err
	}
	copy(r.buf[slot.Offset:slot.Offset+r.stride], u.Marshal())
	return nil
}

// Release returns the slot to the ring. Call it from the GPU completion callback.
//
// Parameters:
//   - slot: an acquired slot
//
// Returns:
//   - error: ErrNotAcquired (wrapped) if the slot is not in flight or the handle is stale
func (r *Ring) Release(slot Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(slot); err != nil {
		return err
	}
	r.inFlight[slot.Index] = false
	r.sem.Release(1)
	return nil
}

// Bytes returns the whole ring buffer for upload. The slice aliases the ring's storage.
//
// Returns:
//   - []byte: Len() * Stride() bytes
func (r *Ring) Bytes() []byte {
	return r.buf
}

// SlotBytes returns the Uniforms bytes of one slot.
//
// Parameters:
//   - slot: the slot
//
// Returns:
//   - []byte: UniformsSize bytes aliasing the ring's storage
func (r *Ring) SlotBytes(slot Slot) []byte {
	return r.buf[slot.Offset : slot.Offset+shadertypes.UniformsSize]
}

func (r *Ring) check(slot Slot) error {
	if slot.Index < 0 || slot.Index >= r.slots || !r.inFlight[slot.Index] || slot.gen != r.gens[slot.Index] {
		return fmt.Errorf("slot %d: %w", slot.Index, ErrNotAcquired)
	}
	return nil
}

package frame

import "github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"

// BufferWrite describes a single GPU buffer write operation targeting the buffer bound at a
// BufferIndex slot, at a given byte offset.
type BufferWrite struct {
	Slot   shadertypes.BufferIndex
	Offset uint64
	Data   []byte
}

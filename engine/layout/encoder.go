package layout

import (
	"encoding/binary"
	"math"
)

// Encoder writes little-endian scalars into a fixed buffer at explicit offsets.
// Bytes never written stay zero, which is how padding is emitted.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an Encoder over a zeroed buffer of the given size.
//
// Parameters:
//   - size: the buffer size in bytes
//
// Returns:
//   - *Encoder: the encoder
func NewEncoder(size uint64) *Encoder {
	return &Encoder{buf: make([]byte, size)}
}

// Bytes returns the encoded buffer.
//
// Returns:
//   - []byte: the underlying buffer
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// PutUint32 writes v at off.
func (e *Encoder) PutUint32(off uint64, v uint32) {
	binary.LittleEndian.PutUint32(e.buf[off:off+4], v)
}

// PutInt32 writes v at off.
func (e *Encoder) PutInt32(off uint64, v int32) {
	e.PutUint32(off, uint32(v))
}

// PutFloat32 writes v at off.
func (e *Encoder) PutFloat32(off uint64, v float32) {
	e.PutUint32(off, math.Float32bits(v))
}

// PutFloats writes each value of vs consecutively starting at off.
func (e *Encoder) PutFloats(off uint64, vs []float32) {
	for i, v := range vs {
		e.PutFloat32(off+uint64(i)*4, v)
	}
}

// Decoder reads little-endian scalars from a buffer at explicit offsets.
type Decoder struct {
	buf []byte
}

// NewDecoder creates a Decoder over buf. The buffer is not copied.
//
// Parameters:
//   - buf: the encoded bytes
//
// Returns:
//   - *Decoder: the decoder
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Len returns the length of the underlying buffer.
func (d *Decoder) Len() int {
	return len(d.buf)
}

// Uint32 reads a uint32 at off.
func (d *Decoder) Uint32(off uint64) uint32 {
	return binary.LittleEndian.Uint32(d.buf[off : off+4])
}

// Int32 reads an int32 at off.
func (d *Decoder) Int32(off uint64) int32 {
	return int32(d.Uint32(off))
}

// Float32 reads a float32 at off.
func (d *Decoder) Float32(off uint64) float32 {
	return math.Float32frombits(d.Uint32(off))
}

// Floats fills out with consecutive float32 values starting at off.
func (d *Decoder) Floats(off uint64, out []float32) {
	for i := range out {
		out[i] = d.Float32(off + uint64(i)*4)
	}
}

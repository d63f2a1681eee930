package frame

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gbuffer/common"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/shadertypes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedUniformsSize(t *testing.T) {
	assert.Equal(t, uint64(256), AlignedUniformsSize)
	assert.GreaterOrEqual(t, AlignedUniformsSize, uint64(shadertypes.UniformsSize))
	assert.Zero(t, AlignedUniformsSize%UniformOffsetAlignment)

	r := NewRing()
	assert.Equal(t, MaxBuffersInFlight, r.Len())
	assert.Len(t, r.Bytes(), MaxBuffersInFlight*256)
}

func TestRingRotatesSlots(t *testing.T) {
	r := NewRing()
	ctx := context.Background()

	for i := range MaxBuffersInFlight {
		slot, err := r.Acquire(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, slot.Index)
		assert.Equal(t, uint64(i)*256, slot.Offset)
		require.NoError(t, r.Release(slot))
	}

	slot, err := r.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.Index)
}

func TestRingBlocksWhenFull(t *testing.T) {
	r := NewRing(WithBuffersInFlight(2))
	ctx := context.Background()

	first, err := r.Acquire(ctx)
	require.NoError(t, err)
	_, err = r.Acquire(ctx)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = r.Acquire(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	done := make(chan Slot)
	go func() {
		slot, err := r.Acquire(ctx)
		assert.NoError(t, err)
		done <- slot
	}()
	require.NoError(t, r.Release(first))

	select {
	case slot := <-done:
		assert.Equal(t, first.Index, slot.Index)
	case <-time.After(time.Second):
		t.Fatal("acquire did not resume after release")
	}
}

func TestRingWrite(t *testing.T) {
	r := NewRing()
	u := shadertypes.Uniforms{
		ProjectionMatrix: mgl32.Ident4(),
		ViewMatrix:       mgl32.Translate3D(0, -1.5, 8),
		ShadowMatrix:     mgl32.Scale3D(2, 2, 2),
	}

	_, err := r.Acquire(context.Background())
	require.NoError(t, err)
	slot, err := r.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.Write(slot, u))

	assert.Equal(t, u.Marshal(), r.SlotBytes(slot))
	assert.Equal(t, common.StructToBytes(&u), r.SlotBytes(slot))

	got, err := shadertypes.UnmarshalUniforms(r.Bytes()[slot.Offset:])
	require.NoError(t, err)
	assert.Equal(t, u, got)

	// slot 0 is untouched
	assert.Equal(t, make([]byte, AlignedUniformsSize), r.Bytes()[:AlignedUniformsSize])
}

func TestRingRejectsUnacquiredSlots(t *testing.T) {
	r := NewRing()
	assert.ErrorIs(t, r.Write(Slot{Index: 1}, shadertypes.Uniforms{}), ErrNotAcquired)
	assert.ErrorIs(t, r.Release(Slot{Index: 9}), ErrNotAcquired)

	slot, err := r.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.Release(slot))
	assert.ErrorIs(t, r.Release(slot), ErrNotAcquired)
}

func TestNewRingPanicsOnInvalidCount(t *testing.T) {
	assert.Panics(t, func() { NewRing(WithBuffersInFlight(0)) })
}

func TestRingRejectsStaleHandle(t *testing.T) {
	r := NewRing(WithBuffersInFlight(1))
	ctx := context.Background()

	old, err := r.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Release(old))

	cur, err := r.Acquire(ctx)
	require.NoError(t, err)
	require.Equal(t, old.Index, cur.Index)

	assert.ErrorIs(t, r.Release(old), ErrNotAcquired)
	assert.ErrorIs(t, r.Write(old, shadertypes.Uniforms{ViewMatrix: mgl32.Ident4()}), ErrNotAcquired)
	assert.Equal(t, make([]byte, shadertypes.UniformsSize), r.SlotBytes(cur))

	// cur is still in flight, so the ring stays full
	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = r.Acquire(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, r.Write(cur, shadertypes.Uniforms{}))
	require.NoError(t, r.Release(cur))
}

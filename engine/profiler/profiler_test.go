package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsAfterInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	p := NewProfiler(slog.New(slog.NewTextHandler(&buf, nil)), WithInterval(time.Second), WithClock(clock.now))

	for range 29 {
		clock.t = clock.t.Add(10 * time.Millisecond)
		_, ok := p.Tick()
		require.False(t, ok)
	}
	assert.Empty(t, buf.String())

	clock.t = time.Unix(2, 0)
	stats, ok := p.Tick()
	require.True(t, ok)
	assert.Equal(t, 30, stats.Frames)
	assert.Equal(t, 2*time.Second, stats.Elapsed)
	assert.InDelta(t, 15, stats.FPS, 1e-9)
	assert.Greater(t, stats.SysMB, 0.0)
	assert.Contains(t, buf.String(), "frame stats")

	clock.t = clock.t.Add(time.Millisecond)
	_, ok = p.Tick()
	assert.False(t, ok)
}

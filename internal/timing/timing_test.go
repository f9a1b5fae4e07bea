package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter(time.Second)
	t0 := time.Unix(100, 0)

	_, ok := c.Frame(t0)
	assert.False(t, ok)
	for i := 1; i < 59; i++ {
		_, ok = c.Frame(t0.Add(time.Duration(i) * time.Second / 60))
		assert.False(t, ok)
	}
	fps, ok := c.Frame(t0.Add(time.Second))
	assert.True(t, ok)
	assert.InDelta(t, 60, fps, 0.001)

	_, ok = c.Frame(t0.Add(time.Second + time.Millisecond))
	assert.False(t, ok)
}

func TestFPSLimiterUnlimitedReturnsImmediately(t *testing.T) {
	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.wait(0)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.wait(100)
	}
	// five 10ms slots
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	record("ibl.skybox", 4200*time.Microsecond)
	record("ibl.spheres", 2*time.Millisecond)
	record("glfw.SwapBuffers", 500*time.Microsecond)

	assert.Equal(t, "ibl.skybox:4.2ms, ibl.spheres:2ms", TopN(2))
	assert.Equal(t, "ibl.skybox:4.2ms, ibl.spheres:2ms, glfw.SwapBuffers:0.5ms", TopN(10))
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("deferred.geometry", time.Millisecond)
	record("deferred.ssao", 2*time.Millisecond)
	record("glfw.PollEvents", 5*time.Millisecond)

	assert.Equal(t, 3*time.Millisecond, SumWithPrefix("deferred."))
	assert.Equal(t, time.Duration(0), SumWithPrefix("ibl."))
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	Track("pass")()
	Track("pass")()
	snap := Snapshot()
	assert.Contains(t, snap, "pass")

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}

package config

import "sync"

// RenderSettings holds render options that can change while a demo runs
type RenderSettings struct {
	mu           sync.RWMutex
	fpsLimit     int // 0 = unlimited
	wireframe    bool
	profilingLog bool
	ssaoEnabled  bool
	overlay      bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 0,
	overlay:  true,
}

// Apply seeds the runtime settings from a loaded configuration file
func Apply(c *Config) {
	SetFPSLimit(c.FPSLimit)
	SetSSAOEnabled(c.SSAO.Enabled)
}

// GetFPSLimit returns the frame cap, 0 meaning unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// IsWireframeMode reports whether geometry is drawn as lines
func IsWireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframeMode flips wireframe rendering and returns the new state
func ToggleWireframeMode() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// IsProfilingLog reports whether per-pass timings are logged every second
func IsProfilingLog() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.profilingLog
}

// ToggleProfilingLog flips per-pass timing logs and returns the new state
func ToggleProfilingLog() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.profilingLog = !globalRenderSettings.profilingLog
	return globalRenderSettings.profilingLog
}

// IsSSAOEnabled reports whether the deferred demo applies ambient occlusion
func IsSSAOEnabled() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.ssaoEnabled
}

// SetSSAOEnabled turns ambient occlusion on or off
func SetSSAOEnabled(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.ssaoEnabled = enabled
}

// ToggleSSAO flips ambient occlusion and returns the new state
func ToggleSSAO() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.ssaoEnabled = !globalRenderSettings.ssaoEnabled
	return globalRenderSettings.ssaoEnabled
}

// IsOverlayVisible reports whether the text overlay is drawn
func IsOverlayVisible() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.overlay
}

// ToggleOverlay flips the text overlay and returns the new state
func ToggleOverlay() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.overlay = !globalRenderSettings.overlay
	return globalRenderSettings.overlay
}

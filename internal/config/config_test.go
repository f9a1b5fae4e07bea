package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultStartsWithoutSSAO(t *testing.T) {
	assert.False(t, Default().SSAO.Enabled)
}

func TestDecodeEmptyYieldsDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestDecodeMergesOverDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader(`
demo: deferred
window:
  width: 800
ssao:
  radius: 0.5
  enabled: true
shadow:
  light_dir: [0, -1, 0]
`))
	require.NoError(t, err)
	assert.Equal(t, "deferred", c.Demo)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, float32(0.5), c.SSAO.Radius)
	assert.True(t, c.SSAO.Enabled)
	assert.Equal(t, 16, c.SSAO.KernelSize)
	assert.Equal(t, [3]float32{0, -1, 0}, c.Shadow.LightDir)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("windw:\n  width: 3\n"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *Config){
		"window":      func(c *Config) { c.Window.Width = 0 },
		"near/far":    func(c *Config) { c.Camera.Far = c.Camera.Near },
		"kernel":      func(c *Config) { c.SSAO.KernelSize = 65 },
		"lights":      func(c *Config) { c.SSAO.LightCount = 33 },
		"cube":        func(c *Config) { c.IBL.CubeSize = 1000 },
		"levels":      func(c *Config) { c.IBL.PrefilterLevels = 9 },
		"levels wrap": func(c *Config) { c.IBL.PrefilterLevels = 65 },
		"levels zero": func(c *Config) { c.IBL.PrefilterLevels = 0 },
		"light dir":   func(c *Config) { c.Shadow.LightDir = [3]float32{} },
		"log level":   func(c *Config) { c.LogLevel = "loud" },
		"fps":         func(c *Config) { c.FPSLimit = -1 },
		"max texture": func(c *Config) { c.Assets.MaxTextureSize = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestPrefilterLevelsBoundedBySize(t *testing.T) {
	c := Default()
	c.IBL.PrefilterSize = 128
	c.IBL.PrefilterLevels = 8
	assert.NoError(t, c.Validate())
	for _, levels := range []int{9, 33, 64, 65, 129} {
		c.IBL.PrefilterLevels = levels
		assert.ErrorIs(t, c.Validate(), ErrInvalid, "levels %d", levels)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("demo: pbr\nlog_level: debug\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pbr", c.Demo)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}

func TestRuntimeSettings(t *testing.T) {
	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())

	before := IsWireframeMode()
	assert.Equal(t, !before, ToggleWireframeMode())
	assert.Equal(t, before, ToggleWireframeMode())

	c := Default()
	c.FPSLimit = 60
	c.SSAO.Enabled = false
	Apply(c)
	assert.Equal(t, 60, GetFPSLimit())
	assert.False(t, IsSSAOEnabled())
	assert.True(t, ToggleSSAO())

	p := IsProfilingLog()
	assert.Equal(t, !p, ToggleProfilingLog())
	ToggleProfilingLog()

	o := IsOverlayVisible()
	assert.Equal(t, !o, ToggleOverlay())
	assert.Equal(t, o, ToggleOverlay())
}

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/bits"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the on-disk configuration, loaded from YAML over Default().
type Config struct {
	Demo     string `yaml:"demo"`
	LogLevel string `yaml:"log_level"`
	FPSLimit int    `yaml:"fps_limit"`

	Window WindowConfig `yaml:"window"`
	Assets AssetConfig  `yaml:"assets"`
	Camera CameraConfig `yaml:"camera"`
	Shadow ShadowConfig `yaml:"shadow"`
	SSAO   SSAOConfig   `yaml:"ssao"`
	IBL    IBLConfig    `yaml:"ibl"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	VSync   bool   `yaml:"vsync"`
	Samples int    `yaml:"samples"`
}

type AssetConfig struct {
	// ShaderDir overrides the embedded shaders when set.
	ShaderDir string `yaml:"shader_dir"`
	ImageDir  string `yaml:"image_dir"`
	ModelDir  string `yaml:"model_dir"`
	// MaxTextureSize downscales larger 8-bit images on load; 0 disables.
	MaxTextureSize int `yaml:"max_texture_size"`
}

type CameraConfig struct {
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	MoveSpeed   float32 `yaml:"move_speed"`
	RotateSpeed float32 `yaml:"rotate_speed"`
}

type ShadowConfig struct {
	Size     int        `yaml:"size"`
	LightDir [3]float32 `yaml:"light_dir"`
}

type SSAOConfig struct {
	Enabled    bool    `yaml:"enabled"`
	KernelSize int     `yaml:"kernel_size"`
	Radius     float32 `yaml:"radius"`
	Power      float32 `yaml:"power"`
	Seed       int64   `yaml:"seed"`
	LightCount int     `yaml:"light_count"`
	Model      string  `yaml:"model"`
}

type IBLConfig struct {
	Environment     string `yaml:"environment"`
	CubeSize        int    `yaml:"cube_size"`
	IrradianceSize  int    `yaml:"irradiance_size"`
	PrefilterSize   int    `yaml:"prefilter_size"`
	PrefilterLevels int    `yaml:"prefilter_levels"`
	BRDFSize        int    `yaml:"brdf_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Demo:     "ibl",
		LogLevel: "info",
		FPSLimit: 0,
		Window: WindowConfig{
			Width:   1280,
			Height:  720,
			Title:   "glex",
			VSync:   true,
			Samples: 4,
		},
		Assets: AssetConfig{
			ImageDir: "image",
			ModelDir: "model",
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.01,
			Far:         150,
			MoveSpeed:   3,
			RotateSpeed: 0.4,
		},
		Shadow: ShadowConfig{
			Size:     2048,
			LightDir: [3]float32{-2, -4, -1},
		},
		SSAO: SSAOConfig{
			Enabled:    false,
			KernelSize: 16,
			Radius:     1,
			Power:      1,
			Seed:       1,
			LightCount: 32,
			Model:      "backpack/backpack.obj",
		},
		IBL: IBLConfig{
			Environment:     "Alexs_Apt_2k.hdr",
			CubeSize:        1024,
			IrradianceSize:  64,
			PrefilterSize:   128,
			PrefilterLevels: 5,
			BRDFSize:        512,
		},
	}
}

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults. An empty document yields the
// defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges the renderer relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Samples >= 0 && c.Window.Samples <= 16, "window.samples %d", c.Window.Samples)
	check(c.FPSLimit >= 0, "fps_limit %d", c.FPSLimit)
	check(c.Assets.MaxTextureSize >= 0, "assets.max_texture_size %d", c.Assets.MaxTextureSize)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	check(c.Shadow.Size > 0, "shadow.size %d", c.Shadow.Size)
	check(c.Shadow.LightDir != [3]float32{}, "shadow.light_dir is zero")
	check(c.SSAO.KernelSize > 0 && c.SSAO.KernelSize <= 64, "ssao.kernel_size %d (max 64)", c.SSAO.KernelSize)
	check(c.SSAO.LightCount > 0 && c.SSAO.LightCount <= 32, "ssao.light_count %d (max 32)", c.SSAO.LightCount)
	check(c.SSAO.Radius > 0, "ssao.radius %v", c.SSAO.Radius)
	check(isPow2(c.IBL.CubeSize), "ibl.cube_size %d is not a power of two", c.IBL.CubeSize)
	check(isPow2(c.IBL.IrradianceSize), "ibl.irradiance_size %d is not a power of two", c.IBL.IrradianceSize)
	check(isPow2(c.IBL.PrefilterSize), "ibl.prefilter_size %d is not a power of two", c.IBL.PrefilterSize)
	// Level n is PrefilterSize>>n, which must stay at least one texel
	check(c.IBL.PrefilterLevels > 0 && c.IBL.PrefilterLevels <= bits.Len(uint(max(c.IBL.PrefilterSize, 0))),
		"ibl.prefilter_levels %d for size %d", c.IBL.PrefilterLevels, c.IBL.PrefilterSize)
	check(c.IBL.BRDFSize > 0, "ibl.brdf_size %d", c.IBL.BRDFSize)
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
	}
	return l, nil
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

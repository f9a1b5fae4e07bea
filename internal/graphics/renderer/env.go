package renderer

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"glex/internal/config"
	"glex/internal/graphics"
	"glex/internal/imaging"
	"glex/shader"
)

// Env gives renderables access to configuration and assets.
type Env struct {
	Config   *config.Config
	Shaders  fs.FS
	Textures *graphics.TextureCache
	Decoder  *imaging.DecodePool
}

// NewEnv reads shaders from the embedded set, or from assets.shader_dir when
// configured.
func NewEnv(cfg *config.Config) *Env {
	var shaders fs.FS = shader.FS
	if dir := cfg.Assets.ShaderDir; dir != "" {
		slog.Info("loading shaders from disk", "dir", dir)
		shaders = os.DirFS(dir)
	}
	return &Env{
		Config:   cfg,
		Shaders:  shaders,
		Textures: graphics.NewTextureCache(cfg.Assets.MaxTextureSize),
		Decoder:  imaging.NewDecodePool(runtime.NumCPU(), 16),
	}
}

// Program compiles and links a vertex/fragment pair by file name.
func (e *Env) Program(vertexPath, fragmentPath string) (*graphics.Program, error) {
	return graphics.LoadProgram(e.Shaders, vertexPath, fragmentPath)
}

func (e *Env) ImagePath(name string) string {
	return filepath.Join(e.Config.Assets.ImageDir, name)
}

func (e *Env) ModelPath(name string) string {
	return filepath.Join(e.Config.Assets.ModelDir, name)
}

// Texture loads an image from the image directory through the shared cache.
func (e *Env) Texture(name string, flipVertical bool) (*graphics.Texture, error) {
	return e.Textures.Get(e.ImagePath(name), flipVertical)
}

// Preload decodes the named images in parallel and caches them, so the
// Texture calls that follow are hits.
func (e *Env) Preload(flipVertical bool, names ...string) error {
	start := time.Now()
	reqs := make([]imaging.Request, len(names))
	for i, name := range names {
		reqs[i] = imaging.Request{Path: e.ImagePath(name), FlipVertical: flipVertical}
	}
	if err := e.Textures.Preload(context.Background(), e.Decoder, reqs); err != nil {
		return err
	}
	slog.Debug("textures preloaded", "count", len(names), "elapsed", time.Since(start))
	return nil
}

// Dispose stops the decoder and releases the cached textures.
func (e *Env) Dispose() {
	e.Decoder.Shutdown()
	e.Textures.Delete()
}

package graphics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"glex/internal/imaging"
)

type cacheKey struct {
	path string
	flip bool
}

// TextureCache shares textures loaded from disk by path.
type TextureCache struct {
	// MaxTextureSize downscales larger 8-bit images before upload. 0 disables.
	MaxTextureSize int

	mu       sync.RWMutex
	textures map[cacheKey]*Texture
}

func NewTextureCache(maxTextureSize int) *TextureCache {
	return &TextureCache{
		MaxTextureSize: maxTextureSize,
		textures:       make(map[cacheKey]*Texture),
	}
}

// Get returns the texture for path, loading it on first use. Files ending in
// .hdr are decoded as float images.
func (c *TextureCache) Get(path string, flipVertical bool) (*Texture, error) {
	key := cacheKey{path: path, flip: flipVertical}

	c.mu.RLock()
	if tex, ok := c.textures[key]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[key]; ok {
		return tex, nil
	}

	img, err := imaging.Load(path, flipVertical)
	if err != nil {
		return nil, fail("texture", fmt.Errorf("load %s: %w", path, err))
	}
	return c.upload(key, img)
}

// Preload decodes the uncached requests on pool and uploads the results. Only
// the decoding runs in parallel; call it from the GL thread.
func (c *TextureCache) Preload(ctx context.Context, pool *imaging.DecodePool, reqs []imaging.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var missing []imaging.Request
	seen := make(map[cacheKey]bool)
	for _, r := range reqs {
		key := cacheKey{path: r.Path, flip: r.FlipVertical}
		if _, ok := c.textures[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, r)
	}
	if len(missing) == 0 {
		return nil
	}

	images, err := pool.LoadAll(ctx, missing)
	if err != nil {
		return fail("texture", err)
	}
	for i, img := range images {
		if _, err := c.upload(cacheKey{path: missing[i].Path, flip: missing[i].FlipVertical}, img); err != nil {
			return err
		}
	}
	return nil
}

// upload fits img and stores it under key. c.mu must be held for writing.
func (c *TextureCache) upload(key cacheKey, img *imaging.Image) (*Texture, error) {
	img, err := c.fit(img)
	if err != nil {
		return nil, fail("texture", fmt.Errorf("resize %s: %w", key.path, err))
	}
	tex, err := NewTextureFromImage(img)
	if err != nil {
		return nil, err
	}
	slog.Debug("texture loaded", "path", key.path, "width", img.Width, "height", img.Height, "channels", img.Channels)

	c.textures[key] = tex
	return tex, nil
}

func (c *TextureCache) fit(img *imaging.Image) (*imaging.Image, error) {
	limit := c.MaxTextureSize
	if limit <= 0 || img.IsFloat() || (img.Width <= limit && img.Height <= limit) {
		return img, nil
	}
	w, h := img.Width, img.Height
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}
	return img.Resized(w, h)
}

func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Delete releases every cached texture.
func (c *TextureCache) Delete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, tex := range c.textures {
		tex.Delete()
		delete(c.textures, k)
	}
}

package imaging

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, w, h int, c color.NRGBA) string {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("%dx%d.png", w, h))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, src))
	return path
}

func TestDecodePoolKeepsRequestOrder(t *testing.T) {
	dir := t.TempDir()
	var reqs []Request
	for i := 1; i <= 6; i++ {
		reqs = append(reqs, Request{Path: writePNG(t, dir, i, 1, color.NRGBA{uint8(i), 0, 0, 128})})
	}

	pool := NewDecodePool(3, 2)
	defer pool.Shutdown()
	assert.Equal(t, 3, pool.Workers())

	images, err := pool.LoadAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, images, len(reqs))
	for i, img := range images {
		assert.Equal(t, i+1, img.Width, "image %d", i)
		assert.Equal(t, uint8(i+1), img.Pix[0])
	}
}

func TestDecodePoolJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, 2, 2, color.NRGBA{255, 255, 255, 255})
	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("nope"), 0o644))

	pool := NewDecodePool(2, 4)
	defer pool.Shutdown()

	images, err := pool.LoadAll(context.Background(), []Request{
		{Path: good},
		{Path: junk},
		{Path: filepath.Join(dir, "missing.png")},
	})
	assert.Nil(t, images)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "missing.png")
}

func TestDecodePoolEmptyBatch(t *testing.T) {
	pool := NewDecodePool(0, 0)
	defer pool.Shutdown()
	assert.Equal(t, 1, pool.Workers())

	images, err := pool.LoadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestDecodePoolAfterShutdown(t *testing.T) {
	pool := NewDecodePool(1, 0)
	pool.Shutdown()

	_, err := pool.LoadAll(context.Background(), []Request{{Path: "x.png"}})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestDecodePoolCancelled(t *testing.T) {
	pool := NewDecodePool(1, 0)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pool.LoadAll(ctx, []Request{{Path: "x.png"}})
	assert.ErrorIs(t, err, context.Canceled)
}

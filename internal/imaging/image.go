// Package imaging holds CPU-side pixel data ready for texture upload.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidSize       = errors.New("imaging: invalid image size")
	ErrUnsupportedFormat = errors.New("imaging: unsupported format")
)

// Image is a tightly packed, row-major pixel buffer. Row 0 is the first row
// handed to the GPU, which GL treats as the bottom of the texture.
//
// 8-bit images store their samples in Pix; HDR images (BytesPerChannel 4)
// store them in Float.
type Image struct {
	Width           int
	Height          int
	Channels        int
	BytesPerChannel int
	Pix             []uint8
	Float           []float32
}

// New allocates a zeroed 8-bit image.
func New(width, height, channels int) (*Image, error) {
	if err := checkSize(width, height, channels); err != nil {
		return nil, err
	}
	return &Image{
		Width:           width,
		Height:          height,
		Channels:        channels,
		BytesPerChannel: 1,
		Pix:             make([]uint8, width*height*channels),
	}, nil
}

// NewFloat allocates a zeroed 32-bit float image.
func NewFloat(width, height, channels int) (*Image, error) {
	if err := checkSize(width, height, channels); err != nil {
		return nil, err
	}
	return &Image{
		Width:           width,
		Height:          height,
		Channels:        channels,
		BytesPerChannel: 4,
		Float:           make([]float32, width*height*channels),
	}, nil
}

func checkSize(width, height, channels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if channels < 1 || channels > 4 {
		return fmt.Errorf("%w: %d channels", ErrInvalidSize, channels)
	}
	return nil
}

// IsFloat reports whether samples are 32-bit floats.
func (img *Image) IsFloat() bool {
	return img.BytesPerChannel == 4
}

// Load decodes the image at path. Radiance .hdr files become float images,
// everything else 8-bit. With flipVertical the last file row becomes row 0,
// matching GL's bottom-up texture origin.
func Load(path string, flipVertical bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, strings.EqualFold(filepath.Ext(path), ".hdr"), flipVertical)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an encoded image from r. hdr selects the Radiance decoder
// instead of the registered image codecs.
func Decode(r io.Reader, hdr, flipVertical bool) (*Image, error) {
	var img *Image
	if hdr {
		var err error
		if img, err = DecodeHDR(r); err != nil {
			return nil, err
		}
	} else {
		src, _, err := image.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		img = FromImage(src)
	}
	if flipVertical {
		img.FlipVertical()
	}
	return img, nil
}

// FromImage converts a decoded image, keeping 1 channel for grayscale,
// 3 for opaque photographic formats and 4 otherwise.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		out := &Image{Width: w, Height: h, Channels: 1, BytesPerChannel: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], s.Pix[off:off+w])
		}
		return out
	case *image.YCbCr, *image.CMYK:
		return packNRGBA(toNRGBA(src), 3)
	}
	return packNRGBA(toNRGBA(src), 4)
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func packNRGBA(src *image.NRGBA, channels int) *Image {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := &Image{Width: w, Height: h, Channels: channels, BytesPerChannel: 1, Pix: make([]uint8, w*h*channels)}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			copy(out.Pix[(y*w+x)*channels:(y*w+x+1)*channels], row[x*4:x*4+channels])
		}
	}
	return out
}

// NRGBA returns an 8-bit image as a standard library image. Missing channels
// are filled as gray and opaque alpha.
func (img *Image) NRGBA() (*image.NRGBA, error) {
	if img.IsFloat() {
		return nil, fmt.Errorf("%w: float image", ErrUnsupportedFormat)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	c := img.Channels
	for i := 0; i < img.Width*img.Height; i++ {
		px := img.Pix[i*c : i*c+c]
		o := dst.Pix[i*4 : i*4+4]
		switch c {
		case 1:
			o[0], o[1], o[2], o[3] = px[0], px[0], px[0], 255
		case 2:
			o[0], o[1], o[2], o[3] = px[0], px[1], 0, 255
		case 3:
			o[0], o[1], o[2], o[3] = px[0], px[1], px[2], 255
		default:
			copy(o, px)
		}
	}
	return dst, nil
}

// Resized returns a copy scaled to width x height with Catmull-Rom filtering.
func (img *Image) Resized(width, height int) (*Image, error) {
	if err := checkSize(width, height, img.Channels); err != nil {
		return nil, err
	}
	src, err := img.NRGBA()
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	if img.Channels == 1 {
		out := &Image{Width: width, Height: height, Channels: 1, BytesPerChannel: 1, Pix: make([]uint8, width*height)}
		for i := range out.Pix {
			out.Pix[i] = dst.Pix[i*4]
		}
		return out, nil
	}
	return packNRGBA(dst, img.Channels), nil
}

// FlipVertical reverses the row order in place.
func (img *Image) FlipVertical() {
	stride := img.Width * img.Channels
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		if img.IsFloat() {
			a := img.Float[top*stride : (top+1)*stride]
			b := img.Float[bottom*stride : (bottom+1)*stride]
			for i := range a {
				a[i], b[i] = b[i], a[i]
			}
			continue
		}
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// FillChecker paints a black and white checkerboard with cells of
// cellX x cellY pixels. Alpha is kept opaque on 4 channel images.
func (img *Image) FillChecker(cellX, cellY int) {
	if cellX <= 0 {
		cellX = 1
	}
	if cellY <= 0 {
		cellY = 1
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var v float32
			if (y/cellY+x/cellX)%2 == 0 {
				v = 1
			}
			for c := 0; c < img.Channels; c++ {
				if c == 3 {
					img.set(x, y, c, 1)
					continue
				}
				img.set(x, y, c, v)
			}
		}
	}
}

// FillColor paints every pixel with color, whose components are in [0,1].
// 8-bit images clamp each component to [0,255].
func (img *Image) FillColor(color mgl32.Vec4) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			for c := 0; c < img.Channels; c++ {
				img.set(x, y, c, color[c])
			}
		}
	}
}

func (img *Image) set(x, y, c int, v float32) {
	i := (y*img.Width+x)*img.Channels + c
	if img.IsFloat() {
		img.Float[i] = v
		return
	}
	img.Pix[i] = uint8(mgl32.Clamp(v*255, 0, 255) + 0.5)
}

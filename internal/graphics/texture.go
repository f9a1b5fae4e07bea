package graphics

import (
	"fmt"
	"unsafe"

	"glex/internal/imaging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Texture owns a 2D texture and remembers its storage description.
type Texture struct {
	id             uint32
	width          int32
	height         int32
	internalFormat int32
	format         uint32
	pixelType      uint32
}

// ChannelsToFormat picks the internal and pixel formats for an image with the
// given channel count. Float images use half-float storage.
func ChannelsToFormat(channels int, isFloat bool) (internalFormat int32, format uint32) {
	switch channels {
	case 1:
		if isFloat {
			return gl.R16F, gl.RED
		}
		return gl.RED, gl.RED
	case 2:
		if isFloat {
			return gl.RG16F, gl.RG
		}
		return gl.RG, gl.RG
	case 3:
		if isFloat {
			return gl.RGB16F, gl.RGB
		}
		return gl.RGB, gl.RGB
	default:
		if isFloat {
			return gl.RGBA16F, gl.RGBA
		}
		return gl.RGBA, gl.RGBA
	}
}

// PixelFormatFor returns the client pixel format matching an internal format.
func PixelFormatFor(internalFormat int32) uint32 {
	switch internalFormat {
	case gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT32F:
		return gl.DEPTH_COMPONENT
	case gl.RGB, gl.RGB8, gl.RGB16F, gl.RGB32F:
		return gl.RGB
	case gl.RG, gl.RG8, gl.RG16F, gl.RG32F:
		return gl.RG
	case gl.RED, gl.R8, gl.R16F, gl.R32F:
		return gl.RED
	default:
		return gl.RGBA
	}
}

// NewTextureFromImage uploads img with trilinear filtering, edge clamping and
// a full mip chain.
func NewTextureFromImage(img *imaging.Image) (*Texture, error) {
	internal, format := ChannelsToFormat(img.Channels, img.IsFloat())
	pixelType := uint32(gl.UNSIGNED_BYTE)
	var pixels unsafe.Pointer
	if img.IsFloat() {
		pixelType = gl.FLOAT
		pixels = unsafe.Pointer(&img.Float[0])
	} else {
		pixels = unsafe.Pointer(&img.Pix[0])
	}

	t, err := newTexture(img.Width, img.Height, internal, format, pixelType, pixels)
	if err != nil {
		return nil, fail("texture", err)
	}
	gl.GenerateMipmap(gl.TEXTURE_2D)
	t.SetFilter(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	return t, nil
}

// NewTexture allocates empty storage, typically a render target, with linear
// filtering and edge clamping.
func NewTexture(width, height int, internalFormat int32, pixelType uint32) (*Texture, error) {
	t, err := newTexture(width, height, internalFormat, PixelFormatFor(internalFormat), pixelType, nil)
	if err != nil {
		return nil, fail("texture", err)
	}
	return t, nil
}

// NewTextureFromFloats uploads tightly packed float data, such as a noise
// tile, with nearest filtering and repeat wrapping.
func NewTextureFromFloats(width, height int, internalFormat int32, data []float32) (*Texture, error) {
	format := PixelFormatFor(internalFormat)
	if len(data) == 0 {
		return nil, fail("texture", fmt.Errorf("%w: no data", ErrInvalidSize))
	}
	t, err := newTexture(width, height, internalFormat, format, gl.FLOAT, unsafe.Pointer(&data[0]))
	if err != nil {
		return nil, fail("texture", err)
	}
	t.SetFilter(gl.NEAREST, gl.NEAREST)
	t.SetWrap(gl.REPEAT, gl.REPEAT)
	return t, nil
}

// NewSolidTexture returns a width x height RGBA texture of one color.
func NewSolidTexture(width, height int, color mgl32.Vec4) (*Texture, error) {
	img, err := imaging.New(width, height, 4)
	if err != nil {
		return nil, fail("texture", err)
	}
	img.FillColor(color)
	return NewTextureFromImage(img)
}

func newTexture(width, height int, internal int32, format, pixelType uint32, pixels unsafe.Pointer) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	t := &Texture{
		width:          int32(width),
		height:         int32(height),
		internalFormat: internal,
		format:         format,
		pixelType:      pixelType,
	}
	gl.GenTextures(1, &t.id)
	if t.id == 0 {
		return nil, ErrAllocation
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, t.width, t.height, 0, format, pixelType, pixels)
	if err := checkGL("tex image"); err != nil {
		t.Delete()
		return nil, err
	}
	t.SetFilter(gl.LINEAR, gl.LINEAR)
	t.SetWrap(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	return t, nil
}

func (t *Texture) ID() uint32     { return t.id }
func (t *Texture) Width() int     { return int(t.width) }
func (t *Texture) Height() int    { return int(t.height) }
func (t *Texture) Format() uint32 { return t.format }

func (t *Texture) SetFilter(minFilter, magFilter int32) {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
}

func (t *Texture) SetWrap(s, r int32) {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, s)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, r)
}

// SetBorderColor sets the color sampled outside [0,1] with CLAMP_TO_BORDER.
func (t *Texture) SetBorderColor(c mgl32.Vec4) {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &c[0])
}

func (t *Texture) GenerateMipmap() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (t *Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// BindToUnit binds the texture to texture unit 0..31.
func (t *Texture) BindToUnit(unit int) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	return nil
}

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

package graphics

import (
	"fmt"
	"unsafe"

	"glex/internal/imaging"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CubeTexture owns a cube map. Faces are indexed 0..5 as +X, -X, +Y, -Y, +Z, -Z.
type CubeTexture struct {
	id             uint32
	width          int32
	height         int32
	internalFormat int32
	pixelType      uint32
}

// NewCubeTextureFromImages uploads six equally sized faces.
func NewCubeTextureFromImages(faces [6]*imaging.Image) (*CubeTexture, error) {
	first := faces[0]
	for i, f := range faces {
		if f == nil || f.Width != first.Width || f.Height != first.Height || f.Channels != first.Channels {
			return nil, fail("cube texture", fmt.Errorf("%w: face %d does not match face 0", ErrInvalidSize, i))
		}
	}
	internal, format := ChannelsToFormat(first.Channels, first.IsFloat())
	pixelType := uint32(gl.UNSIGNED_BYTE)
	if first.IsFloat() {
		pixelType = gl.FLOAT
	}

	c, err := newCubeTexture(first.Width, first.Height, internal, pixelType)
	if err != nil {
		return nil, fail("cube texture", err)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, f := range faces {
		var pixels unsafe.Pointer
		if f.IsFloat() {
			pixels = unsafe.Pointer(&f.Float[0])
		} else {
			pixels = unsafe.Pointer(&f.Pix[0])
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, internal, c.width, c.height, 0, format, pixelType, pixels)
	}
	if err := checkGL("cube face upload"); err != nil {
		c.Delete()
		return nil, fail("cube texture", err)
	}
	return c, nil
}

// NewCubeTexture allocates six empty faces, typically as a render target.
func NewCubeTexture(width, height int, internalFormat int32, pixelType uint32) (*CubeTexture, error) {
	c, err := newCubeTexture(width, height, internalFormat, pixelType)
	if err != nil {
		return nil, fail("cube texture", err)
	}
	format := PixelFormatFor(internalFormat)
	for i := uint32(0); i < 6; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, 0, internalFormat, c.width, c.height, 0, format, pixelType, nil)
	}
	if err := checkGL("cube storage"); err != nil {
		c.Delete()
		return nil, fail("cube texture", err)
	}
	return c, nil
}

func newCubeTexture(width, height int, internal int32, pixelType uint32) (*CubeTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &CubeTexture{width: int32(width), height: int32(height), internalFormat: internal, pixelType: pixelType}
	gl.GenTextures(1, &c.id)
	if c.id == 0 {
		return nil, ErrAllocation
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return c, nil
}

func (c *CubeTexture) ID() uint32  { return c.id }
func (c *CubeTexture) Width() int  { return int(c.width) }
func (c *CubeTexture) Height() int { return int(c.height) }

// GenerateMipmap builds the mip chain and switches to trilinear minification.
func (c *CubeTexture) GenerateMipmap() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
}

func (c *CubeTexture) Bind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
}

// BindToUnit binds the cube map to texture unit 0..31.
func (c *CubeTexture) BindToUnit(unit int) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
	return nil
}

func (c *CubeTexture) Delete() {
	if c.id != 0 {
		gl.DeleteTextures(1, &c.id)
		c.id = 0
	}
}

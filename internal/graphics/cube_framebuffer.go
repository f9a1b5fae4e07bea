package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CubeFrameBuffer renders into one mip level of a CubeTexture, one face at a
// time. The cube map is not owned.
type CubeFrameBuffer struct {
	id     uint32
	depth  uint32
	cube   *CubeTexture
	mip    int32
	width  int32
	height int32
}

func NewCubeFrameBuffer(cube *CubeTexture, mip int) (*CubeFrameBuffer, error) {
	if mip < 0 {
		return nil, fail("cube framebuffer", fmt.Errorf("%w: mip %d", ErrInvalidSize, mip))
	}
	f := &CubeFrameBuffer{
		cube:   cube,
		mip:    int32(mip),
		width:  max(1, cube.width>>mip),
		height: max(1, cube.height>>mip),
	}
	gl.GenFramebuffers(1, &f.id)
	if f.id == 0 {
		return nil, fail("cube framebuffer", ErrAllocation)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)

	gl.GenRenderbuffers(1, &f.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, f.width, f.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depth)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X, cube.id, f.mip)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, fail("cube framebuffer", fmt.Errorf("%w: status=0x%X", ErrFramebufferIncomplete, status))
	}
	return f, nil
}

// Bind targets face 0..5 and sets the viewport to the mip size.
func (f *CubeFrameBuffer) Bind(face int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), f.cube.id, f.mip)
	gl.Viewport(0, 0, f.width, f.height)
}

func (f *CubeFrameBuffer) Width() int  { return int(f.width) }
func (f *CubeFrameBuffer) Height() int { return int(f.height) }

func (f *CubeFrameBuffer) Delete() {
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
	if f.id != 0 {
		gl.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
}

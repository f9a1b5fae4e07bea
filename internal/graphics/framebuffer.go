package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// FrameBuffer renders into a set of color textures plus a depth-stencil
// renderbuffer. The color textures are not owned; Delete leaves them alive
// and DeleteAll releases them as well.
type FrameBuffer struct {
	id          uint32
	depth       uint32
	width       int32
	height      int32
	attachments []*Texture
}

// NewFrameBuffer attaches the textures to COLOR_ATTACHMENT0.. in order and
// enables drawing to all of them. The first texture defines the size.
func NewFrameBuffer(attachments ...*Texture) (*FrameBuffer, error) {
	if len(attachments) == 0 {
		return nil, fail("framebuffer", fmt.Errorf("%w: no color attachments", ErrInvalidSize))
	}
	f := &FrameBuffer{
		width:       attachments[0].width,
		height:      attachments[0].height,
		attachments: attachments,
	}
	gl.GenFramebuffers(1, &f.id)
	if f.id == 0 {
		return nil, fail("framebuffer", ErrAllocation)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)

	drawBuffers := make([]uint32, len(attachments))
	for i, t := range attachments {
		drawBuffers[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, drawBuffers[i], gl.TEXTURE_2D, t.id, 0)
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	gl.GenRenderbuffers(1, &f.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, f.width, f.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, fail("framebuffer", fmt.Errorf("%w: status=0x%X", ErrFramebufferIncomplete, status))
	}
	return f, nil
}

// Bind makes f the draw target and sets the viewport to its size.
func (f *FrameBuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.Viewport(0, 0, f.width, f.height)
}

// BindToDefault returns to the window framebuffer with the given viewport.
func BindToDefault(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (f *FrameBuffer) ColorAttachment(i int) *Texture {
	if i < 0 || i >= len(f.attachments) {
		return nil
	}
	return f.attachments[i]
}

func (f *FrameBuffer) Width() int  { return int(f.width) }
func (f *FrameBuffer) Height() int { return int(f.height) }

// BlitDepthToDefault copies the depth buffer into the window framebuffer so
// forward passes can depth-test against deferred geometry.
func (f *FrameBuffer) BlitDepthToDefault(width, height int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.id)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, f.width, f.height, 0, 0, int32(width), int32(height), gl.DEPTH_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Delete releases the framebuffer and its depth renderbuffer.
func (f *FrameBuffer) Delete() {
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
	if f.id != 0 {
		gl.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
}

// DeleteAll releases the framebuffer together with its color attachments.
func (f *FrameBuffer) DeleteAll() {
	f.Delete()
	for _, t := range f.attachments {
		t.Delete()
	}
	f.attachments = nil
}

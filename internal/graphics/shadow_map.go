package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMap is a depth-only framebuffer. Unlike FrameBuffer it owns its
// depth texture.
type ShadowMap struct {
	id    uint32
	depth *Texture
}

func NewShadowMap(width, height int) (*ShadowMap, error) {
	depth, err := NewTexture(width, height, gl.DEPTH_COMPONENT, gl.FLOAT)
	if err != nil {
		return nil, err
	}
	depth.SetWrap(gl.CLAMP_TO_BORDER, gl.CLAMP_TO_BORDER)
	depth.SetBorderColor(mgl32.Vec4{1, 1, 1, 1})

	s := &ShadowMap{depth: depth}
	gl.GenFramebuffers(1, &s.id)
	if s.id == 0 {
		depth.Delete()
		return nil, fail("shadow map", ErrAllocation)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, depth.id, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		s.Delete()
		return nil, fail("shadow map", fmt.Errorf("%w: status=0x%X", ErrFramebufferIncomplete, status))
	}
	return s, nil
}

// Bind targets the depth texture, sets the viewport and clears depth.
func (s *ShadowMap) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.id)
	gl.Viewport(0, 0, s.depth.width, s.depth.height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (s *ShadowMap) DepthTexture() *Texture { return s.depth }

func (s *ShadowMap) Delete() {
	if s.id != 0 {
		gl.DeleteFramebuffers(1, &s.id)
		s.id = 0
	}
	if s.depth != nil {
		s.depth.Delete()
		s.depth = nil
	}
}

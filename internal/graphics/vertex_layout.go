package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexLayout owns a vertex array object describing how bound buffers feed
// shader attributes.
type VertexLayout struct {
	id uint32
}

func NewVertexLayout() (*VertexLayout, error) {
	l := &VertexLayout{}
	gl.GenVertexArrays(1, &l.id)
	if l.id == 0 {
		return nil, fail("vertex layout", ErrAllocation)
	}
	return l, nil
}

func (l *VertexLayout) Bind() {
	gl.BindVertexArray(l.id)
}

// SetAttrib enables attribute index, sourcing it from the buffer currently
// bound to ARRAY_BUFFER.
func (l *VertexLayout) SetAttrib(index uint32, count int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.BindVertexArray(l.id)
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, count, xtype, normalized, stride, offset)
}

func (l *VertexLayout) DisableAttrib(index uint32) {
	gl.BindVertexArray(l.id)
	gl.DisableVertexAttribArray(index)
}

func (l *VertexLayout) Delete() {
	if l.id != 0 {
		gl.DeleteVertexArrays(1, &l.id)
		l.id = 0
	}
}

// UnbindVertexLayout clears the current vertex array binding.
func UnbindVertexLayout() {
	gl.BindVertexArray(0)
}

package graphics

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer owns one GL buffer object.
type Buffer struct {
	id     uint32
	target uint32
	usage  uint32
	stride int
	count  int
}

// NewBuffer uploads data to a new buffer bound at target (ARRAY_BUFFER,
// ELEMENT_ARRAY_BUFFER, ...). The element size of T becomes the stride.
func NewBuffer[T any](target, usage uint32, data []T) (*Buffer, error) {
	var zero T
	b := &Buffer{target: target, usage: usage, stride: int(unsafe.Sizeof(zero))}
	gl.GenBuffers(1, &b.id)
	if b.id == 0 {
		return nil, fail("buffer", ErrAllocation)
	}
	if err := UploadBuffer(b, data); err != nil {
		b.Delete()
		return nil, fail("buffer", err)
	}
	return b, nil
}

// UploadBuffer replaces the whole content of b with data, reallocating storage.
func UploadBuffer[T any](b *Buffer, data []T) error {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BindBuffer(b.target, b.id)
	gl.BufferData(b.target, len(data)*b.stride, ptr, b.usage)
	b.count = len(data)
	if err := checkGL("buffer data"); err != nil {
		return fmt.Errorf("upload %d elements: %w", len(data), err)
	}
	return nil
}

func (b *Buffer) Bind() {
	gl.BindBuffer(b.target, b.id)
}

func (b *Buffer) ID() uint32  { return b.id }
func (b *Buffer) Count() int  { return b.count }
func (b *Buffer) Stride() int { return b.stride }

// Delete releases the GL buffer. Calling it again is a no-op.
func (b *Buffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

package renderer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestPolygonModeFillsScreenPassesInWireframe(t *testing.T) {
	wire := RenderContext{Wireframe: true}
	assert.Equal(t, uint32(gl.LINE), wire.PolygonMode(ScenePass))
	assert.Equal(t, uint32(gl.FILL), wire.PolygonMode(FillPass))

	solid := RenderContext{}
	assert.Equal(t, uint32(gl.FILL), solid.PolygonMode(ScenePass))
	assert.Equal(t, uint32(gl.FILL), solid.PolygonMode(FillPass))
}

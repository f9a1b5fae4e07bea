package graphics

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader is one compiled shader stage
type Shader struct {
	id   uint32
	name string
}

// NewShaderFromFile compiles the GLSL file name from fsys. The stage follows
// the extension: .vs vertex, .fs fragment, .gs geometry.
func NewShaderFromFile(fsys fs.FS, name string) (*Shader, error) {
	stage, err := shaderStage(name)
	if err != nil {
		return nil, fail("shader", err)
	}
	source, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fail("shader", fmt.Errorf("could not read shader file: %w", err))
	}
	s, err := NewShader(name, string(source), stage)
	if err != nil {
		return nil, fail("shader", err)
	}
	return s, nil
}

// NewShader compiles source as the given stage. name only labels errors.
func NewShader(name, source string, stage uint32) (*Shader, error) {
	id, err := compileShader(source, stage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Shader{id: id, name: name}, nil
}

func (s *Shader) Name() string { return s.name }

func (s *Shader) Delete() {
	if s.id != 0 {
		gl.DeleteShader(s.id)
		s.id = 0
	}
}

func shaderStage(name string) (uint32, error) {
	switch ext := path.Ext(name); ext {
	case ".vs", ".vert":
		return gl.VERTEX_SHADER, nil
	case ".fs", ".frag":
		return gl.FRAGMENT_SHADER, nil
	case ".gs", ".geom":
		return gl.GEOMETRY_SHADER, nil
	default:
		return 0, fmt.Errorf("unknown shader stage for %q", name)
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

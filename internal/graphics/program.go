package graphics

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with a uniform location cache
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
}

// TextureUnit is anything that can be bound to a sampler slot.
type TextureUnit interface {
	BindToUnit(unit int) error
}

// NewProgram links the given stages. The shaders may be deleted afterwards.
func NewProgram(name string, shaders ...*Shader) (*Program, error) {
	id := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(id, s.id)
	}
	gl.LinkProgram(id)
	for _, s := range shaders {
		gl.DetachShader(id, s.id)
	}

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)

		return nil, fail("program", fmt.Errorf("%s: failed to link program: %v", name, strings.TrimRight(log, "\x00")))
	}
	return &Program{ID: id, name: name, uniforms: make(map[string]int32)}, nil
}

// LoadProgram compiles and links a vertex/fragment pair read from fsys.
func LoadProgram(fsys fs.FS, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := NewShaderFromFile(fsys, vertexPath)
	if err != nil {
		return nil, err
	}
	defer vs.Delete()

	fsh, err := NewShaderFromFile(fsys, fragmentPath)
	if err != nil {
		return nil, err
	}
	defer fsh.Delete()

	return NewProgram(vertexPath+"+"+fragmentPath, vs, fsh)
}

// Use activates the shader program
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Debug("uniform not active", "program", p.name, "uniform", name)
	}
	p.uniforms[name] = loc
	return loc
}

// SetBool sets a boolean uniform
func (p *Program) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	gl.Uniform1i(p.location(name), intValue)
}

// SetInt sets an integer uniform
func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.location(name), value)
}

// SetFloat sets a float uniform
func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.location(name), value)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.location(name), v[0], v[1])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

// SetMat4 sets a 4x4 matrix uniform
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// SetTexture binds tex to texture unit slot and points the sampler name at it.
func (p *Program) SetTexture(name string, slot int, tex TextureUnit) error {
	if err := tex.BindToUnit(slot); err != nil {
		slog.Error("cannot bind texture", "program", p.name, "sampler", name, "error", err)
		return err
	}
	p.SetInt(name, int32(slot))
	return nil
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

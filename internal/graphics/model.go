package graphics

import (
	"bytes"
	"fmt"
	"log/slog"

	"glex/internal/asset"
	"glex/internal/imaging"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is an imported scene uploaded to the GPU. Textures loaded by path
// belong to the TextureCache; inline and fallback textures belong to the model.
type Model struct {
	Meshes    []*Mesh
	Materials []*Material

	owned     []*Texture
	triangles int
}

// LoadModel imports path with asset.Load and uploads every mesh. Missing
// diffuse maps fall back to a 1x1 texture of the material's diffuse color,
// missing specular maps to mid gray.
func LoadModel(path string, opts asset.Options, cache *TextureCache) (*Model, error) {
	scene, err := asset.Load(path, opts)
	if err != nil {
		return nil, fail("model", err)
	}

	m := &Model{triangles: scene.TriangleCount()}
	for _, src := range scene.Materials {
		mat, err := m.material(src, cache)
		if err != nil {
			m.Delete()
			return nil, fail("model", fmt.Errorf("%s: material %q: %w", path, src.Name, err))
		}
		m.Materials = append(m.Materials, mat)
	}

	var fallback *Material
	for _, src := range scene.Meshes {
		mesh, err := NewMesh(src.Data)
		if err != nil {
			m.Delete()
			return nil, err
		}
		if src.Material >= 0 && src.Material < len(m.Materials) {
			mesh.Material = m.Materials[src.Material]
		} else {
			if fallback == nil {
				if fallback, err = m.material(asset.Material{DiffuseColor: mgl32.Vec3{0.8, 0.8, 0.8}, Shininess: asset.DefaultShininess}, cache); err != nil {
					mesh.Delete()
					m.Delete()
					return nil, err
				}
			}
			mesh.Material = fallback
		}
		m.Meshes = append(m.Meshes, mesh)
	}

	slog.Info("model loaded", "path", path, "meshes", len(m.Meshes), "materials", len(m.Materials), "triangles", m.triangles)
	return m, nil
}

func (m *Model) material(src asset.Material, cache *TextureCache) (*Material, error) {
	mat := &Material{Shininess: src.Shininess}
	if mat.Shininess <= 0 {
		mat.Shininess = asset.DefaultShininess
	}

	var err error
	if mat.Diffuse, err = m.texture(src.Diffuse, cache); err != nil {
		return nil, err
	}
	if mat.Diffuse == nil {
		c := src.DiffuseColor
		if mat.Diffuse, err = m.solid(mgl32.Vec4{c[0], c[1], c[2], 1}); err != nil {
			return nil, err
		}
	}
	if mat.Specular, err = m.texture(src.Specular, cache); err != nil {
		return nil, err
	}
	if mat.Specular == nil {
		if mat.Specular, err = m.solid(mgl32.Vec4{0.5, 0.5, 0.5, 1}); err != nil {
			return nil, err
		}
	}
	if mat.Normal, err = m.texture(src.Normal, cache); err != nil {
		return nil, err
	}
	return mat, nil
}

// texture returns nil, nil for an empty reference.
func (m *Model) texture(ref asset.TextureRef, cache *TextureCache) (*Texture, error) {
	if ref.Empty() {
		return nil, nil
	}
	if key := ref.Key(); key != "" {
		return cache.Get(key, false)
	}
	img, err := imaging.Decode(bytes.NewReader(ref.Data), false, false)
	if err != nil {
		return nil, err
	}
	tex, err := NewTextureFromImage(img)
	if err != nil {
		return nil, err
	}
	m.owned = append(m.owned, tex)
	return tex, nil
}

func (m *Model) solid(color mgl32.Vec4) (*Texture, error) {
	tex, err := NewSolidTexture(1, 1, color)
	if err != nil {
		return nil, err
	}
	m.owned = append(m.owned, tex)
	return tex, nil
}

// Draw draws every mesh with its material. p must already be in use.
func (m *Model) Draw(p *Program) {
	for _, mesh := range m.Meshes {
		mesh.Draw(p)
	}
}

func (m *Model) TriangleCount() int { return m.triangles }

// Delete releases meshes and owned textures. Cached textures stay alive.
func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
	for _, tex := range m.owned {
		tex.Delete()
	}
	m.Meshes, m.Materials, m.owned = nil, nil, nil
}

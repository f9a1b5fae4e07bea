// Package asset imports model files into CPU-side meshes and material
// descriptions.
package asset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"glex/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnsupportedModel = errors.New("asset: unsupported model")

// TextureRef points at image data either on disk (Path) or inline (Data).
type TextureRef struct {
	Path string
	Data []byte
}

// Empty reports whether the reference names no image.
func (r TextureRef) Empty() bool {
	return r.Path == "" && len(r.Data) == 0
}

// Key identifies the image for caching. Inline images have no key.
func (r TextureRef) Key() string {
	if len(r.Data) > 0 {
		return ""
	}
	return r.Path
}

// Material describes the surface of one or more meshes.
type Material struct {
	Name         string
	DiffuseColor mgl32.Vec3
	Diffuse      TextureRef
	Specular     TextureRef
	Normal       TextureRef
	Shininess    float32
}

// Mesh is a triangle mesh with an index into Scene.Materials, or -1.
type Mesh struct {
	Name     string
	Data     *geom.MeshData
	Material int
}

// Scene is the flattened result of importing a model file. Node transforms
// are already applied to the mesh data.
type Scene struct {
	Meshes    []Mesh
	Materials []Material
}

// Options tune the import.
type Options struct {
	// FlipUVs maps v to 1-v.
	FlipUVs bool
}

// DefaultShininess is used when a material does not specify one.
const DefaultShininess = 32

// Load imports the model at path, picking the importer by file extension.
func Load(path string, opts Options) (*Scene, error) {
	var (
		s   *Scene
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		s, err = LoadOBJ(path, opts)
	case ".gltf", ".glb":
		s, err = LoadGLTF(path, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(s.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s has no triangle geometry", ErrUnsupportedModel, path)
	}
	for _, m := range s.Meshes {
		geom.ComputeTangents(m.Data.Vertices, m.Data.Indices)
	}
	return s, nil
}

// TriangleCount sums triangles over all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.Data.TriangleCount()
	}
	return n
}

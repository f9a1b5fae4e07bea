package asset

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# two groups sharing a material library
mtllib crate.mtl
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o crate
usemtl wood
f 1/1/1 2/2/1 3/3/1 4/4/1
o bare
usemtl missing
f -4 -3 -2
`

const crateMTL = `newmtl wood
Kd 0.5 0.25 1
Ns 64
map_Kd textures/wood.png
map_Ks textures/wood_spec.png
map_Bump -bm 1.0 textures/wood_n.png

newmtl plain
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"models/crate.obj": {Data: []byte(quadOBJ)},
		"models/crate.mtl": {Data: []byte(crateMTL)},
	}
}

func TestLoadOBJFSGroupsAndMaterials(t *testing.T) {
	s, err := LoadOBJFS(testFS(), "models/crate.obj", Options{})
	require.NoError(t, err)
	require.Len(t, s.Meshes, 2)
	require.Len(t, s.Materials, 2)

	wood := s.Materials[0]
	assert.Equal(t, "wood", wood.Name)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 1}, wood.DiffuseColor)
	assert.Equal(t, float32(64), wood.Shininess)
	assert.Equal(t, "models/textures/wood.png", wood.Diffuse.Path)
	assert.Equal(t, "models/textures/wood_spec.png", wood.Specular.Path)
	assert.Equal(t, "models/textures/wood_n.png", wood.Normal.Path)

	plain := s.Materials[1]
	assert.Equal(t, float32(DefaultShininess), plain.Shininess)
	assert.True(t, plain.Diffuse.Empty())

	crate := s.Meshes[0]
	assert.Equal(t, "crate", crate.Name)
	assert.Equal(t, 0, crate.Material)
	// quad fan-triangulated, corners shared
	assert.Len(t, crate.Data.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, crate.Data.Indices)
	assert.Equal(t, mgl32.Vec2{1, 1}, crate.Data.Vertices[2].TexCoord)

	bare := s.Meshes[1]
	assert.Equal(t, -1, bare.Material)
	require.Len(t, bare.Data.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{-1, -1, 0}, bare.Data.Vertices[0].Position)
	// no vn in the face, so a face normal is generated
	assert.True(t, bare.Data.Vertices[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
}

func TestLoadOBJFSFlipUVs(t *testing.T) {
	s, err := LoadOBJFS(testFS(), "models/crate.obj", Options{FlipUVs: true})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{0, 1}, s.Meshes[0].Data.Vertices[0].TexCoord)
}

func TestLoadOBJFSErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad_face.obj":  {Data: []byte("v 0 0 0\nf 1 2 3\n")},
		"bad_float.obj": {Data: []byte("v 0 x 0\n")},
		"short.obj":     {Data: []byte("v 0 0 0\nf 1 1\n")},
		"no_lib.obj":    {Data: []byte("mtllib nope.mtl\n")},
	}
	for _, name := range []string{"bad_face.obj", "bad_float.obj", "short.obj", "no_lib.obj", "absent.obj"} {
		_, err := LoadOBJFS(fsys, name, Options{})
		assert.Error(t, err, name)
	}
}

func TestParseFaceVertex(t *testing.T) {
	idx, err := parseFaceVertex("3//2", 4, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, objIndex{v: 2, vt: -1, vn: 1}, idx)

	idx, err = parseFaceVertex("-1/-2", 4, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, objIndex{v: 3, vt: 1, vn: -1}, idx)

	_, err = parseFaceVertex("5", 4, 0, 0)
	assert.Error(t, err)
	_, err = parseFaceVertex("/1/", 4, 1, 0)
	assert.Error(t, err)
}

func TestLoadComputesTangentsAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crate.obj"), []byte(quadOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crate.mtl"), []byte(crateMTL), 0o644))

	s, err := Load(filepath.Join(dir, "crate.obj"), Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "textures", "wood.png"), s.Materials[0].Diffuse.Path)
	assert.Equal(t, 3, s.TriangleCount())
	for _, v := range s.Meshes[0].Data.Vertices {
		assert.True(t, v.Tangent.ApproxEqual(mgl32.Vec3{1, 0, 0}), "tangent %v", v.Tangent)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("model.fbx", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

const triangleGLTF = `{"asset": {"version": "2.0"}, "scene": 0, "scenes": [{"nodes": [0]}],
"nodes": [{"mesh": 0, "translation": [0, 2, 0]}],
"meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
"buffers": [{"byteLength": 42, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIA"}],
"bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962}, {"buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963}],
"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]}, {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}]}`

func TestLoadGLTFBakesNodeTransform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleGLTF), 0o644))

	s, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, s.Meshes, 1)

	m := s.Meshes[0]
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, -1, m.Material)
	assert.Equal(t, []uint32{0, 1, 2}, m.Data.Indices)
	require.Len(t, m.Data.Vertices, 3)
	assert.True(t, m.Data.Vertices[0].Position.ApproxEqual(mgl32.Vec3{0, 2, 0}))
	assert.True(t, m.Data.Vertices[1].Position.ApproxEqual(mgl32.Vec3{1, 2, 0}))
	assert.True(t, m.Data.Vertices[2].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
}

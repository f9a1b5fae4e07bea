package asset

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"glex/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF imports a glTF 2.0 file (.gltf or .glb). Every triangle primitive
// reachable from the default scene becomes one Mesh with its node transform
// baked in.
func LoadGLTF(path string, opts Options) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return convertGLTF(doc, filepath.Dir(path), opts)
}

func convertGLTF(doc *gltf.Document, dir string, opts Options) (*Scene, error) {
	s := &Scene{Materials: make([]Material, len(doc.Materials))}
	for i, gm := range doc.Materials {
		s.Materials[i] = gltfMaterial(doc, dir, gm)
	}

	var walk func(idx int, parent mgl32.Mat4) error
	walk = func(idx int, parent mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil
		}
		node := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*node.Mesh]
			for pi, prim := range gm.Primitives {
				if prim.Mode != gltf.PrimitiveTriangles {
					slog.Debug("gltf: skipping non-triangle primitive", "mesh", gm.Name, "primitive", pi, "mode", prim.Mode)
					continue
				}
				data, err := gltfPrimitive(doc, prim, opts)
				if err != nil {
					return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, pi, err)
				}
				data.Transform(world)
				mat := -1
				if prim.Material != nil && *prim.Material < len(s.Materials) {
					mat = *prim.Material
				}
				s.Meshes = append(s.Meshes, Mesh{Name: gm.Name, Data: data, Material: mat})
			}
		}
		for _, c := range node.Children {
			if err := walk(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	m := n.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i := range m {
			out[i] = float32(m[i])
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	sc := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(sc[0]), float32(sc[1]), float32(sc[2])))
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive, opts Options) (*geom.MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%w: primitive without POSITION", ErrUnsupportedModel)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	m := &geom.MeshData{Vertices: make([]geom.Vertex, len(positions))}
	for i, p := range positions {
		v := &m.Vertices[i]
		v.Position = mgl32.Vec3{p[0], p[1], p[2]}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.TexCoord = mgl32.Vec2{uvs[i][0], uvs[i][1]}
			if opts.FlipUVs {
				v.TexCoord[1] = 1 - v.TexCoord[1]
			}
		}
	}

	if prim.Indices != nil {
		if m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}
	if len(normals) == 0 {
		faceNormals(m)
	}
	return m, nil
}

func gltfMaterial(doc *gltf.Document, dir string, gm *gltf.Material) Material {
	mat := Material{Name: gm.Name, DiffuseColor: mgl32.Vec3{1, 1, 1}, Shininess: DefaultShininess}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		mat.DiffuseColor = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
		if pbr.BaseColorTexture != nil {
			mat.Diffuse = gltfTexture(doc, dir, pbr.BaseColorTexture.Index)
		}
		// smooth surfaces get a tight highlight
		rough := float32(pbr.RoughnessFactorOrDefault())
		mat.Shininess = (1-rough)*(1-rough)*128 + 1
	}
	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		mat.Normal = gltfTexture(doc, dir, *gm.NormalTexture.Index)
	}
	return mat
}

func gltfTexture(doc *gltf.Document, dir string, texIdx int) TextureRef {
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return TextureRef{}
	}
	src := *doc.Textures[texIdx].Source
	if src >= len(doc.Images) {
		return TextureRef{}
	}
	img := doc.Images[src]
	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			slog.Warn("gltf: unreadable image buffer view", "image", src, "error", err)
			return TextureRef{}
		}
		return TextureRef{Data: raw}
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			slog.Warn("gltf: bad embedded image", "image", src, "error", err)
			return TextureRef{}
		}
		return TextureRef{Data: raw}
	case img.URI != "":
		return TextureRef{Path: filepath.Join(dir, filepath.FromSlash(img.URI))}
	}
	return TextureRef{}
}

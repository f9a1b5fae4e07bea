package asset

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"glex/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

type objIndex struct{ v, vt, vn int }

type objGroup struct {
	name     string
	material string
	corners  []objIndex
}

// LoadOBJ imports a Wavefront OBJ file and the MTL libraries it references.
// Texture paths are returned relative to the working directory.
func LoadOBJ(p string, opts Options) (*Scene, error) {
	dir := filepath.Dir(p)
	s, err := LoadOBJFS(os.DirFS(dir), filepath.Base(p), opts)
	if err != nil {
		return nil, err
	}
	for i := range s.Materials {
		m := &s.Materials[i]
		for _, ref := range []*TextureRef{&m.Diffuse, &m.Specular, &m.Normal} {
			if ref.Path != "" {
				ref.Path = filepath.Join(dir, filepath.FromSlash(ref.Path))
			}
		}
	}
	return s, nil
}

// LoadOBJFS imports name from fsys. Texture paths are relative to fsys.
func LoadOBJFS(fsys fs.FS, name string, opts Options) (*Scene, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		groups    []*objGroup
		scene     = &Scene{}
		matIndex  = map[string]int{}
	)
	cur := &objGroup{name: "default"}
	dir := path.Dir(name)

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "o", "g":
			if len(cur.corners) > 0 {
				groups = append(groups, cur)
			}
			cur = &objGroup{name: strings.Join(fields[1:], " "), material: cur.material}
		case "usemtl":
			if len(cur.corners) > 0 {
				groups = append(groups, cur)
				cur = &objGroup{name: cur.name}
			}
			if len(fields) > 1 {
				cur.material = fields[1]
			}
		case "mtllib":
			for _, lib := range fields[1:] {
				mats, err := parseMTL(fsys, path.Join(dir, lib))
				if err != nil {
					return nil, err
				}
				for _, m := range mats {
					matIndex[m.Name] = len(scene.Materials)
					scene.Materials = append(scene.Materials, m)
				}
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", name, lineNo)
			}
			corners := make([]objIndex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
				}
				corners = append(corners, idx)
			}
			// fan triangulation
			for i := 1; i+1 < len(corners); i++ {
				cur.corners = append(cur.corners, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(cur.corners) > 0 {
		groups = append(groups, cur)
	}

	for _, g := range groups {
		mat := -1
		if i, ok := matIndex[g.material]; ok {
			mat = i
		}
		scene.Meshes = append(scene.Meshes, Mesh{
			Name:     g.name,
			Data:     buildOBJMesh(g.corners, positions, uvs, normals, opts),
			Material: mat,
		})
	}
	return scene, nil
}

// buildOBJMesh deduplicates identical position/uv/normal triples.
func buildOBJMesh(corners []objIndex, positions []mgl32.Vec3, uvs []mgl32.Vec2, normals []mgl32.Vec3, opts Options) *geom.MeshData {
	m := &geom.MeshData{Indices: make([]uint32, 0, len(corners))}
	seen := make(map[objIndex]uint32, len(corners))
	missingNormals := false
	for _, c := range corners {
		if idx, ok := seen[c]; ok {
			m.Indices = append(m.Indices, idx)
			continue
		}
		v := geom.Vertex{Position: positions[c.v]}
		if c.vt >= 0 {
			v.TexCoord = uvs[c.vt]
			if opts.FlipUVs {
				v.TexCoord[1] = 1 - v.TexCoord[1]
			}
		}
		if c.vn >= 0 {
			v.Normal = normals[c.vn]
		} else {
			missingNormals = true
		}
		idx := uint32(len(m.Vertices))
		seen[c] = idx
		m.Vertices = append(m.Vertices, v)
		m.Indices = append(m.Indices, idx)
	}
	if missingNormals {
		faceNormals(m)
	}
	return m
}

// faceNormals fills zero normals with the area-weighted sum of adjacent
// face normals.
func faceNormals(m *geom.MeshData) {
	acc := make([]mgl32.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa := m.Vertices[a].Position
		n := m.Vertices[b].Position.Sub(pa).Cross(m.Vertices[c].Position.Sub(pa))
		acc[a], acc[b], acc[c] = acc[a].Add(n), acc[b].Add(n), acc[c].Add(n)
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal.Len() == 0 && acc[i].Len() > 0 {
			m.Vertices[i].Normal = acc[i].Normalize()
		}
	}
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based
// indices, resolving negative (relative) references. Absent parts are -1.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objIndex, error) {
	idx := objIndex{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	counts := [3]int{nv, nvt, nvn}
	dst := [3]*int{&idx.v, &idx.vt, &idx.vn}
	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return idx, fmt.Errorf("face vertex %q: %w", tok, err)
		}
		if n < 0 {
			n = counts[i] + n
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return idx, fmt.Errorf("face vertex %q out of range", tok)
		}
		*dst[i] = n
	}
	if idx.v < 0 {
		return idx, fmt.Errorf("face vertex %q has no position", tok)
	}
	return idx, nil
}

func parseMTL(fsys fs.FS, name string) ([]Material, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open mtl: %w", err)
	}
	defer f.Close()
	return readMTL(f, path.Dir(name))
}

func readMTL(r io.Reader, dir string) ([]Material, error) {
	var mats []Material
	cur := -1
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			mats = append(mats, Material{Name: fields[1], DiffuseColor: mgl32.Vec3{1, 1, 1}, Shininess: DefaultShininess})
			cur = len(mats) - 1
			continue
		}
		if cur < 0 {
			continue
		}
		m := &mats[cur]
		// texture options such as -bm precede the file name, which comes last
		file := path.Join(dir, filepath.ToSlash(fields[len(fields)-1]))
		switch fields[0] {
		case "Kd":
			if v, err := parseFloats(fields[1:], 3); err == nil {
				m.DiffuseColor = mgl32.Vec3{v[0], v[1], v[2]}
			}
		case "Ns":
			if v, err := parseFloats(fields[1:], 1); err == nil && v[0] > 0 {
				m.Shininess = v[0]
			}
		case "map_Kd":
			m.Diffuse = TextureRef{Path: file}
		case "map_Ks":
			m.Specular = TextureRef{Path: file}
		case "map_Bump", "map_bump", "bump", "norm", "map_Kn":
			m.Normal = TextureRef{Path: file}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl: %w", err)
	}
	return mats, nil
}

package loader

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

const noIndex = -1

// objLoaderBackend decodes Wavefront OBJ geometry and MTL material libraries.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) LoadMaterials(fsys fs.FS, p string) (*materialLibrary, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open material library %s: %w", p, err)
	}
	defer f.Close()

	dec := &mtlDecoder{dir: path.Dir(p), lib: &materialLibrary{index: make(map[string]int)}}
	if err := scanLines(f, dec.parseLine); err != nil {
		return nil, fmt.Errorf("failed to parse material library %s: %w", p, err)
	}
	return dec.lib, nil
}

func (b *objLoaderBackend) LoadGeometry(fsys fs.FS, p string, lib *materialLibrary) (*model.ImportedModel, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open geometry %s: %w", p, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	im, err := b.DecodeGeometry(name, f, lib)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geometry %s: %w", p, err)
	}
	return im, nil
}

func (b *objLoaderBackend) DecodeGeometry(name string, r io.Reader, lib *materialLibrary) (*model.ImportedModel, error) {
	dec := &objDecoder{lib: lib}
	if err := scanLines(r, dec.parseLine); err != nil {
		return nil, err
	}

	im := &model.ImportedModel{Name: name}
	if lib != nil {
		im.Materials = append(im.Materials, lib.Materials...)
	}
	for _, mb := range dec.meshes {
		if len(mb.geometry.Indices) == 0 {
			continue
		}
		groups := mb.importedGroups(lib)
		im.Meshes = append(im.Meshes, model.ImportedMesh{
			Name:          mb.name,
			Geometry:      mb.geometry,
			MaterialIndex: groups[0].MaterialIndex,
			Groups:        groups,
		})
	}
	return im, nil
}

// scanLines feeds every trimmed, non-empty, non-comment line to parseLine, numbering lines from 1.
func scanLines(r io.Reader, parseLine func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := parseLine(fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// --- OBJ ---

// objGroup marks the index where a usemtl switch took effect.
type objGroup struct {
	start    int
	material string
}

type meshBuilder struct {
	name     string
	material string
	groups   []objGroup
	geometry *model.Geometry
	shared   map[[3]int]uint32
}

func newMeshBuilder(name, material string) *meshBuilder {
	return &meshBuilder{
		name:     name,
		material: material,
		groups:   []objGroup{{material: material}},
		geometry: &model.Geometry{},
		shared:   make(map[[3]int]uint32),
	}
}

// importedGroups resolves the mesh's groups against lib, dropping groups that received no faces.
func (mb *meshBuilder) importedGroups(lib *materialLibrary) []model.ImportedGroup {
	out := make([]model.ImportedGroup, 0, len(mb.groups))
	for i, g := range mb.groups {
		end := len(mb.geometry.Indices)
		if i+1 < len(mb.groups) {
			end = mb.groups[i+1].start
		}
		if end <= g.start {
			continue
		}
		idx := noIndex
		if j, ok := lib.lookup(g.material); ok {
			idx = j
		}
		out = append(out, model.ImportedGroup{Start: uint32(g.start), Count: uint32(end - g.start), MaterialIndex: idx})
	}
	return out
}

type objDecoder struct {
	lib *materialLibrary

	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2

	meshes  []*meshBuilder
	current *meshBuilder
}

func (d *objDecoder) parseLine(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		d.positions = append(d.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		d.normals = append(d.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("uv: %w", err)
		}
		d.uvs = append(d.uvs, mgl32.Vec2{v[0], v[1]})
	case "o", "g":
		name := ""
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		material := ""
		if d.current != nil {
			material = d.current.material
		}
		d.begin(name, material)
	case "usemtl":
		if len(fields) < 2 {
			return fmt.Errorf("usemtl with no name")
		}
		d.useMaterial(fields[1])
	case "f":
		return d.parseFace(fields[1:])
	}
	// mtllib, s, l and anything else carry nothing the geometry needs
	return nil
}

func (d *objDecoder) begin(name, material string) {
	d.current = newMeshBuilder(name, material)
	d.meshes = append(d.meshes, d.current)
}

// useMaterial switches material for the faces that follow. Within one object each switch opens a new group.
func (d *objDecoder) useMaterial(material string) {
	mb := d.current
	if mb == nil {
		d.begin("", material)
		return
	}
	if mb.material == material {
		return
	}
	mb.material = material
	start := len(mb.geometry.Indices)
	if last := &mb.groups[len(mb.groups)-1]; last.start == start {
		last.material = material
		return
	}
	mb.groups = append(mb.groups, objGroup{start: start, material: material})
}

// resolve converts a 1-based (or negative, relative) OBJ index into a 0-based slice index.
func resolve(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return noIndex, err
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v += count
	default:
		return noIndex, fmt.Errorf("index 0 is invalid")
	}
	if v < 0 || v >= count {
		return noIndex, fmt.Errorf("index %s out of range (%d available)", s, count)
	}
	return v, nil
}

// parseFace parses f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ... and triangulates it as a fan around the first corner.
func (d *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with fewer than 3 vertices")
	}
	if d.current == nil {
		d.begin("", "")
	}

	corners := make([][3]int, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		c := [3]int{noIndex, noIndex, noIndex}
		var err error
		if c[0], err = resolve(parts[0], len(d.positions)); err != nil {
			return fmt.Errorf("face vertex: %w", err)
		}
		if len(parts) > 1 && parts[1] != "" {
			if c[1], err = resolve(parts[1], len(d.uvs)); err != nil {
				return fmt.Errorf("face uv: %w", err)
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c[2], err = resolve(parts[2], len(d.normals)); err != nil {
				return fmt.Errorf("face normal: %w", err)
			}
		}
		corners[i] = c
	}

	faceNormal := d.faceNormal(corners)
	for i := 1; i+1 < len(corners); i++ {
		for _, c := range [3][3]int{corners[0], corners[i], corners[i+1]} {
			d.current.geometry.Indices = append(d.current.geometry.Indices, d.vertex(c, faceNormal))
		}
	}
	return nil
}

// vertex returns the index of the vertex for corner c, reusing an earlier one when the corner has an explicit normal.
// Corners without a normal take the flat face normal and are never shared.
func (d *objDecoder) vertex(c [3]int, faceNormal mgl32.Vec3) uint32 {
	mb := d.current
	if c[2] != noIndex {
		if idx, ok := mb.shared[c]; ok {
			return idx
		}
	}

	v := model.Vertex{Position: d.positions[c[0]]}
	if c[1] != noIndex {
		v.UV = d.uvs[c[1]]
	}
	if c[2] != noIndex {
		v.Normal = d.normals[c[2]]
	} else {
		v.Normal = faceNormal
	}

	idx := uint32(len(mb.geometry.Vertices))
	mb.geometry.Vertices = append(mb.geometry.Vertices, v)
	if c[2] != noIndex {
		mb.shared[c] = idx
	}
	return idx
}

func (d *objDecoder) faceNormal(corners [][3]int) mgl32.Vec3 {
	a, b, c := d.positions[corners[0][0]], d.positions[corners[1][0]], d.positions[corners[2][0]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// --- MTL ---

type mtlDecoder struct {
	dir     string
	lib     *materialLibrary
	current int
}

func defaultImportedMaterial(name string) common.ImportedMaterial {
	return common.ImportedMaterial{
		Name:      name,
		Diffuse:   common.ColorFromHex(0xa0a0a0),
		Ambient:   common.ColorFromHex(0xa0a0a0),
		Specular:  common.ColorFromHex(0x111111),
		Emissive:  common.Color{A: 1},
		Shininess: 30,
		Opacity:   1,
	}
}

func (d *mtlDecoder) parseLine(fields []string) error {
	if fields[0] == "newmtl" {
		if len(fields) < 2 {
			return fmt.Errorf("newmtl with no name")
		}
		name := fields[1]
		d.current = len(d.lib.Materials)
		d.lib.index[name] = d.current
		d.lib.Materials = append(d.lib.Materials, defaultImportedMaterial(name))
		return nil
	}
	if len(d.lib.Materials) == 0 {
		return fmt.Errorf("%s before newmtl", fields[0])
	}
	mat := &d.lib.Materials[d.current]

	switch fields[0] {
	case "Kd", "Ka", "Ks", "Ke":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("%s: %w", fields[0], err)
		}
		c := common.Color{R: v[0], G: v[1], B: v[2], A: 1}
		switch fields[0] {
		case "Kd":
			mat.Diffuse = c
		case "Ka":
			mat.Ambient = c
		case "Ks":
			mat.Specular = c
		case "Ke":
			mat.Emissive = c
		}
	case "Ns":
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return fmt.Errorf("Ns: %w", err)
		}
		mat.Shininess = v[0]
	case "d":
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return fmt.Errorf("d: %w", err)
		}
		mat.Opacity = v[0]
	case "Tr":
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return fmt.Errorf("Tr: %w", err)
		}
		mat.Opacity = 1 - v[0]
	case "map_Kd":
		if len(fields) < 2 {
			return fmt.Errorf("map_Kd with no file")
		}
		// options such as -s or -o precede the file name
		file := fields[len(fields)-1]
		mat.DiffuseTexture = &common.ImportedTexture{Path: path.Join(d.dir, file)}
	}
	return nil
}

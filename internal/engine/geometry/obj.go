package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// objKey is one v/vt/vn reference after resolving negative indices.
// Missing components are -1.
type objKey struct {
	v, vt, vn int
}

type objParser struct {
	positions [][3]float32
	uvs       [][2]float32
	normals   [][3]float32

	vertices []Vertex
	indices  []uint32
	lookup   map[objKey]uint32
}

func importOBJ(path string) ([]Vertex, []uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening obj: %w", err)
	}
	defer f.Close()

	return parseOBJ(f)
}

// parseOBJ reads positions, texture coordinates, normals and faces. Polygons
// are triangulated as fans; identical v/vt/vn tuples share one vertex.
// Objects, groups and materials are ignored.
func parseOBJ(r io.Reader) ([]Vertex, []uint32, error) {
	p := &objParser{lookup: make(map[objKey]uint32)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		fields := strings.Fields(text)
		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			if err = parseFloats(fields[1:], v[:]); err == nil {
				p.positions = append(p.positions, v)
			}
		case "vt":
			var v [2]float32
			if err = parseFloats(fields[1:], v[:1]); err == nil {
				if len(fields) > 2 {
					err = parseFloats(fields[2:], v[1:])
				}
				p.uvs = append(p.uvs, v)
			}
		case "vn":
			var v [3]float32
			if err = parseFloats(fields[1:], v[:]); err == nil {
				p.normals = append(p.normals, v)
			}
		case "f":
			err = p.face(fields[1:])
		}
		if err != nil {
			return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading obj: %w", err)
	}

	return p.vertices, p.indices, nil
}

func parseFloats(fields []string, out []float32) error {
	if len(fields) < len(out) {
		return fmt.Errorf("want %d values, got %d", len(out), len(fields))
	}
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return err
		}
		out[i] = float32(f)
	}
	return nil
}

func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d vertices", len(refs))
	}

	corners := make([]uint32, len(refs))
	for i, ref := range refs {
		key, err := p.resolve(ref)
		if err != nil {
			return err
		}
		corners[i] = p.vertex(key)
	}

	for i := 1; i+1 < len(corners); i++ {
		p.indices = append(p.indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (p *objParser) resolve(ref string) (objKey, error) {
	key := objKey{v: -1, vt: -1, vn: -1}
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return key, fmt.Errorf("bad face reference %q", ref)
	}

	var err error
	if key.v, err = objIndex(parts[0], len(p.positions)); err != nil {
		return key, err
	}
	if key.v < 0 {
		return key, fmt.Errorf("face reference %q has no position", ref)
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = objIndex(parts[1], len(p.uvs)); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = objIndex(parts[2], len(p.normals)); err != nil {
			return key, err
		}
	}
	return key, nil
}

// objIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based index into a list of n elements.
func objIndex(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d elements)", i, n)
	}
}

func (p *objParser) vertex(key objKey) uint32 {
	if idx, ok := p.lookup[key]; ok {
		return idx
	}

	v := Vertex{Position: p.positions[key.v]}
	if key.vn >= 0 {
		v.Normal = p.normals[key.vn]
	}
	if key.vt >= 0 {
		v.UV = p.uvs[key.vt]
	}

	idx := uint32(len(p.vertices))
	p.vertices = append(p.vertices, v)
	p.lookup[key] = idx
	return idx
}

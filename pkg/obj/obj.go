// Package obj reads Wavefront OBJ geometry for packing. Only the
// directives the pipeline needs are parsed: positions, normals and
// faces. Texture coordinates, materials, groups and object names are
// skipped.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/bimgltf/pkg/math3d"
)

var (
	ErrMalformedDirective = errors.New("malformed obj directive")
	ErrIndexOutOfRange    = errors.New("obj face index out of range")
	ErrNoFaces            = errors.New("obj file has no faces")
)

// FaceVert references one corner of a face. Indices are 0-based into
// the file's position and normal tables; Normal is -1 when the corner
// carries no normal reference.
type FaceVert struct {
	Position int
	Normal   int
}

// Face is one polygon with 3 or more corners in winding order.
type Face struct {
	Verts []FaceVert
}

// File is the parsed directive content of one OBJ file.
type File struct {
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	Faces     []Face
}

// ParseFile reads and parses an OBJ file from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Parse reads OBJ directives from r. Unknown directives are skipped;
// malformed known directives and out-of-range face references are
// errors.
func Parse(r io.Reader) (*File, error) {
	file := &File{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ident, args := fields[0], fields[1:]

		switch ident {
		case "v":
			p, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			file.Positions = append(file.Positions, p)
		case "vn":
			n, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			file.Normals = append(file.Normals, n)
		case "f":
			face, err := file.parseFace(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			file.Faces = append(file.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(file.Faces) == 0 {
		return nil, ErrNoFaces
	}
	return file, nil
}

func parseVec3(args []string) (math3d.Vec3, error) {
	if len(args) < 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: want 3 components, have %d", ErrMalformedDirective, len(args))
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %q", ErrMalformedDirective, args[i])
		}
		out[i] = v
	}
	return math3d.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// parseFace parses one f directive. Corner references are v, v//vn or
// v/vt/vn; texture indices are ignored. OBJ indices are 1-based and may
// be negative to count back from the current table end.
func (f *File) parseFace(args []string) (Face, error) {
	if len(args) < 3 {
		return Face{}, fmt.Errorf("%w: face with %d corners", ErrMalformedDirective, len(args))
	}
	face := Face{Verts: make([]FaceVert, 0, len(args))}
	for _, corner := range args {
		parts := strings.Split(corner, "/")

		pos, err := f.resolveIndex(parts[0], len(f.Positions))
		if err != nil {
			return Face{}, err
		}

		norm := -1
		if len(parts) == 3 && parts[2] != "" {
			norm, err = f.resolveIndex(parts[2], len(f.Normals))
			if err != nil {
				return Face{}, err
			}
		}
		face.Verts = append(face.Verts, FaceVert{Position: pos, Normal: norm})
	}
	return face, nil
}

// resolveIndex converts a 1-based or negative OBJ reference into a
// 0-based index checked against the current table size.
func (f *File) resolveIndex(s string, tableLen int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDirective, s)
	}
	idx := raw
	if idx < 0 {
		idx = tableLen + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= tableLen {
		return 0, fmt.Errorf("%w: %d with %d entries", ErrIndexOutOfRange, raw, tableLen)
	}
	return idx, nil
}

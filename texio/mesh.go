package texio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/solstice-render/pathtrace/asset"
	"github.com/solstice-render/pathtrace/object"
	"github.com/solstice-render/pathtrace/types"
)

// LoadMesh parses a Wavefront OBJ file into a MeshData. Vertices are
// translated and scaled as they're read; face windings are reversed
// (indices taken in reverse order) to match the coordinate convention the
// rest of the renderer expects, exactly as the original mesh loader does.
// A non-triangular face is logged to stderr and still triangulated by
// keeping only its first three vertices, rather than aborting the load.
func LoadMesh(path string, translation, scale types.Vec3, invertNormals bool) (*object.MeshData, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	data := &object.MeshData{}
	scanner := bufio.NewScanner(res)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3Fields(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("texio: %s:%d: %w", path, lineNum, err)
			}
			v[0] *= scale[0]
			v[1] *= scale[1]
			v[2] *= scale[2]
			data.Vertices = append(data.Vertices, v.Add(translation))

		case "vn":
			n, err := parseVec3Fields(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("texio: %s:%d: %w", path, lineNum, err)
			}
			n = n.Normalize()
			if invertNormals {
				n = n.Neg()
			}
			data.Normals = append(data.Normals, n)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("texio: %s:%d: malformed texcoord", path, lineNum)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("texio: %s:%d: malformed texcoord", path, lineNum)
			}
			data.UVs = append(data.UVs, types.Vec2{float32(u), float32(v)})

		case "f":
			verts := fields[1:]
			if len(verts) != 3 {
				fmt.Fprintf(os.Stderr, "texio: %s:%d: face is non-triangular (%d vertices); using first 3\n", path, lineNum, len(verts))
				if len(verts) < 3 {
					return nil, fmt.Errorf("texio: %s:%d: face has fewer than 3 vertices", path, lineNum)
				}
				verts = verts[:3]
			}
			face, err := parseFace(verts)
			if err != nil {
				return nil, fmt.Errorf("texio: %s:%d: %w", path, lineNum, err)
			}
			data.Faces = append(data.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

func parseVec3Fields(fields []string) (types.Vec3, error) {
	if len(fields) < 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace reads three "v/vt/vn" (or v, v/vt, v//vn) tokens and reverses
// their order (2, 1, 0), matching the original loader's winding flip.
func parseFace(tokens []string) (object.Face, error) {
	var face object.Face
	face.MaterialIdx = -1
	for i := 0; i < 3; i++ {
		v, vt, vn, err := parseFaceVertex(tokens[i])
		if err != nil {
			return object.Face{}, err
		}
		out := 2 - i
		face.V[out] = v
		face.T[out] = vt
		face.N[out] = vn
	}
	return face, nil
}

func parseFaceVertex(tok string) (v, vt, vn int32, err error) {
	parts := strings.Split(tok, "/")
	v, err = parseIdx(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	v--
	vt, vn = -1, -1
	if len(parts) >= 2 && parts[1] != "" {
		vt, err = parseIdx(parts[1])
		if err != nil {
			return 0, 0, 0, err
		}
		vt--
	}
	if len(parts) >= 3 && parts[2] != "" {
		vn, err = parseIdx(parts[2])
		if err != nil {
			return 0, 0, 0, err
		}
		vn--
	}
	return v, vt, vn, nil
}

func parseIdx(s string) (int32, error) {
	n, err := strconv.Atoi(s)
	return int32(n), err
}

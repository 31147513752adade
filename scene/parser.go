package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/object"
	"github.com/solstice-render/pathtrace/texio"
	"github.com/solstice-render/pathtrace/types"
)

// parser holds the mutable state of an in-progress scene-file parse. An
// error stack mirrors file-inclusion frames (mesh references, in case a
// future scene format nests further files) onto every emitted error, so a
// parse failure deep in a block still names the enclosing file and line.
type parser struct {
	scene *Scene

	materials map[string]*material.Material

	camPos, camLook, camUp    types.Vec3
	camFOV, camAspect         float32
	camAperture, camFocalDist float32
	haveCamera                bool

	errStack []string
}

// Parse reads the block-oriented scene description format at path into a
// *Scene ready for Scene.Optimize.
func Parse(path string) (*Scene, error) {
	p := &parser{
		scene:     New(),
		materials: make(map[string]*material.Material),
		camUp:     types.Vec3{0, 1, 0},
		camFOV:    0.785, // ~45 degrees
		camAspect: 1,
	}
	if err := p.parseFile(path); err != nil {
		return nil, err
	}
	if !p.haveCamera {
		return nil, fmt.Errorf("scene: no camera block defined")
	}
	p.scene.Camera = NewCamera(p.camPos, p.camLook, p.camUp, p.camFOV, p.camAspect, p.camAperture, p.camFocalDist)
	p.scene.Optimize()
	return p.scene, nil
}

func (p *parser) emitError(file string, line int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	full := fmt.Sprintf("[%s:%d] error: %s", file, line, msg)
	if len(p.errStack) > 0 {
		full = full + "\n" + strings.Join(p.errStack, "\n")
	}
	return fmt.Errorf("%s", full)
}

func (p *parser) pushFrame(msg string) { p.errStack = append([]string{msg}, p.errStack...) }
func (p *parser) popFrame()            { p.errStack = p.errStack[1:] }

func (p *parser) parseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return p.emitError(path, 0, "could not open scene file: %s", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		keyword := fields[0]
		if !strings.HasSuffix(line, "{") {
			return p.emitError(path, lineNum, "expected block '%s { ... }' opener", keyword)
		}

		block, endLine, err := readBlock(scanner, &lineNum)
		if err != nil {
			return p.emitError(path, lineNum, "%s", err)
		}

		switch keyword {
		case "material":
			if err := p.parseMaterial(path, endLine, block); err != nil {
				return err
			}
		case "sky":
			if err := p.parseSky(path, endLine, block); err != nil {
				return err
			}
		case "camera":
			if err := p.parseCamera(path, endLine, block); err != nil {
				return err
			}
		case "sphere":
			if err := p.parseSphere(path, endLine, block); err != nil {
				return err
			}
		case "quad":
			if err := p.parseQuad(path, endLine, block); err != nil {
				return err
			}
		case "cuboid":
			if err := p.parseCuboid(path, endLine, block); err != nil {
				return err
			}
		case "mesh":
			p.pushFrame(fmt.Sprintf("referenced from %s:%d [mesh]", path, endLine))
			err := p.parseMesh(dir, path, endLine, block)
			p.popFrame()
			if err != nil {
				return err
			}
		default:
			return p.emitError(path, lineNum, "unknown block type '%s'", keyword)
		}
	}
	return scanner.Err()
}

// readBlock consumes lines up to and including the closing "}", returning
// the keyed lines in between as field slices.
func readBlock(scanner *bufio.Scanner, lineNum *int) ([][]string, int, error) {
	var lines [][]string
	for scanner.Scan() {
		*lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "}" {
			return lines, *lineNum, nil
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, strings.Fields(line))
	}
	return nil, *lineNum, fmt.Errorf("unterminated block, expected '}'")
}

func blockValue(block [][]string, key string) ([]string, bool) {
	for _, fields := range block {
		if fields[0] == key {
			return fields[1:], true
		}
	}
	return nil, false
}

func parseFloats(vals []string) ([]float32, error) {
	out := make([]float32, len(vals))
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(vals []string) (types.Vec3, error) {
	if len(vals) != 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(vals))
	}
	f, err := parseFloats(vals)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.Vec3{f[0], f[1], f[2]}, nil
}

func (p *parser) parseMaterial(path string, line int, block [][]string) error {
	name, ok := blockValue(block, "name")
	if !ok || len(name) != 1 {
		return p.emitError(path, line, "material block requires a single 'name' value")
	}
	kindVal, ok := blockValue(block, "type")
	if !ok || len(kindVal) != 1 {
		return p.emitError(path, line, "material block requires a single 'type' value")
	}
	kind, err := parseKind(kindVal[0])
	if err != nil {
		return p.emitError(path, line, "%s", err)
	}

	m := material.New(kind)
	if v, ok := blockValue(block, "color"); ok {
		c, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid color: %s", err)
		}
		m.Color = c
	}
	if v, ok := blockValue(block, "roughness"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid roughness value")
		}
		m.Roughness = f[0]
	}
	if v, ok := blockValue(block, "index"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid index value")
		}
		m.Index = f[0]
	}
	if v, ok := blockValue(block, "density"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid density value")
		}
		m.Density = f[0]
	}
	if v, ok := blockValue(block, "intensity"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid intensity value")
		}
		m.Intensity = f[0]
	}
	if v, ok := blockValue(block, "glow"); ok {
		c, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid glow: %s", err)
		}
		m.Emission = c
	}
	if v, ok := blockValue(block, "texture"); ok && len(v) == 1 && v[0] != "None" {
		tex, err := texio.LoadTexture(filepath.Join(filepath.Dir(path), v[0]))
		if err != nil {
			// Texture load failures leave the material textureless
			// rather than aborting the whole scene load.
			tex = nil
		}
		m.Texture = tex
	}

	p.materials[name[0]] = m
	return nil
}

func parseKind(s string) (material.Kind, error) {
	switch s {
	case "diffuse":
		return material.Diffuse, nil
	case "light":
		return material.Light, nil
	case "metal":
		return material.Metal, nil
	case "mirror":
		return material.Mirror, nil
	case "glass":
		return material.Glass, nil
	case "liquid":
		return material.Liquid, nil
	case "ceramic":
		return material.Ceramic, nil
	case "glow":
		return material.Glow, nil
	case "fog":
		return material.Fog, nil
	default:
		return 0, fmt.Errorf("unknown material type '%s'", s)
	}
}

func (p *parser) parseSky(path string, line int, block [][]string) error {
	m := material.New(material.Light)
	m.Intensity = 1
	if v, ok := blockValue(block, "color"); ok {
		c, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid sky color: %s", err)
		}
		m.Color = c
	}
	if v, ok := blockValue(block, "texture"); ok && len(v) == 1 && v[0] != "None" {
		tex, err := texio.LoadTexture(filepath.Join(filepath.Dir(path), v[0]))
		if err == nil {
			m.Texture = tex
		}
	}
	p.scene.Sky = m
	return nil
}

func (p *parser) parseCamera(path string, line int, block [][]string) error {
	eye, ok := blockValue(block, "eye")
	if !ok {
		return p.emitError(path, line, "camera block requires 'eye'")
	}
	pos, err := parseVec3(eye)
	if err != nil {
		return p.emitError(path, line, "invalid camera eye: %s", err)
	}
	p.camPos = pos

	if v, ok := blockValue(block, "look"); ok {
		look, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid camera look: %s", err)
		}
		p.camLook = look
	}
	if v, ok := blockValue(block, "up"); ok {
		up, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid camera up: %s", err)
		}
		p.camUp = up
	}
	if v, ok := blockValue(block, "fov"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid camera fov")
		}
		p.camFOV = f[0] * 3.14159265 / 180
	}
	if v, ok := blockValue(block, "aspect"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid camera aspect")
		}
		p.camAspect = f[0]
	}
	if v, ok := blockValue(block, "aperture"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid camera aperture")
		}
		p.camAperture = f[0]
	}
	if v, ok := blockValue(block, "focal_distance"); ok {
		f, err := parseFloats(v)
		if err != nil || len(f) != 1 {
			return p.emitError(path, line, "invalid camera focal_distance")
		}
		p.camFocalDist = f[0]
	} else {
		p.camFocalDist = p.camPos.Distance(p.camLook)
	}
	p.haveCamera = true
	return nil
}

func (p *parser) resolveMaterial(path string, line int, block [][]string) (*material.Material, error) {
	name, ok := blockValue(block, "material")
	if !ok || len(name) != 1 {
		return nil, p.emitError(path, line, "block requires a single 'material' reference")
	}
	m, ok := p.materials[name[0]]
	if !ok {
		return nil, p.emitError(path, line, "undefined material '%s'", name[0])
	}
	return m, nil
}

func (p *parser) parseSphere(path string, line int, block [][]string) error {
	mat, err := p.resolveMaterial(path, line, block)
	if err != nil {
		return err
	}
	originVals, ok := blockValue(block, "origin")
	if !ok {
		return p.emitError(path, line, "sphere block requires 'origin'")
	}
	origin, err := parseVec3(originVals)
	if err != nil {
		return p.emitError(path, line, "invalid sphere origin: %s", err)
	}
	radiusVals, ok := blockValue(block, "radius")
	if !ok {
		return p.emitError(path, line, "sphere block requires 'radius'")
	}
	radius, err := parseFloats(radiusVals)
	if err != nil || len(radius) != 1 {
		return p.emitError(path, line, "invalid sphere radius")
	}
	p.scene.Add(object.NewSphere(origin, radius[0], mat))
	return nil
}

func (p *parser) parseQuad(path string, line int, block [][]string) error {
	mat, err := p.resolveMaterial(path, line, block)
	if err != nil {
		return err
	}
	originVals, ok := blockValue(block, "origin")
	if !ok {
		return p.emitError(path, line, "quad block requires 'origin'")
	}
	origin, err := parseVec3(originVals)
	if err != nil {
		return p.emitError(path, line, "invalid quad origin: %s", err)
	}
	uVals, ok := blockValue(block, "u")
	if !ok {
		return p.emitError(path, line, "quad block requires 'u'")
	}
	u, err := parseVec3(uVals)
	if err != nil {
		return p.emitError(path, line, "invalid quad u: %s", err)
	}
	vVals, ok := blockValue(block, "v")
	if !ok {
		return p.emitError(path, line, "quad block requires 'v'")
	}
	v, err := parseVec3(vVals)
	if err != nil {
		return p.emitError(path, line, "invalid quad v: %s", err)
	}
	p.scene.Add(object.NewQuad(origin, u, v, mat))
	return nil
}

func (p *parser) parseCuboid(path string, line int, block [][]string) error {
	mat, err := p.resolveMaterial(path, line, block)
	if err != nil {
		return err
	}
	originVals, ok := blockValue(block, "origin")
	if !ok {
		return p.emitError(path, line, "cuboid block requires 'origin'")
	}
	origin, err := parseVec3(originVals)
	if err != nil {
		return p.emitError(path, line, "invalid cuboid origin: %s", err)
	}
	dimVals, ok := blockValue(block, "dimensions")
	if !ok {
		return p.emitError(path, line, "cuboid block requires 'dimensions'")
	}
	dims, err := parseVec3(dimVals)
	if err != nil {
		return p.emitError(path, line, "invalid cuboid dimensions: %s", err)
	}
	cuboid := object.NewCuboid(origin, dims[0], dims[1], dims[2], mat)

	if axisVals, ok := blockValue(block, "rotation_axis"); ok {
		axis, err := parseVec3(axisVals)
		if err != nil {
			return p.emitError(path, line, "invalid cuboid rotation_axis: %s", err)
		}
		angleVals, ok := blockValue(block, "rotation_angle")
		if !ok {
			return p.emitError(path, line, "cuboid rotation_axis requires rotation_angle")
		}
		angle, err := parseFloats(angleVals)
		if err != nil || len(angle) != 1 {
			return p.emitError(path, line, "invalid cuboid rotation_angle")
		}
		cuboid.Rotate(axis, angle[0]*3.14159265/180)
	}

	p.scene.Add(cuboid)
	return nil
}

func (p *parser) parseMesh(sceneDir, path string, line int, block [][]string) error {
	mat, err := p.resolveMaterial(path, line, block)
	if err != nil {
		return err
	}
	fileVals, ok := blockValue(block, "file")
	if !ok || len(fileVals) != 1 {
		return p.emitError(path, line, "mesh block requires a single 'file' value")
	}

	translation := types.Vec3{}
	if v, ok := blockValue(block, "translation"); ok {
		t, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid mesh translation: %s", err)
		}
		translation = t
	}
	scale := types.Vec3{1, 1, 1}
	if v, ok := blockValue(block, "scale"); ok {
		s, err := parseVec3(v)
		if err != nil {
			return p.emitError(path, line, "invalid mesh scale: %s", err)
		}
		scale = s
	}
	invert := false
	if v, ok := blockValue(block, "invert_normals"); ok && len(v) == 1 && v[0] == "true" {
		invert = true
	}

	meshPath := filepath.Join(sceneDir, fileVals[0])
	data, err := texio.LoadMesh(meshPath, translation, scale, invert)
	if err != nil {
		return p.emitError(path, line, "could not load mesh %s: %s", fileVals[0], err)
	}
	data.Freeze()

	faceIdx := make([]int, len(data.Faces))
	for i := range faceIdx {
		faceIdx[i] = i
	}
	p.scene.Add(object.NewMesh(data, faceIdx, mat))
	return nil
}

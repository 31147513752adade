// Package texio is the texture/mesh I/O boundary: it decodes BMP and EXR
// bytes and Wavefront OBJ geometry into the in-core types the renderer
// works with (material.Texture, object.MeshData), so nothing upstream of
// this package touches a file handle or an image codec directly.
package texio

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	openexr "github.com/mrjoshuak/go-openexr"

	"github.com/solstice-render/pathtrace/asset"
	"github.com/solstice-render/pathtrace/material"
	"github.com/solstice-render/pathtrace/types"
)

// LoadTexture decodes the image at path into a float32 RGB texture,
// dispatching on the file extension per the scene format's texture fields.
// path is resolved through asset.Resource, so a texture reference may be a
// local path or an http(s) URL.
func LoadTexture(path string) (*material.Texture, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return loadBMP(path)
	case ".exr":
		return loadEXR(path)
	default:
		return nil, fmt.Errorf("texio: unsupported texture extension %q", filepath.Ext(path))
	}
}

func loadBMP(path string) (*material.Texture, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, err := bmp.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texio: bmp decode: %w", err)
	}
	return textureFromImage(img), nil
}

func textureFromImage(img image.Image) *material.Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]types.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data[y*w+x] = types.Vec3{
				float32(r) / 65535,
				float32(g) / 65535,
				float32(b) / 65535,
			}
		}
	}
	return &material.Texture{Width: uint32(w), Height: uint32(h), Data: data}
}

// loadEXR decodes the R/G/B channels of an OpenEXR file, discarding alpha
// and any auxiliary channels (per the scene format's texture contract).
func loadEXR(path string) (*material.Texture, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, err := openexr.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texio: exr decode: %w", err)
	}

	w, h := img.Width(), img.Height()
	data := make([]types.Vec3, w*h)
	r := img.Channel("R")
	g := img.Channel("G")
	b := img.Channel("B")
	for i := range data {
		data[i] = types.Vec3{r[i], g[i], b[i]}
	}
	return &material.Texture{Width: uint32(w), Height: uint32(h), Data: data}, nil
}

// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
)

// ImportedMaterial represents material properties parsed from a material library file.
type ImportedMaterial struct {
	// Name is the material identifier.
	Name string

	// Diffuse is the diffuse colour (sRGB).
	Diffuse Color

	// Ambient is the ambient reflectance colour (sRGB).
	Ambient Color

	// Specular is the specular reflectance colour (sRGB).
	Specular Color

	// Emissive is the emitted colour (sRGB).
	Emissive Color

	// Shininess is the specular exponent.
	Shininess float32

	// Opacity is the dissolve factor (1.0 = opaque).
	Opacity float32

	// DiffuseTexture is the diffuse map, if the material names one.
	DiffuseTexture *ImportedTexture
}

// ImportedTexture represents texture data referenced by a model or material file.
// Data holds raw encoded image bytes once the file has been read; Pixels holds the decoded RGBA pixels after Decode.
type ImportedTexture struct {
	// Path is the texture path relative to the asset root.
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG).
	Data []byte

	// Pixels contains decoded RGBA pixel data (4 bytes per pixel, row-major order).
	Pixels []byte

	// Width is the texture width in pixels (populated after Decode).
	Width uint32

	// Height is the texture height in pixels (populated after Decode).
	Height uint32
}

// Decoded reports whether Decode has already produced pixel data.
func (t *ImportedTexture) Decoded() bool {
	return t != nil && len(t.Pixels) > 0
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses Data when present, otherwise reads Path from fsys. Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - fsys: the file system to read Path from when Data is empty; may be nil if Data is set
//
// Returns:
//   - error: error if reading or decoding fails
func (t *ImportedTexture) Decode(fsys fs.FS) error {
	if t == nil {
		return fmt.Errorf("texture is nil")
	}

	if len(t.Data) == 0 {
		if t.Path == "" || fsys == nil {
			return fmt.Errorf("texture has neither data nor a readable path")
		}
		data, err := fs.ReadFile(fsys, t.Path)
		if err != nil {
			return fmt.Errorf("failed to read texture file %s: %w", t.Path, err)
		}
		t.Data = data
	}

	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return fmt.Errorf("failed to decode texture %s: %w", t.Path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	t.Pixels = rgba.Pix
	t.Width = uint32(bounds.Dx())
	t.Height = uint32(bounds.Dy())
	return nil
}

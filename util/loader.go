// Package util - source image loading for the CLI. The engine itself
// never performs file I/O; this package is the external collaborator
// that decodes a raster and caps its dimensions before handing it over.
package util

import (
	"bytes"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/texgen-ai/go-pbr/images"
)

// MaxSourceDimension is the default cap on the larger source dimension.
// Larger inputs are downscaled before reaching the engine.
const MaxSourceDimension = 2048

// SourceImage is a decoded source raster plus its file metadata.
type SourceImage struct {
	// Name is the base file name.
	Name string
	// Size is the encoded file size in bytes.
	Size int64
	// Raster is the decoded, dimension-capped RGBA raster.
	Raster *image.RGBA
}

// DecodeSource decodes PNG or JPEG bytes into an RGBA raster capped at
// maxDim on its larger side. maxDim <= 0 uses MaxSourceDimension.
//
// Arguments:
// - data: The encoded image bytes.
// - name: Display name for the source, typically the base file name.
// - maxDim: Maximum allowed width/height after capping.
//
// Returns:
// - The decoded SourceImage.
// - An error if the bytes are not a decodable image.
func DecodeSource(data []byte, name string, maxDim int) (*SourceImage, error) {
	if maxDim <= 0 {
		maxDim = MaxSourceDimension
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode source image %q", name)
	}
	raster := images.CapDimension(images.ToRGBAImage(img), maxDim)
	return &SourceImage{
		Name:   name,
		Size:   int64(len(data)),
		Raster: raster,
	}, nil
}

// LoadSourceFile reads and decodes a single source image file.
func LoadSourceFile(path string, maxDim int) (*SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read source image %q", path)
	}
	return DecodeSource(data, filepath.Base(path), maxDim)
}

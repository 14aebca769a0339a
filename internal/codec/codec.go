// Package codec converts between image files on disk and raster buffers.
// The annealing core is unaware of file formats; this package is the only
// place that touches them.
package codec

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/lemmaandrew/anneal-image/internal/errors"
	"github.com/lemmaandrew/anneal-image/internal/raster"
)

// jpegQuality is used when encoding JPEG output.
const jpegQuality = 90

// Decode reads and decodes the image at path into a buffer. The format is
// sniffed from the file contents; PNG, JPEG, GIF, BMP and TIFF are
// supported.
func Decode(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input image").WithComponent("codec").WithOperation("Decode")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding input image").WithComponent("codec").WithOperation("Decode")
	}
	return raster.FromImage(img), nil
}

// Encode writes the buffer to path, choosing the format from the file
// extension: .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff.
func Encode(path string, buf *raster.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output image").WithComponent("codec").WithOperation("Encode")
	}

	img := buf.ToImage()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		f.Close()
		return errors.Errorf("unsupported output extension %q", filepath.Ext(path)).
			WithComponent("codec").WithOperation("Encode")
	}
	if err != nil {
		f.Close()
		return errors.Wrap(err, "encoding output image").WithComponent("codec").WithOperation("Encode")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing output image").WithComponent("codec").WithOperation("Encode")
	}
	return nil
}

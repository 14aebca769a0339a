// Package raster provides the pixel buffer, the drawable shape variants and
// the alpha-blending compositor used by the annealing loop.
package raster

import (
	"image"
	"image/draw"
)

// Buffer is a rectangular RGBA pixel buffer, 4 bytes per pixel, row-major.
type Buffer struct {
	W, H int
	Pix  []uint8
}

// NewBuffer creates an opaque black buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 0xff
	}
	return b
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.W + x) * 4
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{W: b.W, H: b.H, Pix: append([]uint8(nil), b.Pix...)}
}

// CopyFrom overwrites the buffer's pixels with those of src.
// Both buffers must have identical dimensions.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.Pix, src.Pix)
}

// SameDims reports whether two buffers have identical dimensions.
func (b *Buffer) SameDims(other *Buffer) bool {
	return b.W == other.W && b.H == other.H
}

// ToImage converts the buffer to an image.RGBA sharing no memory with it.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}

// FromImage converts any image.Image into a Buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{W: bounds.Dx(), H: bounds.Dy(), Pix: rgba.Pix}
}

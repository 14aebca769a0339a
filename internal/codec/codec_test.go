package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemmaandrew/anneal-image/internal/raster"
)

func testBuffer() *raster.Buffer {
	b := raster.NewBuffer(6, 4)
	for p := 0; p < 6*4; p++ {
		i := p * 4
		b.Pix[i+0] = uint8(p * 10)
		b.Pix[i+1] = uint8(255 - p*10)
		b.Pix[i+2] = uint8(p * 3)
	}
	return b
}

func TestLosslessRoundTrips(t *testing.T) {
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "image"+ext)
			want := testBuffer()

			require.NoError(t, Encode(path, want))
			got, err := Decode(path)
			require.NoError(t, err)

			assert.Equal(t, want.W, got.W)
			assert.Equal(t, want.H, got.H)
			assert.True(t, bytes.Equal(want.Pix, got.Pix), "pixel data changed in round trip")
		})
	}
}

func TestJPEGRoundTripKeepsDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.jpg")
	want := testBuffer()

	require.NoError(t, Encode(path, want))
	got, err := Decode(path)
	require.NoError(t, err)

	// JPEG is lossy; only the geometry is guaranteed.
	assert.Equal(t, want.W, got.W)
	assert.Equal(t, want.H, got.H)
}

func TestEncodeUnsupportedExtension(t *testing.T) {
	err := Encode(filepath.Join(t.TempDir(), "image.webp"), testBuffer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output extension")
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestDecodeCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err := Decode(path)
	require.Error(t, err)
}

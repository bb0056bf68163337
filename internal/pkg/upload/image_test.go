package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y += 10 {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestGenerateVariants_Widths(t *testing.T) {
	src := pngBytes(t, 3000, 2000)
	v, err := GenerateVariants(src)
	require.NoError(t, err)

	w, h := decodeDims(t, v.Thumbnail)
	assert.Equal(t, 200, w)
	assert.InDelta(t, 133, h, 1) // 2000 * 200/3000, aspect preserved

	w, _ = decodeDims(t, v.Medium)
	assert.Equal(t, 800, w)

	w, _ = decodeDims(t, v.Original)
	assert.Equal(t, 1920, w)
}

func TestGenerateVariants_NeverUpscales(t *testing.T) {
	src := pngBytes(t, 500, 400)
	v, err := GenerateVariants(src)
	require.NoError(t, err)

	w, h := decodeDims(t, v.Original)
	assert.Equal(t, 500, w)
	assert.Equal(t, 400, h)

	w, _ = decodeDims(t, v.Medium)
	assert.Equal(t, 500, w)

	w, _ = decodeDims(t, v.Thumbnail)
	assert.Equal(t, 200, w)
}

func TestGenerateVariants_UnknownFormat(t *testing.T) {
	_, err := GenerateVariants([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
}

func TestGenerateVariants_CorruptData(t *testing.T) {
	src := pngBytes(t, 100, 100)
	truncated := src[:len(src)/3]
	_, err := GenerateVariants(truncated)
	assert.ErrorIs(t, err, ErrCorruptImageData)
}

func TestOptimize(t *testing.T) {
	src := pngBytes(t, 1000, 500)
	out, err := Optimize(src, MediumWidth)
	require.NoError(t, err)
	w, h := decodeDims(t, out)
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)
}

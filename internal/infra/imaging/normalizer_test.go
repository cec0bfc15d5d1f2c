package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"samity/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return img
}

func TestPhotoNormalizer_ScalesDownPreservingAspect(t *testing.T) {
	normalizer := NewPhotoNormalizer(&config.Config{})

	out, err := normalizer.Normalize(encodePNG(t, 500, 1000))
	assert.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestPhotoNormalizer_NeverUpscales(t *testing.T) {
	normalizer := NewPhotoNormalizer(&config.Config{})

	out, err := normalizer.Normalize(encodePNG(t, 100, 80))
	assert.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestPhotoNormalizer_ConvertsToJPEG(t *testing.T) {
	normalizer := NewPhotoNormalizer(&config.Config{})

	out, err := normalizer.Normalize(encodePNG(t, 40, 40))
	assert.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestPhotoNormalizer_UndecodableInput(t *testing.T) {
	normalizer := NewPhotoNormalizer(&config.Config{})

	out, err := normalizer.Normalize([]byte("not an image at all"))
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestPhotoNormalizer_ConfiguredBound(t *testing.T) {
	normalizer := NewPhotoNormalizer(&config.Config{
		Photo: &config.PhotoConfig{MaxDimension: 100, JPEGQuality: 80},
	})

	out, err := normalizer.Normalize(encodePNG(t, 400, 200))
	assert.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

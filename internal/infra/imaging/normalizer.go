// Package imaging provides the profile photo normalizer.
package imaging

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"samity/config"
	"samity/internal/domain/service"
)

const (
	defaultMaxDimension = 300
	defaultJPEGQuality  = 70
)

// photoNormalizer bounds uploaded photos by a maximum dimension and
// re-encodes them as JPEG. Images are never scaled up.
type photoNormalizer struct {
	maxDimension int
	jpegQuality  int
}

// NewPhotoNormalizer is the constructor for photoNormalizer.
func NewPhotoNormalizer(cfg *config.Config) service.PhotoNormalizer {
	maxDim := defaultMaxDimension
	quality := defaultJPEGQuality
	if cfg.Photo != nil {
		if cfg.Photo.MaxDimension > 0 {
			maxDim = cfg.Photo.MaxDimension
		}
		if cfg.Photo.JPEGQuality > 0 {
			quality = cfg.Photo.JPEGQuality
		}
	}

	return &photoNormalizer{maxDimension: maxDim, jpegQuality: quality}
}

// Normalize decodes src, scales it down if needed and returns JPEG bytes.
func (n *photoNormalizer) Normalize(src []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	img = n.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: n.jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}

	return buf.Bytes(), nil
}

// fit scales img down to the configured bound, preserving aspect ratio.
// Images already within the bound are returned unchanged.
func (n *photoNormalizer) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= n.maxDimension && bounds.Dy() <= n.maxDimension {
		return img
	}

	return imaging.Fit(img, n.maxDimension, n.maxDimension, imaging.Lanczos)
}

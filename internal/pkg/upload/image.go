package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	ThumbnailWidth = 200
	MediumWidth    = 800
	OriginalWidth  = 1920

	jpegQuality = 80
)

// Variants holds the resized derivatives of an uploaded image.
type Variants struct {
	Thumbnail []byte
	Medium    []byte
	Original  []byte
}

// GenerateVariants decodes src and produces the three fixed-width
// derivatives, preserving aspect ratio and never upscaling past the
// source width.
func GenerateVariants(src []byte) (*Variants, error) {
	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	thumb, err := encodeResized(img, ThumbnailWidth)
	if err != nil {
		return nil, err
	}
	medium, err := encodeResized(img, MediumWidth)
	if err != nil {
		return nil, err
	}
	original, err := encodeResized(img, OriginalWidth)
	if err != nil {
		return nil, err
	}

	return &Variants{Thumbnail: thumb, Medium: medium, Original: original}, nil
}

// Optimize re-encodes src at the given target width. Used for single
// optimized buffers handed to the remote uploader.
func Optimize(src []byte, width uint) ([]byte, error) {
	img, err := decode(src)
	if err != nil {
		return nil, err
	}
	return encodeResized(img, width)
}

func decode(src []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImageFormat
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptImageData, err)
	}
	return img, nil
}

func encodeResized(img image.Image, width uint) ([]byte, error) {
	if int(width) < img.Bounds().Dx() {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode variant: %w", err)
	}
	return buf.Bytes(), nil
}

// Package source loads the still image a clip is rendered from.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Source supplies the base image for a render.
type Source interface {
	Image() (image.Image, error)
	Close() error
}

// Open picks a source implementation by file extension: PDF pages go
// through MuPDF, everything else through the image decoders.
func Open(path string, pdfPage int, pdfDPI int) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path, pdfPage, pdfDPI)
	}
	return NewImageSource(path), nil
}

// ImageSource decodes a still image from disk. PNG, JPEG and WebP are
// supported.
type ImageSource struct {
	path string
}

func NewImageSource(path string) *ImageSource {
	return &ImageSource{path: path}
}

func (s *ImageSource) Image() (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(s.path), ".webp") {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		img, err := webp.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode webp %s: %w", filepath.Base(s.path), err)
		}
		return img, nil
	}

	img, err := imaging.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(s.path), err)
	}
	return img, nil
}

func (s *ImageSource) Close() error { return nil }

// maxSourceDimension caps the working image size; annotating a huge
// scan at full resolution buys nothing once it is scaled into a
// 1920-wide frame.
const maxSourceDimension = 3840

// Normalize downscales oversized images, preserving aspect ratio.
func Normalize(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSourceDimension && b.Dy() <= maxSourceDimension {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxSourceDimension, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxSourceDimension, imaging.Lanczos)
}

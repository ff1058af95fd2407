package ioutils

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/aagbemuko/imgresize/internal/model"
)

// Resampling filters understood by ImageService.
const (
	CatmullRom = "catmullrom"
	Bicubic    = "bicubic"
	Lanczos    = "lanczos"
)

// ImageOptions configures an ImageService.
type ImageOptions struct {
	// Resampler is one of CatmullRom (default), Bicubic or Lanczos.
	Resampler string

	// JPEGQuality is used when encoding JPEG output. Zero means 90.
	JPEGQuality int
}

// ImageService decodes, scales and encodes image files.
//
// ImageService is used to:
//   - Decode JPEG, PNG, GIF, BMP, TIFF and WebP sources
//   - Scale images to exact dimensions with the configured filter
//   - Encode output in the format named by the output file's extension
//
// Example usage:
//
//	svc, _ := NewImageService(ImageOptions{})
//
//	img, _ := svc.Decode("/photos/a.jpg")
//	err := svc.Encode(svc.Scale(img, 2000, 1500), "/out/re_a.jpg")
type ImageService struct {
	scale   func(img image.Image, width, height int) image.Image
	quality int
}

// NewImageService creates a new ImageService.
//
// An error is returned for an unknown resampler name.
func NewImageService(opts ImageOptions) (*ImageService, error) {
	var scale func(image.Image, int, int) image.Image
	switch opts.Resampler {
	case "", CatmullRom:
		scale = scaleCatmullRom
	case Bicubic:
		scale = scaleBicubic
	case Lanczos:
		scale = scaleLanczos
	default:
		return nil, fmt.Errorf("unknown resampler %q", opts.Resampler)
	}

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = 90
	}

	return &ImageService{scale: scale, quality: quality}, nil
}

// Decode reads and decodes the image file at path.
func (s *ImageService) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.Error{Kind: model.Codec, Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &model.Error{Kind: model.Codec, Op: "decode", Path: path, Err: err}
	}
	return img, nil
}

// Scale returns img resized to exactly width x height.
// The aspect ratio is not preserved.
func (s *ImageService) Scale(img image.Image, width, height int) image.Image {
	return s.scale(img, width, height)
}

// Encode writes img to path, in the format named by the path's extension.
//
// An existing file at path is truncated and overwritten. The extension is
// matched case-insensitively: jpg/jpeg, png, gif, bmp and tif/tiff are
// supported.
func (s *ImageService) Encode(img image.Image, path string) (err error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !CanEncode(ext) {
		return &model.Error{Kind: model.Codec, Op: "encode", Path: path, Err: fmt.Errorf("no encoder for format %q", ext)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &model.Error{Kind: model.Codec, Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &model.Error{Kind: model.Codec, Op: "close", Path: path, Err: cerr}
		}
	}()

	switch ext {
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: s.quality})
	case "png":
		err = png.Encode(f, img)
	case "gif":
		err = gif.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tif", "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return &model.Error{Kind: model.Codec, Op: "encode", Path: path, Err: err}
	}
	return nil
}

// CanEncode reports whether ImageService can write the format named by a
// lower-case extension without the dot.
func CanEncode(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff":
		return true
	}
	return false
}

// scaleCatmullRom uses Catmull-Rom, the same filter used for cover art.
func scaleCatmullRom(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func scaleBicubic(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Bicubic)
}

func scaleLanczos(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

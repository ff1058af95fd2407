// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Listing the recognized image files of a directory
//   - Decoding, scaling and encoding images
//
// # Listing Images
//
// ListImages matches extensions case-sensitively and does not recurse:
//
//	files, err := ioutils.ListImages("/photos", []string{"jpg", "PNG"})
//
// # Image Processing
//
// The ImageService implements the codec used by the resize engine:
//
//	svc, _ := ioutils.NewImageService(ioutils.ImageOptions{Resampler: "catmullrom", JPEGQuality: 90})
//
//	img, _ := svc.Decode("/photos/a.jpg")
//	small := svc.Scale(img, 800, 600)
//	err := svc.Encode(small, "/resized/re_a.png") // PNG, chosen by extension
package ioutils

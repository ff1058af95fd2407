package model

import (
	"path/filepath"
	"strings"
)

// OutputPath computes the path a resized copy of src is written to.
//
// The file is placed directly under destDir, its name prefixed with
// prefix. When format is non-empty it replaces the original extension.
//
// Example:
//
//	OutputPath("/in/photo.jpg", "/out", "re_", "")    // "/out/re_photo.jpg"
//	OutputPath("/in/photo.jpg", "/out", "re_", "png") // "/out/re_photo.png"
func OutputPath(src, destDir, prefix, format string) string {
	name := filepath.Base(src)
	if format != "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.TrimPrefix(format, ".")
	}
	return filepath.Join(destDir, prefix+name)
}

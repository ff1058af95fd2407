// Package ioutils provides file system utilities for imgresize.
package ioutils

import (
	"os"
	"path/filepath"
	"strings"
)

// ListImages returns the files directly under dir whose extension is one
// of exts.
//
// Extensions are given without the leading dot and compared
// case-sensitively, so "jpg" does not match "photo.JPG". Subdirectories
// are neither searched nor returned, even when their name matches.
//
// Results are grouped in the order of exts; within a group they follow
// directory order. An empty result is not an error.
//
// Example:
//
//	// dir holds a.jpg, b.PNG, c.txt, d.bmp
//	files, _ := ListImages(dir, []string{"jpg", "PNG"})
//	// files = [dir/a.jpg dir/b.PNG]
func ListImages(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	seen := make(map[string]bool)
	for _, ext := range exts {
		suffix := "." + strings.TrimPrefix(ext, ".")
		if seen[suffix] {
			continue
		}
		seen[suffix] = true

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != suffix {
				continue
			}
			if entry.Type()&os.ModeSymlink != 0 {
				// Follow links, but only to regular files.
				info, err := os.Stat(filepath.Join(dir, entry.Name()))
				if err != nil || info.IsDir() {
					continue
				}
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

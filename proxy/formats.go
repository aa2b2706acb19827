package proxy

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"

	// registers decoders beyond those imaging pulls in
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultExt is appended to paths given without an extension.
const DefaultExt = ".png"

// withDefaultExt returns path with DefaultExt added if it has no extension.
func withDefaultExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExt
	}
	return path
}

// CheckWritable reports whether path names a format that Save can write.
func CheckWritable(path string) error {
	if _, err := imaging.FormatFromFilename(withDefaultExt(path)); err != nil {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return nil
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package resource loads image resources for the clock layers.
package resource

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for files that are not in a registered image
// format.
var ErrUnsupported = errors.New("resource: unsupported image format")

// Load decodes the image at path. An empty path returns a nil image and
// no error, meaning the caller should use its built-in default.
func Load(fs afero.Fs, path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
		}
		return nil, fmt.Errorf("resource: decoding %s: %w", path, err)
	}
	return img, nil
}

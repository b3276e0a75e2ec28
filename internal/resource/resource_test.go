// SPDX-License-Identifier: Unlicense OR MIT

package resource

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, fs afero.Fs, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0o644))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/art/dial.png", 30, 20)
	img, err := Load(fs, "/art/dial.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestLoadEmptyPath(t *testing.T) {
	img, err := Load(afero.NewMemMapFs(), "")
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "/missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, afero.WriteFile(fs, "/notes.txt", []byte("not an image"), 0o644))
	_, err = Load(fs, "/notes.txt")
	assert.ErrorIs(t, err, ErrUnsupported)
}

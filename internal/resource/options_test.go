// SPDX-License-Identifier: Unlicense OR MIT

package resource

import (
	"image"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imankur/analogclock/clockface"
	"github.com/imankur/analogclock/internal/config"
)

func TestLoadOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/dial.png", 50, 50)

	cfg := config.Default()
	cfg.Images.Dial = "/dial.png"
	opts, err := LoadOptions(fs, cfg)
	require.NoError(t, err)
	assert.True(t, opts.ShowSecondHand)
	require.NotNil(t, opts.Dial)
	assert.Equal(t, image.Rect(0, 0, 50, 50), opts.Dial.Bounds())
	assert.Nil(t, opts.Hour)

	cfg.Images.Hour = "/missing.png"
	_, err = LoadOptions(fs, cfg)
	assert.ErrorIs(t, err, clockface.ErrResourceResolution)
}

// SPDX-License-Identifier: Unlicense OR MIT

package resource

import (
	"fmt"
	"image"

	"github.com/spf13/afero"

	"github.com/imankur/analogclock/clockface"
	"github.com/imankur/analogclock/internal/config"
)

// LoadOptions builds widget options from cfg, loading every configured
// layer image from fs.
func LoadOptions(fs afero.Fs, cfg *config.Config) (clockface.Options, error) {
	opts := clockface.Options{ShowSecondHand: cfg.SecondHand()}
	layers := []struct {
		path string
		dst  *image.Image
	}{
		{cfg.Images.Dial, &opts.Dial},
		{cfg.Images.Hour, &opts.Hour},
		{cfg.Images.Minute, &opts.Minute},
		{cfg.Images.Second, &opts.Second},
	}
	for _, l := range layers {
		img, err := Load(fs, l.path)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", clockface.ErrResourceResolution, err)
		}
		*l.dst = img
	}
	return opts, nil
}

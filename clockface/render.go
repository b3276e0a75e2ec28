// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/io/semantic"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/imankur/analogclock/clockface/art"
)

// Measure returns the minimum size of the clock: the natural size of the
// dial, or the minimum constraint if that is larger.
func (c *ClockFace) Measure(cs layout.Constraints) image.Point {
	sz := c.layers[art.Dial].Size
	if cs.Min.X > sz.X {
		sz.X = cs.Min.X
	}
	if cs.Min.Y > sz.Y {
		sz.Y = cs.Min.Y
	}
	return sz
}

// Layout draws the clock at the time of the last tick.
func (c *ClockFace) Layout(gtx layout.Context) layout.Dimensions {
	least := c.Measure(gtx.Constraints)
	size := gtx.Constraints.Constrain(image.Pt(
		DefaultSize(least.X, gtx.Constraints.Max.X),
		DefaultSize(least.Y, gtx.Constraints.Max.Y),
	))
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	semantic.DescriptionOp(c.desc).Add(gtx.Ops)

	p := c.Plan(size)
	defer op.Offset(p.Center).Push(gtx.Ops).Pop()
	if p.Scale < 1 {
		scale := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(p.Scale, p.Scale))
		defer op.Affine(scale).Push(gtx.Ops).Pop()
	}
	c.layers[art.Dial].draw(gtx.Ops)
	for _, s := range p.Hands {
		rot := f32.Affine2D{}.Rotate(f32.Point{}, radians(s.Rotate))
		defer op.Affine(rot).Push(gtx.Ops).Pop()
		c.layers[s.Layer].draw(gtx.Ops)
	}
	return layout.Dimensions{Size: size}
}

func radians(deg float32) float32 {
	return deg * math.Pi / 180
}

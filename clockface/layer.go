// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"image"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// Layer is an image placed so that its center is at the origin.
type Layer struct {
	Src paint.ImageOp
	// Size is the natural size of Src in pixels.
	Size image.Point
	// Bounds is the placement of Src, centered on the origin.
	Bounds image.Rectangle
}

// NewLayer converts img and centers it on the origin.
func NewLayer(img image.Image) Layer {
	src := paint.NewImageOp(img)
	sz := src.Size()
	mid := sz.Div(2)
	return Layer{
		Src:    src,
		Size:   sz,
		Bounds: image.Rectangle{Min: mid.Mul(-1), Max: mid},
	}
}

func (l Layer) draw(ops *op.Ops) {
	defer op.Offset(l.Bounds.Min).Push(ops).Pop()
	defer clip.Rect{Max: l.Bounds.Size()}.Push(ops).Pop()
	l.Src.Add(ops)
	paint.PaintOp{}.Add(ops)
}

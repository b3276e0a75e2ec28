// SPDX-License-Identifier: Unlicense OR MIT

// Package art draws the built-in clock artwork.
//
// Every image is a square of the same size with the pivot at its center,
// and hands point at twelve o'clock, so the images can be stacked and
// rotated about a shared center.
package art

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Role identifies one of the clock layers.
type Role uint8

const (
	Dial Role = iota
	Hour
	Minute
	Second
)

// DefaultSize is the edge length in pixels of the built-in images.
const DefaultSize = 240

var ErrSize = errors.New("art: image size must be positive")

var (
	rimColor    = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	faceColor   = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf5, A: 0xff}
	markColor   = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	handColor   = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	secondColor = color.NRGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
)

func (r Role) String() string {
	switch r {
	case Dial:
		return "dial"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Render draws the built-in image for role at the given size.
func Render(role Role, size int) (image.Image, error) {
	if size <= 0 {
		return nil, ErrSize
	}
	switch role {
	case Dial:
		return dial(size), nil
	case Hour:
		return hand(size, 0.28, 0.035, handColor), nil
	case Minute:
		return hand(size, 0.40, 0.025, handColor), nil
	case Second:
		return hand(size, 0.44, 0.008, secondColor), nil
	default:
		return nil, fmt.Errorf("art: unknown role %v", role)
	}
}

func dial(size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	c := s / 2
	fill(dst, rimColor, circle(c, c, s*0.49))
	fill(dst, faceColor, circle(c, c, s*0.46))
	for i := 0; i < 60; i++ {
		angle := float64(i) * 6
		width, from := s*0.004, s*0.42
		if i%5 == 0 {
			width, from = s*0.012, s*0.37
		}
		fill(dst, markColor, bar(c, c, angle, width, from, s*0.44))
	}
	fill(dst, handColor, circle(c, c, s*0.02))
	return dst
}

// hand draws a bar from slightly behind the pivot towards twelve o'clock.
// length and halfWidth are fractions of size.
func hand(size int, length, halfWidth float32, col color.Color) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	c := s / 2
	fill(dst, col, bar(c, c, 0, s*halfWidth, -s*0.06, s*length))
	fill(dst, col, circle(c, c, s*halfWidth*1.6))
	return dst
}

type point struct{ x, y float32 }

// bar returns a rectangle along the ray from (cx, cy) at angle degrees
// clockwise from twelve o'clock, spanning distances from..to.
func bar(cx, cy float32, angle float64, halfWidth, from, to float32) []point {
	rad := angle * math.Pi / 180
	dx, dy := float32(math.Sin(rad)), -float32(math.Cos(rad))
	nx, ny := -dy, dx
	return []point{
		{cx + dx*from + nx*halfWidth, cy + dy*from + ny*halfWidth},
		{cx + dx*to + nx*halfWidth, cy + dy*to + ny*halfWidth},
		{cx + dx*to - nx*halfWidth, cy + dy*to - ny*halfWidth},
		{cx + dx*from - nx*halfWidth, cy + dy*from - ny*halfWidth},
	}
}

func circle(cx, cy, r float32) []point {
	const segments = 96
	pts := make([]point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = point{cx + r*float32(math.Cos(a)), cy + r*float32(math.Sin(a))}
	}
	return pts
}

func fill(dst *image.RGBA, col color.Color, pts []point) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		z.LineTo(p.x, p.y)
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// OverlayShape is one region to draw on a debug overlay.
type OverlayShape struct {
	// Label is drawn at the top-left corner of Box.
	Label string

	// Outline is a closed polygon in image coordinates. May be empty.
	Outline []image.Point

	// Box is the bounding rectangle drawn around the shape.
	Box image.Rectangle
}

// DrawOverlay draws shape outlines, bounding boxes and labels onto a copy of img.
//
// Each shape gets its own hue so neighbouring regions are easy to tell apart.
// The colours are spaced evenly in HCL space, so the same number of shapes
// always produces the same palette.
func DrawOverlay(img image.Image, shapes []OverlayShape) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	palette := overlayPalette(len(shapes))
	for i, s := range shapes {
		c := palette[i]
		for j := range s.Outline {
			drawLine(result, s.Outline[j], s.Outline[(j+1)%len(s.Outline)], c)
		}
		if !s.Box.Empty() {
			corners := []image.Point{
				s.Box.Min,
				{X: s.Box.Max.X - 1, Y: s.Box.Min.Y},
				{X: s.Box.Max.X - 1, Y: s.Box.Max.Y - 1},
				{X: s.Box.Min.X, Y: s.Box.Max.Y - 1},
			}
			for j := range corners {
				drawLine(result, corners[j], corners[(j+1)%len(corners)], c)
			}
		}
		if s.Label != "" {
			drawLabel(result, s.Box.Min.X+2, s.Box.Min.Y+2, s.Label, c)
		}
	}

	return result
}

func overlayPalette(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		hue := 360 * float64(i) / float64(n)
		r, g, b := colorful.Hcl(hue, 0.7, 0.6).Clamped().RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// drawLine draws a 1-pixel line using Bresenham's algorithm.
// Pixels outside the image are skipped.
func drawLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// drawLabel draws text on a dark backing box with its top-left corner at (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	backing := image.Rect(x-1, y-1, x+width+1, y+height+1).Intersect(img.Rect)
	draw.Draw(img, backing, image.NewUniform(color.RGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"
)

// ErrEmptyCrop is returned when a crop rectangle has no pixels inside the image.
var ErrEmptyCrop = errors.New("crop region is empty")

// PadRect grows r by pad pixels on every side and clamps it to bounds.
func PadRect(r image.Rectangle, pad int, bounds image.Rectangle) image.Rectangle {
	return r.Inset(-pad).Intersect(bounds)
}

// CropMasked cuts rect out of img and replaces the alpha channel with mask.
//
// The mask must have the same size as rect; it is addressed with origin (0,0).
// The returned image has origin (0,0) and keeps the source RGB values
// unchanged, so fully transparent pixels still carry their original color.
func CropMasked(img image.Image, rect image.Rectangle, mask *image.Alpha) (*image.NRGBA, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, ErrEmptyCrop
	}
	if mask.Bounds().Size() != rect.Size() {
		return nil, fmt.Errorf("mask size %v does not match crop size %v", mask.Bounds().Size(), rect.Size())
	}

	cropped := imaging.Crop(img, rect)
	mb := mask.Bounds()
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			cropped.Pix[cropped.PixOffset(x, y)+3] = mask.Pix[mask.PixOffset(x+mb.Min.X, y+mb.Min.Y)]
		}
	}
	return cropped, nil
}

// OpaqueMask returns a fully opaque mask of the given size.
func OpaqueMask(size image.Point) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return mask
}

// PolygonMask fills a closed polygon into a mask of the given size.
//
// Points are pixel coordinates in the source image; origin is subtracted so
// the polygon lands in mask-local coordinates. The outline runs through pixel
// centres and every pixel the filled polygon touches becomes fully opaque, so
// the outline pixels themselves are part of the mask.
//
// Polygons with fewer than three points produce an empty mask.
func PolygonMask(size image.Point, points []image.Point, origin image.Point) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	if len(points) < 3 || size.X <= 0 || size.Y <= 0 {
		return mask
	}

	z := vector.NewRasterizer(size.X, size.Y)
	z.DrawOp = draw.Src
	start := points[0].Sub(origin)
	z.MoveTo(float32(start.X)+0.5, float32(start.Y)+0.5)
	for _, p := range points[1:] {
		q := p.Sub(origin)
		z.LineTo(float32(q.X)+0.5, float32(q.Y)+0.5)
	}
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for i, a := range mask.Pix {
		if a > 0 {
			mask.Pix[i] = 0xff
		}
	}
	return mask
}

package detection

import (
	"image"
	"testing"
)

// createMask returns a blank mask of the given size.
func createMask(t *testing.T, width, height int) *image.Gray {
	t.Helper()
	return image.NewGray(image.Rect(0, 0, width, height))
}

// fillRect sets every pixel of r to foreground.
func fillRect(mask *image.Gray, r image.Rectangle) {
	r = r.Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			mask.Pix[mask.PixOffset(x, y)] = 255
		}
	}
}

// strokeRect draws a rectangular ring of the given thickness inside r.
func strokeRect(mask *image.Gray, r image.Rectangle, thickness int) {
	fillRect(mask, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness))
	fillRect(mask, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y))
	fillRect(mask, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y))
	fillRect(mask, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y))
}

// candidateAt builds a candidate with a square bounding box of the given
// side centred on (cx, cy).
func candidateAt(cx, cy, side int, area float64) Candidate {
	origin := image.Pt(cx-side/2, cy-side/2)
	bounds := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(side, side))}
	contour := Polygon{
		bounds.Min,
		{X: bounds.Max.X - 1, Y: bounds.Min.Y},
		{X: bounds.Max.X - 1, Y: bounds.Max.Y - 1},
		{X: bounds.Min.X, Y: bounds.Max.Y - 1},
	}
	return Candidate{
		Contour:  contour,
		Polygon:  contour,
		Area:     area,
		Bounds:   bounds,
		Centroid: image.Pt(cx, cy),
	}
}

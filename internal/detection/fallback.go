package detection

import "image"

// DefaultFallbackRows is the 3-4-3 staggered layout of the reference map.
var DefaultFallbackRows = []int{3, 4, 3}

// FallbackGrid builds a synthetic set of square regions for an image of the
// given size. It depends only on the dimensions, so the same size always
// yields the same regions.
//
// # Layout
//
// The image is split into len(rows) bands of height h = height/len(rows)
// (integer division). Row r holds rows[r] square cells of side h. Cell c of
// row r is centred on:
//
//	cx = width/(rows[r]+1) * (c+1)
//	cy = h/2 + r*h
//
// Each cell's top-left corner is (cx - h/2, cy - h/2), clamped to zero.
// Regions are returned row by row, left to right, with IDs unset.
func FallbackGrid(width, height int, rows []int) []Region {
	if len(rows) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	rowHeight := height / len(rows)
	cellSize := rowHeight

	total := 0
	for _, cols := range rows {
		total += cols
	}
	regions := make([]Region, 0, total)

	for r, cols := range rows {
		if cols <= 0 {
			continue
		}
		slot := width / (cols + 1)
		cy := rowHeight/2 + r*rowHeight
		for c := 0; c < cols; c++ {
			cx := slot * (c + 1)
			x := max(0, cx-cellSize/2)
			y := max(0, cy-cellSize/2)
			rect := image.Rect(x, y, x+cellSize, y+cellSize)

			regions = append(regions, Region{
				Centroid: image.Point{X: cx, Y: cy},
				Bounds:   rect,
				Outline:  RectOutline{Rect: rect},
			})
		}
	}
	return regions
}

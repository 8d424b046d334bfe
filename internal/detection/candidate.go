package detection

import (
	"image"
	"sort"
)

// Candidate is a traced shape that has not yet been accepted as a region.
type Candidate struct {
	// Contour is the traced outer boundary with straight runs compressed.
	// Area, Bounds and Centroid are measured on this outline.
	Contour Polygon

	// Polygon is Contour simplified with Douglas-Peucker.
	Polygon Polygon

	// Area is the area enclosed by Contour in square pixels.
	Area float64

	// Bounds is the pixel bounding box of Contour.
	Bounds image.Rectangle

	// Centroid is the centre of mass of Contour, (0,0) when Area is 0.
	Centroid image.Point

	// Order is the zero-based discovery index in raster-scan order.
	Order int
}

// AspectRatio returns the bounding box width divided by its height.
func (c Candidate) AspectRatio() float64 {
	if c.Bounds.Dy() == 0 {
		return 0
	}
	return float64(c.Bounds.Dx()) / float64(c.Bounds.Dy())
}

// ExtractOptions controls contour simplification.
type ExtractOptions struct {
	// SimplifyRatio is the Douglas-Peucker tolerance as a fraction of each
	// contour's own perimeter.
	SimplifyRatio float64
}

// DefaultExtractOptions returns a tolerance of 0.5% of the perimeter.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{SimplifyRatio: 0.005}
}

// ExtractCandidates traces every external contour of mask and describes it.
//
// Parameters:
//   - mask: Binary mask; non-zero pixels are foreground.
//   - opts: Simplification settings.
//
// Returns candidates sorted by area, largest first. Candidates with equal
// area keep their discovery order.
func ExtractCandidates(mask *image.Gray, opts ExtractOptions) []Candidate {
	contours := FindExternalContours(mask)

	candidates := make([]Candidate, 0, len(contours))
	for i, contour := range contours {
		candidates = append(candidates, Candidate{
			Contour:  contour,
			Polygon:  Simplify(contour, opts.SimplifyRatio*contour.Perimeter()),
			Area:     contour.Area(),
			Bounds:   contour.Bounds(),
			Centroid: contour.Centroid(),
			Order:    i,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Area > candidates[j].Area
	})
	return candidates
}

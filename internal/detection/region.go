package detection

import (
	"fmt"
	"image"
	"sort"
)

// Outline is the shape a region is cut along. It is either a PolygonOutline
// traced from the image or a RectOutline produced by the fallback grid.
type Outline interface {
	// Box returns the bounding rectangle of the outline.
	Box() image.Rectangle

	isOutline()
}

// PolygonOutline is a traced region boundary. Tiles are masked to its shape.
type PolygonOutline struct {
	Points Polygon
}

// Box returns the pixel bounding box of the polygon.
func (o PolygonOutline) Box() image.Rectangle { return o.Points.Bounds() }

func (PolygonOutline) isOutline() {}

// RectOutline is a synthetic rectangular region. Tiles are not shape-masked.
type RectOutline struct {
	Rect image.Rectangle
}

// Box returns the rectangle itself.
func (o RectOutline) Box() image.Rectangle { return o.Rect }

func (RectOutline) isOutline() {}

// Region is an accepted map subdivision.
type Region struct {
	// ID is the 1-based reading-order sequence number. Zero until
	// OrderRegions has run.
	ID int

	// Centroid is the region centre used for ordering and layout.
	Centroid image.Point

	// Bounds is the bounding box of the outline, without padding.
	Bounds image.Rectangle

	// Outline selects how the region's tile is masked.
	Outline Outline
}

// IsFallback reports whether the region came from the fallback grid.
func (r Region) IsFallback() bool {
	_, ok := r.Outline.(RectOutline)
	return ok
}

// Name returns the stable identifier used in layout documents, e.g. "region_03".
func (r Region) Name() string {
	return fmt.Sprintf("region_%02d", r.ID)
}

// OrderRegions returns a copy of regions in reading order, top-to-bottom then
// left-to-right by centroid, with IDs assigned from 1.
//
// The sort is stable, so regions with identical centroids keep their input order.
func OrderRegions(regions []Region) []Region {
	ordered := make([]Region, len(regions))
	copy(ordered, regions)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Centroid, ordered[j].Centroid
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	for i := range ordered {
		ordered[i].ID = i + 1
	}
	return ordered
}

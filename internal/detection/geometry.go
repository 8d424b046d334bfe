package detection

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a closed outline. The last point implicitly connects to the first.
type Polygon []image.Point

// ring converts the polygon to a closed orb ring.
func (p Polygon) ring() orb.Ring {
	r := make(orb.Ring, 0, len(p)+1)
	for _, pt := range p {
		r = append(r, orb.Point{float64(pt.X), float64(pt.Y)})
	}
	if len(p) > 0 {
		r = append(r, r[0])
	}
	return r
}

// Area returns the unsigned area enclosed by the polygon.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	return math.Abs(planar.Area(p.ring()))
}

// Perimeter returns the length of the closed outline.
func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	return planar.Length(p.ring())
}

// Bounds returns the smallest rectangle containing every point, treating each
// point as a whole pixel. A polygon of one point has a 1x1 bounding box.
func (p Polygon) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p[0], Max: p[0].Add(image.Pt(1, 1))}
	for _, pt := range p[1:] {
		r = r.Union(image.Rectangle{Min: pt, Max: pt.Add(image.Pt(1, 1))})
	}
	return r
}

// Centroid returns the centre of mass of the enclosed area, truncated to
// integer pixels. Degenerate polygons with zero area return (0, 0).
func (p Polygon) Centroid() image.Point {
	if len(p) < 3 {
		return image.Point{}
	}
	c, area := planar.CentroidArea(p.ring())
	if area == 0 {
		return image.Point{}
	}
	return image.Point{X: int(c[0]), Y: int(c[1])}
}

// Translate returns a copy of the polygon moved by d.
func (p Polygon) Translate(d image.Point) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Add(d)
	}
	return out
}

func distance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

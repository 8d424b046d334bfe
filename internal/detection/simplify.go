package detection

import (
	"image"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces a closed polygon with the Douglas-Peucker algorithm.
//
// Points closer than epsilon to the simplified outline are dropped. The
// polygon is first split at the point farthest from its first point so both
// halves are reduced as open chains; the result always keeps those two
// points. Polygons with fewer than three points are returned as a copy.
func Simplify(p Polygon, epsilon float64) Polygon {
	n := len(p)
	if n < 3 {
		return append(Polygon(nil), p...)
	}

	far := 0
	best := -1.0
	for i, pt := range p {
		if d := distance(p[0], pt); d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return Polygon{p[0]}
	}

	firstHalf := simplifyChain(p[:far+1], epsilon)
	secondChain := append(append(Polygon(nil), p[far:]...), p[0])
	secondHalf := simplifyChain(secondChain, epsilon)

	out := make(Polygon, 0, len(firstHalf)+len(secondHalf))
	out = append(out, firstHalf[:len(firstHalf)-1]...)
	out = append(out, secondHalf[:len(secondHalf)-1]...)
	return out
}

// simplifyChain reduces an open chain, always keeping both end points.
func simplifyChain(chain Polygon, epsilon float64) Polygon {
	if len(chain) < 3 {
		return append(Polygon(nil), chain...)
	}

	ls := make(orb.LineString, len(chain))
	for i, pt := range chain {
		ls[i] = orb.Point{float64(pt.X), float64(pt.Y)}
	}
	// The simplifier reuses the backing array of ls.
	ls = simplify.DouglasPeucker(epsilon).LineString(ls)

	out := make(Polygon, len(ls))
	for i, pt := range ls {
		out[i] = image.Pt(int(pt[0]), int(pt[1]))
	}
	return out
}

package detection

// FilterOptions holds the acceptance heuristics for candidates.
type FilterOptions struct {
	// MinArea is the smallest contour area, in square pixels, that can be a region.
	MinArea float64

	// MinAspect and MaxAspect bound the bounding box width/height ratio
	// (both exclusive).
	MinAspect float64
	MaxAspect float64

	// DedupDistance is the centroid distance below which a candidate is
	// considered a duplicate of an already accepted region.
	DedupDistance float64
}

// DefaultFilterOptions returns the heuristics tuned for hexagonal map regions.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinArea:       5000,
		MinAspect:     0.5,
		MaxAspect:     2.0,
		DedupDistance: 20,
	}
}

// Verdict explains why a candidate was or was not accepted.
type Verdict int

const (
	Accepted Verdict = iota
	TooSmall
	BadAspect
	Duplicate
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case TooSmall:
		return "too small"
	case BadAspect:
		return "bad aspect ratio"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Judge applies the acceptance policy to one candidate given the regions
// accepted so far. Rules are checked in order: area, aspect ratio, then
// centroid distance to every accepted region.
func Judge(c Candidate, accepted []Region, opts FilterOptions) Verdict {
	if c.Area < opts.MinArea {
		return TooSmall
	}
	if ar := c.AspectRatio(); ar <= opts.MinAspect || ar >= opts.MaxAspect {
		return BadAspect
	}
	for _, r := range accepted {
		if distance(r.Centroid, c.Centroid) < opts.DedupDistance {
			return Duplicate
		}
	}
	return Accepted
}

// FilterCandidates turns candidates into regions, in input order.
//
// Candidates are expected largest-first (as returned by ExtractCandidates),
// so when two shapes share a centroid the larger one is kept. The input is
// not modified. Filtering the accepted candidates a second time yields the
// same regions.
func FilterCandidates(candidates []Candidate, opts FilterOptions) []Region {
	accepted := make([]Region, 0)
	for _, c := range candidates {
		if Judge(c, accepted, opts) != Accepted {
			continue
		}
		accepted = append(accepted, Region{
			Centroid: c.Centroid,
			Bounds:   c.Bounds,
			Outline:  PolygonOutline{Points: c.Contour},
		})
	}
	return accepted
}

// NeedsFallback reports whether the detected set is too small to use.
//
// The whole detected set is replaced, even when most of it is valid.
func NeedsFallback(regions []Region, expected int) bool {
	return len(regions) < expected
}

// Package detection turns a binary outline mask into map regions.
//
// The package implements the decision logic of the map tiler: tracing the
// outer boundary of every ink component, describing each boundary by its area,
// bounding box and centroid, rejecting noise and slivers, merging duplicates,
// and substituting a fixed grid when too few regions survive.
//
// # Pipeline
//
//  1. ExtractCandidates: trace external contours and measure them
//  2. FilterCandidates: drop small or elongated shapes and merge shapes whose
//     centroids nearly coincide
//  3. NeedsFallback / FallbackGrid: replace the detected set with a
//     deterministic rectangular layout when it is too small
//  4. OrderRegions: sort into reading order and assign sequence numbers
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive Min and exclusive Max (image.Rectangle)
//
// # Connectivity
//
// Foreground (ink) pixels are 8-connected. Background pixels are 4-connected
// and everything outside the image counts as background. A component that
// sits inside a hole of another component is not an external contour and is
// ignored, so strokes drawn inside a region never become regions themselves.
//
// # Limitations
//
// The heuristics target one image class: outlined, roughly hexagonal regions
// on a fairly uniform background. Heavily textured illustrations will usually
// end up on the fallback grid.
package detection

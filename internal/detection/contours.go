package detection

import "image"

// neighbours lists the 8 neighbour offsets in clockwise order (screen
// coordinates), starting east.
var neighbours = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
}

// componentMap labels the 8-connected foreground components of a mask.
type componentMap struct {
	width, height int
	labels        []int32 // 0 = background, otherwise component id
	starts        []image.Point
}

func (m *componentMap) label(x, y int) int32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.labels[y*m.width+x]
}

// FindExternalContours traces the outer boundary of every external foreground
// component in mask.
//
// A pixel is foreground when its value is non-zero. Contours are returned in
// discovery order, which follows a raster scan (top-to-bottom, left-to-right)
// of each component's first pixel. Each contour starts at that first pixel and
// runs clockwise; straight horizontal, vertical and diagonal runs are reduced
// to their end points.
func FindExternalContours(mask *image.Gray) []Polygon {
	bounds := mask.Bounds()
	comps := labelComponents(mask)
	if len(comps.starts) == 0 {
		return nil
	}
	external := externalComponents(comps)

	contours := make([]Polygon, 0, len(comps.starts))
	for i, start := range comps.starts {
		id := int32(i + 1)
		if !external[id] {
			continue
		}
		boundary := traceBoundary(comps, id, start)
		contours = append(contours, compressRuns(boundary).Translate(bounds.Min))
	}
	return contours
}

// labelComponents assigns component ids in raster order using an iterative
// 8-connected flood fill. starts[i] is the first pixel of component i+1.
func labelComponents(mask *image.Gray) *componentMap {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	m := &componentMap{
		width:  width,
		height: height,
		labels: make([]int32, width*height),
	}

	fg := func(x, y int) bool {
		return mask.Pix[mask.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)] != 0
	}

	var stack []image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !fg(x, y) || m.labels[y*width+x] != 0 {
				continue
			}
			id := int32(len(m.starts) + 1)
			m.starts = append(m.starts, image.Point{X: x, Y: y})
			m.labels[y*width+x] = id
			stack = append(stack[:0], image.Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range neighbours {
					q := p.Add(d)
					if q.X < 0 || q.Y < 0 || q.X >= width || q.Y >= height {
						continue
					}
					if m.labels[q.Y*width+q.X] != 0 || !fg(q.X, q.Y) {
						continue
					}
					m.labels[q.Y*width+q.X] = id
					stack = append(stack, q)
				}
			}
		}
	}
	return m
}

// externalComponents reports which components touch the background that is
// connected to the outside of the image. Background connectivity is 4-way,
// the dual of 8-way foreground connectivity, so a component enclosed by
// another component's ring is never reached.
func externalComponents(m *componentMap) map[int32]bool {
	width, height := m.width, m.height
	external := make(map[int32]bool)
	outside := make([]bool, width*height)
	var stack []image.Point

	seed := func(x, y int) {
		i := y*width + x
		if id := m.labels[i]; id != 0 {
			external[id] = true
			return
		}
		if !outside[i] {
			outside[i] = true
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}
	for x := 0; x < width; x++ {
		seed(x, 0)
		seed(x, height-1)
	}
	for y := 0; y < height; y++ {
		seed(0, y)
		seed(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4]image.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}} {
			q := p.Add(d)
			if q.X < 0 || q.Y < 0 || q.X >= width || q.Y >= height {
				continue
			}
			i := q.Y*width + q.X
			if id := m.labels[i]; id != 0 {
				external[id] = true
				continue
			}
			if !outside[i] {
				outside[i] = true
				stack = append(stack, q)
			}
		}
	}
	return external
}

// traceBoundary follows the outer boundary of component id with Moore
// neighbour tracing, starting at its first pixel in raster order.
//
// The start pixel's west, north-west, north and north-east neighbours are
// never part of the component, so the search around it begins east. After a
// move in direction d the search at the new pixel begins at d+6 (mod 8),
// which is the last background neighbour examined. Tracing stops when the
// start pixel is about to be left in the same direction as the first move.
func traceBoundary(m *componentMap, id int32, start image.Point) Polygon {
	step := func(p image.Point, from int) (image.Point, int, bool) {
		for i := 0; i < 8; i++ {
			d := (from + i) % 8
			q := p.Add(neighbours[d])
			if m.label(q.X, q.Y) == id {
				return q, d, true
			}
		}
		return p, from, false
	}

	first, dir, ok := step(start, 0)
	if !ok {
		return Polygon{start}
	}

	boundary := Polygon{start}
	p := first
	for {
		q, d, _ := step(p, (dir+6)%8)
		if p == start && q == first {
			break
		}
		boundary = append(boundary, p)
		p, dir = q, d
	}
	return boundary
}

// compressRuns keeps only the points where the chain direction changes.
func compressRuns(pts Polygon) Polygon {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := pts[(i+n-1)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		if cur.Sub(prev) != next.Sub(cur) {
			out = append(out, cur)
		}
	}
	return out
}

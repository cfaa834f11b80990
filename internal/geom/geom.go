// Package geom implements the minimal 2D computational-geometry predicates
// the planning core needs: point-in-polygon, segment-polygon intersection,
// point-to-boundary distance, bounding boxes, and centroids. All predicates
// are purely geometric and time-independent; activation windows live in
// package core.
package geom

import "math"

// Point is a 2D real-coordinate position.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Polygon is a simple (non-self-intersecting, positive-area) closed polygon
// given as an ordered vertex sequence. Validate must be called (or Polygon
// constructed via NewPolygon) before use.
type Polygon struct {
	Vertices []Point
}

// NewPolygon validates and constructs a simple polygon.
func NewPolygon(vertices []Point) (Polygon, error) {
	p := Polygon{Vertices: vertices}
	if err := p.Validate(); err != nil {
		return Polygon{}, err
	}
	return p, nil
}

// Validate rejects degenerate polygons: fewer than 3 vertices, zero area, or
// self-intersecting edges.
func (p Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return errPolygon("polygon must have at least 3 vertices")
	}
	if math.Abs(p.signedArea()) < 1e-12 {
		return errPolygon("polygon has zero area")
	}
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a1, a2 := p.Vertices[i], p.Vertices[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Adjacent edges share an endpoint by construction; skip them.
			if j == i || j == (i+1)%n || (j+1)%n == i {
				continue
			}
			b1, b2 := p.Vertices[j], p.Vertices[(j+1)%n]
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return errPolygon("polygon is self-intersecting")
			}
		}
	}
	return nil
}

func (p Polygon) signedArea() float64 {
	area := 0.0
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Contains reports whether p lies inside or on the boundary of the polygon
// (closed set — boundary counts as inside, per spec boundary convention).
func (poly Polygon) Contains(p Point) bool {
	if poly.onBoundary(p) {
		return true
	}
	n := len(poly.Vertices)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly.Vertices[i], poly.Vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func (poly Polygon) onBoundary(p Point) bool {
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		a, b := poly.Vertices[i], poly.Vertices[(i+1)%n]
		if pointOnSegment(p, a, b) {
			return true
		}
	}
	return false
}

// IntersectsSegment reports whether the closed segment a-b intersects the
// closed polygon (boundary touch counts as intersection — a segment tangent
// to the boundary is treated as intersecting).
func (poly Polygon) IntersectsSegment(a, b Point) bool {
	if poly.Contains(a) || poly.Contains(b) {
		return true
	}
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		e1, e2 := poly.Vertices[i], poly.Vertices[(i+1)%n]
		if segmentsIntersect(a, b, e1, e2) {
			return true
		}
	}
	return false
}

// DistanceToBoundary returns the minimum Euclidean distance from p to the
// polygon's boundary (0 if p lies on the boundary).
func (poly Polygon) DistanceToBoundary(p Point) float64 {
	n := len(poly.Vertices)
	min := math.Inf(1)
	for i := 0; i < n; i++ {
		a, b := poly.Vertices[i], poly.Vertices[(i+1)%n]
		d := distancePointToSegment(p, a, b)
		if d < min {
			min = d
		}
	}
	return min
}

// BoundingBox returns the axis-aligned bounding box (min, max corners).
func (poly Polygon) BoundingBox() (min, max Point) {
	min = poly.Vertices[0]
	max = poly.Vertices[0]
	for _, v := range poly.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}

// Centroid returns the polygon's geometric centroid.
func (poly Polygon) Centroid() Point {
	var cx, cy, area float64
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		a, b := poly.Vertices[i], poly.Vertices[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	area /= 2
	if math.Abs(area) < 1e-12 {
		return poly.Vertices[0]
	}
	return Point{cx / (6 * area), cy / (6 * area)}
}

func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func pointOnSegment(p, a, b Point) bool {
	if math.Abs(orientation(a, b, p)) > 1e-9 {
		return false
	}
	return math.Min(a.X, b.X)-1e-9 <= p.X && p.X <= math.Max(a.X, b.X)+1e-9 &&
		math.Min(a.Y, b.Y)-1e-9 <= p.Y && p.Y <= math.Max(a.Y, b.Y)+1e-9
}

// segmentsIntersect reports whether closed segments a1-a2 and b1-b2
// intersect, including boundary touches (tangency counts as intersection).
func segmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if math.Abs(d1) < 1e-9 && pointOnSegment(a1, b1, b2) {
		return true
	}
	if math.Abs(d2) < 1e-9 && pointOnSegment(a2, b1, b2) {
		return true
	}
	if math.Abs(d3) < 1e-9 && pointOnSegment(b1, a1, a2) {
		return true
	}
	if math.Abs(d4) < 1e-9 && pointOnSegment(b2, a1, a2) {
		return true
	}
	return false
}

// segmentsProperlyIntersect is segmentsIntersect without the endpoint-touch
// cases, used for polygon self-intersection validation (adjacent edges are
// expected to share endpoints and must not be flagged).
func segmentsProperlyIntersect(a1, a2, b1, b2 Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func distancePointToSegment(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq < 1e-12 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{a.X + t*abx, a.Y + t*aby}
	return p.Dist(proj)
}

type errPolygon string

func (e errPolygon) Error() string { return string(e) }

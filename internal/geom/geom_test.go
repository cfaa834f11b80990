package geom

import "testing"

func square() Polygon {
	p, err := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if err != nil {
		panic(err)
	}
	return p
}

func TestContainsBoundaryInclusive(t *testing.T) {
	sq := square()
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{0, 0}, true},  // corner
		{Point{0, 5}, true},  // edge
		{Point{10, 10}, true},
		{Point{-1, 5}, false},
		{Point{11, 5}, false},
	}
	for _, tt := range tests {
		if got := sq.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIntersectsSegmentTangent(t *testing.T) {
	sq := square()
	// Segment tangent to the boundary (runs exactly along the top edge).
	if !sq.IntersectsSegment(Point{-5, 10}, Point{15, 10}) {
		t.Error("segment tangent to boundary should count as intersecting")
	}
	// Segment entirely outside.
	if sq.IntersectsSegment(Point{-5, 20}, Point{15, 20}) {
		t.Error("segment outside polygon should not intersect")
	}
	// Segment crossing through.
	if !sq.IntersectsSegment(Point{-5, 5}, Point{15, 5}) {
		t.Error("segment crossing polygon should intersect")
	}
}

func TestDegeneratePolygonRejected(t *testing.T) {
	_, err := NewPolygon([]Point{{0, 0}, {1, 1}})
	if err == nil {
		t.Error("expected error for polygon with <3 vertices")
	}
	_, err = NewPolygon([]Point{{0, 0}, {1, 0}, {2, 0}})
	if err == nil {
		t.Error("expected error for zero-area (collinear) polygon")
	}
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	sq := square()
	min, max := sq.BoundingBox()
	if min != (Point{0, 0}) || max != (Point{10, 10}) {
		t.Errorf("bbox = %v,%v want (0,0),(10,10)", min, max)
	}
	c := sq.Centroid()
	if c.Dist(Point{5, 5}) > 1e-9 {
		t.Errorf("centroid = %v want (5,5)", c)
	}
}

func TestDistanceToBoundary(t *testing.T) {
	sq := square()
	if d := sq.DistanceToBoundary(Point{5, 5}); d != 5 {
		t.Errorf("distance from center = %v want 5", d)
	}
	if d := sq.DistanceToBoundary(Point{0, 0}); d != 0 {
		t.Errorf("distance from corner = %v want 0", d)
	}
}

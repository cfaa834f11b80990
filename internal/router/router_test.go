package router

import (
	"testing"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/geom"
)

func mustZone(t *testing.T, id core.ZoneID, verts []geom.Point, start, end time.Time) *core.ExclusionZone {
	t.Helper()
	z, err := core.NewExclusionZone(id, verts, start, end)
	if err != nil {
		t.Fatalf("NewExclusionZone: %v", err)
	}
	return z
}

func TestFindPathNoObstacles(t *testing.T) {
	r := New(100, 100, 1.0)
	now := time.Now()
	path := r.FindPath(geom.Point{X: 10, Y: 10}, geom.Point{X: 15, Y: 25}, nil, now)
	if path == nil {
		t.Fatal("expected a path with no obstacles")
	}
	if path[0] != (geom.Point{X: 10, Y: 10}) {
		t.Errorf("path must start at exact start point, got %v", path[0])
	}
	last := path[len(path)-1]
	if last.Dist(geom.Point{X: 15, Y: 25}) > 1.5 {
		t.Errorf("path must end near goal, got %v", last)
	}
}

func TestFindPathSymmetry(t *testing.T) {
	r := New(100, 100, 1.0)
	now := time.Now()
	zone := mustZone(t, "z1",
		[]geom.Point{{X: 12, Y: 12}, {X: 18, Y: 12}, {X: 18, Y: 30}, {X: 12, Y: 30}},
		now.Add(-time.Hour), now.Add(time.Hour))
	a := geom.Point{X: 10, Y: 10}
	b := geom.Point{X: 15, Y: 35} // beyond the zone's far edge, so reaching it needs a detour

	forward := r.FindPath(a, b, []*core.ExclusionZone{zone}, now)
	backward := r.FindPath(b, a, []*core.ExclusionZone{zone}, now)

	if forward == nil {
		t.Fatal("expected forward path around the zone")
	}
	if backward == nil {
		t.Fatal("expected backward path around the zone (router symmetry law)")
	}
}

func TestFindPathNoneWhenGoalInsideActiveZone(t *testing.T) {
	r := New(100, 100, 1.0)
	now := time.Now()
	zone := mustZone(t, "z1",
		[]geom.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		now.Add(-time.Hour), now.Add(time.Hour))
	path := r.FindPath(geom.Point{X: -10, Y: -10}, geom.Point{X: 25, Y: 25}, []*core.ExclusionZone{zone}, now)
	if path != nil {
		t.Error("expected no path when start/goal region is fully enclosed by an active zone")
	}
}

func TestFindPathIgnoresInactiveZone(t *testing.T) {
	r := New(100, 100, 1.0)
	now := time.Now()
	zone := mustZone(t, "z1",
		[]geom.Point{{X: 12, Y: 12}, {X: 18, Y: 12}, {X: 18, Y: 30}, {X: 12, Y: 30}},
		now.Add(time.Hour), now.Add(2*time.Hour)) // not active at `now`
	path := r.FindPath(geom.Point{X: 10, Y: 10}, geom.Point{X: 15, Y: 25}, []*core.ExclusionZone{zone}, now)
	if path == nil {
		t.Fatal("expected a path; zone is not active at query time")
	}
}

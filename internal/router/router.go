// Package router implements the grid A* pathfinder: a shortest-path search
// over a quantized grid through time-varying polygonal exclusion zones, with
// a proximity-weighted (deliberately non-admissible) heuristic.
package router

import (
	"container/heap"
	"math"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/geom"
)

const (
	// proximityThreshold is the real-unit distance below which a cell is
	// penalized for being near an active zone's boundary.
	proximityThreshold = 5.0
	// proximityMultiplier scales the proximity penalty.
	proximityMultiplier = 2.0
)

// cell is a quantized grid coordinate.
type cell struct{ x, y int }

// Router finds real-coordinate paths through a quantized grid, avoiding
// zones active at a given instant. A Router holds only its grid
// configuration; each FindPath call keeps its search state local.
type Router struct {
	Width, Height int
	Resolution    float64
}

// New constructs a Router over a W x H grid at the given resolution (real
// units per cell). Real coordinate (x,y) maps to cell (floor(x/r), floor(y/r)).
func New(width, height int, resolution float64) *Router {
	return &Router{Width: width, Height: height, Resolution: resolution}
}

func (r *Router) toCell(p geom.Point) cell {
	return cell{int(math.Floor(p.X / r.Resolution)), int(math.Floor(p.Y / r.Resolution))}
}

func (r *Router) toPoint(c cell) geom.Point {
	return geom.Point{X: float64(c.x) * r.Resolution, Y: float64(c.y) * r.Resolution}
}

func (r *Router) inBounds(c cell) bool {
	return c.x >= 0 && c.x < r.Width && c.y >= 0 && c.y < r.Height
}

var neighborOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

func (r *Router) neighbors(c cell) []cell {
	out := make([]cell, 0, 8)
	for _, d := range neighborOffsets {
		n := cell{c.x + d[0], c.y + d[1]}
		if r.inBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func euclidean(a, b cell) float64 {
	dx, dy := float64(a.x-b.x), float64(a.y-b.y)
	return math.Sqrt(dx*dx + dy*dy)
}

// activeZones filters zones active at t.
func activeZones(zones []*core.ExclusionZone, t time.Time) []*core.ExclusionZone {
	active := make([]*core.ExclusionZone, 0, len(zones))
	for _, z := range zones {
		if z.IsActive(t) {
			active = append(active, z)
		}
	}
	return active
}

// validMove reports whether moving from prev (real point, may be absent for
// the start cell) into the cell at real position next avoids all active
// zones: a line crossing for a move between two cells, or a containment
// check for the start cell itself.
func validMove(active []*core.ExclusionZone, next geom.Point, prev *geom.Point) bool {
	if prev == nil {
		for _, z := range active {
			if z.Contains(next) {
				return false
			}
		}
		return true
	}
	for _, z := range active {
		if z.IntersectsSegment(*prev, next) {
			return false
		}
	}
	return true
}

// heuristic computes h(u, goal): Euclidean distance in cell units plus a
// proximity penalty for nearness to active zone boundaries. Deliberately
// non-admissible — it biases the search away from zone boundaries to
// produce smoother routes, at the cost of strict shortest-path optimality.
func (r *Router) heuristic(u, goal cell, active []*core.ExclusionZone) float64 {
	base := euclidean(u, goal)
	penalty := 0.0
	real := r.toPoint(u)
	for _, z := range active {
		d := z.DistanceToBoundary(real)
		if d < proximityThreshold {
			penalty += (proximityThreshold - d) * proximityMultiplier
		}
	}
	return base + penalty
}

// node is a priority-queue entry for the A* frontier.
type node struct {
	c      cell
	g      float64
	f      float64
	seq    int // insertion counter, strict tie-breaker for deterministic ordering
	parent *node
	index  int
}

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// FindPath searches for a route from start to goal (both real coordinates)
// at instant t, avoiding zones active at t. Returns nil if no path exists.
// The first element of a non-nil result is always the exact, unquantized
// start point; subsequent elements are grid points (cell index times
// resolution).
func (r *Router) FindPath(start, goal geom.Point, zones []*core.ExclusionZone, t time.Time) []geom.Point {
	active := activeZones(zones, t)
	startCell := r.toCell(start)
	goalCell := r.toCell(goal)

	if !validMove(active, start, nil) {
		return nil
	}

	open := &openHeap{}
	heap.Init(open)
	seq := 0
	startNode := &node{c: startCell, g: 0, f: r.heuristic(startCell, goalCell, active), seq: seq}
	seq++
	heap.Push(open, startNode)

	gScore := map[cell]float64{startCell: 0}
	visited := make(map[cell]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if visited[current.c] {
			continue
		}
		visited[current.c] = true

		if current.c == goalCell {
			return r.reconstruct(current, start)
		}

		currentReal := r.toPoint(current.c)
		for _, n := range r.neighbors(current.c) {
			if visited[n] {
				continue
			}
			nReal := r.toPoint(n)
			if !validMove(active, nReal, &currentReal) {
				continue
			}
			tentativeG := current.g + euclidean(current.c, n)
			if existing, ok := gScore[n]; ok && tentativeG >= existing {
				continue
			}
			gScore[n] = tentativeG
			heap.Push(open, &node{
				c:      n,
				g:      tentativeG,
				f:      tentativeG + r.heuristic(n, goalCell, active),
				seq:    seq,
				parent: current,
			})
			seq++
		}
	}
	return nil
}

// reconstruct walks parent links from goal to start, producing real
// coordinates with the exact start point prepended (not its grid point).
func (r *Router) reconstruct(goal *node, start geom.Point) []geom.Point {
	var cells []cell
	for n := goal; n != nil; n = n.parent {
		cells = append(cells, n.c)
	}
	// cells is goal..start; reverse to start..goal, dropping the start cell
	// itself (we substitute the exact start point below).
	points := make([]geom.Point, 0, len(cells))
	for i := len(cells) - 2; i >= 0; i-- {
		points = append(points, r.toPoint(cells[i]))
	}
	out := make([]geom.Point, 0, len(points)+1)
	out = append(out, start)
	out = append(out, points...)
	return out
}

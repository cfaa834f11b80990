// Package executor applies a committed assignment to the real fleet,
// re-validating each parcel's route against currently active zones and
// replaying the resulting trajectory segment by segment.
package executor

import (
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/router"
	"go.uber.org/zap"
)

// Executor walks an Assignment against the live fleet and zone set,
// mutating vehicle position/energy/trajectory and stamping parcel outcomes.
type Executor struct {
	Router *router.Router
	Log    *zap.SugaredLogger
}

// New constructs an Executor backed by r. A nil logger defaults to a no-op
// sugared logger, matching the teacher's own convention.
func New(r *router.Router, log *zap.SugaredLogger) *Executor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Executor{Router: r, Log: log}
}

// parcelIndex builds a lookup from id to parcel, used to resolve an
// Assignment's parcel IDs.
func parcelIndex(parcels []*core.Parcel) map[core.ParcelID]*core.Parcel {
	idx := make(map[core.ParcelID]*core.Parcel, len(parcels))
	for _, p := range parcels {
		idx[p.ID] = p
	}
	return idx
}

// Execute applies assignment in vehicle-then-route order: for each vehicle's
// route, in order, it routes from the vehicle's current position to the
// parcel, re-validates the route against zones active at the vehicle's
// running clock (starting at now, advanced by each delivery's travel time), and on
// success walks the vehicle through every path node (energy -= segment
// length, trajectory extended) before stamping the parcel Completed. On
// failure the parcel is stamped Failed and the vehicle does not advance.
//
// Idempotent on already-terminal parcels: a parcel already Completed or
// Failed (e.g. by a CSP planner that finalised its own simulation) is
// skipped, matching §4.5's observation that the executor is redundant but
// still correct for CSP-derived assignments.
func (e *Executor) Execute(assignment core.Assignment, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) {
	byID := parcelIndex(parcels)

	// Iterate the fleet in its given (deterministic) order rather than
	// ranging over the assignment map directly, since Go map iteration
	// order is randomized and §5 requires deterministic ordering.
	for _, v := range fleet {
		route := assignment[v.ID]
		clock := now
		for _, parcelID := range route {
			p := byID[parcelID]
			if p == nil || p.Status.Terminal() {
				continue
			}
			clock = e.deliverOne(v, p, zones, clock)
		}
	}
}

func (e *Executor) deliverOne(v *core.Vehicle, p *core.Parcel, zones []*core.ExclusionZone, clock time.Time) time.Time {
	path := e.Router.FindPath(v.Position, p.Position, zones, clock)
	if len(path) < 2 {
		e.Log.Infow("executor: no path, marking parcel failed", "parcel", p.ID, "vehicle", v.ID)
		p.MarkFailed()
		return clock
	}

	for _, z := range zones {
		if !z.IsActive(clock) {
			continue
		}
		for i := 1; i < len(path); i++ {
			if z.IntersectsSegment(path[i-1], path[i]) {
				e.Log.Infow("executor: route blocked by active zone, marking parcel failed", "parcel", p.ID, "zone", z.ID)
				p.MarkFailed()
				return clock
			}
		}
	}

	for i := 1; i < len(path); i++ {
		segment := path[i-1].Dist(path[i])
		v.Energy -= segment
		v.Trajectory = append(v.Trajectory, path[i])
		v.Position = path[i]
		clock = clock.Add(time.Duration(segment / v.Speed * float64(time.Second)))
	}

	p.AssignTo(v.ID)
	p.MarkCompleted()
	return clock
}

// Package planner implements the three assignment strategies — CSP,
// Genetic, and Greedy — that decide which vehicle carries which parcel.
// All three consult the shared internal/oracle feasibility predicate and
// never duplicate its checks.
package planner

import (
	"context"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/oracle"
	"go.uber.org/zap"
)

// Solver is an assignment strategy: given the current fleet, parcel backlog,
// and active zone set, it produces an Assignment and mutates parcel status
// (Completed/Failed) in place.
type Solver interface {
	Solve(ctx context.Context, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) core.Assignment
	Name() string
}

// vehicleIDs extracts fleet member ids in iteration order.
func vehicleIDs(fleet []*core.Vehicle) []core.VehicleID {
	ids := make([]core.VehicleID, len(fleet))
	for i, v := range fleet {
		ids[i] = v.ID
	}
	return ids
}

// nopLogger is the default when a planner is constructed without one,
// matching the teacher's convention of defaulting to zap.NewNop().
func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// earliestFeasible evaluates parcel against every vehicle snapshot in states,
// returning the feasible vehicle with the earliest arrival, or -1 if none is
// feasible. Ties are broken by iteration order of the fleet, matching §4.5.
func earliestFeasible(o *oracle.Oracle, fleet []*core.Vehicle, states []core.Snapshot, parcel *core.Parcel, zones []*core.ExclusionZone) (idx int, verdict oracle.Verdict) {
	idx = -1
	for i, v := range fleet {
		vd := o.Evaluate(states[i], parcel, v, zones)
		if !vd.Ok() {
			continue
		}
		if idx == -1 || vd.Feasibility.Arrival.Before(verdict.Feasibility.Arrival) {
			idx = i
			verdict = vd
		}
	}
	return idx, verdict
}

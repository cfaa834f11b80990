package planner

import (
	"context"
	"sort"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/oracle"
)

// Greedy assigns each parcel, in core.Less order (priority descending, then
// window end ascending), to the feasible vehicle whose current position is
// closest in Euclidean distance — ignoring accumulated per-vehicle
// simulation (each vehicle is always evaluated from its initial state).
// Used as a fallback when genetic search fails and as a fast baseline.
// Processing order mirrors the original's `self.deliveries = sorted(deliveries)`
// consumed by `solve_greedy`.
type Greedy struct {
	Oracle *oracle.Oracle
}

// NewGreedy constructs a Greedy planner.
func NewGreedy(o *oracle.Oracle) *Greedy {
	return &Greedy{Oracle: o}
}

func (g *Greedy) Name() string { return "greedy" }

func (g *Greedy) Solve(_ context.Context, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) core.Assignment {
	assignment := core.NewAssignment(vehicleIDs(fleet))

	ordered := make([]*core.Parcel, len(parcels))
	copy(ordered, parcels)
	sort.SliceStable(ordered, func(i, j int) bool { return core.Less(ordered[i], ordered[j]) })

	for _, p := range ordered {
		bestIdx := -1
		bestDist := 0.0
		for i, v := range fleet {
			snapshot := core.SnapshotFrom(v, now)
			verdict := g.Oracle.Evaluate(snapshot, p, v, zones)
			if !verdict.Ok() {
				continue
			}
			dist := v.Position.Dist(p.Position)
			if bestIdx == -1 || dist < bestDist {
				bestIdx = i
				bestDist = dist
			}
		}
		if bestIdx == -1 {
			p.MarkFailed()
			continue
		}
		v := fleet[bestIdx]
		assignment.Append(v.ID, p.ID)
		p.AssignTo(v.ID)
		p.MarkCompleted()
	}
	return assignment
}

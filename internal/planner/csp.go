package planner

import (
	"context"
	"sort"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/oracle"
	"go.uber.org/zap"
)

// defaultBudget is the wall-clock allowance for a single solve, per §4.5/§4.6.
const defaultBudget = 30 * time.Second

// CSP is the sequential, priority-ordered constraint-satisfaction planner.
// It finalises both the assignment and the simulated fleet/parcel state: the
// executor is redundant for CSP-derived assignments but still correct
// (idempotent on already-completed parcels).
type CSP struct {
	Oracle *oracle.Oracle
	Budget time.Duration
	Log    *zap.SugaredLogger
}

// NewCSP constructs a CSP planner with the default 30s wall-clock budget.
func NewCSP(o *oracle.Oracle) *CSP {
	return &CSP{Oracle: o, Budget: defaultBudget, Log: nopLogger()}
}

func (c *CSP) Name() string { return "csp" }

// Solve orders parcels by (-priority, window_start) and greedily assigns each
// to the vehicle yielding the earliest feasible arrival, advancing that
// vehicle's working snapshot. On timeout, the partial assignment accumulated
// so far is returned and remaining parcels stay Pending.
func (c *CSP) Solve(ctx context.Context, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) core.Assignment {
	budget := c.Budget
	if budget <= 0 {
		budget = defaultBudget
	}
	deadline := timeNow().Add(budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ordered := make([]*core.Parcel, len(parcels))
	copy(ordered, parcels)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].WindowStart.Before(ordered[j].WindowStart)
	})

	states := make([]core.Snapshot, len(fleet))
	for i, v := range fleet {
		states[i] = core.SnapshotFrom(v, now)
	}

	assignment := core.NewAssignment(vehicleIDs(fleet))

	for i, p := range ordered {
		if wallClockExpired(deadline) {
			c.Log.Infow("csp planner hit wall-clock budget, returning partial assignment", "remaining_parcels", len(ordered)-i)
			break
		}

		idx, verdict := earliestFeasible(c.Oracle, fleet, states, p, zones)
		if idx == -1 {
			p.MarkFailed()
			continue
		}

		v := fleet[idx]
		assignment.Append(v.ID, p.ID)
		p.AssignTo(v.ID)
		p.MarkCompleted()

		s := states[idx]
		s.Position = p.Position
		s.Energy -= verdict.Feasibility.EnergyCost
		s.Clock = verdict.Feasibility.Arrival
		s.Trajectory = append(s.Trajectory, verdict.Feasibility.Trajectory[1:]...)
		states[idx] = s
	}

	for i, v := range fleet {
		v.Commit(states[i])
	}
	return assignment
}

func wallClockExpired(deadline time.Time) bool {
	return !deadline.IsZero() && timeNow().After(deadline)
}

// timeNow is a seam so the default budget check reads the wall clock, kept
// as a named function (rather than a direct time.Now() call) so tests can
// reason about it without monkey-patching package state.
func timeNow() time.Time { return time.Now() }

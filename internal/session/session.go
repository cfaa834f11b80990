// Package session wires the oracle, router, planners, and executor into the
// core entry points spec.md §6 exposes to collaborators: add entities,
// optimize, execute, and generate a report.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/executor"
	"github.com/gizemilhn/dronefleet/internal/oracle"
	"github.com/gizemilhn/dronefleet/internal/planner"
	"github.com/gizemilhn/dronefleet/internal/router"
	"go.uber.org/zap"
)

// Strategy selects which planner Optimize runs.
type Strategy int

const (
	Csp Strategy = iota
	Genetic
	Greedy
)

func (s Strategy) String() string {
	switch s {
	case Csp:
		return "csp"
	case Genetic:
		return "genetic"
	case Greedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Session owns one fleet/parcel/zone collection and the shared router/oracle
// used to plan and execute against it.
type Session struct {
	Width, Height int
	Vehicles      []*core.Vehicle
	Parcels       []*core.Parcel
	Zones         []*core.ExclusionZone

	Router *router.Router
	Oracle *oracle.Oracle
	Log    *zap.SugaredLogger
}

// New constructs an empty session over a width x height grid at unit
// resolution, matching the original's default grid size of (100, 100).
func New(width, height int) *Session {
	r := router.New(width, height, 1.0)
	return &Session{
		Width:  width,
		Height: height,
		Router: r,
		Oracle: oracle.New(r),
		Log:    zap.NewNop().Sugar(),
	}
}

// AddVehicle registers a vehicle with the session.
func (s *Session) AddVehicle(v *core.Vehicle) { s.Vehicles = append(s.Vehicles, v) }

// AddParcel registers a parcel with the session.
func (s *Session) AddParcel(p *core.Parcel) { s.Parcels = append(s.Parcels, p) }

// AddExclusionZone registers a no-fly zone with the session.
func (s *Session) AddExclusionZone(z *core.ExclusionZone) { s.Zones = append(s.Zones, z) }

// Optimize runs the selected planner against the current fleet/parcel/zone
// state at instant now, returning the resulting assignment. An empty fleet
// or empty parcel set fails loudly per §7 (these are programming errors,
// not oracle rejections).
//
// Genetic falls back to Greedy if it panics, or if its wall-clock budget
// expired before a single individual was ever scored (a defensive
// containment of planner-internal failure, ported from the original's
// `optimize_deliveries` try/except around the genetic path).
func (s *Session) Optimize(ctx context.Context, strategy Strategy, now time.Time) (assignment core.Assignment, err error) {
	if len(s.Vehicles) == 0 {
		return nil, fmt.Errorf("session: cannot optimize with an empty fleet")
	}
	if len(s.Parcels) == 0 {
		return nil, fmt.Errorf("session: cannot optimize with an empty parcel set")
	}

	var p planner.Solver
	switch strategy {
	case Csp:
		p = planner.NewCSP(s.Oracle)
	case Greedy:
		p = planner.NewGreedy(s.Oracle)
	case Genetic:
		assignment = s.solveGeneticWithFallback(ctx, planner.NewGenetic(s.Oracle), now)
		return assignment, nil
	default:
		return nil, fmt.Errorf("session: unknown strategy %v", strategy)
	}

	assignment = p.Solve(ctx, s.Vehicles, s.Parcels, s.Zones, now)
	return assignment, nil
}

func (s *Session) solveGeneticWithFallback(ctx context.Context, genetic *planner.Genetic, now time.Time) (assignment core.Assignment) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Warnw("genetic planner panicked, falling back to greedy", "panic", r)
			assignment = planner.NewGreedy(s.Oracle).Solve(ctx, s.Vehicles, s.Parcels, s.Zones, now)
		}
	}()
	result, scored := genetic.SolveWithStatus(ctx, s.Vehicles, s.Parcels, s.Zones, now)
	if !scored {
		s.Log.Warnw("genetic planner never scored an individual, falling back to greedy")
		return planner.NewGreedy(s.Oracle).Solve(ctx, s.Vehicles, s.Parcels, s.Zones, now)
	}
	return result
}

// Execute applies assignment to the live fleet via the shared executor. A
// no-op in practice for CSP-derived assignments, whose outcomes were
// already finalised during Optimize, but still correct — idempotent on
// terminal parcels.
func (s *Session) Execute(assignment core.Assignment, now time.Time) {
	e := executor.New(s.Router, s.Log)
	e.Execute(assignment, s.Vehicles, s.Parcels, s.Zones, now)
}

// GenerateReport tallies current parcel outcomes and vehicle statistics.
func (s *Session) GenerateReport() *core.Report {
	return core.BuildReport(s.Vehicles, s.Parcels)
}

// Package oracle implements the shared feasibility predicate consumed by
// every planner: given a vehicle's working state and a parcel, decide
// whether the parcel can be delivered and at what cost.
package oracle

import (
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/geom"
	"github.com/gizemilhn/dronefleet/internal/router"
)

// RejectionKind tags why the oracle refused a parcel. Oracle rejections are
// planner inputs, never errors — they never propagate as Go errors.
type RejectionKind int

const (
	// NoRejection indicates a feasibility check succeeded. It is the zero
	// value, so a zeroed Verdict reads as NoRejection (Ok reports true)
	// rather than as a false WeightExceeded.
	NoRejection RejectionKind = iota
	WeightExceeded
	NoPath
	PathBlocked
	BatteryInsufficient
	OutsideTimeWindow
)

func (k RejectionKind) String() string {
	switch k {
	case NoRejection:
		return "none"
	case WeightExceeded:
		return "weight_exceeded"
	case NoPath:
		return "no_path"
	case PathBlocked:
		return "path_blocked"
	case BatteryInsufficient:
		return "battery_insufficient"
	case OutsideTimeWindow:
		return "outside_time_window"
	default:
		return "unknown"
	}
}

// Feasibility is the oracle's affirmative verdict: a committable trajectory
// plus its cost in distance, time, and energy.
type Feasibility struct {
	Trajectory []geom.Point
	Distance   float64
	TravelTime time.Duration
	Arrival    time.Time
	EnergyCost float64
}

// Verdict is the oracle's result for one (vehicle snapshot, parcel) pair:
// exactly one of Feasibility or Rejection is meaningful, discriminated by
// Rejection == NoRejection.
type Verdict struct {
	Feasibility Feasibility
	Rejection   RejectionKind
}

// Ok reports whether the verdict is an affirmative feasibility record.
func (v Verdict) Ok() bool { return v.Rejection == NoRejection }

// Oracle evaluates parcel feasibility against vehicle snapshots using a
// shared Router instance. Stateless beyond the router's grid configuration;
// safe to reuse across parcels and vehicles within one planner's solve.
type Oracle struct {
	Router *router.Router
}

// New constructs an Oracle backed by r.
func New(r *router.Router) *Oracle {
	return &Oracle{Router: r}
}

// Evaluate runs the five ordered rejection checks (weight, path, zone
// crossing, battery, time window) from the snapshot to the parcel, against
// zones active at snapshot.Clock. Any internal router
// failure is treated as NoPath — a planner must never abort mid-run because
// one parcel's route could not be computed.
func (o *Oracle) Evaluate(snapshot core.Snapshot, parcel *core.Parcel, vehicle *core.Vehicle, zones []*core.ExclusionZone) Verdict {
	if parcel.Mass > vehicle.Payload {
		return Verdict{Rejection: WeightExceeded}
	}

	path := o.safeFindPath(snapshot.Position, parcel.Position, zones, snapshot.Clock)
	if len(path) < 2 {
		return Verdict{Rejection: NoPath}
	}

	for i := 1; i < len(path); i++ {
		for _, z := range zones {
			if z.IsActive(snapshot.Clock) && z.IntersectsSegment(path[i-1], path[i]) {
				return Verdict{Rejection: PathBlocked}
			}
		}
	}

	distance := pathLength(path)
	travelSeconds := distance / vehicle.Speed
	travelTime := time.Duration(travelSeconds * float64(time.Second))
	arrival := snapshot.Clock.Add(travelTime)
	energyCost := distance // one unit of energy per unit distance, fixed convention

	if energyCost > snapshot.Energy {
		return Verdict{Rejection: BatteryInsufficient}
	}
	if !parcel.WithinWindow(arrival) {
		return Verdict{Rejection: OutsideTimeWindow}
	}

	return Verdict{Feasibility: Feasibility{
		Trajectory: path,
		Distance:   distance,
		TravelTime: travelTime,
		Arrival:    arrival,
		EnergyCost: energyCost,
	}}
}

// safeFindPath contains any router failure (including a nil Router, used in
// tests) and reports it as "no path" rather than propagating a panic.
func (o *Oracle) safeFindPath(start, goal geom.Point, zones []*core.ExclusionZone, clock time.Time) (path []geom.Point) {
	if o.Router == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			path = nil
		}
	}()
	return o.Router.FindPath(start, goal, zones, clock)
}

func pathLength(path []geom.Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].Dist(path[i])
	}
	return total
}

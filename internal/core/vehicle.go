// Package core defines the domain model for the drone delivery fleet:
// vehicles, parcels, exclusion zones, assignments, and trajectories.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/gizemilhn/dronefleet/internal/geom"
)

// VehicleID uniquely identifies a vehicle within a fleet.
type VehicleID string

// Vehicle is a battery-powered aerial delivery vehicle.
//
// Invariant: Energy is always in [0, Capacity]; Trajectory is non-empty and
// begins at Home.
type Vehicle struct {
	ID       VehicleID  `json:"id"`
	Payload  float64    `json:"max_weight"`
	Capacity float64    `json:"battery_capacity"`
	Speed    float64    `json:"speed"`
	Home     geom.Point `json:"start_position"`

	Position    geom.Point   `json:"current_position"`
	Energy      float64      `json:"current_battery"`
	OnboardMass float64      `json:"current_weight"`
	Trajectory  []geom.Point `json:"route"`
}

// NewVehicle constructs a vehicle starting fully charged and parked at home,
// with a single-point trajectory seeded at its start position, matching the
// original `Drone.__post_init__` defaulting behavior.
func NewVehicle(id VehicleID, payload, capacity, speed float64, home geom.Point) *Vehicle {
	return &Vehicle{
		ID:         id,
		Payload:    payload,
		Capacity:   capacity,
		Speed:      speed,
		Home:       home,
		Position:   home,
		Energy:     capacity,
		Trajectory: []geom.Point{home},
	}
}

// Validate checks the vehicle's invariants.
func (v *Vehicle) Validate() error {
	if v.ID == "" {
		return errors.New("core: vehicle id must not be empty")
	}
	if v.Energy < 0 || v.Energy > v.Capacity {
		return fmt.Errorf("core: vehicle %s energy %.3f out of range [0,%.3f]", v.ID, v.Energy, v.Capacity)
	}
	if len(v.Trajectory) == 0 {
		return fmt.Errorf("core: vehicle %s trajectory must be non-empty", v.ID)
	}
	if v.Trajectory[0] != v.Home {
		return fmt.Errorf("core: vehicle %s trajectory must begin at home", v.ID)
	}
	return nil
}

// CanCarry reports whether the vehicle's payload cap admits an additional mass.
func (v *Vehicle) CanCarry(mass float64) bool {
	return v.OnboardMass+mass <= v.Payload
}

// BatteryPercentage returns remaining energy as a percentage of capacity.
func (v *Vehicle) BatteryPercentage() float64 {
	if v.Capacity <= 0 {
		return 0
	}
	return (v.Energy / v.Capacity) * 100
}

// DistanceTraveled sums the length of every trajectory segment.
func (v *Vehicle) DistanceTraveled() float64 {
	total := 0.0
	for i := 1; i < len(v.Trajectory); i++ {
		total += v.Trajectory[i-1].Dist(v.Trajectory[i])
	}
	return total
}

// Reset restores the vehicle to its start state: home position, full
// battery, no onboard mass, and a trajectory holding only the home point.
func (v *Vehicle) Reset() {
	v.Position = v.Home
	v.Energy = v.Capacity
	v.OnboardMass = 0
	v.Trajectory = []geom.Point{v.Home}
}

// Snapshot is a working copy of a vehicle's state used by planners that must
// simulate several tentative assignments without mutating the real fleet
// until a plan is committed.
type Snapshot struct {
	Position   geom.Point
	Energy     float64
	Clock      time.Time
	Trajectory []geom.Point
}

// SnapshotFrom captures a vehicle's current state for planning, at the given
// notional clock (usually the session's current_time).
func SnapshotFrom(v *Vehicle, clock time.Time) Snapshot {
	traj := make([]geom.Point, len(v.Trajectory))
	copy(traj, v.Trajectory)
	return Snapshot{
		Position:   v.Position,
		Energy:     v.Energy,
		Clock:      clock,
		Trajectory: traj,
	}
}

// Commit writes a snapshot's state back onto the real vehicle.
func (v *Vehicle) Commit(s Snapshot) {
	v.Position = s.Position
	v.Energy = s.Energy
	v.Trajectory = s.Trajectory
}

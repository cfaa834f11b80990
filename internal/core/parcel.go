package core

import (
	"fmt"
	"time"

	"github.com/gizemilhn/dronefleet/internal/geom"
)

// ParcelID uniquely identifies a parcel within a session.
type ParcelID string

// ParcelStatus is the parcel lifecycle state. Pending -> InProgress ->
// {Completed | Failed}; Completed and Failed are terminal and sticky.
type ParcelStatus int

const (
	Pending ParcelStatus = iota
	InProgress
	Completed
	Failed
)

func (s ParcelStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status using the wire vocabulary from spec.md §6.
func (s ParcelStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the wire vocabulary from spec.md §6.
func (s *ParcelStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"pending"`:
		*s = Pending
	case `"in_progress"`:
		*s = InProgress
	case `"completed"`:
		*s = Completed
	case `"failed"`:
		*s = Failed
	default:
		return fmt.Errorf("core: unknown parcel status %s", data)
	}
	return nil
}

// Terminal reports whether the status is a terminal (sticky) state.
func (s ParcelStatus) Terminal() bool {
	return s == Completed || s == Failed
}

// Parcel is a single drop task: a location, mass, priority, and a hard time
// window.
//
// Invariant: WindowStart <= WindowEnd; AssignedVehicle is set at most once
// per lifecycle (InProgress onward).
type Parcel struct {
	ID              ParcelID     `json:"id"`
	Position        geom.Point   `json:"position"`
	Mass            float64      `json:"weight"`
	Priority        int          `json:"priority"` // 1..5, larger is more urgent
	WindowStart     time.Time    `json:"time_window_start"`
	WindowEnd       time.Time    `json:"time_window_end"`
	AssignedVehicle VehicleID    `json:"assigned_drone,omitempty"`
	Status          ParcelStatus `json:"status"`
}

// Validate checks the parcel's invariants.
func (p *Parcel) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("core: parcel id must not be empty")
	}
	if p.Priority < 1 || p.Priority > 5 {
		return fmt.Errorf("core: parcel %s priority %d out of range [1,5]", p.ID, p.Priority)
	}
	if p.WindowEnd.Before(p.WindowStart) {
		return fmt.Errorf("core: parcel %s has reversed time window", p.ID)
	}
	return nil
}

// WithinWindow reports whether t falls inside the parcel's closed time window.
func (p *Parcel) WithinWindow(t time.Time) bool {
	return !t.Before(p.WindowStart) && !t.After(p.WindowEnd)
}

// AssignTo records a vehicle assignment and advances the lifecycle to
// InProgress, matching the original `Delivery.assign_to_drone`.
func (p *Parcel) AssignTo(id VehicleID) {
	p.AssignedVehicle = id
	p.Status = InProgress
}

// MarkCompleted stamps a terminal Completed status.
func (p *Parcel) MarkCompleted() { p.Status = Completed }

// MarkFailed stamps a terminal Failed status.
func (p *Parcel) MarkFailed() { p.Status = Failed }

// Less orders parcels by priority descending, then by window end ascending.
// Ported from the original `Delivery.__lt__`, which underlies
// `self.deliveries = sorted(deliveries)` — the order the Greedy planner
// processes parcels in. CSP sorts by its own (priority, window start) key
// instead (see csp.go), since `solve_csp` re-sorts independently of `__lt__`.
func Less(a, b *Parcel) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.WindowEnd.Before(b.WindowEnd)
}

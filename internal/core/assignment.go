package core

// Assignment maps each vehicle to the ordered list of parcel IDs it will
// carry, in delivery order. Every vehicle known to the session is present as
// a key, even if its list is empty; a parcel appears in at most one vehicle's
// list.
//
// This is the output of package planner and the input of package executor.
type Assignment map[VehicleID][]ParcelID

// NewAssignment returns an empty assignment pre-seeded with every vehicle id
// in ids, each mapped to a nil (empty) route.
func NewAssignment(ids []VehicleID) Assignment {
	a := make(Assignment, len(ids))
	for _, id := range ids {
		a[id] = nil
	}
	return a
}

// Append adds parcel to the end of vehicle's route.
func (a Assignment) Append(vehicle VehicleID, parcel ParcelID) {
	a[vehicle] = append(a[vehicle], parcel)
}

// Disjoint reports whether every parcel ID appears in at most one vehicle's
// route, the invariant required of a well-formed assignment.
func (a Assignment) Disjoint() bool {
	seen := make(map[ParcelID]bool)
	for _, route := range a {
		for _, pid := range route {
			if seen[pid] {
				return false
			}
			seen[pid] = true
		}
	}
	return true
}

// Len returns the total number of parcels assigned across all vehicles.
func (a Assignment) Len() int {
	n := 0
	for _, route := range a {
		n += len(route)
	}
	return n
}

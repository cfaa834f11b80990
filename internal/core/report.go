package core

// VehicleStatistics summarizes one vehicle's state at report time, matching
// the `drone_statistics` entries in spec.md §6.
type VehicleStatistics struct {
	BatteryRemaining    float64 `json:"battery_remaining"`
	DistanceTraveled    float64 `json:"distance_traveled"`
	DeliveriesCompleted int     `json:"deliveries_completed"`
}

// Report is the execution summary produced after a session runs an
// assignment, matching the wire shape in spec.md §6.
type Report struct {
	TotalDeliveries      int                             `json:"total_deliveries"`
	CompletedDeliveries  int                             `json:"completed_deliveries"`
	FailedDeliveries     int                             `json:"failed_deliveries"`
	InProgressDeliveries int                             `json:"in_progress_deliveries"`
	VehicleStatistics    map[VehicleID]VehicleStatistics `json:"drone_statistics"`
}

// BuildReport tallies parcel outcomes and per-vehicle statistics from current
// fleet state, mirroring the original `DroneDeliverySystem.generate_report`.
func BuildReport(vehicles []*Vehicle, parcels []*Parcel) *Report {
	r := &Report{
		VehicleStatistics: make(map[VehicleID]VehicleStatistics, len(vehicles)),
	}
	completedByVehicle := make(map[VehicleID]int)

	for _, p := range parcels {
		r.TotalDeliveries++
		switch p.Status {
		case Completed:
			r.CompletedDeliveries++
			completedByVehicle[p.AssignedVehicle]++
		case Failed:
			r.FailedDeliveries++
		case InProgress:
			r.InProgressDeliveries++
		}
	}

	for _, v := range vehicles {
		r.VehicleStatistics[v.ID] = VehicleStatistics{
			BatteryRemaining:    v.BatteryPercentage(),
			DistanceTraveled:    v.DistanceTraveled(),
			DeliveriesCompleted: completedByVehicle[v.ID],
		}
	}
	return r
}

package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/geom"
)

// Config is the JSON wire shape from spec.md §6: grid dimensions plus the
// fleet/parcel/zone collections, all times ISO-8601.
type Config struct {
	GridSize   [2]int         `json:"grid_size"`
	Drones     []droneJSON    `json:"drones"`
	Deliveries []deliveryJSON `json:"deliveries"`
	NoFlyZones []zoneJSON     `json:"no_fly_zones"`
}

type droneJSON struct {
	ID              string       `json:"id"`
	MaxWeight       float64      `json:"max_weight"`
	BatteryCapacity float64      `json:"battery_capacity"`
	Speed           float64      `json:"speed"`
	StartPosition   [2]float64   `json:"start_position"`
	CurrentPosition [2]float64   `json:"current_position"`
	CurrentBattery  float64      `json:"current_battery"`
	CurrentWeight   float64      `json:"current_weight"`
	Route           [][2]float64 `json:"route"`
}

type deliveryJSON struct {
	ID            string     `json:"id"`
	Position      [2]float64 `json:"position"`
	Weight        float64    `json:"weight"`
	Priority      int        `json:"priority"`
	WindowStart   time.Time  `json:"time_window_start"`
	WindowEnd     time.Time  `json:"time_window_end"`
	AssignedDrone string     `json:"assigned_drone,omitempty"`
	Status        string     `json:"status"`
}

type zoneJSON struct {
	ID                 string       `json:"id"`
	PolygonCoordinates [][2]float64 `json:"polygon_coordinates"`
	ActiveTimeStart    time.Time    `json:"active_time_start"`
	ActiveTimeEnd      time.Time    `json:"active_time_end"`
}

// LoadConfig parses a JSON document into a fully validated Session, failing
// loudly on malformed polygons, reversed time windows, or unknown statuses
// per §7's config/validation error taxonomy.
func LoadConfig(data []byte) (*Session, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("session: parse config: %w", err)
	}

	s := New(cfg.GridSize[0], cfg.GridSize[1])

	for _, d := range cfg.Drones {
		v := &core.Vehicle{
			ID:          core.VehicleID(d.ID),
			Payload:     d.MaxWeight,
			Capacity:    d.BatteryCapacity,
			Speed:       d.Speed,
			Home:        point(d.StartPosition),
			Position:    point(d.CurrentPosition),
			Energy:      d.CurrentBattery,
			OnboardMass: d.CurrentWeight,
			Trajectory:  pointSlice(d.Route),
		}
		if len(v.Trajectory) == 0 {
			v.Trajectory = []geom.Point{v.Home}
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		s.AddVehicle(v)
	}

	for _, del := range cfg.Deliveries {
		status, err := parseStatus(del.Status)
		if err != nil {
			return nil, err
		}
		p := &core.Parcel{
			ID:              core.ParcelID(del.ID),
			Position:        point(del.Position),
			Mass:            del.Weight,
			Priority:        del.Priority,
			WindowStart:     del.WindowStart,
			WindowEnd:       del.WindowEnd,
			AssignedVehicle: core.VehicleID(del.AssignedDrone),
			Status:          status,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		s.AddParcel(p)
	}

	for _, z := range cfg.NoFlyZones {
		zone, err := core.NewExclusionZone(core.ZoneID(z.ID), pointSlice(z.PolygonCoordinates), z.ActiveTimeStart, z.ActiveTimeEnd)
		if err != nil {
			return nil, err
		}
		s.AddExclusionZone(zone)
	}

	return s, nil
}

func parseStatus(s string) (core.ParcelStatus, error) {
	switch s {
	case "", "pending":
		return core.Pending, nil
	case "in_progress":
		return core.InProgress, nil
	case "completed":
		return core.Completed, nil
	case "failed":
		return core.Failed, nil
	default:
		return 0, fmt.Errorf("session: unknown delivery status %q", s)
	}
}

func point(p [2]float64) geom.Point { return geom.Point{X: p[0], Y: p[1]} }

func pointSlice(pts [][2]float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = point(p)
	}
	return out
}

// SaveConfig renders the session's current state back into the spec.md §6
// wire shape.
func (s *Session) SaveConfig() ([]byte, error) {
	cfg := Config{GridSize: [2]int{s.Width, s.Height}}
	for _, v := range s.Vehicles {
		route := make([][2]float64, len(v.Trajectory))
		for i, p := range v.Trajectory {
			route[i] = [2]float64{p.X, p.Y}
		}
		cfg.Drones = append(cfg.Drones, droneJSON{
			ID:              string(v.ID),
			MaxWeight:       v.Payload,
			BatteryCapacity: v.Capacity,
			Speed:           v.Speed,
			StartPosition:   [2]float64{v.Home.X, v.Home.Y},
			CurrentPosition: [2]float64{v.Position.X, v.Position.Y},
			CurrentBattery:  v.Energy,
			CurrentWeight:   v.OnboardMass,
			Route:           route,
		})
	}
	for _, p := range s.Parcels {
		cfg.Deliveries = append(cfg.Deliveries, deliveryJSON{
			ID:            string(p.ID),
			Position:      [2]float64{p.Position.X, p.Position.Y},
			Weight:        p.Mass,
			Priority:      p.Priority,
			WindowStart:   p.WindowStart,
			WindowEnd:     p.WindowEnd,
			AssignedDrone: string(p.AssignedVehicle),
			Status:        p.Status.String(),
		})
	}
	for _, z := range s.Zones {
		coords := make([][2]float64, len(z.Polygon.Vertices))
		for i, v := range z.Polygon.Vertices {
			coords[i] = [2]float64{v.X, v.Y}
		}
		cfg.NoFlyZones = append(cfg.NoFlyZones, zoneJSON{
			ID:                 string(z.ID),
			PolygonCoordinates: coords,
			ActiveTimeStart:    z.Start,
			ActiveTimeEnd:      z.End,
		})
	}
	return json.MarshalIndent(cfg, "", "  ")
}

package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gizemilhn/dronefleet/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleJSONRoundTrip(t *testing.T) {
	v := NewVehicle("v1", 4, 12000, 8, geom.Point{X: 10, Y: 10})
	v.Position = geom.Point{X: 12, Y: 14}
	v.Energy = 11800
	v.Trajectory = append(v.Trajectory, v.Position)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var out Vehicle
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, *v, out)
}

func TestParcelJSONRoundTrip(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	p := &Parcel{
		ID:          "p1",
		Position:    geom.Point{X: 15, Y: 25},
		Mass:        1.5,
		Priority:    3,
		WindowStart: start,
		WindowEnd:   end,
		Status:      Pending,
	}
	require.NoError(t, p.Validate())

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out Parcel
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.WindowStart.Equal(p.WindowStart))
	assert.True(t, out.WindowEnd.Equal(p.WindowEnd))
	assert.Equal(t, p.Status, out.Status)
	assert.Equal(t, p.Priority, out.Priority)
}

func TestParcelLifecycle(t *testing.T) {
	p := &Parcel{ID: "p1", Priority: 1, WindowEnd: time.Now()}
	assert.Equal(t, Pending, p.Status)
	p.AssignTo("v1")
	assert.Equal(t, InProgress, p.Status)
	assert.False(t, p.Status.Terminal())
	p.MarkCompleted()
	assert.True(t, p.Status.Terminal())
}

func TestLessOrdersByPriorityThenWindowEnd(t *testing.T) {
	now := time.Now()
	high := &Parcel{ID: "a", Priority: 5, WindowEnd: now.Add(2 * time.Hour)}
	low := &Parcel{ID: "b", Priority: 1, WindowEnd: now.Add(time.Hour)}
	assert.True(t, Less(high, low))
	assert.False(t, Less(low, high))

	earlier := &Parcel{ID: "c", Priority: 3, WindowEnd: now}
	later := &Parcel{ID: "d", Priority: 3, WindowEnd: now.Add(time.Hour)}
	assert.True(t, Less(earlier, later))
}

func TestExclusionZoneJSONRoundTrip(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	z, err := NewExclusionZone("z1", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, start, end)
	require.NoError(t, err)

	data, err := json.Marshal(z)
	require.NoError(t, err)

	var out ExclusionZone
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, z.ID, out.ID)
	assert.Equal(t, z.Polygon.Vertices, out.Polygon.Vertices)
	assert.True(t, out.IsActive(start.Add(time.Hour)))
	assert.False(t, out.IsActive(end.Add(time.Minute)))
}

func TestExclusionZoneRejectsDegeneratePolygon(t *testing.T) {
	_, err := NewExclusionZone("z1", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, time.Now(), time.Now())
	assert.Error(t, err)
}

func TestAssignmentDisjoint(t *testing.T) {
	a := NewAssignment([]VehicleID{"v1", "v2"})
	a.Append("v1", "p1")
	a.Append("v2", "p2")
	assert.True(t, a.Disjoint())
	assert.Equal(t, 2, a.Len())

	a.Append("v1", "p2")
	assert.False(t, a.Disjoint())
}

func TestBuildReport(t *testing.T) {
	v1 := NewVehicle("v1", 4, 100, 5, geom.Point{X: 0, Y: 0})
	v1.Energy = 80
	v1.Trajectory = []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}

	p1 := &Parcel{ID: "p1", Priority: 1, AssignedVehicle: "v1", Status: Completed}
	p2 := &Parcel{ID: "p2", Priority: 1, Status: Failed}
	p3 := &Parcel{ID: "p3", Priority: 1, Status: InProgress}

	r := BuildReport([]*Vehicle{v1}, []*Parcel{p1, p2, p3})
	assert.Equal(t, 3, r.TotalDeliveries)
	assert.Equal(t, 1, r.CompletedDeliveries)
	assert.Equal(t, 1, r.FailedDeliveries)
	assert.Equal(t, 1, r.InProgressDeliveries)
	stats := r.VehicleStatistics["v1"]
	assert.Equal(t, 80.0, stats.BatteryRemaining)
	assert.Equal(t, 5.0, stats.DistanceTraveled)
	assert.Equal(t, 1, stats.DeliveriesCompleted)
}

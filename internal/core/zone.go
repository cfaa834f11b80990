package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gizemilhn/dronefleet/internal/geom"
)

// ZoneID uniquely identifies an exclusion zone.
type ZoneID string

// ExclusionZone is a time-active polygonal no-fly region. It wraps a
// validated geom.Polygon with an activation interval. The boundary-distance
// and bounding-box queries are computed from the polygon on each call;
// nothing is cached.
//
// Invariant: the polygon is simple and has positive area (enforced by
// NewExclusionZone); a zone is "active at t" iff t is within [Start, End].
type ExclusionZone struct {
	ID      ZoneID
	Polygon geom.Polygon
	Start   time.Time
	End     time.Time
}

// exclusionZoneJSON mirrors the wire shape from spec.md §6.
type exclusionZoneJSON struct {
	ID                 string       `json:"id"`
	PolygonCoordinates [][2]float64 `json:"polygon_coordinates"`
	ActiveTimeStart    time.Time    `json:"active_time_start"`
	ActiveTimeEnd      time.Time    `json:"active_time_end"`
}

// NewExclusionZone validates the polygon and constructs a zone. Returns an
// error if the polygon is degenerate or self-intersecting, or the interval
// is reversed.
func NewExclusionZone(id ZoneID, vertices []geom.Point, start, end time.Time) (*ExclusionZone, error) {
	poly, err := geom.NewPolygon(vertices)
	if err != nil {
		return nil, fmt.Errorf("core: zone %s: %w", id, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("core: zone %s has reversed activation interval", id)
	}
	return &ExclusionZone{ID: id, Polygon: poly, Start: start, End: end}, nil
}

// IsActive reports whether the zone is active (closed interval) at t.
func (z *ExclusionZone) IsActive(t time.Time) bool {
	return !t.Before(z.Start) && !t.After(z.End)
}

// Contains reports whether p lies within the zone's polygon (boundary
// inclusive).
func (z *ExclusionZone) Contains(p geom.Point) bool {
	return z.Polygon.Contains(p)
}

// IntersectsSegment reports whether the closed segment a-b intersects the
// zone's polygon.
func (z *ExclusionZone) IntersectsSegment(a, b geom.Point) bool {
	return z.Polygon.IntersectsSegment(a, b)
}

// DistanceToBoundary returns the minimum distance from p to the zone's
// polygon boundary.
func (z *ExclusionZone) DistanceToBoundary(p geom.Point) float64 {
	return z.Polygon.DistanceToBoundary(p)
}

// BoundingBox returns the zone's axis-aligned bounding box.
func (z *ExclusionZone) BoundingBox() (min, max geom.Point) {
	return z.Polygon.BoundingBox()
}

// MarshalJSON renders the zone using the wire shape from spec.md §6.
func (z *ExclusionZone) MarshalJSON() ([]byte, error) {
	coords := make([][2]float64, len(z.Polygon.Vertices))
	for i, v := range z.Polygon.Vertices {
		coords[i] = [2]float64{v.X, v.Y}
	}
	return json.Marshal(exclusionZoneJSON{
		ID:                 string(z.ID),
		PolygonCoordinates: coords,
		ActiveTimeStart:    z.Start,
		ActiveTimeEnd:      z.End,
	})
}

// UnmarshalJSON parses the wire shape from spec.md §6 and validates the
// resulting polygon.
func (z *ExclusionZone) UnmarshalJSON(data []byte) error {
	var raw exclusionZoneJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	vertices := make([]geom.Point, len(raw.PolygonCoordinates))
	for i, c := range raw.PolygonCoordinates {
		vertices[i] = geom.Point{X: c[0], Y: c[1]}
	}
	zone, err := NewExclusionZone(ZoneID(raw.ID), vertices, raw.ActiveTimeStart, raw.ActiveTimeEnd)
	if err != nil {
		return err
	}
	*z = *zone
	return nil
}

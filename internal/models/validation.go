package models

import (
	"fmt"
	"math"
)

// ValidationError reports the first sample of a trace that breaks an ingestion invariant
type ValidationError struct {
	Index  int    // Position in the submitted slice, -1 for whole-input errors
	Field  string // Offending field
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid point %d: %s %s", e.Index, e.Field, e.Reason)
}

// ValidateTrack checks the invariants the analysis engine relies on: finite in-range
// coordinates, non-negative speed, non-decreasing timestamps and odometer distance.
// It is meant to run once where a trace enters the system.
func ValidateTrack(points []TrackPoint) error {
	for i, p := range points {
		if err := validateCoord(i, p.Lat, p.Lng); err != nil {
			return err
		}
		if math.IsNaN(p.SpeedKmh) || p.SpeedKmh < 0 {
			return &ValidationError{Index: i, Field: "speed_kmh", Reason: "must be a non-negative number"}
		}
		if p.AltitudeM != nil && math.IsNaN(*p.AltitudeM) {
			return &ValidationError{Index: i, Field: "altitude_m", Reason: "is NaN"}
		}
		if i == 0 {
			continue
		}
		prev := points[i-1]
		if p.TimestampMs < prev.TimestampMs {
			return &ValidationError{
				Index:  i,
				Field:  "timestamp_ms",
				Reason: fmt.Sprintf("decreases from %d to %d", prev.TimestampMs, p.TimestampMs),
			}
		}
		if p.DistanceFromStartKm < prev.DistanceFromStartKm {
			return &ValidationError{
				Index:  i,
				Field:  "distance_from_start_km",
				Reason: fmt.Sprintf("decreases from %.3f to %.3f", prev.DistanceFromStartKm, p.DistanceFromStartKm),
			}
		}
	}
	return nil
}

// ValidatePlannedRoute checks waypoint coordinates
func ValidatePlannedRoute(waypoints []PlannedWaypoint) error {
	for i, w := range waypoints {
		if err := validateCoord(i, w.Lat, w.Lng); err != nil {
			err.Field = "waypoint " + err.Field
			return err
		}
	}
	return nil
}

func validateCoord(i int, lat, lng float64) *ValidationError {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return &ValidationError{Index: i, Field: "lat", Reason: "out of range"}
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return &ValidationError{Index: i, Field: "lng", Reason: "out of range"}
	}
	return nil
}

package models

import (
	"errors"
	"math"
	"testing"
)

func TestValidateTrack(t *testing.T) {
	good := []TrackPoint{
		{Lat: 40.0, Lng: -3.7, TimestampMs: 1000, SpeedKmh: 10},
		{Lat: 40.001, Lng: -3.7, TimestampMs: 1000, SpeedKmh: 0, DistanceFromStartKm: 0.1},
		{Lat: 40.002, Lng: -3.7, TimestampMs: 5000, SpeedKmh: 12, DistanceFromStartKm: 0.2},
	}
	if err := ValidateTrack(good); err != nil {
		t.Fatalf("valid track rejected: %v", err)
	}
	if err := ValidateTrack(nil); err != nil {
		t.Fatalf("empty track rejected: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(p []TrackPoint)
		index int
		field string
	}{
		{"timestamp goes back", func(p []TrackPoint) { p[2].TimestampMs = 500 }, 2, "timestamp_ms"},
		{"nan latitude", func(p []TrackPoint) { p[1].Lat = math.NaN() }, 1, "lat"},
		{"longitude out of range", func(p []TrackPoint) { p[0].Lng = 181 }, 0, "lng"},
		{"negative speed", func(p []TrackPoint) { p[1].SpeedKmh = -1 }, 1, "speed_kmh"},
		{"odometer goes back", func(p []TrackPoint) { p[2].DistanceFromStartKm = 0.05 }, 2, "distance_from_start_km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := append([]TrackPoint(nil), good...)
			tt.mut(points)

			err := ValidateTrack(points)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if vErr.Index != tt.index || vErr.Field != tt.field {
				t.Errorf("got index=%d field=%s, want index=%d field=%s", vErr.Index, vErr.Field, tt.index, tt.field)
			}
		})
	}
}

func TestValidatePlannedRoute(t *testing.T) {
	err := ValidatePlannedRoute([]PlannedWaypoint{{Lat: 1, Lng: 1}, {Lat: 95, Lng: 1}})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Index != 1 {
		t.Fatalf("expected waypoint 1 to be rejected, got %v", err)
	}
}

func TestParseCorridorMode(t *testing.T) {
	if m, ok := ParseCorridorMode(""); !ok || m != CorridorWaypoint {
		t.Errorf("empty mode should default to waypoint, got %q", m)
	}
	if m, ok := ParseCorridorMode("segment"); !ok || m != CorridorSegment {
		t.Errorf("segment mode not parsed, got %q", m)
	}
	if _, ok := ParseCorridorMode("road"); ok {
		t.Error("unknown mode accepted")
	}
}

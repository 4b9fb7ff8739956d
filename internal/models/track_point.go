package models

// TrackPoint represents one GPS sample of a vehicle trip
type TrackPoint struct {
	SequenceIndex       uint32   `json:"sequence_index" db:"seq"`
	Lat                 float64  `json:"lat" db:"lat"`
	Lng                 float64  `json:"lng" db:"lng"`
	TimestampMs         int64    `json:"timestamp_ms" db:"ts_ms"`                 // Epoch milliseconds
	SpeedKmh            float64  `json:"speed_kmh" db:"speed_kmh"`
	AltitudeM           *float64 `json:"altitude_m,omitempty" db:"altitude_m"`    // nil without an altitude fix
	DistanceFromStartKm float64  `json:"distance_from_start_km" db:"distance_km"` // Cumulative odometer distance
	IsStopped           bool     `json:"is_stopped" db:"is_stopped"`              // Precomputed by the ingestion source
}

// Coordinate is a (lat, lng) pair in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coord returns the point's position
func (p TrackPoint) Coord() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// PlannedWaypoint is one vertex of the planned corridor of a trip
type PlannedWaypoint struct {
	Lat  float64 `json:"lat" db:"lat"`
	Lng  float64 `json:"lng" db:"lng"`
	Name string  `json:"name" db:"name"`
}

// TrackPointsResponse represents the ordered points of one trip
type TrackPointsResponse struct {
	TripID string       `json:"trip_id"`
	Data   []TrackPoint `json:"data"`
	Total  int          `json:"total"`
}

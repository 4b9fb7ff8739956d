package models

// SegmentKind classifies a TripSegment
type SegmentKind string

// SegmentKind constants
const (
	SegmentMoving  SegmentKind = "MOVING"
	SegmentStopped SegmentKind = "STOPPED"
)

// TripSegment is a maximal contiguous run of points sharing one movement classification
type TripSegment struct {
	Kind       SegmentKind `json:"kind"`
	StartIndex uint32      `json:"start_index"` // Inclusive
	EndIndex   uint32      `json:"end_index"`   // Inclusive
	StartCoord Coordinate  `json:"start_coord"`
	EndCoord   Coordinate  `json:"end_coord"`

	DurationSec float64 `json:"duration_sec"`
	DistanceKm  float64 `json:"distance_km"` // 0 for STOPPED
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh float64 `json:"max_speed_kmh"`

	Label string `json:"label"` // "Tramo n" / "Parada n"
}

// PointCount returns the number of source points covered by the segment
func (s TripSegment) PointCount() int {
	return int(s.EndIndex-s.StartIndex) + 1
}

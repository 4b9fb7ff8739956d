package models

// DetectedStop is a duration-filtered run of slow points
type DetectedStop struct {
	AvgLat           float64 `json:"avg_lat"`
	AvgLng           float64 `json:"avg_lng"`
	StartTimestampMs int64   `json:"start_timestamp_ms"`
	EndTimestampMs   int64   `json:"end_timestamp_ms"`
	DurationMin      uint32  `json:"duration_min"` // Rounded
	PointCount       uint32  `json:"point_count"`
}

package models

// AnalysisParams echoes the parameters an analysis ran with
type AnalysisParams struct {
	StopSpeedThresholdKmh float64      `json:"stop_speed_threshold_kmh"`
	MinStopDurationSec    float64      `json:"min_stop_duration_sec"`
	DeviationToleranceKm  float64      `json:"deviation_tolerance_km"`
	CorridorMode          CorridorMode `json:"corridor_mode"`
}

// TripAnalysis collects the derived artifacts of one trip. Each analyzer fills its own field.
type TripAnalysis struct {
	TripID     string            `json:"trip_id,omitempty"`
	PointCount int               `json:"point_count"`
	Params     AnalysisParams    `json:"params"`
	Segments   []TripSegment     `json:"segments,omitempty"`
	Stops      []DetectedStop    `json:"stops,omitempty"`
	Deviations []RouteDeviation  `json:"deviations,omitempty"`
	Stats      *RouteStatsBundle `json:"stats,omitempty"`
	ElapsedMs  int64             `json:"elapsed_ms"`
}

// AnalyzeRequest is an inline trace submitted for analysis without being stored
type AnalyzeRequest struct {
	Points    []TrackPoint      `json:"points" binding:"required"`
	Waypoints []PlannedWaypoint `json:"waypoints"`
	Analyzers []string          `json:"analyzers"`
	AnalysisQuery
}

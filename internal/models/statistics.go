package models

// RouteStatsBundle aggregates distance, duration and speed figures of one trip
type RouteStatsBundle struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh float64 `json:"max_speed_kmh"`
	StopCount   uint32  `json:"stop_count"`
	PointCount  uint32  `json:"point_count"`
}

// MetricDiff compares one metric of two RouteStatsBundles
type MetricDiff struct {
	Metric        string  `json:"metric"`
	Label         string  `json:"label"`
	ValueA        float64 `json:"value_a"`
	ValueB        float64 `json:"value_b"`
	AbsoluteDelta float64 `json:"absolute_delta"` // b - a
	PercentDelta  float64 `json:"percent_delta"`  // 0 when a == 0
	IsBetter      bool    `json:"is_better"`
}

// TripComparison is the comparison of two stored trips
type TripComparison struct {
	TripA  string           `json:"trip_a"`
	TripB  string           `json:"trip_b"`
	StatsA RouteStatsBundle `json:"stats_a"`
	StatsB RouteStatsBundle `json:"stats_b"`
	Diffs  []MetricDiff     `json:"diffs"`
}

package models

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	VehicleID string `form:"vehicleId"`
	StartTime int64  `form:"startTime"` // Epoch milliseconds
	EndTime   int64  `form:"endTime"`   // Epoch milliseconds
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// AnalysisQuery carries per-request overrides of the analysis parameters
type AnalysisQuery struct {
	SpeedThreshold *float64 `form:"speedThreshold" json:"speed_threshold,omitempty"` // km/h
	MinStopSeconds *float64 `form:"minStopSeconds" json:"min_stop_seconds,omitempty"`
	Tolerance      *float64 `form:"tolerance" json:"tolerance,omitempty"` // km
	Corridor       string   `form:"corridor" json:"corridor,omitempty"`   // waypoint, segment
}

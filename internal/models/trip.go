package models

import "time"

// Trip represents one vehicle's continuous trace between a start and end time
type Trip struct {
	ID        string `json:"id" db:"id"`
	VehicleID string `json:"vehicle_id" db:"vehicle_id"`
	Name      string `json:"name,omitempty" db:"name"`

	// Temporal info
	StartTime int64 `json:"start_time" db:"start_ts_ms"` // Epoch milliseconds
	EndTime   int64 `json:"end_time" db:"end_ts_ms"`   // Epoch milliseconds

	PointCount    int  `json:"point_count" db:"point_count"`
	WaypointCount int  `json:"waypoint_count" db:"waypoint_count"`
	HasCorridor   bool `json:"has_corridor"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateTripRequest is the ingestion payload for a trip
type CreateTripRequest struct {
	VehicleID string            `json:"vehicle_id" binding:"required"`
	Name      string            `json:"name"`
	Points    []TrackPoint      `json:"points" binding:"required"`
	Waypoints []PlannedWaypoint `json:"waypoints"`
}

// TripsResponse represents a paginated response of trips
type TripsResponse struct {
	Data       []Trip `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

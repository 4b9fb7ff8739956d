package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/route-history-backend/internal/models"
)

// TrackRepository reads the stored trace and planned corridor of a trip
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// GetTrackPoints returns the points of a trip in sequence order
func (r *TrackRepository) GetTrackPoints(tripID string) ([]models.TrackPoint, error) {
	rows, err := r.db.Query(`SELECT seq, lat, lng, ts_ms, speed_kmh, altitude_m, distance_km, is_stopped
		FROM track_points WHERE trip_id = ? ORDER BY seq`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	var points []models.TrackPoint
	for rows.Next() {
		var p models.TrackPoint
		var altitude sql.NullFloat64
		if err := rows.Scan(&p.SequenceIndex, &p.Lat, &p.Lng, &p.TimestampMs, &p.SpeedKmh,
			&altitude, &p.DistanceFromStartKm, &p.IsStopped); err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}
		if altitude.Valid {
			alt := altitude.Float64
			p.AltitudeM = &alt
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// GetPlannedWaypoints returns the planned corridor of a trip in order
func (r *TrackRepository) GetPlannedWaypoints(tripID string) ([]models.PlannedWaypoint, error) {
	rows, err := r.db.Query(`SELECT lat, lng, name FROM planned_waypoints WHERE trip_id = ? ORDER BY seq`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned waypoints: %w", err)
	}
	defer rows.Close()

	var waypoints []models.PlannedWaypoint
	for rows.Next() {
		var w models.PlannedWaypoint
		if err := rows.Scan(&w.Lat, &w.Lng, &w.Name); err != nil {
			return nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}
		waypoints = append(waypoints, w)
	}

	return waypoints, rows.Err()
}

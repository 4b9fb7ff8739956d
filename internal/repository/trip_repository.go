package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jengzang/route-history-backend/internal/database"
	"github.com/jengzang/route-history-backend/internal/models"
)

// ErrTripNotFound is returned when no trip has the requested ID
var ErrTripNotFound = errors.New("trip not found")

const tripColumns = `id, vehicle_id, name, start_ts_ms, end_ts_ms, point_count, waypoint_count, created_at`

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// CreateTrip stores a trip with its points and waypoints in one transaction and
// returns the stored row. Points are renumbered by their position.
func (r *TripRepository) CreateTrip(req models.CreateTripRequest) (*models.Trip, error) {
	id := uuid.NewString()

	var startTs, endTs int64
	if n := len(req.Points); n > 0 {
		startTs = req.Points[0].TimestampMs
		endTs = req.Points[n-1].TimestampMs
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO trips (id, vehicle_id, name, start_ts_ms, end_ts_ms, point_count, waypoint_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, req.VehicleID, req.Name, startTs, endTs, len(req.Points), len(req.Waypoints))
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}

		pointStmt, err := tx.Prepare(`INSERT INTO track_points
			(trip_id, seq, lat, lng, ts_ms, speed_kmh, altitude_m, distance_km, is_stopped)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare point insert: %w", err)
		}
		defer pointStmt.Close()

		for i, p := range req.Points {
			var altitude sql.NullFloat64
			if p.AltitudeM != nil {
				altitude = sql.NullFloat64{Float64: *p.AltitudeM, Valid: true}
			}
			if _, err := pointStmt.Exec(id, i, p.Lat, p.Lng, p.TimestampMs, p.SpeedKmh,
				altitude, p.DistanceFromStartKm, p.IsStopped); err != nil {
				return fmt.Errorf("failed to insert point %d: %w", i, err)
			}
		}

		wpStmt, err := tx.Prepare(`INSERT INTO planned_waypoints (trip_id, seq, lat, lng, name) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare waypoint insert: %w", err)
		}
		defer wpStmt.Close()

		for i, w := range req.Waypoints {
			if _, err := wpStmt.Exec(id, i, w.Lat, w.Lng, w.Name); err != nil {
				return fmt.Errorf("failed to insert waypoint %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetTripByID(id)
}

// GetTrips retrieves trips with filtering and pagination, newest first
func (r *TripRepository) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.VehicleID != "" {
		conditions = append(conditions, "vehicle_id = ?")
		args = append(args, filter.VehicleID)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "start_ts_ms >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "end_ts_ms <= ?")
		args = append(args, filter.EndTime)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	page, pageSize := NormalizePage(filter.Page, filter.PageSize)
	query := "SELECT " + tripColumns + " FROM trips" + where + " ORDER BY start_ts_ms DESC, id LIMIT ? OFFSET ?"
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := make([]models.Trip, 0, pageSize)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, *t)
	}

	return trips, total, rows.Err()
}

// GetTripByID retrieves a single trip by ID
func (r *TripRepository) GetTripByID(id string) (*models.Trip, error) {
	row := r.db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE id = ?", id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return t, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.VehicleID, &t.Name, &t.StartTime, &t.EndTime,
		&t.PointCount, &t.WaypointCount, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trip: %w", err)
	}
	t.HasCorridor = t.WaypointCount >= 2
	return &t, nil
}

// NormalizePage clamps page to >= 1 and pageSize to [1, 1000], defaulting to 100
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	return page, pageSize
}

package service

import (
	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/repository"
)

// TripMetrics is the subset of the metrics collector used by trip ingestion
type TripMetrics interface {
	TripCreatedInc()
	ValidationFailedInc()
}

// TripService handles business logic for trips
type TripService struct {
	trips   *repository.TripRepository
	tracks  *repository.TrackRepository
	metrics TripMetrics
}

// NewTripService creates a new trip service. metrics may be nil.
func NewTripService(trips *repository.TripRepository, tracks *repository.TrackRepository, metrics TripMetrics) *TripService {
	return &TripService{trips: trips, tracks: tracks, metrics: metrics}
}

// CreateTrip validates and stores an ingested trip
func (s *TripService) CreateTrip(req models.CreateTripRequest) (*models.Trip, error) {
	if err := validateInput(req.Points, req.Waypoints); err != nil {
		if s.metrics != nil {
			s.metrics.ValidationFailedInc()
		}
		return nil, err
	}

	trip, err := s.trips.CreateTrip(req)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TripCreatedInc()
	}
	logger.Info("Trip stored", "trip_id", trip.ID, "vehicle_id", trip.VehicleID, "points", trip.PointCount)
	return trip, nil
}

// GetTrips retrieves trips with filtering and pagination
func (s *TripService) GetTrips(filter models.TripFilter) (*models.TripsResponse, error) {
	trips, total, err := s.trips.GetTrips(filter)
	if err != nil {
		return nil, err
	}

	page, pageSize := repository.NormalizePage(filter.Page, filter.PageSize)

	return &models.TripsResponse{
		Data:       trips,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// GetTripByID retrieves a single trip by ID
func (s *TripService) GetTripByID(id string) (*models.Trip, error) {
	return s.trips.GetTripByID(id)
}

// GetTrackPoints returns the ordered trace of a stored trip
func (s *TripService) GetTrackPoints(id string) (*models.TrackPointsResponse, error) {
	if _, err := s.trips.GetTripByID(id); err != nil {
		return nil, err
	}
	points, err := s.tracks.GetTrackPoints(id)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.TrackPoint{}
	}
	return &models.TrackPointsResponse{TripID: id, Data: points, Total: len(points)}, nil
}

func validateInput(points []models.TrackPoint, waypoints []models.PlannedWaypoint) error {
	if err := models.ValidateTrack(points); err != nil {
		return err
	}
	return models.ValidatePlannedRoute(waypoints)
}

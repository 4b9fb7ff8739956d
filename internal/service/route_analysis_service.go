package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/route-history-backend/internal/analysis"
	_ "github.com/jengzang/route-history-backend/internal/analysis/behavior"
	_ "github.com/jengzang/route-history-backend/internal/analysis/spatial"
	routestats "github.com/jengzang/route-history-backend/internal/analysis/stats"
	"github.com/jengzang/route-history-backend/internal/export"
	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/repository"
)

// AnalysisMetrics is the subset of the metrics collector used by analyses
type AnalysisMetrics interface {
	ObserveAnalysis(analyzers []string, points int, d time.Duration)
	ValidationFailedInc()
}

// AnalysisPublisher receives every completed analysis of a stored trip
type AnalysisPublisher interface {
	PublishAnalysis(a *models.TripAnalysis) error
}

// AnalysisOptions configures a RouteAnalysisService. Metrics and Publisher may be nil.
type AnalysisOptions struct {
	Defaults          analysis.Params
	ParallelThreshold int
	Metrics           AnalysisMetrics
	Publisher         AnalysisPublisher
}

// RouteAnalysisService runs the analysis engine over stored and inline traces
type RouteAnalysisService struct {
	trips  *repository.TripRepository
	tracks *repository.TrackRepository
	opts   AnalysisOptions
}

// NewRouteAnalysisService creates a new route analysis service
func NewRouteAnalysisService(trips *repository.TripRepository, tracks *repository.TrackRepository, opts AnalysisOptions) *RouteAnalysisService {
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = 5000
	}
	return &RouteAnalysisService{trips: trips, tracks: tracks, opts: opts}
}

// ResolveParams applies the per-request overrides in q to the configured defaults
func (s *RouteAnalysisService) ResolveParams(q models.AnalysisQuery) (analysis.Params, error) {
	p := s.opts.Defaults

	if q.SpeedThreshold != nil {
		if v := *q.SpeedThreshold; math.IsNaN(v) || v < 0 {
			return p, &models.ValidationError{Index: -1, Field: "speedThreshold", Reason: "must be non-negative"}
		}
		p.StopSpeedThresholdKmh = *q.SpeedThreshold
	}
	if q.MinStopSeconds != nil {
		if v := *q.MinStopSeconds; math.IsNaN(v) || v < 0 {
			return p, &models.ValidationError{Index: -1, Field: "minStopSeconds", Reason: "must be non-negative"}
		}
		p.MinStopDurationSec = *q.MinStopSeconds
	}
	if q.Tolerance != nil {
		if v := *q.Tolerance; math.IsNaN(v) || v <= 0 {
			return p, &models.ValidationError{Index: -1, Field: "tolerance", Reason: "must be positive"}
		}
		p.DeviationToleranceKm = *q.Tolerance
	}
	if q.Corridor != "" {
		mode, ok := models.ParseCorridorMode(q.Corridor)
		if !ok {
			return p, &models.ValidationError{Index: -1, Field: "corridor", Reason: fmt.Sprintf("unknown mode %q", q.Corridor)}
		}
		p.CorridorMode = mode
	}

	return p, nil
}

// AnalyzeTrip loads a stored trip and runs the named analyzers over it (all when
// names is empty). The result is published when a publisher is configured.
func (s *RouteAnalysisService) AnalyzeTrip(ctx context.Context, tripID string, q models.AnalysisQuery, names []string) (*models.TripAnalysis, error) {
	in, err := s.loadInput(tripID, q)
	if err != nil {
		return nil, err
	}

	out := &models.TripAnalysis{TripID: tripID}
	if err := s.run(ctx, in, out, names); err != nil {
		return nil, err
	}

	if s.opts.Publisher != nil {
		if err := s.opts.Publisher.PublishAnalysis(out); err != nil {
			logger.Warn("Failed to publish analysis", "trip_id", tripID, "error", err)
		}
	}
	return out, nil
}

// AnalyzeInline validates and analyses a trace that is not stored
func (s *RouteAnalysisService) AnalyzeInline(ctx context.Context, req models.AnalyzeRequest) (*models.TripAnalysis, error) {
	if err := s.validate(req.Points, req.Waypoints); err != nil {
		return nil, err
	}
	params, err := s.ResolveParams(req.AnalysisQuery)
	if err != nil {
		return nil, err
	}

	in := &analysis.Input{Points: req.Points, Waypoints: req.Waypoints, Params: params}
	out := &models.TripAnalysis{}
	if err := s.run(ctx, in, out, req.Analyzers); err != nil {
		return nil, err
	}
	return out, nil
}

// CompareTrips computes the route statistics of two stored trips and diffs b against a
func (s *RouteAnalysisService) CompareTrips(ctx context.Context, tripA, tripB string) (*models.TripComparison, error) {
	statsA, err := s.tripStats(ctx, tripA)
	if err != nil {
		return nil, err
	}
	statsB, err := s.tripStats(ctx, tripB)
	if err != nil {
		return nil, err
	}

	return &models.TripComparison{
		TripA:  tripA,
		TripB:  tripB,
		StatsA: statsA,
		StatsB: statsB,
		Diffs:  routestats.CompareRouteStats(statsA, statsB),
	}, nil
}

// TripGeoJSON runs every analyzer over a stored trip and renders the result
func (s *RouteAnalysisService) TripGeoJSON(ctx context.Context, tripID string, q models.AnalysisQuery) (*geojson.FeatureCollection, error) {
	in, err := s.loadInput(tripID, q)
	if err != nil {
		return nil, err
	}

	out := &models.TripAnalysis{TripID: tripID}
	if err := s.run(ctx, in, out, nil); err != nil {
		return nil, err
	}
	return export.TripFeatureCollection(in.Points, in.Waypoints, out), nil
}

func (s *RouteAnalysisService) tripStats(ctx context.Context, tripID string) (models.RouteStatsBundle, error) {
	in, err := s.loadInput(tripID, models.AnalysisQuery{})
	if err != nil {
		return models.RouteStatsBundle{}, err
	}
	out := &models.TripAnalysis{TripID: tripID}
	if err := s.run(ctx, in, out, []string{"stats"}); err != nil {
		return models.RouteStatsBundle{}, err
	}
	return *out.Stats, nil
}

func (s *RouteAnalysisService) loadInput(tripID string, q models.AnalysisQuery) (*analysis.Input, error) {
	params, err := s.ResolveParams(q)
	if err != nil {
		return nil, err
	}
	if _, err := s.trips.GetTripByID(tripID); err != nil {
		return nil, err
	}

	points, err := s.tracks.GetTrackPoints(tripID)
	if err != nil {
		return nil, err
	}
	waypoints, err := s.tracks.GetPlannedWaypoints(tripID)
	if err != nil {
		return nil, err
	}
	// stored rows may predate the current validation rules
	if err := s.validate(points, waypoints); err != nil {
		return nil, fmt.Errorf("stored trip %s: %w", tripID, err)
	}

	return &analysis.Input{Points: points, Waypoints: waypoints, Params: params}, nil
}

func (s *RouteAnalysisService) validate(points []models.TrackPoint, waypoints []models.PlannedWaypoint) error {
	err := validateInput(points, waypoints)
	if err != nil && s.opts.Metrics != nil {
		s.opts.Metrics.ValidationFailedInc()
	}
	return err
}

func (s *RouteAnalysisService) run(ctx context.Context, in *analysis.Input, out *models.TripAnalysis, names []string) error {
	if len(names) == 0 {
		names = analysis.Names()
	}
	parallel := len(in.Points) > s.opts.ParallelThreshold

	start := time.Now()
	if err := analysis.Run(ctx, in, out, names, parallel); err != nil {
		return err
	}
	elapsed := time.Since(start)
	out.ElapsedMs = elapsed.Milliseconds()

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveAnalysis(names, len(in.Points), elapsed)
	}
	logger.Debug("Analysis completed",
		"trip_id", out.TripID,
		"points", len(in.Points),
		"analyzers", names,
		"parallel", parallel,
		"elapsed_ms", out.ElapsedMs,
	)
	return nil
}

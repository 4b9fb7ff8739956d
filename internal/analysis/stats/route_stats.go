package stats

import (
	"context"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/analysis/movement"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/spatial"
)

// stopSpeedKmh is the speed under which RouteStats counts the vehicle as stopped
const stopSpeedKmh = 3

// ComputeRouteStats aggregates distance, duration, speed and stop count of one trip.
// Stops are counted on every transition from >= 3 km/h to < 3 km/h.
func ComputeRouteStats(points []models.TrackPoint) models.RouteStatsBundle {
	return ComputeRouteStatsWith(points, movement.SpeedThreshold{ThresholdKmh: stopSpeedKmh})
}

// ComputeRouteStatsWith aggregates one trip counting moving-to-stopped transitions of
// classifier. Distance is recomputed from the raw coordinates and is independent of
// DistanceFromStartKm.
func ComputeRouteStatsWith(points []models.TrackPoint, classifier movement.Classifier) models.RouteStatsBundle {
	bundle := models.RouteStatsBundle{PointCount: uint32(len(points))}
	if len(points) < 2 {
		return bundle
	}

	path := make([]spatial.Point, len(points))
	maxSpeed := points[0].SpeedKmh
	var stopCount uint32
	wasMoving := false

	for i, p := range points {
		path[i] = spatial.Point{Lat: p.Lat, Lng: p.Lng}

		if p.SpeedKmh > maxSpeed {
			maxSpeed = p.SpeedKmh
		}

		stopped := classifier.IsStopped(p)
		if stopped && wasMoving {
			stopCount++
		}
		wasMoving = !stopped
	}

	first, last := points[0], points[len(points)-1]

	bundle.DistanceKm = spatial.PathLengthKm(path)
	bundle.DurationMin = float64(last.TimestampMs-first.TimestampMs) / 60_000
	bundle.MaxSpeedKmh = maxSpeed
	bundle.StopCount = stopCount
	if bundle.DurationMin > 0 {
		bundle.AvgSpeedKmh = bundle.DistanceKm / bundle.DurationMin * 60
	}

	return bundle
}

// RouteStatsAnalyzer exposes ComputeRouteStats through the analyzer registry
type RouteStatsAnalyzer struct {
	*analysis.BaseAnalyzer
}

// NewRouteStatsAnalyzer creates a new route stats analyzer
func NewRouteStatsAnalyzer() analysis.Analyzer {
	return &RouteStatsAnalyzer{BaseAnalyzer: analysis.NewBaseAnalyzer("stats")}
}

// Analyze implements analysis.Analyzer
func (a *RouteStatsAnalyzer) Analyze(_ context.Context, in *analysis.Input, out *models.TripAnalysis) error {
	bundle := ComputeRouteStats(in.Points)
	out.Stats = &bundle
	return nil
}

func init() {
	analysis.RegisterAnalyzer("stats", NewRouteStatsAnalyzer)
}

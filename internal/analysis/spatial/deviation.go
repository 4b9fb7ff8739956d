package spatial

import (
	"context"
	"math"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/models"
	geo "github.com/jengzang/route-history-backend/internal/spatial"
)

// maxDeviationSamples bounds the number of trace points compared against the corridor
const maxDeviationSamples = 100

// DeviationOptions configures DetectDeviations
type DeviationOptions struct {
	ToleranceKm float64
	Mode        models.CorridorMode
}

// DefaultDeviationOptions returns a 500 m point-to-waypoint corridor
func DefaultDeviationOptions() DeviationOptions {
	return DeviationOptions{
		ToleranceKm: 0.5,
		Mode:        models.CorridorWaypoint,
	}
}

// SampleStride returns the decimation stride for a trace of n points:
// max(1, floor(n/100)). Indices 0, stride, 2*stride, ... are sampled.
func SampleStride(n int) int {
	step := n / maxDeviationSamples
	if step < 1 {
		step = 1
	}
	return step
}

// DetectDeviations flags sampled points farther than ToleranceKm from the planned
// corridor. Beyond twice the tolerance a deviation is MAJOR. Fewer than two
// waypoints define no corridor and yield no deviations.
func DetectDeviations(points []models.TrackPoint, waypoints []models.PlannedWaypoint, opts DeviationOptions) []models.RouteDeviation {
	if len(waypoints) < 2 {
		return nil
	}

	corridor := make([]geo.Point, len(waypoints))
	for i, w := range waypoints {
		corridor[i] = geo.Point{Lat: w.Lat, Lng: w.Lng}
	}

	var deviations []models.RouteDeviation
	step := SampleStride(len(points))

	for i := 0; i < len(points); i += step {
		p := points[i]
		d := distanceToCorridor(geo.Point{Lat: p.Lat, Lng: p.Lng}, corridor, opts.Mode)
		if !(d > opts.ToleranceKm) {
			continue
		}

		severity := models.SeverityMinor
		if d > 2*opts.ToleranceKm {
			severity = models.SeverityMajor
		}

		deviations = append(deviations, models.RouteDeviation{
			SourceIndex:           uint32(i),
			Point:                 p.Coord(),
			DistanceFromPlannedKm: d,
			TimestampMs:           p.TimestampMs,
			Severity:              severity,
		})
	}

	return deviations
}

// distanceToCorridor returns the distance in km from p to the nearest waypoint, or to
// the nearest point of any corridor leg in CorridorSegment mode
func distanceToCorridor(p geo.Point, corridor []geo.Point, mode models.CorridorMode) float64 {
	min := math.Inf(1)

	switch mode {
	case models.CorridorSegment:
		for i := 1; i < len(corridor); i++ {
			if d := geo.DistanceToSegmentKm(p, corridor[i-1], corridor[i]); d < min {
				min = d
			}
		}
	default:
		for _, w := range corridor {
			if d := geo.HaversineKm(p.Lat, p.Lng, w.Lat, w.Lng); d < min {
				min = d
			}
		}
	}

	return min
}

// DeviationsAnalyzer exposes DetectDeviations through the analyzer registry
type DeviationsAnalyzer struct {
	*analysis.BaseAnalyzer
}

// NewDeviationsAnalyzer creates a new deviations analyzer
func NewDeviationsAnalyzer() analysis.Analyzer {
	return &DeviationsAnalyzer{BaseAnalyzer: analysis.NewBaseAnalyzer("deviations")}
}

// Analyze implements analysis.Analyzer
func (a *DeviationsAnalyzer) Analyze(_ context.Context, in *analysis.Input, out *models.TripAnalysis) error {
	out.Deviations = DetectDeviations(in.Points, in.Waypoints, DeviationOptions{
		ToleranceKm: in.Params.DeviationToleranceKm,
		Mode:        in.Params.CorridorMode,
	})
	return nil
}

func init() {
	analysis.RegisterAnalyzer("deviations", NewDeviationsAnalyzer)
}

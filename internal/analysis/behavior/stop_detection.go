package behavior

import (
	"context"
	"math"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/analysis/movement"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/spatial"
)

// StopOptions configures DetectStops
type StopOptions struct {
	SpeedThresholdKmh  float64 // speed <= threshold counts as stopped
	MinStopDurationSec float64
}

// DefaultStopOptions returns the reference thresholds: 3 km/h held for two minutes
func DefaultStopOptions() StopOptions {
	return StopOptions{
		SpeedThresholdKmh:  3,
		MinStopDurationSec: 120,
	}
}

// DetectStops finds runs of points at or under the speed threshold lasting at least
// MinStopDurationSec. It ignores the precomputed IsStopped flag.
func DetectStops(points []models.TrackPoint, opts StopOptions) []models.DetectedStop {
	classifier := movement.SpeedThreshold{ThresholdKmh: opts.SpeedThresholdKmh, Inclusive: true}
	return DetectStopsWith(points, classifier, opts.MinStopDurationSec)
}

// DetectStopsWith finds duration-filtered stops using an arbitrary classifier
func DetectStopsWith(points []models.TrackPoint, classifier movement.Classifier, minStopDurationSec float64) []models.DetectedStop {
	var stops []models.DetectedStop

	runStart := -1
	for i, p := range points {
		if classifier.IsStopped(p) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}

		if runStart >= 0 {
			if stop, ok := closeStopRun(points[runStart:i], minStopDurationSec); ok {
				stops = append(stops, stop)
			}
			runStart = -1
		}
	}

	// The trace may end while still stopped
	if runStart >= 0 {
		if stop, ok := closeStopRun(points[runStart:], minStopDurationSec); ok {
			stops = append(stops, stop)
		}
	}

	return stops
}

// closeStopRun turns a candidate run into a DetectedStop when it lasts long enough.
// Both the raw duration and the reported rounded minutes must reach the minimum.
func closeStopRun(run []models.TrackPoint, minStopDurationSec float64) (models.DetectedStop, bool) {
	first, last := run[0], run[len(run)-1]
	durationSec := float64(last.TimestampMs-first.TimestampMs) / 1000
	if durationSec < minStopDurationSec {
		return models.DetectedStop{}, false
	}

	durationMin := uint32(math.Round(durationSec / 60))
	if float64(durationMin)*60 < minStopDurationSec {
		return models.DetectedStop{}, false
	}

	positions := make([]spatial.Point, len(run))
	for i, p := range run {
		positions[i] = spatial.Point{Lat: p.Lat, Lng: p.Lng}
	}
	center := spatial.Centroid(positions)

	return models.DetectedStop{
		AvgLat:           center.Lat,
		AvgLng:           center.Lng,
		StartTimestampMs: first.TimestampMs,
		EndTimestampMs:   last.TimestampMs,
		DurationMin:      durationMin,
		PointCount:       uint32(len(run)),
	}, true
}

// StopsAnalyzer exposes DetectStops through the analyzer registry
type StopsAnalyzer struct {
	*analysis.BaseAnalyzer
}

// NewStopsAnalyzer creates a new stops analyzer
func NewStopsAnalyzer() analysis.Analyzer {
	return &StopsAnalyzer{BaseAnalyzer: analysis.NewBaseAnalyzer("stops")}
}

// Analyze implements analysis.Analyzer
func (a *StopsAnalyzer) Analyze(_ context.Context, in *analysis.Input, out *models.TripAnalysis) error {
	out.Stops = DetectStops(in.Points, StopOptions{
		SpeedThresholdKmh:  in.Params.StopSpeedThresholdKmh,
		MinStopDurationSec: in.Params.MinStopDurationSec,
	})
	return nil
}

func init() {
	analysis.RegisterAnalyzer("stops", NewStopsAnalyzer)
}

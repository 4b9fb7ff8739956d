package behavior

import (
	"context"
	"fmt"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/analysis/movement"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/stats"
)

// Segment labels, numbered independently per kind
const (
	movingLabel  = "Tramo %d"
	stoppedLabel = "Parada %d"
)

// SegmentTrip partitions points into alternating moving/stopped segments using the
// precomputed IsStopped flag of each point
func SegmentTrip(points []models.TrackPoint) []models.TripSegment {
	return SegmentTripWith(points, movement.Precomputed{})
}

// SegmentTripWith partitions points into maximal runs of equal classification.
// The returned segments cover [0, len(points)-1] exactly once, in ascending order.
// Fewer than two points yield no segments.
func SegmentTripWith(points []models.TrackPoint, classifier movement.Classifier) []models.TripSegment {
	if len(points) < 2 {
		return nil
	}

	var segments []models.TripSegment
	movingCount, stoppedCount := 0, 0

	runStart := 0
	runStopped := classifier.IsStopped(points[0])

	for i := 1; i <= len(points); i++ {
		var stopped bool
		if i < len(points) {
			stopped = classifier.IsStopped(points[i])
			if stopped == runStopped {
				continue
			}
		}

		var label string
		if runStopped {
			stoppedCount++
			label = fmt.Sprintf(stoppedLabel, stoppedCount)
		} else {
			movingCount++
			label = fmt.Sprintf(movingLabel, movingCount)
		}
		segments = append(segments, buildSegment(points, runStart, i-1, runStopped, label, classifier))

		runStart = i
		runStopped = stopped
	}

	return segments
}

// buildSegment summarizes points[start..end]
func buildSegment(points []models.TrackPoint, start, end int, stopped bool, label string, classifier movement.Classifier) models.TripSegment {
	first, last := points[start], points[end]

	seg := models.TripSegment{
		Kind:        models.SegmentMoving,
		StartIndex:  uint32(start),
		EndIndex:    uint32(end),
		StartCoord:  first.Coord(),
		EndCoord:    last.Coord(),
		DurationSec: float64(last.TimestampMs-first.TimestampMs) / 1000,
		Label:       label,
	}

	if stopped {
		seg.Kind = models.SegmentStopped
		return seg
	}

	seg.DistanceKm = last.DistanceFromStartKm - first.DistanceFromStartKm

	// Only points the classifier itself reports as moving contribute to the speed figures
	var speeds []float64
	for _, p := range points[start : end+1] {
		if !classifier.IsStopped(p) {
			speeds = append(speeds, p.SpeedKmh)
		}
	}
	seg.AvgSpeedKmh = stats.Mean(speeds)
	seg.MaxSpeedKmh = stats.Max(speeds)

	return seg
}

// SegmentsAnalyzer exposes SegmentTrip through the analyzer registry
type SegmentsAnalyzer struct {
	*analysis.BaseAnalyzer
}

// NewSegmentsAnalyzer creates a new segments analyzer
func NewSegmentsAnalyzer() analysis.Analyzer {
	return &SegmentsAnalyzer{BaseAnalyzer: analysis.NewBaseAnalyzer("segments")}
}

// Analyze implements analysis.Analyzer
func (a *SegmentsAnalyzer) Analyze(_ context.Context, in *analysis.Input, out *models.TripAnalysis) error {
	out.Segments = SegmentTrip(in.Points)
	return nil
}

func init() {
	analysis.RegisterAnalyzer("segments", NewSegmentsAnalyzer)
}

package behavior

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jengzang/route-history-backend/internal/models"
)

// speedTrack creates points from (seconds, speed) pairs along the equator
func speedTrack(samples [][2]float64) []models.TrackPoint {
	points := make([]models.TrackPoint, len(samples))
	for i, s := range samples {
		points[i] = models.TrackPoint{
			SequenceIndex: uint32(i),
			Lat:           0.001 * float64(i%3),
			Lng:           0.001 * float64(i),
			TimestampMs:   int64(s[0] * 1000),
			SpeedKmh:      s[1],
		}
	}
	return points
}

func TestDetectStopsTrailingRun(t *testing.T) {
	points := speedTrack([][2]float64{
		{0, 40}, {30, 35}, {60, 2}, {120, 1}, {180, 0}, {240, 0},
	})

	stops := DetectStops(points, StopOptions{SpeedThresholdKmh: 3, MinStopDurationSec: 120})
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(stops))
	}

	s := stops[0]
	if s.StartTimestampMs != 60_000 || s.EndTimestampMs != 240_000 {
		t.Errorf("stop spans %d..%d, want 60000..240000", s.StartTimestampMs, s.EndTimestampMs)
	}
	if s.DurationMin != 3 {
		t.Errorf("duration = %d min, want 3", s.DurationMin)
	}
	if s.PointCount != 4 {
		t.Errorf("point count = %d, want 4", s.PointCount)
	}

	wantLat := (points[2].Lat + points[3].Lat + points[4].Lat + points[5].Lat) / 4
	wantLng := (points[2].Lng + points[3].Lng + points[4].Lng + points[5].Lng) / 4
	if math.Abs(s.AvgLat-wantLat) > 1e-12 || math.Abs(s.AvgLng-wantLng) > 1e-12 {
		t.Errorf("center = (%v, %v), want (%v, %v)", s.AvgLat, s.AvgLng, wantLat, wantLng)
	}
}

func TestDetectStopsFiltersShortRuns(t *testing.T) {
	points := speedTrack([][2]float64{
		{0, 40}, {10, 0}, {50, 0}, {60, 30}, // 40 s stop, too short
		{100, 3}, {220, 2}, {300, 20}, // 120 s stop, threshold is inclusive
		{310, 1}, // trailing single point, zero duration
	})

	stops := DetectStops(points, DefaultStopOptions())
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(stops))
	}
	if stops[0].StartTimestampMs != 100_000 || stops[0].DurationMin != 2 {
		t.Errorf("unexpected stop %+v", stops[0])
	}
}

func TestDetectStopsIgnoresPrecomputedFlag(t *testing.T) {
	points := speedTrack([][2]float64{{0, 50}, {200, 50}, {400, 50}})
	for i := range points {
		points[i].IsStopped = true
	}
	if stops := DetectStops(points, DefaultStopOptions()); len(stops) != 0 {
		t.Errorf("got %d stops from fast points flagged stopped", len(stops))
	}
}

func TestDetectStopsEmpty(t *testing.T) {
	if stops := DetectStops(nil, DefaultStopOptions()); len(stops) != 0 {
		t.Errorf("got %d stops for empty input", len(stops))
	}
}

func TestDetectStopsDurationGuarantee(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(200)
		samples := make([][2]float64, n)
		ts := 0.0
		for i := range samples {
			ts += float64(1 + rng.Intn(45))
			speed := 0.0
			if rng.Intn(3) == 0 {
				speed = 5 + rng.Float64()*60
			}
			samples[i] = [2]float64{ts, speed}
		}
		minSec := float64(rng.Intn(400))

		for _, s := range DetectStops(speedTrack(samples), StopOptions{SpeedThresholdKmh: 3, MinStopDurationSec: minSec}) {
			if float64(s.DurationMin)*60 < minSec {
				t.Fatalf("trial %d: stop of %d min emitted with minimum %v s", trial, s.DurationMin, minSec)
			}
			if float64(s.EndTimestampMs-s.StartTimestampMs)/1000 < minSec {
				t.Fatalf("trial %d: stop shorter than %v s emitted", trial, minSec)
			}
		}
	}
}

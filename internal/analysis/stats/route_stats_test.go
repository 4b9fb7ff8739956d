package stats

import (
	"math"
	"testing"

	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/spatial"
)

func TestComputeRouteStatsShortInput(t *testing.T) {
	tests := []struct {
		name   string
		points []models.TrackPoint
	}{
		{"empty", nil},
		{"single", []models.TrackPoint{{Lat: 1, Lng: 1, SpeedKmh: 50, TimestampMs: 1000}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRouteStats(tt.points)
			want := models.RouteStatsBundle{PointCount: uint32(len(tt.points))}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestComputeRouteStats(t *testing.T) {
	speeds := []float64{10, 50, 2, 0, 20, 3, 2.9, 2.99, 40, 1}
	points := make([]models.TrackPoint, len(speeds))
	for i, v := range speeds {
		points[i] = models.TrackPoint{
			Lat:         0,
			Lng:         0.001 * float64(i),
			TimestampMs: int64(i) * 60_000,
			SpeedKmh:    v,
			// Deliberately inconsistent odometer: stats must ignore it
			DistanceFromStartKm: 100 * float64(i),
		}
	}

	got := ComputeRouteStats(points)

	wantDistance := spatial.HaversineKm(0, 0, 0, 0.009)
	if math.Abs(got.DistanceKm-wantDistance) > 1e-9 {
		t.Errorf("distance = %v, want %v", got.DistanceKm, wantDistance)
	}
	if got.DurationMin != 9 {
		t.Errorf("duration = %v min, want 9", got.DurationMin)
	}
	if got.MaxSpeedKmh != 50 {
		t.Errorf("max speed = %v, want 50", got.MaxSpeedKmh)
	}
	// 50->2, 20->3 is not a stop (3 is moving), 3->2.9, 40->1
	if got.StopCount != 3 {
		t.Errorf("stop count = %d, want 3", got.StopCount)
	}
	if math.Abs(got.AvgSpeedKmh-wantDistance/9*60) > 1e-9 {
		t.Errorf("avg speed = %v, want %v", got.AvgSpeedKmh, wantDistance/9*60)
	}
	if got.PointCount != uint32(len(points)) {
		t.Errorf("point count = %d, want %d", got.PointCount, len(points))
	}
}

func TestComputeRouteStatsFirstPointNeverCountsAsStop(t *testing.T) {
	points := []models.TrackPoint{
		{SpeedKmh: 0, TimestampMs: 0},
		{SpeedKmh: 1, TimestampMs: 1000},
	}
	if got := ComputeRouteStats(points); got.StopCount != 0 {
		t.Errorf("stop count = %d, want 0", got.StopCount)
	}
}

func TestComputeRouteStatsZeroDuration(t *testing.T) {
	points := []models.TrackPoint{
		{Lat: 0, Lng: 0, SpeedKmh: 10, TimestampMs: 5000},
		{Lat: 0, Lng: 0.01, SpeedKmh: 10, TimestampMs: 5000},
	}
	got := ComputeRouteStats(points)
	if got.DurationMin != 0 || got.AvgSpeedKmh != 0 {
		t.Errorf("zero duration produced duration=%v avg=%v", got.DurationMin, got.AvgSpeedKmh)
	}
	if got.DistanceKm <= 0 {
		t.Errorf("distance = %v, want > 0", got.DistanceKm)
	}
}

package analysis_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/analysis/behavior"
	_ "github.com/jengzang/route-history-backend/internal/analysis/spatial"
	routestats "github.com/jengzang/route-history-backend/internal/analysis/stats"
	"github.com/jengzang/route-history-backend/internal/models"
)

// tenPointTrip runs 0.01 degrees east along the equator in 120 s, holding still at
// speed 0 for 90 s on points 2..5
func tenPointTrip() []models.TrackPoint {
	type sample struct {
		sec     int64
		lng     float64
		speed   float64
		stopped bool
	}
	samples := []sample{
		{0, 0, 30, false},
		{10, 0.002, 40, false},
		{15, 0.004, 0, true},
		{45, 0.004, 0, true},
		{75, 0.004, 0, true},
		{105, 0.004, 0, true},
		{110, 0.006, 35, false},
		{113, 0.0075, 45, false},
		{116, 0.009, 45, false},
		{120, 0.01, 30, false},
	}

	points := make([]models.TrackPoint, len(samples))
	for i, s := range samples {
		points[i] = models.TrackPoint{
			SequenceIndex:       uint32(i),
			Lat:                 0,
			Lng:                 s.lng,
			TimestampMs:         s.sec * 1000,
			SpeedKmh:            s.speed,
			DistanceFromStartKm: s.lng * 111.19,
			IsStopped:           s.stopped,
		}
	}
	return points
}

func TestEndToEndScenario(t *testing.T) {
	points := tenPointTrip()

	stops := behavior.DetectStops(points, behavior.StopOptions{SpeedThresholdKmh: 3, MinStopDurationSec: 60})
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(stops))
	}
	if stops[0].DurationMin != 2 {
		t.Errorf("stop duration = %d min, want 2 (90 s rounded)", stops[0].DurationMin)
	}
	if stops[0].PointCount != 4 {
		t.Errorf("stop point count = %d, want 4", stops[0].PointCount)
	}

	segs := behavior.SegmentTrip(points)
	wantKinds := []models.SegmentKind{models.SegmentMoving, models.SegmentStopped, models.SegmentMoving}
	if len(segs) != len(wantKinds) {
		t.Fatalf("got %d segments, want %d", len(segs), len(wantKinds))
	}
	for i, s := range segs {
		if s.Kind != wantKinds[i] {
			t.Errorf("segment %d kind = %s, want %s", i, s.Kind, wantKinds[i])
		}
	}
	if segs[1].DurationSec != 90 {
		t.Errorf("stopped segment duration = %v, want 90", segs[1].DurationSec)
	}

	bundle := routestats.ComputeRouteStats(points)
	if math.Abs(bundle.DistanceKm-1.11) > 0.01 {
		t.Errorf("distance = %v km, want ~1.11", bundle.DistanceKm)
	}
	if bundle.DurationMin != 2 {
		t.Errorf("duration = %v min, want 2", bundle.DurationMin)
	}
	if bundle.StopCount != 1 {
		t.Errorf("stop count = %d, want 1", bundle.StopCount)
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"deviations", "segments", "stats", "stops"}
	if got := analysis.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		a := analysis.GetAnalyzer(name)
		if a == nil || a.GetName() != name {
			t.Errorf("GetAnalyzer(%q) = %v", name, a)
		}
	}
	if a := analysis.GetAnalyzer("heatmap"); a != nil {
		t.Errorf("unexpected analyzer %v", a)
	}
}

func TestRunSequentialAndParallelAgree(t *testing.T) {
	points := tenPointTrip()
	in := &analysis.Input{
		Points: points,
		Waypoints: []models.PlannedWaypoint{
			{Lat: 0, Lng: 0, Name: "depot"},
			{Lat: 0, Lng: 0.01, Name: "customer"},
		},
		Params: analysis.DefaultParams(),
	}
	in.Params.MinStopDurationSec = 60
	in.Params.DeviationToleranceKm = 0.2

	var seq, par models.TripAnalysis
	if err := analysis.Run(context.Background(), in, &seq, nil, false); err != nil {
		t.Fatalf("sequential run failed: %v", err)
	}
	if err := analysis.Run(context.Background(), in, &par, nil, true); err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Errorf("sequential and parallel results differ:\n%+v\n%+v", seq, par)
	}

	if seq.PointCount != len(points) || seq.Stats == nil || len(seq.Segments) != 3 || len(seq.Stops) != 1 {
		t.Errorf("incomplete analysis: %+v", seq)
	}
	// Point 2..5 sit 0.004 degrees (~445 m) from the nearest waypoint
	if len(seq.Deviations) == 0 {
		t.Errorf("expected deviations with a 200 m corridor")
	}
	if seq.Params.MinStopDurationSec != 60 {
		t.Errorf("params not echoed: %+v", seq.Params)
	}
}

func TestRunSelectedAnalyzers(t *testing.T) {
	in := &analysis.Input{Points: tenPointTrip(), Params: analysis.DefaultParams()}

	var out models.TripAnalysis
	if err := analysis.Run(context.Background(), in, &out, []string{"stats", "stats"}, false); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Stats == nil || out.Segments != nil || out.Stops != nil {
		t.Errorf("only stats expected, got %+v", out)
	}

	err := analysis.Run(context.Background(), in, &out, []string{"stats", "heatmap"}, false)
	if !errors.Is(err, analysis.ErrUnknownAnalyzer) {
		t.Errorf("expected ErrUnknownAnalyzer, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := &analysis.Input{Points: tenPointTrip(), Params: analysis.DefaultParams()}
	var out models.TripAnalysis
	if err := analysis.Run(ctx, in, &out, nil, false); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func BenchmarkRunLargeTrip(b *testing.B) {
	const n = 20_000
	points := make([]models.TrackPoint, n)
	for i := range points {
		stopped := (i/500)%4 == 3
		speed := 50.0
		if stopped {
			speed = 0
		}
		points[i] = models.TrackPoint{
			SequenceIndex:       uint32(i),
			Lat:                 40 + float64(i)*1e-5,
			Lng:                 -3.7 + float64(i)*1e-5,
			TimestampMs:         int64(i) * 1000,
			SpeedKmh:            speed,
			DistanceFromStartKm: float64(i) * 0.014,
			IsStopped:           stopped,
		}
	}
	waypoints := make([]models.PlannedWaypoint, 50)
	for i := range waypoints {
		waypoints[i] = models.PlannedWaypoint{Lat: 40 + float64(i)*4e-3, Lng: -3.7 + float64(i)*4e-3}
	}
	in := &analysis.Input{Points: points, Waypoints: waypoints, Params: analysis.DefaultParams()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out models.TripAnalysis
		if err := analysis.Run(context.Background(), in, &out, nil, true); err != nil {
			b.Fatal(err)
		}
	}
}

package export

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"

	"github.com/jengzang/route-history-backend/internal/models"
)

func countKinds(features []map[string]interface{}) map[string]int {
	counts := map[string]int{}
	for _, props := range features {
		counts[props["kind"].(string)]++
	}
	return counts
}

func TestTripFeatureCollection(t *testing.T) {
	points := []models.TrackPoint{
		{Lat: 0, Lng: 0, TimestampMs: 0},
		{Lat: 0, Lng: 0.001, TimestampMs: 10_000},
		{Lat: 0, Lng: 0.001, TimestampMs: 200_000, IsStopped: true},
		{Lat: 0, Lng: 0.002, TimestampMs: 210_000},
	}
	waypoints := []models.PlannedWaypoint{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.01}}
	analysis := &models.TripAnalysis{
		Segments: []models.TripSegment{
			{Kind: models.SegmentMoving, StartIndex: 0, EndIndex: 1, EndCoord: models.Coordinate{Lng: 0.001}},
			{Kind: models.SegmentStopped, StartIndex: 2, EndIndex: 2},
			{Kind: models.SegmentMoving, StartIndex: 3, EndIndex: 3},
		},
		Stops:      []models.DetectedStop{{AvgLat: 0, AvgLng: 0.001, DurationMin: 3}},
		Deviations: []models.RouteDeviation{{SourceIndex: 3, Point: models.Coordinate{Lng: 0.002}, Severity: models.SeverityMinor}},
	}

	fc := TripFeatureCollection(points, waypoints, analysis)

	props := make([]map[string]interface{}, len(fc.Features))
	for i, f := range fc.Features {
		props[i] = f.Properties
	}
	got := countKinds(props)
	// single-point segments have no line
	want := map[string]int{KindTrace: 1, KindCorridor: 1, KindSegment: 1, KindStop: 1, KindDeviation: 1}
	for kind, n := range want {
		if got[kind] != n {
			t.Errorf("%s features = %d, want %d", kind, got[kind], n)
		}
	}

	trace := fc.Features[0].Geometry.(orb.LineString)
	if len(trace) != 4 || trace[1] != (orb.Point{0.001, 0}) {
		t.Errorf("trace geometry = %v, want lng/lat order", trace)
	}

	if len(fc.BBox) != 4 || fc.BBox[2] != 0.002 {
		t.Errorf("bbox = %v, want [minLng minLat maxLng maxLat]", fc.BBox)
	}

	if _, err := json.Marshal(fc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestTripFeatureCollectionShortInput(t *testing.T) {
	fc := TripFeatureCollection([]models.TrackPoint{{Lat: 1, Lng: 1}}, nil, nil)
	if len(fc.Features) != 0 {
		t.Errorf("got %d features for a single point", len(fc.Features))
	}
}

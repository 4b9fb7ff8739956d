// Package export renders trip analyses as GeoJSON for map clients.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/spatial"
)

// Feature kinds, stored in the "kind" property
const (
	KindTrace     = "trace"
	KindCorridor  = "corridor"
	KindSegment   = "segment"
	KindStop      = "stop"
	KindDeviation = "deviation"
)

// TripFeatureCollection builds one collection holding the raw trace, the planned
// corridor, every segment as a line, every stop and every deviation as a point.
// Inputs with fewer than 2 points produce no trace or segment lines.
func TripFeatureCollection(points []models.TrackPoint, waypoints []models.PlannedWaypoint, a *models.TripAnalysis) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(points) >= 2 {
		line := make(orb.LineString, len(points))
		positions := make([]spatial.Point, len(points))
		for i, p := range points {
			line[i] = orb.Point{p.Lng, p.Lat}
			positions[i] = spatial.Point{Lat: p.Lat, Lng: p.Lng}
		}
		minLat, minLng, maxLat, maxLng := spatial.BoundingBox(positions)
		fc.BBox = geojson.BBox{minLng, minLat, maxLng, maxLat}

		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindTrace
		f.Properties["point_count"] = len(points)
		fc.Append(f)
	}

	if len(waypoints) >= 2 {
		line := make(orb.LineString, len(waypoints))
		for i, w := range waypoints {
			line[i] = orb.Point{w.Lng, w.Lat}
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindCorridor
		fc.Append(f)
	}

	if a == nil {
		return fc
	}

	for _, seg := range a.Segments {
		if int(seg.EndIndex) >= len(points) {
			continue
		}
		line := make(orb.LineString, 0, seg.PointCount())
		for i := seg.StartIndex; i <= seg.EndIndex; i++ {
			line = append(line, orb.Point{points[i].Lng, points[i].Lat})
		}
		if len(line) < 2 {
			continue
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindSegment
		f.Properties["segment_kind"] = string(seg.Kind)
		f.Properties["label"] = seg.Label
		f.Properties["duration_sec"] = seg.DurationSec
		f.Properties["distance_km"] = seg.DistanceKm
		f.Properties["avg_speed_kmh"] = seg.AvgSpeedKmh
		f.Properties["bearing"] = spatial.Bearing(seg.StartCoord.Lat, seg.StartCoord.Lng, seg.EndCoord.Lat, seg.EndCoord.Lng)
		fc.Append(f)
	}

	for i, s := range a.Stops {
		f := geojson.NewFeature(orb.Point{s.AvgLng, s.AvgLat})
		f.Properties["kind"] = KindStop
		f.Properties["index"] = i
		f.Properties["duration_min"] = s.DurationMin
		f.Properties["start_ms"] = s.StartTimestampMs
		f.Properties["end_ms"] = s.EndTimestampMs
		fc.Append(f)
	}

	for _, d := range a.Deviations {
		f := geojson.NewFeature(orb.Point{d.Point.Lng, d.Point.Lat})
		f.Properties["kind"] = KindDeviation
		f.Properties["severity"] = string(d.Severity)
		f.Properties["distance_km"] = d.DistanceFromPlannedKm
		f.Properties["source_index"] = d.SourceIndex
		fc.Append(f)
	}

	return fc
}

package stats

import (
	"github.com/jengzang/route-history-backend/internal/models"
	aggregate "github.com/jengzang/route-history-backend/internal/stats"
)

// comparedMetric describes one row of a route comparison
type comparedMetric struct {
	key            string
	label          string
	value          func(b models.RouteStatsBundle) float64
	higherIsBetter bool
}

// comparedMetrics lists the compared metrics in output order with their polarity.
// Only average speed improves when it grows.
var comparedMetrics = []comparedMetric{
	{"distance", "Distance (km)", func(b models.RouteStatsBundle) float64 { return b.DistanceKm }, false},
	{"duration", "Duration (min)", func(b models.RouteStatsBundle) float64 { return b.DurationMin }, false},
	{"avgSpeed", "Average speed (km/h)", func(b models.RouteStatsBundle) float64 { return b.AvgSpeedKmh }, true},
	{"maxSpeed", "Max speed (km/h)", func(b models.RouteStatsBundle) float64 { return b.MaxSpeedKmh }, false},
	{"stopCount", "Stops", func(b models.RouteStatsBundle) float64 { return float64(b.StopCount) }, false},
}

// CompareRouteStats diffs trip b against trip a, metric by metric
func CompareRouteStats(a, b models.RouteStatsBundle) []models.MetricDiff {
	diffs := make([]models.MetricDiff, 0, len(comparedMetrics))

	for _, m := range comparedMetrics {
		va, vb := m.value(a), m.value(b)

		better := vb < va
		if m.higherIsBetter {
			better = vb > va
		}

		diffs = append(diffs, models.MetricDiff{
			Metric:        m.key,
			Label:         m.label,
			ValueA:        va,
			ValueB:        vb,
			AbsoluteDelta: vb - va,
			PercentDelta:  aggregate.PercentChange(va, vb),
			IsBetter:      better,
		})
	}

	return diffs
}

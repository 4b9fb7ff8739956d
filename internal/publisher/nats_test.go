package publisher

import (
	"testing"
	"time"

	"github.com/jengzang/route-history-backend/internal/models"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		tripID string
		want   string
	}{
		{"3f2a", "route.analysis.3f2a"},
		{"a.b c", "route.analysis.a_b_c"},
		{"  ", "route.analysis._"},
		{"x>*", "route.analysis.x__"},
	}

	for _, tt := range tests {
		if got := Subject(tt.tripID); got != tt.want {
			t.Errorf("Subject(%q) = %q, want %q", tt.tripID, got, tt.want)
		}
	}
}

func TestNewAnalysisMessage(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := &models.TripAnalysis{
		TripID:     "t1",
		PointCount: 42,
		Segments:   make([]models.TripSegment, 3),
		Stops:      make([]models.DetectedStop, 1),
		Deviations: []models.RouteDeviation{
			{Severity: models.SeverityMinor},
			{Severity: models.SeverityMajor},
			{Severity: models.SeverityMajor},
		},
	}

	msg := NewAnalysisMessage(a, at)
	if msg.TripID != "t1" || msg.PointCount != 42 || !msg.Timestamp.Equal(at) {
		t.Errorf("unexpected header fields: %+v", msg)
	}
	if msg.SegmentCount != 3 || msg.StopCount != 1 || msg.DeviationCount != 3 || msg.MajorCount != 2 {
		t.Errorf("unexpected counts: %+v", msg)
	}
}

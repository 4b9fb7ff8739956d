// Package movement decides whether a track point counts as stopped. The segmenter,
// the stop detector and the route statistics all consume a Classifier so that
// their notions of "stopped" can be configured from one place.
package movement

import "github.com/jengzang/route-history-backend/internal/models"

// Classifier reports whether a single point is stopped
type Classifier interface {
	IsStopped(p models.TrackPoint) bool
}

// Precomputed trusts the IsStopped flag set at ingestion
type Precomputed struct{}

// IsStopped implements Classifier
func (Precomputed) IsStopped(p models.TrackPoint) bool {
	return p.IsStopped
}

// SpeedThreshold classifies from the instantaneous speed
type SpeedThreshold struct {
	ThresholdKmh float64
	Inclusive    bool // speed == ThresholdKmh counts as stopped
}

// IsStopped implements Classifier
func (s SpeedThreshold) IsStopped(p models.TrackPoint) bool {
	if s.Inclusive {
		return p.SpeedKmh <= s.ThresholdKmh
	}
	return p.SpeedKmh < s.ThresholdKmh
}

// Func adapts a plain function to Classifier
type Func func(p models.TrackPoint) bool

// IsStopped implements Classifier
func (f Func) IsStopped(p models.TrackPoint) bool {
	return f(p)
}

package publisher

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/models"
)

// SubjectPrefix is prepended to the trip ID of every analysis event
const SubjectPrefix = "route.analysis"

type NATSPublisher struct {
	nc          *nats.Conn
	logSubjects bool
	metrics     PublisherMetrics
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url string, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("route-history-backend"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			logger.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Info("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, logSubjects: logSubjects, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// AnalysisMessage is the event body published after a stored trip is analysed
type AnalysisMessage struct {
	TripID         string                   `json:"tripId"`
	Timestamp      time.Time                `json:"timestamp"`
	PointCount     int                      `json:"pointCount"`
	SegmentCount   int                      `json:"segmentCount"`
	StopCount      int                      `json:"stopCount"`
	DeviationCount int                      `json:"deviationCount"`
	MajorCount     int                      `json:"majorDeviationCount"`
	Stats          *models.RouteStatsBundle `json:"stats,omitempty"`
}

// NewAnalysisMessage summarises a trip analysis
func NewAnalysisMessage(a *models.TripAnalysis, at time.Time) AnalysisMessage {
	msg := AnalysisMessage{
		TripID:         a.TripID,
		Timestamp:      at,
		PointCount:     a.PointCount,
		SegmentCount:   len(a.Segments),
		StopCount:      len(a.Stops),
		DeviationCount: len(a.Deviations),
		Stats:          a.Stats,
	}
	for _, d := range a.Deviations {
		if d.Severity == models.SeverityMajor {
			msg.MajorCount++
		}
	}
	return msg
}

// Subject returns the subject an analysis of tripID is published on
func Subject(tripID string) string {
	return SubjectPrefix + "." + subjectToken(tripID)
}

func (p *NATSPublisher) PublishAnalysis(a *models.TripAnalysis) error {
	subject := Subject(a.TripID)
	b, err := json.Marshal(NewAnalysisMessage(a, time.Now().UTC()))
	if err != nil {
		return err
	}
	if p.logSubjects {
		logger.Debug("nats publish", "subject", subject)
	}
	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}

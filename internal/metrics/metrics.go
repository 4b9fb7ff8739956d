package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Analyses           *prometheus.CounterVec // analyzer label
	AnalysisDuration   prometheus.Histogram
	AnalysisPoints     prometheus.Histogram
	ValidationFailures prometheus.Counter
	TripsCreated       prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_analyses_total",
			Help: "Analyzer executions by analyzer name.",
		}, []string{"analyzer"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_analysis_duration_seconds",
			Help:    "Wall time of one trip analysis.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
		AnalysisPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_analysis_points",
			Help:    "Number of track points per analysed trip.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_validation_failures_total",
			Help: "Traces or corridors rejected by validation.",
		}),
		TripsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_trips_created_total",
			Help: "Trips stored through the ingestion endpoint.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "route_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.Analyses, c.AnalysisDuration, c.AnalysisPoints,
		c.ValidationFailures, c.TripsCreated,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// ObserveAnalysis records one completed analysis
func (c *Collector) ObserveAnalysis(analyzers []string, points int, d time.Duration) {
	for _, name := range analyzers {
		c.Analyses.WithLabelValues(name).Inc()
	}
	c.AnalysisPoints.Observe(float64(points))
	c.AnalysisDuration.Observe(d.Seconds())
}

func (c *Collector) ValidationFailedInc() { c.ValidationFailures.Inc() }
func (c *Collector) TripCreatedInc()      { c.TripsCreated.Inc() }

func (c *Collector) NATSPublishedInc()              { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc()             { c.NATSPublishErrs.Inc() }
func (c *Collector) PublishObserve(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jengzang/route-history-backend/internal/models"
)

// ErrUnknownAnalyzer is returned when a requested analyzer is not registered
var ErrUnknownAnalyzer = errors.New("unknown analyzer")

// Analyzer is the interface that all trip analyzers must implement
type Analyzer interface {
	// GetName returns the registry name of the analyzer
	GetName() string

	// Analyze derives its artifact from in and stores it in its own field of out.
	// Implementations must not mutate in.
	Analyze(ctx context.Context, in *Input, out *models.TripAnalysis) error
}

// Input is the immutable input shared by all analyzers of one run
type Input struct {
	Points    []models.TrackPoint
	Waypoints []models.PlannedWaypoint
	Params    Params
}

// Params holds the caller-supplied thresholds of an analysis run
type Params struct {
	StopSpeedThresholdKmh float64
	MinStopDurationSec    float64
	DeviationToleranceKm  float64
	CorridorMode          models.CorridorMode
}

// DefaultParams returns the reference thresholds: 3 km/h, 120 s stops, 0.5 km corridor
func DefaultParams() Params {
	return Params{
		StopSpeedThresholdKmh: 3,
		MinStopDurationSec:    120,
		DeviationToleranceKm:  0.5,
		CorridorMode:          models.CorridorWaypoint,
	}
}

// Echo returns the parameters in their serializable form
func (p Params) Echo() models.AnalysisParams {
	return models.AnalysisParams{
		StopSpeedThresholdKmh: p.StopSpeedThresholdKmh,
		MinStopDurationSec:    p.MinStopDurationSec,
		DeviationToleranceKm:  p.DeviationToleranceKm,
		CorridorMode:          p.CorridorMode,
	}
}

// BaseAnalyzer provides common functionality for all analyzers
type BaseAnalyzer struct {
	Name string
}

// NewBaseAnalyzer creates a new base analyzer
func NewBaseAnalyzer(name string) *BaseAnalyzer {
	return &BaseAnalyzer{Name: name}
}

// GetName returns the analyzer name
func (a *BaseAnalyzer) GetName() string {
	return a.Name
}

// AnalyzerFactory is a function that creates an analyzer instance
type AnalyzerFactory func() Analyzer

// AnalyzerRegistry maps analyzer names to analyzer factories
var AnalyzerRegistry = make(map[string]AnalyzerFactory)

// RegisterAnalyzer registers an analyzer factory for a name
func RegisterAnalyzer(name string, factory AnalyzerFactory) {
	AnalyzerRegistry[name] = factory
}

// GetAnalyzer retrieves an analyzer instance for a name
func GetAnalyzer(name string) Analyzer {
	factory, ok := AnalyzerRegistry[name]
	if !ok {
		return nil
	}
	return factory()
}

// Names returns the registered analyzer names in sorted order
func Names() []string {
	names := make([]string, 0, len(AnalyzerRegistry))
	for name := range AnalyzerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named analyzers (all registered ones when names is empty) over in,
// writing into out. With parallel set the analyzers run concurrently on an errgroup
// bound to ctx; each one owns a distinct field of out.
func Run(ctx context.Context, in *Input, out *models.TripAnalysis, names []string, parallel bool) error {
	if len(names) == 0 {
		names = Names()
	}

	analyzers := make([]Analyzer, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		a := GetAnalyzer(name)
		if a == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAnalyzer, name)
		}
		analyzers = append(analyzers, a)
	}

	out.PointCount = len(in.Points)
	out.Params = in.Params.Echo()

	if !parallel {
		for _, a := range analyzers {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := a.Analyze(ctx, in, out); err != nil {
				return fmt.Errorf("analyzer %s failed: %w", a.GetName(), err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range analyzers {
		a := a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := a.Analyze(gctx, in, out); err != nil {
				return fmt.Errorf("analyzer %s failed: %w", a.GetName(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

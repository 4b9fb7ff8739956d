// Command analyze runs the route analyzers over a trace stored as JSON and prints
// the result to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jengzang/route-history-backend/internal/analysis"
	_ "github.com/jengzang/route-history-backend/internal/analysis/behavior"
	_ "github.com/jengzang/route-history-backend/internal/analysis/spatial"
	_ "github.com/jengzang/route-history-backend/internal/analysis/stats"
	"github.com/jengzang/route-history-backend/internal/export"
	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/models"
)

func main() {
	logger.Init(logger.Config{Level: "warn"})

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		logger.Fatal("Analysis failed", "error", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	defaults := analysis.DefaultParams()

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	in := fs.String("in", "", "trace file: JSON array of track points")
	waypointsPath := fs.String("waypoints", "", "planned corridor: JSON array of waypoints")
	tolerance := fs.Float64("tolerance", defaults.DeviationToleranceKm, "deviation tolerance in km")
	speed := fs.Float64("speed", defaults.StopSpeedThresholdKmh, "stop speed threshold in km/h")
	minStop := fs.Float64("min-stop", defaults.MinStopDurationSec, "minimum stop duration in seconds")
	corridor := fs.String("corridor", string(defaults.CorridorMode), "corridor distance: waypoint or segment")
	asGeoJSON := fs.Bool("geojson", false, "print a GeoJSON FeatureCollection instead of the analysis")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	var points []models.TrackPoint
	if err := readJSON(*in, &points); err != nil {
		return err
	}
	var waypoints []models.PlannedWaypoint
	if *waypointsPath != "" {
		if err := readJSON(*waypointsPath, &waypoints); err != nil {
			return err
		}
	}

	if err := models.ValidateTrack(points); err != nil {
		return fmt.Errorf("%s: %w", *in, err)
	}
	if err := models.ValidatePlannedRoute(waypoints); err != nil {
		return fmt.Errorf("%s: %w", *waypointsPath, err)
	}

	mode, ok := models.ParseCorridorMode(*corridor)
	if !ok {
		return fmt.Errorf("unknown corridor mode %q", *corridor)
	}

	input := &analysis.Input{
		Points:    points,
		Waypoints: waypoints,
		Params: analysis.Params{
			StopSpeedThresholdKmh: *speed,
			MinStopDurationSec:    *minStop,
			DeviationToleranceKm:  *tolerance,
			CorridorMode:          mode,
		},
	}
	out := &models.TripAnalysis{}
	if err := analysis.Run(ctx, input, out, nil, false); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if *asGeoJSON {
		return enc.Encode(export.TripFeatureCollection(points, waypoints, out))
	}
	return enc.Encode(out)
}

func readJSON(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

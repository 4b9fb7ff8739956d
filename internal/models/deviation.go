package models

// Severity grades a RouteDeviation
type Severity string

// Severity constants
const (
	SeverityMinor Severity = "MINOR"
	SeverityMajor Severity = "MAJOR"
)

// CorridorMode selects how the distance to the planned corridor is measured
type CorridorMode string

// CorridorMode constants
const (
	CorridorWaypoint CorridorMode = "waypoint" // nearest planned waypoint
	CorridorSegment  CorridorMode = "segment"  // nearest point on a corridor leg
)

// ParseCorridorMode parses a corridor mode name, empty meaning CorridorWaypoint
func ParseCorridorMode(s string) (CorridorMode, bool) {
	switch CorridorMode(s) {
	case "", CorridorWaypoint:
		return CorridorWaypoint, true
	case CorridorSegment:
		return CorridorSegment, true
	}
	return "", false
}

// RouteDeviation is a sampled point lying outside the planned corridor tolerance
type RouteDeviation struct {
	SourceIndex           uint32     `json:"source_index"`
	Point                 Coordinate `json:"point"`
	DistanceFromPlannedKm float64    `json:"distance_from_planned_km"`
	TimestampMs           int64      `json:"timestamp_ms"`
	Severity              Severity   `json:"severity"`
}

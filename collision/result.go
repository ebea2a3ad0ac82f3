package collision

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Severity grades how seriously a collision verdict should be taken.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityWarning
	SeverityDanger
)

// String returns the wire name of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityDanger:
		return "DANGER"
	default:
		return "SAFE"
	}
}

// MarshalJSON encodes the severity as its wire name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its wire name.
func (s *Severity) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "SAFE":
		*s = SeveritySafe
	case "WARNING":
		*s = SeverityWarning
	case "DANGER":
		*s = SeverityDanger
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// WaypointResult is the verdict for a single point check. CollisionType is
// nil when the point is clear of every zone.
type WaypointResult struct {
	IsColliding   bool     `json:"isColliding"`
	CollisionType *string  `json:"collisionType"`
	AreaName      string   `json:"areaName,omitempty"`
	Severity      Severity `json:"severity"`
	UIColor       string   `json:"uiColor,omitempty"`
	Message       string   `json:"message"`
}

// PathResult is the verdict for a polyline check. IntersectionPoints holds
// every crossing found; the same location can appear more than once when a
// crossing lands on a shared vertex of two zone edges.
type PathResult struct {
	IsColliding        bool        `json:"isColliding"`
	IntersectionPoints []orb.Point `json:"intersectionPoints"`
	Severity           Severity    `json:"severity"`
	Message            string      `json:"message"`
}

// PolygonResult is the verdict for a drawn flight-area check. OverlapArea is
// in square meters; OverlapRatio is the overlapped share of the drawn area.
type PolygonResult struct {
	IsColliding  bool     `json:"isColliding"`
	OverlapArea  float64  `json:"overlapArea"`
	OverlapRatio float64  `json:"overlapRatio"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
}

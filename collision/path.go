package collision

import (
	"fmt"

	"github.com/paulmach/orb"
)

// CheckPath walks every segment of the polyline against every zone edge and
// collects all crossing points. Any crossing makes the verdict DANGER. The
// same location can be reported twice when a crossing lands on a vertex
// shared by two zone edges.
func CheckPath(zones ZoneCatalog, path []orb.Point) PathResult {
	if len(path) < 2 {
		return PathResult{
			Severity: SeveritySafe,
			Message:  "Path needs at least 2 points to check",
		}
	}

	var crossings []orb.Point
	for _, z := range zones {
		crossings = append(crossings, zoneCrossings(path, z)...)
	}

	if len(crossings) == 0 {
		return PathResult{Severity: SeveritySafe, Message: "Path is clear of all zones"}
	}
	return PathResult{
		IsColliding:        true,
		IntersectionPoints: crossings,
		Severity:           SeverityDanger,
		Message:            fmt.Sprintf("Path crosses restricted airspace at %d point(s)", len(crossings)),
	}
}

// zoneCrossings returns every point where the path crosses a zone edge.
// Hole edges count as crossings too.
func zoneCrossings(path []orb.Point, z ZoneFeature) []orb.Point {
	var pts []orb.Point
	for _, ring := range polygonRings(z.Geometry) {
		if distinctVertexCount(ring) < 3 {
			continue
		}
		n := len(ring)
		for i := 0; i < n; i++ {
			e1, e2 := ring[i], ring[(i+1)%n]
			for s := 0; s+1 < len(path); s++ {
				if p, ok := SegmentIntersection(path[s], path[s+1], e1, e2); ok {
					pts = append(pts, p)
				}
			}
		}
	}
	return pts
}

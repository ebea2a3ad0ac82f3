package collision

import (
	"fmt"

	"github.com/paulmach/orb"
)

// CheckWaypoint tests a point against every zone in catalog order and
// reports the first zone containing it. The scan stops at the first hit.
func CheckWaypoint(zones ZoneCatalog, p orb.Point) WaypointResult {
	for _, z := range zones {
		if zoneContains(z, p) {
			return waypointHit(z)
		}
	}
	return safeWaypoint()
}

func waypointHit(z ZoneFeature) WaypointResult {
	// Hand-built catalogs may leave the tag empty; an empty tag still means
	// an attention zone, same as a missing zoneType property on load.
	tag := z.ZoneType
	if tag == "" {
		tag = ZoneDID
	}
	color, severity := ClassifyZone(tag)
	msg := fmt.Sprintf("Waypoint is inside a %s zone", tag)
	if z.Name != "" {
		msg = fmt.Sprintf("Waypoint is inside %s zone %q", tag, z.Name)
	}
	return WaypointResult{
		IsColliding:   true,
		CollisionType: &tag,
		AreaName:      z.Name,
		Severity:      severity,
		UIColor:       color,
		Message:       msg,
	}
}

func safeWaypoint() WaypointResult {
	return WaypointResult{Severity: SeveritySafe, Message: "No collision detected"}
}

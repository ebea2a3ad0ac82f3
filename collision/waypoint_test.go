package collision

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func unitSquareZone(zoneType, name string) ZoneFeature {
	return ZoneFeature{
		Geometry: orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		ZoneType: zoneType,
		Name:     name,
	}
}

func TestCheckWaypoint_InsideZone(t *testing.T) {
	zones := ZoneCatalog{unitSquareZone(ZoneDID, "Test District")}

	res := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if !res.IsColliding {
		t.Fatalf("expected a point inside the zone to collide")
	}
	if res.CollisionType == nil || *res.CollisionType != ZoneDID {
		t.Errorf("expected collisionType DID, got %v", res.CollisionType)
	}
	if res.AreaName != "Test District" {
		t.Errorf("expected the zone name to carry through, got %q", res.AreaName)
	}
	if res.Severity != SeverityWarning {
		t.Errorf("expected DID severity WARNING, got %v", res.Severity)
	}
	if res.UIColor != "#F44336" {
		t.Errorf("expected the DID color, got %q", res.UIColor)
	}
	if res.Message == "" {
		t.Errorf("expected a non-empty message")
	}
}

func TestCheckWaypoint_OutsideZone(t *testing.T) {
	zones := ZoneCatalog{unitSquareZone(ZoneDID, "")}

	res := CheckWaypoint(zones, orb.Point{2, 2})
	if res.IsColliding {
		t.Fatalf("expected a point outside the zone to be safe")
	}
	if res.CollisionType != nil {
		t.Errorf("safe result should have no collision type, got %q", *res.CollisionType)
	}
	if res.Severity != SeveritySafe {
		t.Errorf("expected severity SAFE, got %v", res.Severity)
	}
	if res.UIColor != "" {
		t.Errorf("safe result should have no color, got %q", res.UIColor)
	}
}

func TestCheckWaypoint_OnBoundary(t *testing.T) {
	// Points on a zone edge count as inside.
	zones := ZoneCatalog{unitSquareZone(ZoneRedZone, "")}

	res := CheckWaypoint(zones, orb.Point{0, 0.5})
	if !res.IsColliding {
		t.Errorf("expected a point on the zone edge to collide")
	}
}

func TestCheckWaypoint_PointInHole(t *testing.T) {
	zones := ZoneCatalog{{
		Geometry: orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
		},
		ZoneType: ZoneAirport,
	}}

	if res := CheckWaypoint(zones, orb.Point{5, 5}); res.IsColliding {
		t.Errorf("expected a point in the hole to be safe")
	}
	if res := CheckWaypoint(zones, orb.Point{2, 2}); !res.IsColliding {
		t.Errorf("expected a point in the solid part to collide")
	}
}

func TestCheckWaypoint_MultiPolygonZone(t *testing.T) {
	zones := ZoneCatalog{{
		Geometry: orb.MultiPolygon{
			{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
			{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
		},
		ZoneType: ZoneYellowZone,
	}}

	res := CheckWaypoint(zones, orb.Point{5.5, 5.5})
	if !res.IsColliding {
		t.Fatalf("expected a point in the second constituent polygon to collide")
	}
	if res.Severity != SeverityWarning {
		t.Errorf("expected YELLOW_ZONE severity WARNING, got %v", res.Severity)
	}
}

func TestCheckWaypoint_FirstZoneWins(t *testing.T) {
	// Two overlapping zones: catalog order decides which one reports.
	zones := ZoneCatalog{
		unitSquareZone(ZoneRedZone, "first"),
		unitSquareZone(ZoneAirport, "second"),
	}

	res := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if res.CollisionType == nil || *res.CollisionType != ZoneRedZone {
		t.Errorf("expected the first catalog zone to win, got %v", res.CollisionType)
	}
	if res.AreaName != "first" {
		t.Errorf("expected the first zone's name, got %q", res.AreaName)
	}
}

func TestCheckWaypoint_UnknownTagPreserved(t *testing.T) {
	zones := ZoneCatalog{unitSquareZone("MILITARY_TEST", "")}

	res := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if res.CollisionType == nil || *res.CollisionType != "MILITARY_TEST" {
		t.Errorf("expected the raw tag back, got %v", res.CollisionType)
	}
	if res.UIColor != "#9E9E9E" {
		t.Errorf("expected the default color for an unknown tag, got %q", res.UIColor)
	}
	if res.Severity != SeverityWarning {
		t.Errorf("expected the default severity for an unknown tag, got %v", res.Severity)
	}
}

func TestCheckWaypoint_EmptyTagDefaultsToDID(t *testing.T) {
	// A catalog built in code instead of loaded from GeoJSON may leave the
	// tag empty; the verdict reports it as DID, not as an unknown tag.
	zones := ZoneCatalog{unitSquareZone("", "Old District")}

	res := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if !res.IsColliding {
		t.Fatalf("expected a point inside the untagged zone to collide")
	}
	if res.CollisionType == nil || *res.CollisionType != ZoneDID {
		t.Errorf("expected collisionType DID for an empty tag, got %v", res.CollisionType)
	}
	if res.UIColor != "#F44336" {
		t.Errorf("expected the DID color for an empty tag, got %q", res.UIColor)
	}
	if res.Severity != SeverityWarning {
		t.Errorf("expected DID severity WARNING, got %v", res.Severity)
	}
	if !strings.Contains(res.Message, ZoneDID) {
		t.Errorf("expected the message to name the DID zone type, got %q", res.Message)
	}
}

func TestCheckWaypoint_DegenerateZoneNeverMatches(t *testing.T) {
	// A two-vertex "polygon" cannot contain anything, not even a point
	// sitting right on it.
	zones := ZoneCatalog{{
		Geometry: orb.Polygon{{{0, 0}, {1, 0}, {0, 0}}},
		ZoneType: ZoneDID,
	}}

	if res := CheckWaypoint(zones, orb.Point{0.5, 0}); res.IsColliding {
		t.Errorf("expected a degenerate zone to never match")
	}
}

func TestCheckWaypoint_UnsupportedGeometrySkipped(t *testing.T) {
	zones := ZoneCatalog{
		{Geometry: orb.LineString{{0, 0}, {1, 1}}, ZoneType: ZoneRedZone},
		unitSquareZone(ZoneDID, ""),
	}

	res := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if !res.IsColliding {
		t.Fatalf("expected the scan to continue past the unsupported geometry")
	}
	if res.CollisionType == nil || *res.CollisionType != ZoneDID {
		t.Errorf("expected the polygon zone to match, got %v", res.CollisionType)
	}
}

func TestCheckWaypoint_EmptyCatalog(t *testing.T) {
	res := CheckWaypoint(nil, orb.Point{0.5, 0.5})
	if res.IsColliding || res.Severity != SeveritySafe {
		t.Errorf("expected an empty catalog to report safe, got %+v", res)
	}
}

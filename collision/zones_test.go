package collision

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const testFeatureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
      "properties": {}
    },
    {
      "type": "Feature",
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[5,5],[6,5],[6,6],[5,6],[5,5]]]]},
      "properties": {"zoneType": "AIRPORT", "name": "Schiphol Airport", "source": "ehaa-dataset", "priority": 3}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [9,9]},
      "properties": {"zoneType": "RED_ZONE"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[10,10],[11,10],[11,11],[10,11]]]},
      "properties": {"zoneType": "YELLOW_ZONE", "name": "Open Ring"}
    }
  ]
}`

func loadTestCatalog(t *testing.T) ZoneCatalog {
	t.Helper()
	fc, err := geojson.UnmarshalFeatureCollection([]byte(testFeatureCollection))
	if err != nil {
		t.Fatalf("failed to parse test feature collection: %v", err)
	}
	return CatalogFromFeatureCollection(fc)
}

func TestCatalogFromFeatureCollection(t *testing.T) {
	zones := loadTestCatalog(t)
	if len(zones) != 4 {
		t.Fatalf("expected 4 zones, got %d", len(zones))
	}

	// Features without a zoneType default to DID.
	if zones[0].ZoneType != ZoneDID {
		t.Errorf("expected missing zoneType to default to DID, got %q", zones[0].ZoneType)
	}

	if zones[1].ZoneType != ZoneAirport || zones[1].Name != "Schiphol Airport" {
		t.Errorf("expected AIRPORT/Schiphol Airport, got %q/%q", zones[1].ZoneType, zones[1].Name)
	}
	if zones[1].Props["source"] != "ehaa-dataset" {
		t.Errorf("expected string properties to carry through, got %v", zones[1].Props)
	}
	if _, ok := zones[1].Props["priority"]; ok {
		t.Errorf("expected non-string properties to be dropped, got %v", zones[1].Props)
	}
	if _, ok := zones[1].Props[propZoneType]; ok {
		t.Errorf("zoneType should not be duplicated into Props")
	}

	// The point feature stays in the catalog but can never match.
	if _, ok := zones[2].Geometry.(orb.Point); !ok {
		t.Errorf("expected the point feature to be preserved, got %T", zones[2].Geometry)
	}
	if res := CheckWaypoint(zones, orb.Point{9, 9}); res.IsColliding {
		t.Errorf("expected the point-geometry zone to never match, got %+v", res)
	}
}

func TestCatalogFromFeatureCollection_ClosesOpenRings(t *testing.T) {
	zones := loadTestCatalog(t)

	poly, ok := zones[3].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("expected a polygon, got %T", zones[3].Geometry)
	}
	ring := poly[0]
	if len(ring) != 5 || ring[0] != ring[len(ring)-1] {
		t.Errorf("expected the open ring to be closed on load, got %v", ring)
	}
	if res := CheckWaypoint(zones, orb.Point{10.5, 10.5}); !res.IsColliding {
		t.Errorf("expected the closed ring to contain its interior")
	}
}

func TestCatalogFromFeatureCollection_Nil(t *testing.T) {
	if zones := CatalogFromFeatureCollection(nil); zones != nil {
		t.Errorf("expected nil catalog for nil input, got %v", zones)
	}
}

func TestCatalog_UnitSquareScenario(t *testing.T) {
	// End to end over loaded data: inside hits the DID zone, outside is
	// safe, a traversing path crosses twice.
	zones := loadTestCatalog(t)

	inside := CheckWaypoint(zones, orb.Point{0.5, 0.5})
	if !inside.IsColliding || inside.CollisionType == nil || *inside.CollisionType != ZoneDID {
		t.Errorf("expected a DID hit at (0.5,0.5), got %+v", inside)
	}

	outside := CheckWaypoint(zones, orb.Point{2, 2})
	if outside.IsColliding || outside.CollisionType != nil {
		t.Errorf("expected safe at (2,2), got %+v", outside)
	}

	path := CheckPath(zones, []orb.Point{{-1, 0.5}, {2, 0.5}})
	if !path.IsColliding || len(path.IntersectionPoints) != 2 {
		t.Errorf("expected 2 crossings for the traversing path, got %+v", path)
	}
	if path.Severity != SeverityDanger {
		t.Errorf("expected severity DANGER, got %v", path.Severity)
	}
}

// Package collision checks drawn waypoints, flight paths and flight areas
// against restricted airspace zones. A host application supplies the zone
// catalog and query geometry; the package returns plain-data verdicts and
// never raises an error, resolving malformed input to a safe result instead.
package collision

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ZoneFeature is one restricted zone: polygon geometry plus its regulatory
// classification tag and an optional display name. Props carries any extra
// string properties from the source data for hosts that build richer
// messages or overlays.
type ZoneFeature struct {
	Geometry orb.Geometry
	ZoneType string
	Name     string
	Props    map[string]string
}

// ZoneCatalog is an ordered zone collection. Order matters: when several
// zones contain the same query point, the earliest one wins.
type ZoneCatalog []ZoneFeature

// Property keys recognized on incoming GeoJSON features.
const (
	propZoneType = "zoneType"
	propName     = "name"
)

// CatalogFromFeatureCollection converts a GeoJSON feature collection into a
// zone catalog, preserving feature order. Features missing a zoneType
// property are tagged DID, matching how older attention-zone datasets were
// published without one. Unsupported geometry types stay in the catalog but
// never match a query.
func CatalogFromFeatureCollection(fc *geojson.FeatureCollection) ZoneCatalog {
	if fc == nil {
		return nil
	}
	zones := make(ZoneCatalog, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		zone := ZoneFeature{
			Geometry: closedGeometry(f.Geometry),
			ZoneType: f.Properties.MustString(propZoneType, ZoneDID),
			Name:     f.Properties.MustString(propName, ""),
		}
		if zone.ZoneType == "" {
			zone.ZoneType = ZoneDID
		}
		for k, v := range f.Properties {
			if k == propZoneType || k == propName {
				continue
			}
			if s, ok := v.(string); ok {
				if zone.Props == nil {
					zone.Props = make(map[string]string)
				}
				zone.Props[k] = s
			}
		}
		zones = append(zones, zone)
	}
	return zones
}

// closedGeometry returns the geometry with every ring explicitly closed.
// GeoJSON rings should arrive closed already; hand-built catalogs sometimes
// are not.
func closedGeometry(g orb.Geometry) orb.Geometry {
	switch geom := g.(type) {
	case orb.Polygon:
		return closedPolygon(geom)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(geom))
		for i, p := range geom {
			out[i] = closedPolygon(p)
		}
		return out
	}
	return g
}

// zoneContains reports whether the zone's geometry contains the point.
// Points on the boundary count as inside. Unsupported geometry types and
// degenerate rings never contain anything.
func zoneContains(z ZoneFeature, p orb.Point) bool {
	switch geom := z.Geometry.(type) {
	case orb.Polygon:
		return usablePolygon(geom) && planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		for _, poly := range geom {
			if usablePolygon(poly) && planar.PolygonContains(poly, p) {
				return true
			}
		}
	}
	return false
}

// zonePolygons splits the zone geometry into individual polygons solid
// enough to test against.
func zonePolygons(z ZoneFeature) []orb.Polygon {
	switch geom := z.Geometry.(type) {
	case orb.Polygon:
		if usablePolygon(geom) {
			return []orb.Polygon{geom}
		}
	case orb.MultiPolygon:
		polys := make([]orb.Polygon, 0, len(geom))
		for _, p := range geom {
			if usablePolygon(p) {
				polys = append(polys, p)
			}
		}
		return polys
	}
	return nil
}

// usableZone reports whether any part of the zone geometry can take part in
// collision checks.
func usableZone(z ZoneFeature) bool {
	return len(zonePolygons(z)) > 0
}

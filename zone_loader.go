package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"

	"airspace-checker/collision"
)

// loadZoneCatalog loads all GeoJSON files from dir into a single zone
// catalog. Files that cannot be read or parsed are skipped with a warning
// so one bad dataset never takes the whole catalog down. A tolerance > 0
// thins zone outlines with Douglas-Peucker before they reach the engine.
func loadZoneCatalog(dir string, tolerance float64) (collision.ZoneCatalog, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, fmt.Errorf("scan zone directory: %w", err)
	}

	log.Printf("Loading airspace zones from %d GeoJSON files...\n", len(files))

	var catalog collision.ZoneCatalog
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		zones := collision.CatalogFromFeatureCollection(fc)
		if tolerance > 0 {
			thinZones(zones, tolerance)
		}
		catalog = append(catalog, zones...)

		log.Printf("   ✅ Loaded %d zones from %s\n", len(zones), filepath.Base(file))
	}

	log.Printf("Total airspace zones loaded: %d\n", len(catalog))
	return catalog, nil
}

// thinZones simplifies polygonal zone outlines in place. A zone whose
// outline would collapse below a valid ring keeps its original shape.
func thinZones(zones collision.ZoneCatalog, tolerance float64) {
	s := simplify.DouglasPeucker(tolerance)
	for i, z := range zones {
		var thinned orb.Geometry
		switch g := z.Geometry.(type) {
		case orb.Polygon:
			thinned = s.Simplify(g.Clone())
		case orb.MultiPolygon:
			thinned = s.Simplify(g.Clone())
		default:
			continue
		}

		if collapsedOutline(thinned) {
			log.Printf("⚠️  Simplification collapsed zone %q; keeping original outline\n", z.Name)
			continue
		}
		zones[i].Geometry = thinned
	}
}

// collapsedOutline reports whether simplification left any outer ring with
// fewer points than a closed triangle.
func collapsedOutline(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) == 0 || len(g[0]) < 4
	case orb.MultiPolygon:
		if len(g) == 0 {
			return true
		}
		for _, p := range g {
			if len(p) == 0 || len(p[0]) < 4 {
				return true
			}
		}
	}
	return false
}

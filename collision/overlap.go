package collision

import (
	"fmt"
	"math"

	"github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// A query polygon overlapping zones by more than this share of its own area
// escalates from WARNING to DANGER.
const dangerOverlapRatio = 0.20

// CheckPolygon measures how much of a drawn flight area overlaps the zones
// and grades the verdict by the overlapped share of the drawn area. Overlap
// against several zones accumulates, so the reported area can exceed the
// drawn area while the ratio stays capped at 1.
func CheckPolygon(zones ZoneCatalog, query orb.Polygon) PolygonResult {
	query = closedPolygon(query)
	if !usablePolygon(query) {
		return PolygonResult{
			Severity: SeveritySafe,
			Message:  "Polygon has insufficient coordinates for an overlap check",
		}
	}

	queryArea := geo.Area(query)
	var overlap float64
	for _, z := range zones {
		overlap += zoneOverlapArea(query, queryArea, z)
	}

	if overlap <= 0 {
		return PolygonResult{Severity: SeveritySafe, Message: "Flight area is clear of all zones"}
	}

	var ratio float64
	if queryArea > 0 {
		ratio = math.Min(overlap/queryArea, 1)
	}
	severity := SeverityWarning
	if ratio > dangerOverlapRatio {
		severity = SeverityDanger
	}
	return PolygonResult{
		IsColliding:  true,
		OverlapArea:  overlap,
		OverlapRatio: ratio,
		Severity:     severity,
		Message:      fmt.Sprintf("Flight area overlaps restricted airspace (%.1f%% of the drawn area)", ratio*100),
	}
}

// zoneOverlapArea estimates the overlap between the query polygon and one
// zone, measuring each constituent polygon separately.
func zoneOverlapArea(query orb.Polygon, queryArea float64, z ZoneFeature) float64 {
	var total float64
	for _, zp := range zonePolygons(z) {
		total += polygonOverlapArea(query, queryArea, zp)
	}
	return total
}

// polygonOverlapArea tries exact clipping first, then falls back to
// progressively coarser containment tests when the inputs defeat the
// clipper. The fallbacks report min(query area, zone area).
func polygonOverlapArea(query orb.Polygon, queryArea float64, zone orb.Polygon) float64 {
	if !query.Bound().Intersects(zone.Bound()) {
		return 0
	}
	if area, ok := clipIntersectionArea(query, zone); ok {
		return area
	}

	capArea := math.Min(queryArea, geo.Area(zone))
	if ringsCross(query, zone) {
		return capArea
	}
	centroid, _ := planar.CentroidArea(query)
	if planar.PolygonContains(zone, centroid) {
		return capArea
	}
	if polygonWithin(query, zone) || polygonWithin(zone, query) {
		return capArea
	}
	return 0
}

// clipIntersectionArea computes the exact intersection of two polygons and
// returns its area in square meters. ok is false when the clipper cannot
// produce a defined result for these inputs.
func clipIntersectionArea(a, b orb.Polygon) (area float64, ok bool) {
	defer func() {
		if recover() != nil {
			area, ok = 0, false
		}
	}()

	clipped := toPolyclip(a).Construct(polyclip.INTERSECTION, toPolyclip(b))
	area = clippedArea(clipped)
	if math.IsNaN(area) || math.IsInf(area, 0) {
		return 0, false
	}
	return area, true
}

func toPolyclip(p orb.Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, len(p))
	for i, r := range p {
		out[i] = make(polyclip.Contour, len(r))
		for j, pt := range r {
			out[i][j] = polyclip.Point{X: pt[0], Y: pt[1]}
		}
	}
	return out
}

// clippedArea sums the spherical area of the clip result. The clipper does
// not wind holes opposite to their outlines, so orientation carries no
// meaning here; a contour nested inside an odd number of siblings bounds a
// hole and subtracts out.
func clippedArea(p polyclip.Polygon) float64 {
	var rings []orb.Ring
	for _, c := range p {
		ring := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if len(ring) < 3 {
			continue
		}
		rings = append(rings, closedRing(ring))
	}

	areas := make([]float64, len(rings))
	for i, r := range rings {
		areas[i] = geo.Area(r)
	}

	var total float64
	for i, a := range areas {
		if contourIsHole(rings, areas, i) {
			total -= a
		} else {
			total += a
		}
	}
	return math.Max(total, 0)
}

// contourIsHole reports whether ring i bounds a hole of the clip result,
// meaning an odd number of sibling rings enclose it. Result contours never
// cross each other, so one vertex settles containment for the whole ring,
// and only a strictly larger ring can be an encloser.
func contourIsHole(rings []orb.Ring, areas []float64, i int) bool {
	depth := 0
	for j, other := range rings {
		if j == i || areas[j] <= areas[i] {
			continue
		}
		if planar.RingContains(other, rings[i][0]) {
			depth++
		}
	}
	return depth%2 == 1
}

// ringsCross reports whether any edge of a crosses any edge of b.
func ringsCross(a, b orb.Polygon) bool {
	for _, ra := range a {
		na := len(ra)
		for i := 0; i < na; i++ {
			a1, a2 := ra[i], ra[(i+1)%na]
			for _, rb := range b {
				nb := len(rb)
				for j := 0; j < nb; j++ {
					if _, ok := SegmentIntersection(a1, a2, rb[j], rb[(j+1)%nb]); ok {
						return true
					}
				}
			}
		}
	}
	return false
}

// polygonWithin reports whether every outer-ring vertex of inner lies inside
// outer.
func polygonWithin(inner, outer orb.Polygon) bool {
	if len(inner) == 0 || len(inner[0]) == 0 {
		return false
	}
	for _, pt := range inner[0] {
		if !planar.PolygonContains(outer, pt) {
			return false
		}
	}
	return true
}

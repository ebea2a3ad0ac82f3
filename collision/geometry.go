package collision

import (
	"math"

	"github.com/paulmach/orb"
)

// Segments whose infinite lines have a cross product below this are treated
// as parallel and produce no intersection point.
const parallelEps = 1e-12

// SegmentIntersection returns the point where segments (a1,a2) and (b1,b2)
// cross, if any. Parallel and collinear segments produce no point even when
// they overlap; touching at a single point counts as a crossing.
func SegmentIntersection(a1, a2, b1, b2 orb.Point) (orb.Point, bool) {
	// Intersect the infinite lines first. Differences of similar magnitudes
	// make float64 important here.
	d12x, d12y := a1[0]-a2[0], a1[1]-a2[1]
	d34x, d34y := b1[0]-b2[0], b1[1]-b2[1]

	denom := d12x*d34y - d12y*d34x
	if math.Abs(denom) < parallelEps {
		return orb.Point{}, false
	}

	c12 := a1[0]*a2[1] - a1[1]*a2[0]
	c34 := b1[0]*b2[1] - b1[1]*b2[0]
	p := orb.Point{
		(c12*d34x - d12x*c34) / denom,
		(c12*d34y - d12y*c34) / denom,
	}

	// Keep only crossings that fall within both segments' extents.
	if !segmentBound(a1, a2).Contains(p) || !segmentBound(b1, b2).Contains(p) {
		return orb.Point{}, false
	}
	return p, true
}

func segmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{Min: a, Max: a}.Extend(b)
}

// polygonRings flattens a polygonal geometry into its rings, holes included.
// Non-polygonal geometries yield nil.
func polygonRings(g orb.Geometry) []orb.Ring {
	switch geom := g.(type) {
	case orb.Polygon:
		return geom
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range geom {
			rings = append(rings, poly...)
		}
		return rings
	}
	return nil
}

// distinctVertexCount counts unique ring vertices, so a triangle ring with
// its closing duplicate still counts 3.
func distinctVertexCount(r orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(r))
	for _, p := range r {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// usablePolygon reports whether the polygon has an outer ring solid enough
// for containment and overlap math.
func usablePolygon(p orb.Polygon) bool {
	return len(p) > 0 && distinctVertexCount(p[0]) >= 3
}

// closedRing returns the ring with an explicit closing vertex, copying only
// when the input arrives open.
func closedRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || r[0] == r[len(r)-1] {
		return r
	}
	out := make(orb.Ring, 0, len(r)+1)
	out = append(out, r...)
	return append(out, r[0])
}

func closedPolygon(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = closedRing(r)
	}
	return out
}

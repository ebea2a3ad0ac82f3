package collision

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Padding applied to degenerate rectangle sides; rtreego rejects
// non-positive lengths.
const rectPad = 1e-9

// indexEntry ties a catalog position to its bounding rectangle for R-tree
// storage.
type indexEntry struct {
	pos  int
	rect rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// ZoneIndex narrows collision scans to zones whose bounding boxes touch the
// query geometry. Build once per catalog snapshot and treat as read-only; a
// changed catalog needs a fresh build, swapped in whole by the caller.
type ZoneIndex struct {
	zones ZoneCatalog
	tree  *rtreego.Rtree
}

// BuildZoneIndex bulk-loads an R-tree over the catalog's bounding boxes.
// Zones without usable polygon geometry stay out of the tree but keep their
// catalog positions, so indexed scans agree with full scans on every query.
func BuildZoneIndex(zones ZoneCatalog) *ZoneIndex {
	entries := make([]rtreego.Spatial, 0, len(zones))
	for i, z := range zones {
		rect, ok := zoneRect(z)
		if !ok {
			continue
		}
		entries = append(entries, &indexEntry{pos: i, rect: rect})
	}
	return &ZoneIndex{
		zones: zones,
		tree:  rtreego.NewTree(2, 25, 50, entries...),
	}
}

// Size returns the number of zones held in the tree.
func (ix *ZoneIndex) Size() int {
	return ix.tree.Size()
}

// CheckWaypoint narrows the catalog to zones whose boxes contain the point,
// then runs the full-scan check on those candidates.
func (ix *ZoneIndex) CheckWaypoint(p orb.Point) WaypointResult {
	return CheckWaypoint(ix.zonesAt(ix.candidates(pointRect(p))), p)
}

// CheckPath narrows the catalog to zones whose boxes touch the path's
// bounding box, then runs the full-scan check on those candidates.
func (ix *ZoneIndex) CheckPath(path []orb.Point) PathResult {
	if len(path) < 2 {
		return CheckPath(nil, path)
	}
	rect := searchRect(orb.MultiPoint(path).Bound())
	return CheckPath(ix.zonesAt(ix.candidates(rect)), path)
}

// CheckPolygon narrows the catalog to zones whose boxes touch the query
// polygon's bounding box, then runs the full-scan check on those candidates.
func (ix *ZoneIndex) CheckPolygon(query orb.Polygon) PolygonResult {
	query = closedPolygon(query)
	if !usablePolygon(query) {
		return CheckPolygon(nil, query)
	}
	return CheckPolygon(ix.zonesAt(ix.candidates(searchRect(query.Bound()))), query)
}

// candidates returns matching catalog positions sorted back into catalog
// order, so short-circuit and accumulation rules fire in the same order as
// a full scan.
func (ix *ZoneIndex) candidates(rect rtreego.Rect) []int {
	hits := ix.tree.SearchIntersect(rect)
	pos := make([]int, 0, len(hits))
	for _, h := range hits {
		pos = append(pos, h.(*indexEntry).pos)
	}
	sort.Ints(pos)
	return pos
}

func (ix *ZoneIndex) zonesAt(pos []int) ZoneCatalog {
	out := make(ZoneCatalog, 0, len(pos))
	for _, i := range pos {
		out = append(out, ix.zones[i])
	}
	return out
}

// zoneRect converts a zone's bounding box to an rtreego rectangle.
func zoneRect(z ZoneFeature) (rtreego.Rect, bool) {
	if !usableZone(z) {
		return rtreego.Rect{}, false
	}
	return boundRect(z.Geometry.Bound()), true
}

// boundRect builds an rtreego rectangle from a bound, padding flat sides so
// vertical and horizontal slivers still index.
func boundRect(b orb.Bound) rtreego.Rect {
	lengths := []float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = rectPad
		}
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		return rtreego.Point{b.Min[0], b.Min[1]}.ToRect(rectPad)
	}
	return rect
}

// searchRect expands a query bound by the pad on every side. Zones touching
// the query's box exactly at an edge still come back as candidates; the
// extra candidates only ever contribute zero to a verdict.
func searchRect(b orb.Bound) rtreego.Rect {
	lengths := []float64{
		b.Max[0] - b.Min[0] + 2*rectPad,
		b.Max[1] - b.Min[1] + 2*rectPad,
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0] - rectPad, b.Min[1] - rectPad}, lengths)
	if err != nil {
		return rtreego.Point{b.Min[0], b.Min[1]}.ToRect(rectPad)
	}
	return rect
}

func pointRect(p orb.Point) rtreego.Rect {
	return rtreego.Point{p[0], p[1]}.ToRect(rectPad)
}

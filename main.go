package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"airspace-checker/collision"
)

type waypointRequest struct {
	Point *orb.Point `json:"point"` // [lon, lat]
}

type pathRequest struct {
	Path []orb.Point `json:"path"`
}

type polygonRequest struct {
	Polygon orb.Polygon `json:"polygon"`
}

// server holds the active zone catalog and its spatial index. A reload
// builds both from disk and swaps them in under the mutex, so in-flight
// checks always see a consistent pair.
type server struct {
	mu      sync.RWMutex
	catalog collision.ZoneCatalog
	index   *collision.ZoneIndex

	metrics   *checkCollector
	zonesDir  string
	tolerance float64
}

func newServer(zonesDir string, tolerance float64, metrics *checkCollector) *server {
	return &server{
		index:     collision.BuildZoneIndex(nil),
		metrics:   metrics,
		zonesDir:  zonesDir,
		tolerance: tolerance,
	}
}

// reload rebuilds the catalog and index from the zone directory and swaps
// them in. Returns the number of zones loaded.
func (s *server) reload() (int, error) {
	catalog, err := loadZoneCatalog(s.zonesDir, s.tolerance)
	if err != nil {
		return 0, err
	}
	index := collision.BuildZoneIndex(catalog)

	s.mu.Lock()
	s.catalog = catalog
	s.index = index
	s.mu.Unlock()

	s.metrics.ZonesLoaded.Set(float64(len(catalog)))
	return len(catalog), nil
}

func (s *server) snapshot() (collision.ZoneCatalog, *collision.ZoneIndex) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.index
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /checkWaypoint - Check a single waypoint against all zones
func (s *server) checkWaypointHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Waypoint check request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req waypointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Point == nil {
		log.Println("❌ Request has no \"point\" field")
		http.Error(w, "Missing \"point\" field", http.StatusBadRequest)
		return
	}
	p := *req.Point

	log.Printf("   Point: (%.6f, %.6f)\n", p[0], p[1])

	_, index := s.snapshot()
	start := time.Now()
	result := index.CheckWaypoint(p)
	s.metrics.observe("waypoint", result.Severity, start)

	if result.IsColliding {
		log.Printf("⚠️  %s\n", result.Message)
	} else {
		log.Println("✅ No collision")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
	log.Println("========================================")
}

// POST /checkPath - Check a flight path for zone boundary crossings
func (s *server) checkPathHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🔍 Path check request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Path: %d waypoints\n", len(req.Path))

	_, index := s.snapshot()
	start := time.Now()
	result := index.CheckPath(req.Path)
	s.metrics.observe("path", result.Severity, start)

	if result.IsColliding {
		log.Printf("⚠️  %s\n", result.Message)
	} else {
		log.Println("✅ No collision")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
	log.Println("========================================")
}

// POST /checkPolygon - Check a drawn flight area for zone overlap
func (s *server) checkPolygonHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Polygon check request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req polygonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Polygon: %d ring(s)\n", len(req.Polygon))

	_, index := s.snapshot()
	start := time.Now()
	result := index.CheckPolygon(req.Polygon)
	s.metrics.observe("polygon", result.Severity, start)

	if result.IsColliding {
		log.Printf("⚠️  %s\n", result.Message)
	} else {
		log.Println("✅ No collision")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
	log.Println("========================================")
}

// GET /zones - Styled zone overlay for the map frontend
func (s *server) zonesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Zone overlay request received")

	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog, _ := s.snapshot()

	fc := geojson.NewFeatureCollection()
	for _, z := range catalog {
		f := geojson.NewFeature(z.Geometry)
		for k, v := range z.Props {
			f.Properties[k] = v
		}
		color, severity := collision.ClassifyZone(z.ZoneType)
		f.Properties["zoneType"] = z.ZoneType
		if z.Name != "" {
			f.Properties["name"] = z.Name
		}
		f.Properties["uiColor"] = color
		f.Properties["severity"] = severity.String()
		fc.Append(f)
	}

	log.Printf("   Returning %d zones\n", len(fc.Features))
	log.Println("========================================")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fc)
}

// POST /reloadZones - Rebuild the catalog and index from disk
func (s *server) reloadZonesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🔄 Zone reload request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := s.reload()
	if err != nil {
		log.Printf("❌ Reload failed: %v\n", err)
		http.Error(w, "Failed to reload zones", http.StatusInternalServerError)
		log.Println("========================================")
		return
	}

	log.Printf("✅ Catalog rebuilt with %d zones\n", count)
	log.Println("========================================")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"zonesLoaded": count,
	})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	catalog, index := s.snapshot()

	status := "ready"
	if len(catalog) == 0 {
		status = "no zones loaded"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       status,
		"zonesLoaded":  len(catalog),
		"zonesIndexed": index.Size(),
	})
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/checkWaypoint", corsMiddleware(s.checkWaypointHandler))
	mux.HandleFunc("/checkPath", corsMiddleware(s.checkPathHandler))
	mux.HandleFunc("/checkPolygon", corsMiddleware(s.checkPolygonHandler))
	mux.HandleFunc("/zones", corsMiddleware(s.zonesHandler))
	mux.HandleFunc("/reloadZones", corsMiddleware(s.reloadZonesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", s.metrics.handler())
	return mux
}

func main() {
	_ = godotenv.Load(".env")

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	zonesDir := os.Getenv("ZONES_DIR")
	if zonesDir == "" {
		zonesDir = "zones"
	}
	tolerance := 0.0
	if v := os.Getenv("SIMPLIFY_TOLERANCE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 {
			log.Printf("⚠️  Ignoring invalid SIMPLIFY_TOLERANCE %q\n", v)
		} else {
			tolerance = t
		}
	}

	log.Println("========================================")
	log.Println("🚀 Airspace Collision Checker")
	log.Println("========================================")

	s := newServer(zonesDir, tolerance, newCheckCollector(nil))

	if count, err := s.reload(); err != nil {
		log.Printf("⚠️  Could not load zones from %s: %v\n", zonesDir, err)
		log.Println("   Starting with an empty catalog; POST /reloadZones after fixing the dataset")
	} else if count == 0 {
		log.Println("ℹ️  No zones found (this is normal on first run)")
		log.Printf("   Drop GeoJSON files into %s and POST /reloadZones\n", zonesDir)
	}
	if tolerance > 0 {
		log.Printf("   Simplify tolerance: %g degrees\n", tolerance)
	}
	log.Println("")

	log.Printf("Server starting on %s\n", addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /checkWaypoint   - Check a single waypoint against all zones")
	log.Println("  POST /checkPath       - Check a flight path for zone crossings")
	log.Println("  POST /checkPolygon    - Check a flight area for zone overlap")
	log.Println("  GET  /zones           - Styled zone overlay (GeoJSON)")
	log.Println("  POST /reloadZones     - Rebuild the catalog from disk")
	log.Println("  GET  /health          - Check server status")
	log.Println("  GET  /metrics         - Prometheus metrics")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(addr, s.routes()); err != nil {
		log.Fatal(err)
	}
}

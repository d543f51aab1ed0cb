package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/ports"
)

type memGeocodeCache struct {
	entries map[string]domain.Coordinates
	puts    int
}

func newMemGeocodeCache() *memGeocodeCache {
	return &memGeocodeCache{entries: map[string]domain.Coordinates{}}
}

func (c *memGeocodeCache) GetMany(ctx context.Context, locations []string) (map[string]domain.Coordinates, error) {
	out := map[string]domain.Coordinates{}
	for _, l := range locations {
		if v, ok := c.entries[l]; ok {
			out[l] = v
		}
	}
	return out, nil
}

func (c *memGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	c.puts++
	for k, v := range coords {
		c.entries[k] = v
	}
	return nil
}

type memLegCache struct {
	entries map[string]ports.LegResult
	puts    int
}

func newMemLegCache() *memLegCache {
	return &memLegCache{entries: map[string]ports.LegResult{}}
}

func (c *memLegCache) GetLeg(ctx context.Context, origin, destination string) (*ports.LegResult, error) {
	if v, ok := c.entries[origin+"|"+destination]; ok {
		return &v, nil
	}
	return nil, nil
}

func (c *memLegCache) PutLeg(ctx context.Context, origin, destination string, leg ports.LegResult) error {
	c.puts++
	c.entries[origin+"|"+destination] = leg
	return nil
}

func newFakeORS(t *testing.T, geocodeCalls, directionsCalls *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /geocode/search", func(w http.ResponseWriter, r *http.Request) {
		geocodeCalls.Add(1)
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-87.6298,41.8781]}}]}`)
	})
	mux.HandleFunc("POST /v2/directions/driving-car", func(w http.ResponseWriter, r *http.Request) {
		directionsCalls.Add(1)
		var req struct {
			Coordinates [][]float64 `json:"coordinates"`
			Units       string      `json:"units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Units != "mi" {
			http.Error(w, "units must be mi", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"routes":[{"summary":{"distance":712.4,"duration":43200}}]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestORSProvider(t *testing.T, baseURL string, legs ports.RouteLegCache, geos ports.GeocodeCache) *ORSRouteProvider {
	t.Helper()

	p, err := NewORSRouteProvider("test-key", legs, geos)
	if err != nil {
		t.Fatalf("NewORSRouteProvider: %v", err)
	}
	p.baseURL = baseURL
	return p
}

func TestORSGetRoute(t *testing.T) {
	var geocodeCalls, directionsCalls atomic.Int64
	srv := newFakeORS(t, &geocodeCalls, &directionsCalls)

	legs := newMemLegCache()
	geos := newMemGeocodeCache()
	p := newTestORSProvider(t, srv.URL, legs, geos)

	res, err := p.GetRoute(context.Background(), []string{"Chicago, IL", "New York, NY"})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}

	if res.Method != "ors" {
		t.Errorf("method = %q, want ors", res.Method)
	}
	if res.TotalMiles != 712.4 {
		t.Errorf("TotalMiles = %v, want 712.4", res.TotalMiles)
	}
	if res.TotalDurationHours != 12 {
		t.Errorf("TotalDurationHours = %v, want 12", res.TotalDurationHours)
	}
	if len(res.Waypoints) != 2 || len(res.Legs) != 1 {
		t.Fatalf("waypoints=%d legs=%d, want 2 and 1", len(res.Waypoints), len(res.Legs))
	}
	if geos.puts != 1 || legs.puts != 1 {
		t.Errorf("cache writes geocode=%d leg=%d, want 1 and 1", geos.puts, legs.puts)
	}
}

func TestORSGetRouteUsesCaches(t *testing.T) {
	var geocodeCalls, directionsCalls atomic.Int64
	srv := newFakeORS(t, &geocodeCalls, &directionsCalls)

	legs := newMemLegCache()
	geos := newMemGeocodeCache()
	p := newTestORSProvider(t, srv.URL, legs, geos)

	locations := []string{"Chicago, IL", "New York, NY"}
	if _, err := p.GetRoute(context.Background(), locations); err != nil {
		t.Fatalf("first GetRoute: %v", err)
	}
	firstGeocode := geocodeCalls.Load()
	firstDirections := directionsCalls.Load()

	if _, err := p.GetRoute(context.Background(), locations); err != nil {
		t.Fatalf("second GetRoute: %v", err)
	}
	if geocodeCalls.Load() != firstGeocode {
		t.Errorf("geocode calls grew from %d to %d on warm cache", firstGeocode, geocodeCalls.Load())
	}
	if directionsCalls.Load() != firstDirections {
		t.Errorf("directions calls grew from %d to %d on warm cache", firstDirections, directionsCalls.Load())
	}
}

func TestORSGetRouteNormalizesWhitespace(t *testing.T) {
	var geocodeCalls, directionsCalls atomic.Int64
	srv := newFakeORS(t, &geocodeCalls, &directionsCalls)

	geos := newMemGeocodeCache()
	p := newTestORSProvider(t, srv.URL, newMemLegCache(), geos)

	if _, err := p.GetRoute(context.Background(), []string{"  Chicago,   IL ", "New York, NY"}); err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if _, ok := geos.entries["Chicago, IL"]; !ok {
		t.Errorf("cache keys = %v, want normalized %q", geos.entries, "Chicago, IL")
	}
}

func TestORSRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /geocode/search", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-87.6298,41.8781]}}]}`)
	})
	mux.HandleFunc("POST /v2/directions/driving-car", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"routes":[{"summary":{"distance":100,"duration":6000}}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := newTestORSProvider(t, srv.URL, nil, nil)

	if _, err := p.GetRoute(context.Background(), []string{"Chicago, IL", "New York, NY"}); err != nil {
		t.Fatalf("GetRoute after retries: %v", err)
	}
	if attempts.Load() < 3 {
		t.Errorf("attempts = %d, want at least 3 (two 429s then success)", attempts.Load())
	}
}

func TestORSGetRouteClientErrorIsTerminal(t *testing.T) {
	var attempts atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /geocode/search", func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad api key", http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := newTestORSProvider(t, srv.URL, nil, nil)

	if _, err := p.GetRoute(context.Background(), []string{"Chicago, IL", "New York, NY"}); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1 (4xx must not retry)", attempts.Load())
	}
}

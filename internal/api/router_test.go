package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"hos-trip-service/internal/adapters/repositories"
	"hos-trip-service/internal/adapters/route"
	"hos-trip-service/internal/api/dto"
	"hos-trip-service/internal/services"
)

func newTestRouter(t *testing.T, provider *route.MockRouteProvider) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	repo := repositories.NewSqliteTripRepository(db)
	return NewRouter(repo, provider, nil, services.DefaultHOSRules())
}

func postTrip(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validTripBody = `{
	"current_location": "Chicago, IL",
	"pickup_location": "Denver, CO",
	"dropoff_location": "Los Angeles, CA",
	"current_cycle_used": 10,
	"depart_at": "2026-03-02T06:00:00Z"
}`

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(100))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCalculateTrip(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(1200))

	rec := postTrip(t, router, validTripBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.CalculateTripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if res.TripID <= 0 {
		t.Errorf("trip_id = %d, want positive (trip persisted)", res.TripID)
	}
	if res.Route.TotalMiles != 1200 {
		t.Errorf("route total_miles = %v, want 1200", res.Route.TotalMiles)
	}
	if res.Route.Method != "mock" {
		t.Errorf("route method = %q, want mock", res.Route.Method)
	}
	if res.TripPlan.ActualDays != len(res.TripPlan.DailyLogs) {
		t.Errorf("actual_days = %d, logs = %d", res.TripPlan.ActualDays, len(res.TripPlan.DailyLogs))
	}
	if res.Summary.TotalDays != res.TripPlan.ActualDays {
		t.Errorf("summary total_days = %d, want %d", res.Summary.TotalDays, res.TripPlan.ActualDays)
	}
}

func TestCalculateTripValidation(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(100))

	for _, tc := range []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing locations", `{"current_location": "Chicago, IL"}`},
		{"cycle out of range", `{
			"current_location": "Chicago, IL",
			"pickup_location": "Denver, CO",
			"dropoff_location": "Los Angeles, CA",
			"current_cycle_used": 71
		}`},
		{"unknown field", `{
			"current_location": "Chicago, IL",
			"pickup_location": "Denver, CO",
			"dropoff_location": "Los Angeles, CA",
			"current_cycle_used": 0,
			"unexpected": true
		}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := postTrip(t, router, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetTripAndLogs(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(900))

	rec := postTrip(t, router, validTripBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created dto.CalculateTripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/trips/%d", created.TripID), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}

	var got dto.TripResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal get response: %v", err)
	}
	if got.TripID != created.TripID {
		t.Errorf("trip_id = %d, want %d", got.TripID, created.TripID)
	}
	if got.TripPlan == nil || len(got.TripPlan.DailyLogs) == 0 {
		t.Fatal("get must include the full plan with daily logs")
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/trips/%d/logs", created.TripID), nil)
	logsRec := httptest.NewRecorder()
	router.ServeHTTP(logsRec, req)
	if logsRec.Code != http.StatusOK {
		t.Fatalf("logs status = %d", logsRec.Code)
	}

	var logs dto.TripLogsResponse
	if err := json.Unmarshal(logsRec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("unmarshal logs response: %v", err)
	}
	if len(logs.Logs) != len(got.TripPlan.DailyLogs) {
		t.Errorf("grids = %d, want %d", len(logs.Logs), len(got.TripPlan.DailyLogs))
	}
}

func TestGetTripErrors(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(100))

	req := httptest.NewRequest(http.MethodGet, "/trips/9999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing trip status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/trips/abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestListTrips(t *testing.T) {
	router := newTestRouter(t, route.NewMockRouteProvider(500))

	for i := 0; i < 3; i++ {
		if rec := postTrip(t, router, validTripBody); rec.Code != http.StatusOK {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ListTripsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Trips) != 3 {
		t.Errorf("trips = %d, want 3", len(res.Trips))
	}
	for _, tr := range res.Trips {
		if tr.TripPlan != nil {
			t.Error("list responses must omit the plan")
		}
	}
}

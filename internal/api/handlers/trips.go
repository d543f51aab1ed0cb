package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"hos-trip-service/internal/api/dto"
	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/eld"
	"hos-trip-service/internal/ports"
	"hos-trip-service/internal/services"
)

type TripHandler struct {
	Repo     ports.TripRepository
	Provider ports.RouteProvider
	Fallback ports.RouteProvider
	Rules    services.HOSRules
}

// Calculate plans a new trip: route resolution, HOS schedule generation, and
// persistence. It coordinates the route providers and the schedule engine.
func (h *TripHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CurrentLocation == "" || req.PickupLocation == "" || req.DropoffLocation == "" {
		writeError(w, r, http.StatusBadRequest, "current_location, pickup_location and dropoff_location are required")
		return
	}

	maxCycleHours := float64(h.Rules.MaxCycleMinutes) / 60
	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > maxCycleHours {
		writeError(w, r, http.StatusBadRequest,
			"current_cycle_used must be between 0 and "+strconv.FormatFloat(maxCycleHours, 'f', -1, 64))
		return
	}

	depart := defaultDepartAt(time.Now())
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	svcReq := services.PlanTripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		DepartAt:         depart,
	}

	trip, route, err := services.PlanTrip(r.Context(), svcReq, h.Rules, h.Provider, h.Fallback, h.Repo)
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	waypoints := make([][]float64, 0, len(route.Waypoints))
	for _, c := range route.Waypoints {
		waypoints = append(waypoints, c.CoordsToList())
	}

	res := dto.CalculateTripResponse{
		TripID: trip.TripID,
		Route: dto.RouteResponse{
			TotalMiles:         route.TotalMiles,
			TotalDurationHours: route.TotalDurationHours,
			Method:             route.Method,
			Waypoints:          waypoints,
		},
		TripPlan: buildPlanResponse(trip.Plan),
		Summary: dto.TripSummaryResponse{
			TotalMiles:        trip.TotalMiles,
			TotalDrivingHours: trip.TotalDrivingHours,
			TotalDays:         trip.TotalDays,
			CycleBefore:       trip.Plan.CycleUsedBefore,
			CycleAfter:        trip.Plan.CycleUsedAfter,
			RestartNeeded:     trip.Plan.RestartNeeded,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns the most recent trips without their daily logs.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context(), 50)
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, buildTripResponse(t, false))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one trip with its full plan and daily logs.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.fetchTrip(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, buildTripResponse(trip, true))
}

// Logs returns the renderable 24-hour grid for every day of a trip.
func (h *TripHandler) Logs(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.fetchTrip(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TripLogsResponse{
		TripID: trip.TripID,
		Logs:   eld.ProjectPlan(trip.Plan),
	})
}

func (h *TripHandler) fetchTrip(w http.ResponseWriter, r *http.Request) (*domain.Trip, bool) {
	tripID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || tripID <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return nil, false
	}

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if errors.Is(err, domain.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return nil, false
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return trip, true
}

// defaultDepartAt is today at 06:00 local time when the request does not pin
// a departure.
func defaultDepartAt(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
}

func buildTripResponse(t *domain.Trip, includePlan bool) dto.TripResponse {
	res := dto.TripResponse{
		TripID:            t.TripID,
		CreatedAt:         t.CreatedAt,
		CurrentLocation:   t.CurrentLocation,
		PickupLocation:    t.PickupLocation,
		DropoffLocation:   t.DropoffLocation,
		CurrentCycleUsed:  t.CurrentCycleUsed,
		TotalMiles:        t.TotalMiles,
		TotalDrivingHours: t.TotalDrivingHours,
		TotalDays:         t.TotalDays,
		RouteMethod:       t.RouteMethod,
	}
	if includePlan && t.Plan != nil {
		plan := buildPlanResponse(t.Plan)
		res.TripPlan = &plan
	}
	return res
}

func buildPlanResponse(plan *domain.TripPlan) dto.TripPlanResponse {
	logs := make([]dto.DayLogResponse, 0, len(plan.DailyLogs))
	for _, dayLog := range plan.DailyLogs {
		segments := make([]dto.SegmentResponse, 0, len(dayLog.Segments))
		for _, seg := range dayLog.Segments {
			segments = append(segments, dto.SegmentResponse{
				Status:        string(seg.Status),
				StartTime:     seg.Start,
				EndTime:       seg.End,
				DurationHours: seg.DurationHours(),
				Notes:         seg.Note,
			})
		}

		logs = append(logs, dto.DayLogResponse{
			DayNumber:           dayLog.DayNumber,
			Date:                dayLog.Date.Format("2006-01-02"),
			IsRestart:           dayLog.IsRestart,
			Segments:            segments,
			TotalDrivingHours:   dayLog.TotalDrivingHours(),
			TotalOnDutyHours:    dayLog.TotalOnDutyHours(),
			TotalOffDutyHours:   dayLog.TotalOffDutyHours(),
			RemainingDriveTime:  dayLog.RemainingDriveTime(),
			RemainingOnDutyTime: dayLog.RemainingOnDutyTime(),
			CycleHoursRemaining: dayLog.CycleHoursRemaining(),
			ELDGrid:             eld.ProjectDay(dayLog),
		})
	}

	return dto.TripPlanResponse{
		TotalMiles:        plan.TotalMiles,
		TotalDrivingHours: plan.TotalDrivingHours,
		EstimatedDays:     plan.EstimatedDays,
		ActualDays:        plan.ActualDays,
		NumFuelStops:      plan.NumFuelStops,
		DailyLogs:         logs,
		CycleUsedBefore:   plan.CycleUsedBefore,
		CycleUsedAfter:    plan.CycleUsedAfter,
		RestartNeeded:     plan.RestartNeeded,
	}
}

package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hos-trip-service/internal/domain"
	"hos-trip-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// fetchDirectionsLeg retrieves driving distance and duration for a single
// origin->destination leg using the OpenRouteService directions endpoint.
// Distance is requested in miles; duration arrives in seconds.
func (o *ORSRouteProvider) fetchDirectionsLeg(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.LegResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
		Units:       "mi",
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.LegResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.LegResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.LegResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.LegResult{}, fmt.Errorf("directions returned no routes")
	}

	summary := dr.Routes[0].Summary
	return ports.LegResult{
		Miles:         summary.Distance,
		DurationHours: summary.Duration / 3600,
	}, nil
}

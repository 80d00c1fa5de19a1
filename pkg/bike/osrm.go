package bike

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bike_transit/pkg/geo"
)

const defaultOSRMBaseURL = "http://router.project-osrm.org"

// OSRMProvider queries an OSRM instance's cycling profile. Public OSRM
// demo durations assume an unrealistic speed, so the duration is
// recomputed from the returned distance at TargetSpeedKmh.
type OSRMProvider struct {
	BaseURL        string
	TargetSpeedKmh float64
	client         *http.Client
}

// NewOSRMProvider creates an OSRM provider against baseURL (empty = the
// public demo server) with durations scaled to targetSpeedKmh.
func NewOSRMProvider(baseURL string, targetSpeedKmh float64, timeout time.Duration) *OSRMProvider {
	if baseURL == "" {
		baseURL = defaultOSRMBaseURL
	}
	return &OSRMProvider{
		BaseURL:        baseURL,
		TargetSpeedKmh: targetSpeedKmh,
		client:         &http.Client{Timeout: timeout},
	}
}

func (p *OSRMProvider) Name() string {
	return fmt.Sprintf("OSRM (scaled to %g km/h)", p.TargetSpeedKmh)
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

func (p *OSRMProvider) GetRoute(ctx context.Context, from, to geo.Coord) Result {
	url := fmt.Sprintf("%s/route/v1/cycling/%f,%f;%f,%f?overview=full&steps=false&geometries=geojson",
		p.BaseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure(p.Name(), err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Name(), fmt.Sprintf("network error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name(), fmt.Sprintf("status %d", resp.StatusCode))
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return failure(p.Name(), fmt.Sprintf("decode error: %v", err))
	}
	if body.Code != "Ok" {
		return failure(p.Name(), fmt.Sprintf("OSRM error: %s", body.Message))
	}
	if len(body.Routes) == 0 {
		return failure(p.Name(), "no routes found")
	}

	route := body.Routes[0]
	distanceKm := route.Distance / 1000

	// Realistic duration from distance at the target speed.
	durationMinutes := (distanceKm / p.TargetSpeedKmh) * 60

	var geom [][2]float64
	for _, c := range route.Geometry.Coordinates {
		if len(c) >= 2 {
			geom = append(geom, [2]float64{c[0], c[1]})
		}
	}

	return Result{
		DurationMinutes: durationMinutes,
		DistanceKm:      distanceKm,
		OK:              true,
		Provider:        p.Name(),
		Geometry:        geom,
	}
}

package bike

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-polyline"

	"bike_transit/pkg/geo"
)

const googleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// GoogleProvider queries the Google Maps Directions API in bicycling mode.
type GoogleProvider struct {
	APIKey string
	client *http.Client
}

func NewGoogleProvider(apiKey string, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		APIKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *GoogleProvider) Name() string {
	return "Google Maps"
}

type googleResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

func (p *GoogleProvider) GetRoute(ctx context.Context, from, to geo.Coord) Result {
	if p.APIKey == "" {
		return failure(p.Name(), "no API key; set GOOGLE_MAPS_API_KEY")
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lon))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lon))
	params.Set("mode", "bicycling")
	params.Set("key", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleDirectionsURL+"?"+params.Encode(), nil)
	if err != nil {
		return failure(p.Name(), err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Name(), fmt.Sprintf("network error: %v", err))
	}
	defer resp.Body.Close()

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return failure(p.Name(), fmt.Sprintf("decode error: %v", err))
	}
	if body.Status != "OK" {
		return failure(p.Name(), "Google Maps error: "+body.Status)
	}
	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return failure(p.Name(), "no routes found")
	}

	route := body.Routes[0]
	leg := route.Legs[0]

	var geom [][2]float64
	if pts := route.OverviewPolyline.Points; pts != "" {
		coords, _, err := polyline.DecodeCoords([]byte(pts))
		if err == nil {
			for _, c := range coords {
				// polyline yields (lat, lng); the rest of the system is (lon, lat)
				geom = append(geom, [2]float64{c[1], c[0]})
			}
		}
	}

	return Result{
		DurationMinutes: leg.Duration.Value / 60,
		DistanceKm:      leg.Distance.Value / 1000,
		OK:              true,
		Provider:        p.Name(),
		Geometry:        geom,
	}
}

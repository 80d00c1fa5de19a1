package bike

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bike_transit/pkg/geo"
)

const graphHopperURL = "https://graphhopper.com/api/1/route"

// GraphHopperProvider queries the hosted GraphHopper routing API.
type GraphHopperProvider struct {
	APIKey string
	client *http.Client
}

func NewGraphHopperProvider(apiKey string, timeout time.Duration) *GraphHopperProvider {
	return &GraphHopperProvider{
		APIKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *GraphHopperProvider) Name() string {
	return "GraphHopper"
}

type graphHopperResponse struct {
	Message string `json:"message"`
	Paths   []struct {
		Time     float64 `json:"time"`     // milliseconds
		Distance float64 `json:"distance"` // meters
	} `json:"paths"`
}

func (p *GraphHopperProvider) GetRoute(ctx context.Context, from, to geo.Coord) Result {
	if p.APIKey == "" {
		return failure(p.Name(), "no API key; set GRAPHHOPPER_API_KEY")
	}

	params := url.Values{}
	params.Add("point", fmt.Sprintf("%f,%f", from.Lat, from.Lon))
	params.Add("point", fmt.Sprintf("%f,%f", to.Lat, to.Lon))
	params.Set("vehicle", "bike")
	params.Set("locale", "en")
	params.Set("calc_points", "false")
	params.Set("key", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, graphHopperURL+"?"+params.Encode(), nil)
	if err != nil {
		return failure(p.Name(), err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Name(), fmt.Sprintf("network error: %v", err))
	}
	defer resp.Body.Close()

	var body graphHopperResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return failure(p.Name(), fmt.Sprintf("decode error: %v", err))
	}
	if len(body.Paths) == 0 {
		msg := body.Message
		if msg == "" {
			msg = "no paths found"
		}
		return failure(p.Name(), "GraphHopper error: "+msg)
	}

	path := body.Paths[0]
	return Result{
		DurationMinutes: path.Time / (1000 * 60),
		DistanceKm:      path.Distance / 1000,
		OK:              true,
		Provider:        p.Name(),
	}
}

package api

// CoordJSON represents a lon/lat pair in JSON.
type CoordJSON struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RouteRequest is the JSON body for POST /api/v1/route. The tuning
// fields are optional; zero values fall back to the server defaults.
type RouteRequest struct {
	Start CoordJSON `json:"start"`
	End   CoordJSON `json:"end"`

	CycleSpeedKmh        float64 `json:"cycle_speed_kmh,omitempty"`
	StationAccessMinutes float64 `json:"station_access_minutes,omitempty"`
	TrainWaitMinutes     float64 `json:"train_wait_minutes,omitempty"`
	LineChangeMinutes    float64 `json:"line_change_minutes,omitempty"`
	MaxBikeOnlyMinutes   float64 `json:"max_bike_only_minutes,omitempty"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	TotalDurationMinutes float64       `json:"total_duration_minutes"`
	IsDirectBike         bool          `json:"is_direct_bike"`
	Path                 []string      `json:"path"`
	Segments             []SegmentJSON `json:"segments"`
	Legs                 []LegJSON     `json:"legs"`
}

// SegmentJSON represents one traversed edge in the response.
type SegmentJSON struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	FromName        string   `json:"from_name,omitempty"`
	ToName          string   `json:"to_name,omitempty"`
	Mode            string   `json:"mode"`
	EdgeType        string   `json:"edge_type"`
	DurationMinutes float64  `json:"duration_minutes"`
	RawMinutes      float64  `json:"raw_duration_minutes"`
	BufferMinutes   float64  `json:"buffer_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Line            string   `json:"line,omitempty"`
	FromLine        string   `json:"from_line,omitempty"`
	ToLine          string   `json:"to_line,omitempty"`
}

// LegJSON is a traveller-facing grouping of consecutive segments.
type LegJSON struct {
	Mode            string   `json:"mode"`
	Line            string   `json:"line,omitempty"`
	FromName        string   `json:"from_name,omitempty"`
	ToName          string   `json:"to_name,omitempty"`
	DurationMinutes float64  `json:"duration_minutes"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Stops           int      `json:"stops,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes    int `json:"num_nodes"`
	NumEdges    int `json:"num_edges"`
	NumStations int `json:"num_stations"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

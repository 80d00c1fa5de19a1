package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"bike_transit/pkg/geo"
	"bike_transit/pkg/routing"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router   routing.Router
	defaults routing.Config
	stats    StatsResponse
}

// NewHandlers creates handlers with the given route planner.
func NewHandlers(router routing.Router, defaults routing.Config, stats StatsResponse) *Handlers {
	return &Handlers{
		router:   router,
		defaults: defaults,
		stats:    stats,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Validate coordinates.
	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}
	if err := validateTuning(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_tuning", "")
		return
	}

	cfg := h.requestConfig(req)

	start := geo.Coord{Lon: req.Start.Lon, Lat: req.Start.Lat}
	end := geo.Coord{Lon: req.End.Lon, Lat: req.End.Lat}

	result, err := h.router.FindRoute(r.Context(), start, end, cfg)
	if err != nil {
		if errors.Is(err, routing.ErrNoRoute) {
			writeError(w, http.StatusNotFound, "no_route_found", "")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildResponse(result))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

// requestConfig overlays the request's tuning fields on the server
// defaults. Unset (zero) fields keep the default.
func (h *Handlers) requestConfig(req RouteRequest) routing.Config {
	cfg := h.defaults
	if req.CycleSpeedKmh != 0 {
		cfg.CycleSpeedKmh = req.CycleSpeedKmh
	}
	if req.StationAccessMinutes != 0 {
		cfg.StationAccessMinutes = req.StationAccessMinutes
	}
	if req.TrainWaitMinutes != 0 {
		cfg.TrainWaitMinutes = req.TrainWaitMinutes
	}
	if req.LineChangeMinutes != 0 {
		cfg.LineChangeMinutes = req.LineChangeMinutes
	}
	if req.MaxBikeOnlyMinutes != 0 {
		cfg.MaxBikeOnlyMinutes = req.MaxBikeOnlyMinutes
	}
	return cfg
}

func buildResponse(result *routing.RouteResult) RouteResponse {
	resp := RouteResponse{
		TotalDurationMinutes: result.TotalDuration,
		IsDirectBike:         result.IsDirectBike,
		Path:                 result.Path,
	}

	for _, seg := range result.Segments {
		resp.Segments = append(resp.Segments, SegmentJSON{
			From:            seg.FromNode,
			To:              seg.ToNode,
			FromName:        seg.FromName,
			ToName:          seg.ToName,
			Mode:            seg.Mode,
			EdgeType:        seg.EdgeType,
			DurationMinutes: seg.DurationMinutes,
			RawMinutes:      seg.RawDurationMinutes,
			BufferMinutes:   seg.BufferMinutes,
			DistanceKm:      seg.DistanceKm,
			Line:            seg.Line,
			FromLine:        seg.FromLine,
			ToLine:          seg.ToLine,
		})
	}

	for _, leg := range routing.GroupLegs(result.Segments) {
		resp.Legs = append(resp.Legs, LegJSON{
			Mode:            leg.Mode,
			Line:            leg.Line,
			FromName:        leg.FromName,
			ToName:          leg.ToName,
			DurationMinutes: leg.DurationMinutes,
			DistanceKm:      leg.DistanceKm,
			Stops:           leg.StopCount,
		})
	}

	return resp
}

func validateCoord(c CoordJSON) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

// validateTuning rejects negative overrides; zero means "use default"
// and out-of-range speeds are clamped downstream rather than refused.
func validateTuning(req RouteRequest) error {
	for _, v := range []float64{
		req.CycleSpeedKmh,
		req.StationAccessMinutes,
		req.TrainWaitMinutes,
		req.LineChangeMinutes,
		req.MaxBikeOnlyMinutes,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.New("tuning values must be non-negative")
		}
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}

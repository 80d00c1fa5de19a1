package routing

import "log/slog"

// Defaults and bounds for the per-request routing configuration.
const (
	DefaultCycleSpeedKmh = 15.0
	MinCycleSpeedKmh     = 8.0
	MaxCycleSpeedKmh     = 30.0

	DefaultStationAccessMinutes = 2.0
	DefaultTrainWaitMinutes     = 5.0
	DefaultLineChangeMinutes    = 5.0
	DefaultMaxBikeOnlyMinutes   = 45.0

	// Real roads run longer than the great-circle line; divide the
	// ideal bike range by this factor when pre-filtering stations.
	DefaultStraightLineFactor = 2.0

	DefaultWorkers = 30
)

// Config carries every tunable of one route request. Values are immutable
// once Normalize has run; no long-lived object holds request state.
type Config struct {
	CycleSpeedKmh        float64
	StationAccessMinutes float64
	TrainWaitMinutes     float64
	LineChangeMinutes    float64
	MaxBikeOnlyMinutes   float64
	StraightLineFactor   float64
	Workers              int // bound on concurrent bicycle queries per direction
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		CycleSpeedKmh:        DefaultCycleSpeedKmh,
		StationAccessMinutes: DefaultStationAccessMinutes,
		TrainWaitMinutes:     DefaultTrainWaitMinutes,
		LineChangeMinutes:    DefaultLineChangeMinutes,
		MaxBikeOnlyMinutes:   DefaultMaxBikeOnlyMinutes,
		StraightLineFactor:   DefaultStraightLineFactor,
		Workers:              DefaultWorkers,
	}
}

// Normalize clamps out-of-range values and fills unset fields with
// defaults. Out-of-range cycle speed is clamped with a warning rather
// than rejected.
func (c Config) Normalize() Config {
	if c.CycleSpeedKmh == 0 {
		c.CycleSpeedKmh = DefaultCycleSpeedKmh
	}
	if c.CycleSpeedKmh < MinCycleSpeedKmh {
		slog.Warn("cycle speed below minimum, clamping",
			"requested", c.CycleSpeedKmh, "min", MinCycleSpeedKmh)
		c.CycleSpeedKmh = MinCycleSpeedKmh
	}
	if c.CycleSpeedKmh > MaxCycleSpeedKmh {
		slog.Warn("cycle speed above maximum, clamping",
			"requested", c.CycleSpeedKmh, "max", MaxCycleSpeedKmh)
		c.CycleSpeedKmh = MaxCycleSpeedKmh
	}

	if c.StationAccessMinutes == 0 {
		c.StationAccessMinutes = DefaultStationAccessMinutes
	}
	if c.TrainWaitMinutes == 0 {
		c.TrainWaitMinutes = DefaultTrainWaitMinutes
	}
	if c.LineChangeMinutes == 0 {
		c.LineChangeMinutes = DefaultLineChangeMinutes
	}
	if c.MaxBikeOnlyMinutes == 0 {
		c.MaxBikeOnlyMinutes = DefaultMaxBikeOnlyMinutes
	}
	if c.StraightLineFactor <= 0 {
		c.StraightLineFactor = DefaultStraightLineFactor
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// thresholdKm is the straight-line pre-filter radius: how far a station
// may be and still be a plausible bike leg within MaxBikeOnlyMinutes.
func (c Config) thresholdKm() float64 {
	return (c.MaxBikeOnlyMinutes * c.CycleSpeedKmh / 60) / c.StraightLineFactor
}

// enterBuffer is the extra time for a bicycle edge into the network:
// park the bike, reach the platform, wait for a train.
func (c Config) enterBuffer() float64 {
	return c.StationAccessMinutes + c.TrainWaitMinutes
}

// exitBuffer is the extra time for a bicycle edge out of the network.
func (c Config) exitBuffer() float64 {
	return c.StationAccessMinutes
}

// interStationBuffer covers a bicycle hop between two stations: exit one
// platform, ride, enter the other, wait for a train.
func (c Config) interStationBuffer() float64 {
	return 2*c.StationAccessMinutes + c.TrainWaitMinutes
}

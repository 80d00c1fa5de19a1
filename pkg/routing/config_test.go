package routing

import (
	"math"
	"testing"
)

func TestNormalizeClampsSpeed(t *testing.T) {
	low := Config{CycleSpeedKmh: 3.0}.Normalize()
	if low.CycleSpeedKmh != MinCycleSpeedKmh {
		t.Errorf("low speed clamped to %f, want %f", low.CycleSpeedKmh, MinCycleSpeedKmh)
	}

	high := Config{CycleSpeedKmh: 80.0}.Normalize()
	if high.CycleSpeedKmh != MaxCycleSpeedKmh {
		t.Errorf("high speed clamped to %f, want %f", high.CycleSpeedKmh, MaxCycleSpeedKmh)
	}

	ok := Config{CycleSpeedKmh: 20.0}.Normalize()
	if ok.CycleSpeedKmh != 20.0 {
		t.Errorf("in-range speed changed to %f", ok.CycleSpeedKmh)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	c := Config{}.Normalize()

	if c.CycleSpeedKmh != DefaultCycleSpeedKmh {
		t.Errorf("CycleSpeedKmh = %f", c.CycleSpeedKmh)
	}
	if c.StationAccessMinutes != DefaultStationAccessMinutes {
		t.Errorf("StationAccessMinutes = %f", c.StationAccessMinutes)
	}
	if c.TrainWaitMinutes != DefaultTrainWaitMinutes {
		t.Errorf("TrainWaitMinutes = %f", c.TrainWaitMinutes)
	}
	if c.LineChangeMinutes != DefaultLineChangeMinutes {
		t.Errorf("LineChangeMinutes = %f", c.LineChangeMinutes)
	}
	if c.MaxBikeOnlyMinutes != DefaultMaxBikeOnlyMinutes {
		t.Errorf("MaxBikeOnlyMinutes = %f", c.MaxBikeOnlyMinutes)
	}
	if c.StraightLineFactor != DefaultStraightLineFactor {
		t.Errorf("StraightLineFactor = %f", c.StraightLineFactor)
	}
	if c.Workers != DefaultWorkers {
		t.Errorf("Workers = %d", c.Workers)
	}
}

func TestThresholdFormula(t *testing.T) {
	c := DefaultConfig()
	// 45 min at 15 km/h = 11.25 km of riding; halved for road vs
	// straight-line distance.
	want := (45.0 * 15.0 / 60) / 2.0
	if got := c.thresholdKm(); math.Abs(got-want) > 1e-9 {
		t.Errorf("thresholdKm = %f, want %f", got, want)
	}
}

func TestBufferComponents(t *testing.T) {
	c := DefaultConfig()
	if c.enterBuffer() != 7.0 {
		t.Errorf("enterBuffer = %f, want 7 (2 access + 5 wait)", c.enterBuffer())
	}
	if c.exitBuffer() != 2.0 {
		t.Errorf("exitBuffer = %f, want 2", c.exitBuffer())
	}
	if c.interStationBuffer() != 9.0 {
		t.Errorf("interStationBuffer = %f, want 9 (2*2 access + 5 wait)", c.interStationBuffer())
	}
}

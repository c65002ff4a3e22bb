package sim

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/strafesim/pkg/math"
)

// Stats summarizes a run.
type Stats struct {
	Frames        int
	Ticks         int
	AirTicks      int
	Jumps         int
	Steps         int
	MaxHorizSpeed float32
	HorizDistance float32
	FinalPosition math.Vec3
	FinalVelocity math.Vec3
	SimulatedTime float64
}

// AirFraction returns the share of ticks spent airborne.
func (s Stats) AirFraction() float32 {
	if s.Ticks == 0 {
		return 0
	}
	return float32(s.AirTicks) / float32(s.Ticks)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("frames", s.Frames)
	enc.AddInt("ticks", s.Ticks)
	enc.AddInt("jumps", s.Jumps)
	enc.AddInt("steps", s.Steps)
	enc.AddFloat32("air_fraction", s.AirFraction())
	enc.AddFloat32("max_speed", s.MaxHorizSpeed)
	enc.AddFloat32("distance", s.HorizDistance)
	enc.AddFloat64("time", s.SimulatedTime)
	return nil
}

func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d jumps=%d steps=%d max_speed=%.3f distance=%.2f",
		s.Ticks, s.Jumps, s.Steps, s.MaxHorizSpeed, s.HorizDistance)
}

// Package sim hosts a movement controller and a physics world in a fixed-timestep
// loop driven by a scripted input source.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/internal/engine/camera"
	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/internal/physics"
)

// ErrInvalidRate is returned for a non-positive tick or frame rate.
var ErrInvalidRate = errors.New("sim: rates must be positive")

// Options configures a Runner.
type Options struct {
	TickRate  int // fixed updates per second
	FrameRate int // input samples per second
}

// Runner advances the simulation one render frame at a time. Each frame samples input
// once, then runs as many fixed ticks as the accumulated time allows. A tick is
// FixedUpdate, then the physics step, then step resolution for contacts the step
// reported, so a step-up lands before the next velocity write.
type Runner struct {
	ctrl  *movement.Controller
	world *physics.World
	view  *camera.FirstPerson
	input InputSource
	log   *zap.Logger

	tickDt  float64
	frameDt float64

	now      float64 // frame clock
	fixedNow float64 // tick clock

	stats Stats
}

// NewRunner wires a controller, its world and view to an input source. The controller
// is registered as the world's contact sink.
func NewRunner(ctrl *movement.Controller, world *physics.World, view *camera.FirstPerson, input InputSource, opts Options, log *zap.Logger) (*Runner, error) {
	if opts.TickRate <= 0 || opts.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: tick=%d frame=%d", ErrInvalidRate, opts.TickRate, opts.FrameRate)
	}
	if world.Body() == nil {
		return nil, physics.ErrNoBody
	}
	if log == nil {
		log = zap.NewNop()
	}

	world.SetContactSink(ctrl)
	return &Runner{
		ctrl:    ctrl,
		world:   world,
		view:    view,
		input:   input,
		log:     log,
		tickDt:  1 / float64(opts.TickRate),
		frameDt: 1 / float64(opts.FrameRate),
	}, nil
}

// Now returns the frame clock in seconds.
func (r *Runner) Now() float64 {
	return r.now
}

// Stats returns the statistics gathered so far.
func (r *Runner) Stats() Stats {
	s := r.stats
	body := r.world.Body()
	s.FinalPosition = body.Position()
	s.FinalVelocity = body.Velocity()
	s.SimulatedTime = r.fixedNow
	return s
}

// Frame advances one render frame and returns how many fixed ticks ran. Both clocks
// are derived from counters so long runs do not drift.
func (r *Runner) Frame() (int, error) {
	r.stats.Frames++
	r.now = float64(r.stats.Frames) * r.frameDt

	in := r.input.Sample(r.now)
	if in.LookDelta != 0 {
		r.view.Turn(in.LookDelta)
	}
	r.ctrl.SampleInput(r.now, in.Move, in.Jump)

	due := int(r.now/r.tickDt + 1e-6)
	ticks := 0
	for r.stats.Ticks < due {
		if err := r.tick(); err != nil {
			return ticks, err
		}
		ticks++
	}
	return ticks, nil
}

func (r *Runner) tick() error {
	r.fixedNow = float64(r.stats.Ticks+1) * r.tickDt
	body := r.world.Body()
	before := body.Position()
	hadPress := r.ctrl.State().LastJumpPress != movement.NoJumpPress

	r.ctrl.FixedUpdate(r.fixedNow, float32(r.tickDt))
	st := r.ctrl.State()
	if hadPress && st.LastJumpPress == movement.NoJumpPress {
		r.stats.Jumps++
	}

	if err := r.world.Step(float32(r.tickDt)); err != nil {
		return fmt.Errorf("physics step: %w", err)
	}
	r.stats.Steps += r.ctrl.DrainSteps()

	r.stats.Ticks++
	if !st.Grounded {
		r.stats.AirTicks++
	}
	if speed := body.Velocity().Horizontal().Length(); speed > r.stats.MaxHorizSpeed {
		r.stats.MaxHorizSpeed = speed
	}
	r.stats.HorizDistance += body.Position().Sub(before).Horizontal().Length()
	return nil
}

// Run advances frames until duration of simulated time has passed or ctx is done.
// Cancellation is checked between frames.
func (r *Runner) Run(ctx context.Context, duration time.Duration) (Stats, error) {
	end := r.now + duration.Seconds()

	r.log.Info("starting simulation",
		zap.Duration("duration", duration),
		zap.Float64("tick_dt", r.tickDt),
		zap.Float64("frame_dt", r.frameDt),
	)

	lastReport := r.now
	for r.now < end-1e-9 {
		if err := ctx.Err(); err != nil {
			return r.Stats(), err
		}
		if _, err := r.Frame(); err != nil {
			return r.Stats(), err
		}

		// Progress once per simulated second
		if r.now-lastReport >= 1 {
			lastReport = r.now
			st := r.ctrl.State()
			r.log.Debug("progress",
				zap.Float64("time", r.now),
				zap.Float32("speed", st.Velocity.Horizontal().Length()),
				zap.Bool("grounded", st.Grounded),
				zap.Stringer("mode", st.Mode),
			)
		}
	}

	stats := r.Stats()
	r.log.Info("simulation finished", zap.Object("stats", stats))
	return stats, nil
}

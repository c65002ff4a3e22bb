// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/pkg/math"
)

// Config holds all simulator settings.
type Config struct {
	Movement   MovementConfig   `yaml:"movement"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Body       BodyConfig       `yaml:"body"`
	Simulation SimulationConfig `yaml:"simulation"`
	Scenario   ScenarioConfig   `yaml:"scenario"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// MovementConfig mirrors movement.Params.
type MovementConfig struct {
	GroundAccel    float32 `yaml:"ground_accel"`
	AirAccel       float32 `yaml:"air_accel"`
	GroundMaxSpeed float32 `yaml:"ground_max_speed"`
	AirMaxSpeed    float32 `yaml:"air_max_speed"`
	Friction       float32 `yaml:"friction"`
	JumpSpeed      float32 `yaml:"jump_speed"`
	JumpBuffer     float32 `yaml:"jump_buffer"`
	MaxStepHeight  float32 `yaml:"max_step_height"`
	StepClearance  float32 `yaml:"step_clearance"`
	FlySpeed       float32 `yaml:"fly_speed"`

	GroundRayCount    int     `yaml:"ground_ray_count"`
	GroundMinNormalY  float32 `yaml:"ground_min_normal_y"`
	GroundProbeOffset float32 `yaml:"ground_probe_offset"`
	GroundProbeLength float32 `yaml:"ground_probe_length"`
	GroundLayers      uint32  `yaml:"ground_layers"`

	FlyFollowsPitch bool `yaml:"fly_follows_pitch"`
	ClampBlend      bool `yaml:"clamp_blend"`
}

// PhysicsConfig holds fixed-step settings.
type PhysicsConfig struct {
	TickRate int     `yaml:"tick_rate"` // fixed updates per second
	Gravity  float32 `yaml:"gravity"`
}

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// BodyConfig places the simulated body.
type BodyConfig struct {
	Position Vec3 `yaml:"position"`
	Extents  Vec3 `yaml:"extents"` // half-size
}

// SimulationConfig holds host loop settings.
type SimulationConfig struct {
	Duration  time.Duration `yaml:"duration"`
	FrameRate int           `yaml:"frame_rate"` // input samples per second
	Noclip    bool          `yaml:"noclip"`
}

// ScenarioConfig describes the level and the scripted input.
type ScenarioConfig struct {
	InitialYaw float32          `yaml:"initial_yaw"` // radians
	Colliders  []ColliderConfig `yaml:"colliders"`
	Script     []SegmentConfig  `yaml:"script"`
}

// ColliderConfig is one static box.
type ColliderConfig struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"` // box, mesh or other
	Min       Vec3   `yaml:"min"`
	Max       Vec3   `yaml:"max"`
	Layer     uint32 `yaml:"layer,omitempty"`
	TopNormal *Vec3  `yaml:"top_normal,omitempty"`
}

// SegmentConfig holds the input for a span of simulated time.
type SegmentConfig struct {
	Start    time.Duration `yaml:"start"`
	Duration time.Duration `yaml:"duration"`
	Forward  float32       `yaml:"forward"`
	Strafe   float32       `yaml:"strafe"`
	Jump     bool          `yaml:"jump"`
	YawRate  float32       `yaml:"yaw_rate"` // radians per second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with the stock tuning and a small demo course.
func Default() *Config {
	p := movement.DefaultParams()
	return &Config{
		Movement: MovementConfig{
			GroundAccel:       p.GroundAccel,
			AirAccel:          p.AirAccel,
			GroundMaxSpeed:    p.GroundMaxSpeed,
			AirMaxSpeed:       p.AirMaxSpeed,
			Friction:          p.Friction,
			JumpSpeed:         p.JumpSpeed,
			JumpBuffer:        p.JumpBuffer,
			MaxStepHeight:     p.MaxStepHeight,
			StepClearance:     p.StepClearance,
			FlySpeed:          p.FlySpeed,
			GroundRayCount:    p.GroundRayCount,
			GroundMinNormalY:  p.GroundMinNormalY,
			GroundProbeOffset: p.GroundProbeOffset,
			GroundProbeLength: p.GroundProbeLength,
			GroundLayers:      uint32(p.GroundLayers),
		},
		Physics: PhysicsConfig{
			TickRate: 50,
			Gravity:  -9.81,
		},
		Body: BodyConfig{
			Position: Vec3{X: 0, Y: 1, Z: 0},
			Extents:  Vec3{X: 0.5, Y: 1, Z: 0.5},
		},
		Simulation: SimulationConfig{
			Duration:  8 * time.Second,
			FrameRate: 144,
		},
		Scenario: ScenarioConfig{
			Colliders: []ColliderConfig{
				{Name: "floor", Kind: "box", Min: Vec3{X: -100, Y: -1, Z: -100}, Max: Vec3{X: 100, Y: 0, Z: 100}},
				{Name: "curb", Kind: "box", Min: Vec3{X: -100, Y: 0, Z: 6}, Max: Vec3{X: 100, Y: 0.2, Z: 8}},
				{Name: "crate", Kind: "mesh", Min: Vec3{X: 20, Y: 0, Z: 20}, Max: Vec3{X: 22, Y: 0.15, Z: 22}},
			},
			Script: []SegmentConfig{
				{Start: 0, Duration: 1500 * time.Millisecond, Forward: 1},
				{Start: 1500 * time.Millisecond, Duration: 2 * time.Second, Strafe: 1, Jump: true, YawRate: 1.2},
				{Start: 3500 * time.Millisecond, Duration: 2 * time.Second, Strafe: -1, Jump: true, YawRate: -1.2},
				{Start: 5500 * time.Millisecond, Duration: 2500 * time.Millisecond},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the movement section to controller tuning. FixedDt keeps its
// default; use Config.MovementParams to derive it from the tick rate.
func (m MovementConfig) Params() movement.Params {
	return movement.Params{
		GroundAccel:       m.GroundAccel,
		AirAccel:          m.AirAccel,
		GroundMaxSpeed:    m.GroundMaxSpeed,
		AirMaxSpeed:       m.AirMaxSpeed,
		Friction:          m.Friction,
		JumpSpeed:         m.JumpSpeed,
		JumpBuffer:        m.JumpBuffer,
		MaxStepHeight:     m.MaxStepHeight,
		StepClearance:     m.StepClearance,
		FlySpeed:          m.FlySpeed,
		FixedDt:           movement.DefaultParams().FixedDt,
		GroundRayCount:    m.GroundRayCount,
		GroundMinNormalY:  m.GroundMinNormalY,
		GroundProbeOffset: m.GroundProbeOffset,
		GroundProbeLength: m.GroundProbeLength,
		GroundLayers:      movement.LayerMask(m.GroundLayers),
		FlyFollowsPitch:   m.FlyFollowsPitch,
		ClampBlend:        m.ClampBlend,
	}
}

// MovementParams returns the controller tuning with FixedDt matching the physics
// tick rate.
func (c *Config) MovementParams() movement.Params {
	p := c.Movement.Params()
	if c.Physics.TickRate > 0 {
		p.FixedDt = 1 / float32(c.Physics.TickRate)
	}
	return p
}

// Vec converts to a math vector.
func (v Vec3) Vec() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// ColliderKind maps the kind string to the movement classification.
func (c ColliderConfig) ColliderKind() (movement.ColliderKind, error) {
	switch c.Kind {
	case "box", "":
		return movement.ColliderBox, nil
	case "mesh":
		return movement.ColliderMesh, nil
	case "other":
		return movement.ColliderOther, nil
	default:
		return 0, fmt.Errorf("collider %q: unknown kind %q", c.Name, c.Kind)
	}
}

// Validate checks the whole config and joins every problem found.
func (c *Config) Validate() error {
	var errs []error

	if err := c.MovementParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Physics.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("physics.tick_rate must be > 0, got %d", c.Physics.TickRate))
	}
	if c.Simulation.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.frame_rate must be > 0, got %d", c.Simulation.FrameRate))
	}
	if c.Simulation.Duration <= 0 {
		errs = append(errs, fmt.Errorf("simulation.duration must be > 0, got %v", c.Simulation.Duration))
	}
	if e := c.Body.Extents; e.X <= 0 || e.Y <= 0 || e.Z <= 0 {
		errs = append(errs, fmt.Errorf("body.extents must be positive, got %+v", e))
	}
	for _, col := range c.Scenario.Colliders {
		if _, err := col.ColliderKind(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, seg := range c.Scenario.Script {
		if seg.Start < 0 || seg.Duration < 0 {
			errs = append(errs, fmt.Errorf("scenario.script[%d]: negative time", i))
		}
	}

	return errors.Join(errs...)
}

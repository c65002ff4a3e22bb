package sim

import (
	"sort"
	"time"

	"github.com/Faultbox/strafesim/internal/config"
	"github.com/Faultbox/strafesim/pkg/math"
)

// Frame is the input sampled for one render frame.
type Frame struct {
	Move      math.Vec2 // X strafe right, Y forward, each in [-1, 1]
	Jump      bool      // jump held
	LookDelta float32   // yaw change since the previous sample, radians
}

// InputSource produces input at render rate.
type InputSource interface {
	Sample(now float64) Frame
}

// Segment holds constant input over [Start, Start+Duration).
type Segment struct {
	Start    time.Duration
	Duration time.Duration
	Forward  float32
	Strafe   float32
	Jump     bool
	YawRate  float32 // radians per second
}

func (s Segment) end() time.Duration { return s.Start + s.Duration }

func (s Segment) contains(now float64) bool {
	return now >= s.Start.Seconds() && now < s.end().Seconds()
}

// Script replays fixed input segments. When segments overlap, the one starting later
// wins. Outside every segment the input is neutral.
type Script struct {
	segments []Segment
	last     float64
}

// NewScript creates a script from segments in any order.
func NewScript(segments []Segment) *Script {
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return &Script{segments: segs}
}

// ScriptFromConfig builds a script from the scenario section.
func ScriptFromConfig(segments []config.SegmentConfig) *Script {
	segs := make([]Segment, 0, len(segments))
	for _, s := range segments {
		segs = append(segs, Segment{
			Start:    s.Start,
			Duration: s.Duration,
			Forward:  s.Forward,
			Strafe:   s.Strafe,
			Jump:     s.Jump,
			YawRate:  s.YawRate,
		})
	}
	return NewScript(segs)
}

// End returns when the last segment finishes.
func (s *Script) End() time.Duration {
	var end time.Duration
	for _, seg := range s.segments {
		end = max(end, seg.end())
	}
	return end
}

// Sample implements InputSource. LookDelta integrates the yaw rate of the active
// segment between the previous sample and now.
func (s *Script) Sample(now float64) Frame {
	var f Frame
	if seg, ok := s.active(now); ok {
		f.Move = math.Vec2{X: seg.Strafe, Y: seg.Forward}.ClampAxes()
		f.Jump = seg.Jump
	}

	if now > s.last {
		f.LookDelta = s.yawBetween(s.last, now)
		s.last = now
	}
	return f
}

func (s *Script) active(now float64) (Segment, bool) {
	for i := len(s.segments) - 1; i >= 0; i-- {
		if s.segments[i].contains(now) {
			return s.segments[i], true
		}
	}
	return Segment{}, false
}

// yawBetween integrates the active yaw rate over [from, to), splitting at every
// segment boundary so overlaps resolve the same way as active.
func (s *Script) yawBetween(from, to float64) float32 {
	cuts := []float64{from, to}
	for _, seg := range s.segments {
		for _, t := range [2]float64{seg.Start.Seconds(), seg.end().Seconds()} {
			if t > from && t < to {
				cuts = append(cuts, t)
			}
		}
	}
	sort.Float64s(cuts)

	var total float64
	for i := 1; i < len(cuts); i++ {
		lo, hi := cuts[i-1], cuts[i]
		if hi <= lo {
			continue
		}
		if seg, ok := s.active(lo); ok {
			total += float64(seg.YawRate) * (hi - lo)
		}
	}
	return float32(total)
}

// Reset rewinds the look integration to time zero.
func (s *Script) Reset() {
	s.last = 0
}

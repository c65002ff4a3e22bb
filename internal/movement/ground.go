package movement

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strafesim/pkg/math"
)

var down = math.Vec3{X: 0, Y: -1, Z: 0}

// GroundProbe is the outcome of one ground check.
type GroundProbe struct {
	Grounded    bool    // at least one probe hit a walkable surface
	Distance    float32 // closest hit of any probe, walkable or not
	HasDistance bool    // false when no probe hit anything
}

// GroundDetector casts a cylinder of vertical probes under a body.
type GroundDetector struct {
	rays      Raycaster
	rayCount  int
	minNormal float32
	offset    float32
	length    float32
	layers    LayerMask
}

// NewGroundDetector creates a detector using the ground settings of p.
func NewGroundDetector(rays Raycaster, p Params) *GroundDetector {
	return &GroundDetector{
		rays:      rays,
		rayCount:  p.GroundRayCount,
		minNormal: p.GroundMinNormalY,
		offset:    p.GroundProbeOffset,
		length:    p.GroundProbeLength,
		layers:    p.GroundLayers,
	}
}

// DetectGround probes below bottomCenter: one ray through the center, then rayCount
// rays evenly spaced on a ring of the given radius. Every hit counts toward the closest
// distance; only hits steeper than the slope gate are rejected for groundedness.
func (d *GroundDetector) DetectGround(bottomCenter math.Vec3, radius float32) GroundProbe {
	var result GroundProbe
	if d.rays == nil {
		return result
	}

	origin := bottomCenter.Add(math.Vec3{Y: d.offset})
	radiusVec := math.Vec3{X: radius}
	step := 2 * math32.Pi / float32(d.rayCount)

	for i := -1; i < d.rayCount; i++ {
		probe := origin
		if i >= 0 {
			probe = origin.Add(math.QuatFromYaw(float32(i) * step).Rotate(radiusVec))
		}

		hit, ok := d.rays.Raycast(probe, down, d.length, d.layers)
		if !ok {
			continue
		}

		if !result.HasDistance || hit.Distance < result.Distance {
			result.Distance = hit.Distance
			result.HasDistance = true
		}
		if hit.Normal.Y > d.minNormal {
			result.Grounded = true
		}
	}

	return result
}

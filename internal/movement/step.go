package movement

import (
	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/pkg/math"
)

// StepResolver lifts a body onto low ledges it runs into.
type StepResolver struct {
	maxStep   float32
	clearance float32
	log       *zap.Logger
}

// NewStepResolver creates a resolver from the step settings of p.
func NewStepResolver(p Params, log *zap.Logger) *StepResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &StepResolver{
		maxStep:   p.MaxStepHeight,
		clearance: p.StepClearance,
		log:       log,
	}
}

// CanStep reports whether every contact of ev allows stepping from footHeight, and the
// highest top among the contacted colliders.
// Mesh contacts always veto: there is no clearance test for arbitrary geometry yet.
func (r *StepResolver) CanStep(ev StepEvent, footHeight float32) (top float32, ok bool) {
	if len(ev.Contacts) == 0 {
		return 0, false
	}

	ok = true
	top = ev.Contacts[0].Other.Bounds.Top()
	for _, c := range ev.Contacts {
		otherTop := c.Other.Bounds.Top()
		if otherTop > top {
			top = otherTop
		}

		switch c.Other.Kind {
		case ColliderBox:
			if footHeight+r.maxStep < otherTop {
				ok = false
			}
		case ColliderMesh:
			ok = false
		}
	}
	return top, ok
}

// Resolve snaps body on top of the contacted surface and restores lastVelocity when
// the collision is a step. It returns whether the body moved.
// The space above the ledge is not checked.
func (r *StepResolver) Resolve(ev StepEvent, body Body, lastVelocity math.Vec3) bool {
	bounds := body.Bounds()
	pos := body.Position()
	foot := pos.Y - bounds.Extents.Y

	top, ok := r.CanStep(ev, foot)
	if !ok {
		return false
	}

	newPos := pos.WithY(top + bounds.Extents.Y + r.clearance)
	body.SetPosition(newPos)
	body.SetVelocity(lastVelocity)

	r.log.Debug("step up",
		zap.Float32("from", pos.Y),
		zap.Float32("to", newPos.Y),
		zap.Int("contacts", len(ev.Contacts)),
	)
	return true
}

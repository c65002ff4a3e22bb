package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/internal/config"
	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/internal/physics"
)

// BuildWorld creates the physics world and body described by cfg.
func BuildWorld(cfg *config.Config, log *zap.Logger) (*physics.World, *physics.Body, error) {
	if log == nil {
		log = zap.NewNop()
	}

	world := physics.NewWorld(cfg.Physics.Gravity, log.Named("physics"))
	for _, c := range cfg.Scenario.Colliders {
		kind, err := c.ColliderKind()
		if err != nil {
			return nil, nil, fmt.Errorf("building scenario: %w", err)
		}
		col := physics.Collider{
			Name:  c.Name,
			Kind:  kind,
			Box:   physics.NewAABB(c.Min.Vec(), c.Max.Vec()),
			Layer: movement.LayerMask(c.Layer),
		}
		if c.TopNormal != nil {
			col.TopNormal = c.TopNormal.Vec()
		}
		world.AddCollider(col)
	}

	body := physics.NewBody(cfg.Body.Position.Vec(), cfg.Body.Extents.Vec())
	world.SetBody(body)

	log.Info("scenario loaded",
		zap.Int("colliders", len(world.Colliders())),
		zap.Int("segments", len(cfg.Scenario.Script)),
	)
	return world, body, nil
}

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// AnimationSystem derives each unit's animation category and consumes the
// one-shot swing and hit pulses.
type AnimationSystem struct {
	filter    ecs.Filter4[components.Velocity, components.CurrentBehavior, components.Health, components.Animation]
	attackMap *ecs.Map[components.AttackState]
}

// NewAnimationSystem creates a new animation system.
func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter:    *ecs.NewFilter4[components.Velocity, components.CurrentBehavior, components.Health, components.Animation](w),
		attackMap: ecs.NewMap[components.AttackState](w),
	}
}

// Update sets the animation category. Death wins, then a fresh swing, then a fresh hit,
// then walking or idling by speed.
func (s *AnimationSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		vel, current, health, anim := query.Get()

		swinging := false
		if s.attackMap.Has(entity) {
			attack := s.attackMap.Get(entity)
			swinging = attack.IsSwinging
			attack.IsSwinging = false
		}
		hit := health.Hit
		health.Hit = false

		switch {
		case current.Is(components.BehaviorDead) || health.IsDead():
			anim.Category = components.AnimationDeath
		case swinging:
			anim.Category = components.AnimationAttack
		case hit:
			anim.Category = components.AnimationHit
		case vel.X != 0 || vel.Y != 0:
			anim.Category = components.AnimationWalk
		default:
			anim.Category = components.AnimationIdle
		}
	}
}

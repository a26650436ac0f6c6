package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

func TestAnimationCategory(t *testing.T) {
	tests := []struct {
		name     string
		kind     components.BehaviorKind
		health   float32
		swinging bool
		hit      bool
		vel      components.Velocity
		want     components.AnimationCategory
	}{
		{"standing", components.BehaviorIdle, 100, false, false, components.Velocity{}, components.AnimationIdle},
		{"moving", components.BehaviorChase, 100, false, false, components.Velocity{X: 0.5}, components.AnimationWalk},
		{"hit while moving", components.BehaviorChase, 80, false, true, components.Velocity{X: 0.5}, components.AnimationHit},
		{"swing beats hit", components.BehaviorAttack, 80, true, true, components.Velocity{}, components.AnimationAttack},
		{"dead behavior", components.BehaviorDead, 100, true, true, components.Velocity{}, components.AnimationDeath},
		{"no health left", components.BehaviorAttack, 0, true, false, components.Velocity{}, components.AnimationDeath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld()
			e := tw.spawn(components.TeamEvil, 0, 0, tt.kind,
				components.PrioritizedBehavior{Behavior: components.AttackBehavior(components.DefaultAttackParams()), Priority: 1})
			animMap := ecs.NewMap[components.Animation](tw.world)
			animMap.Add(e, &components.Animation{})

			*tw.vel.Get(e) = tt.vel
			health := tw.health.Get(e)
			health.Value = tt.health
			health.Hit = tt.hit
			tw.attack.Get(e).IsSwinging = tt.swinging

			NewAnimationSystem(tw.world).Update()

			if got := animMap.Get(e).Category; got != tt.want {
				t.Errorf("category = %v, want %v", got, tt.want)
			}
			if tw.attack.Get(e).IsSwinging || tw.health.Get(e).Hit {
				t.Error("pulses not consumed")
			}
		})
	}
}

func TestAnimationWithoutAttackState(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(components.TeamGood, 0, 0, components.BehaviorFlee)
	animMap := ecs.NewMap[components.Animation](tw.world)
	animMap.Add(e, &components.Animation{Category: components.AnimationAttack})
	*tw.vel.Get(e) = components.Velocity{Y: -1}

	NewAnimationSystem(tw.world).Update()

	if got := animMap.Get(e).Category; got != components.AnimationWalk {
		t.Errorf("category = %v, want walk", got)
	}
}

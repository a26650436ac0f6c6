package systems

import (
	"testing"

	"github.com/pthm-cable/darkarts/components"
)

func TestPhysicsUpdate(t *testing.T) {
	tests := []struct {
		name         string
		start        components.Position
		vel          components.Velocity
		wantX, wantY float32
		wantVel      components.Velocity
	}{
		{
			name:    "full speed",
			vel:     components.Velocity{X: 1},
			wantX:   10,
			wantVel: components.Velocity{X: 1},
		},
		{
			name:    "half speed diagonal",
			vel:     components.Velocity{X: 0.3, Y: -0.4},
			wantX:   3,
			wantY:   -4,
			wantVel: components.Velocity{X: 0.3, Y: -0.4},
		},
		{
			name:    "overlong steering is clamped to top speed",
			vel:     components.Velocity{X: 3, Y: 4},
			wantX:   6,
			wantY:   8,
			wantVel: components.Velocity{X: 0.6, Y: 0.8},
		},
		{
			name:    "held at the world edge",
			start:   components.Position{X: 995, Y: -998},
			vel:     components.Velocity{X: 0.6, Y: -0.8},
			wantX:   1000,
			wantY:   -1000,
			wantVel: components.Velocity{X: 0.6, Y: -0.8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld()
			e := tw.spawn(components.TeamGood, tt.start.X, tt.start.Y, components.BehaviorIdle)
			*tw.vel.Get(e) = tt.vel

			NewPhysicsSystem(tw.world, Bounds{Width: 2000, Height: 2000}).Update(0.1)

			pos := tw.pos.Get(e)
			if !approx(pos.X, tt.wantX) || !approx(pos.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			vel := tw.vel.Get(e)
			if !approx(vel.X, tt.wantVel.X) || !approx(vel.Y, tt.wantVel.Y) {
				t.Errorf("velocity = %+v, want %+v", *vel, tt.wantVel)
			}
		})
	}
}

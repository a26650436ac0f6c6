package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// PhysicsSystem moves units along their velocity.
type PhysicsSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Movement]
	bounds Bounds
}

// Bounds represents the simulation bounds, centred on the origin.
type Bounds struct {
	Width, Height float32
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds) *PhysicsSystem {
	return &PhysicsSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Movement](w),
		bounds: bounds,
	}
}

// Update translates every unit by velocity * speed * dt and keeps it inside the world.
func (s *PhysicsSystem) Update(dt float32) {
	halfW, halfH := s.bounds.Width/2, s.bounds.Height/2

	query := s.filter.Query()
	for query.Next() {
		pos, vel, move := query.Get()

		// Steering vectors are fractions of top speed
		if mag := velocityMagnitude(vel.X, vel.Y); mag > 1 {
			vel.X /= mag
			vel.Y /= mag
		}

		pos.X += vel.X * move.Speed * dt
		pos.Y += vel.Y * move.Speed * dt

		pos.X = clampFloat(pos.X, -halfW, halfW)
		pos.Y = clampFloat(pos.Y, -halfH, halfH)
	}
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

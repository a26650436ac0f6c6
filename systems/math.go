package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/darkarts/components"
)

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}

// Vector helpers

// vec converts a position into a gonum vector.
func vec(p components.Position) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// unitOrZero normalizes v, returning the zero vector instead of NaN for zero-length input.
func unitOrZero(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// directionTo returns the unit vector pointing from `from` toward `to`.
func directionTo(from, to r2.Vec) r2.Vec {
	return unitOrZero(r2.Sub(to, from))
}

// setVelocity writes a vector into a velocity component.
func setVelocity(vel *components.Velocity, v r2.Vec) {
	vel.X = float32(v.X)
	vel.Y = float32(v.Y)
}

package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/darkarts/components"
)

// wanderSpeed is the fraction of top speed used while wandering.
const wanderSpeed = 0.5

// executeWander runs the wait/walk oscillator of wandering units.
func (s *BehaviorSystem) executeWander(ctx *TickContext) {
	query := s.wanderFilter.Query()
	for query.Next() {
		vel, current, state := query.Get()
		if !current.Is(components.BehaviorWander) {
			continue
		}
		if current.Activated {
			restartWander(state, vel, ctx.RNG)
		}
		stepWander(state, vel, ctx)
	}
}

// restartWander puts a newly activated wanderer back into its waiting phase.
func restartWander(state *components.WanderState, vel *components.Velocity, rng components.RNG) {
	state.IsWandering = false
	state.WaitTimer.Reset(components.Jittered(state.Params.WaitDuration, state.Params.Jitter, rng))
	*vel = components.Velocity{}
}

// stepWander advances the oscillator by one tick. Phase changes happen only when
// the running timer finishes.
func stepWander(state *components.WanderState, vel *components.Velocity, ctx *TickContext) {
	p := state.Params
	if state.IsWandering {
		if state.WanderTimer.Tick(ctx.DT) {
			state.IsWandering = false
			state.WaitTimer.Reset(components.Jittered(p.WaitDuration, p.Jitter, ctx.RNG))
			*vel = components.Velocity{}
		}
		return
	}

	if state.WaitTimer.Tick(ctx.DT) {
		state.IsWandering = true
		state.WanderTimer.Reset(components.Jittered(p.WanderDuration, p.Jitter, ctx.RNG))
		setVelocity(vel, r2.Scale(wanderSpeed, randomDirection(ctx.RNG)))
	}
}

// randomDirection draws each axis uniformly from [-1, 1) and normalizes.
// A zero draw yields the zero vector.
func randomDirection(rng components.RNG) r2.Vec {
	return unitOrZero(r2.Vec{
		X: float64(rng.Float32()*2 - 1),
		Y: float64(rng.Float32()*2 - 1),
	})
}

package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/darkarts/components"
)

// BehaviorSystem runs the executor of each unit's active behavior.
// Each executor is an independent pass that skips units running another kind.
type BehaviorSystem struct {
	steerFilter  ecs.Filter3[components.Position, components.Velocity, components.CurrentBehavior]
	wanderFilter ecs.Filter3[components.Velocity, components.CurrentBehavior, components.WanderState]
	attackFilter ecs.Filter4[components.Position, components.Velocity, components.CurrentBehavior, components.AttackState]

	fleeScratch []Candidate
}

// NewBehaviorSystem creates a new behavior system.
func NewBehaviorSystem(w *ecs.World) *BehaviorSystem {
	return &BehaviorSystem{
		steerFilter:  *ecs.NewFilter3[components.Position, components.Velocity, components.CurrentBehavior](w),
		wanderFilter: *ecs.NewFilter3[components.Velocity, components.CurrentBehavior, components.WanderState](w),
		attackFilter: *ecs.NewFilter4[components.Position, components.Velocity, components.CurrentBehavior, components.AttackState](w),
	}
}

// Update runs every executor once. Arbitration must have completed for this tick.
func (s *BehaviorSystem) Update(ctx *TickContext) {
	s.executeIdle()
	s.executeMoveToOrigin()
	s.executeWander(ctx)
	s.executeChase(ctx)
	s.executeFlee(ctx)
	s.executeAttack(ctx)
	s.executeDead()
}

// executeIdle stops idle units.
func (s *BehaviorSystem) executeIdle() {
	query := s.steerFilter.Query()
	for query.Next() {
		_, vel, current := query.Get()
		if current.Is(components.BehaviorIdle) {
			*vel = components.Velocity{}
		}
	}
}

// executeMoveToOrigin points units at the world origin.
func (s *BehaviorSystem) executeMoveToOrigin() {
	query := s.steerFilter.Query()
	for query.Next() {
		pos, vel, current := query.Get()
		if !current.Is(components.BehaviorMoveToOrigin) {
			continue
		}
		setVelocity(vel, directionTo(vec(*pos), r2.Vec{}))
	}
}

// executeChase points units at the nearest enemy in chase range.
// Without a target the velocity is left as is.
func (s *BehaviorSystem) executeChase(ctx *TickContext) {
	query := s.steerFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, current := query.Get()
		if !current.Is(components.BehaviorChase) {
			continue
		}
		self, ok := ctx.Targets.View(entity)
		if !ok {
			continue
		}
		target, ok := ctx.Targets.NearestWithin(self, ctx.Ranges.Chase)
		if !ok {
			continue
		}
		setVelocity(vel, directionTo(vec(*pos), vec(target.View.Pos)))
	}
}

// executeFlee moves units away from the threats in flee range.
func (s *BehaviorSystem) executeFlee(ctx *TickContext) {
	query := s.steerFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, current := query.Get()
		if !current.Is(components.BehaviorFlee) {
			continue
		}
		self, ok := ctx.Targets.View(entity)
		if !ok {
			continue
		}
		s.fleeScratch = ctx.Targets.Within(self, ctx.Ranges.Flee, s.fleeScratch[:0])
		centroid, ok := threatCentroid(s.fleeScratch)
		if !ok {
			continue
		}
		setVelocity(vel, directionTo(centroid, vec(*pos)))
	}
}

// threatCentroid returns the inverse-distance weighted centroid of the threats.
// Threats at distance zero give no direction and are skipped.
func threatCentroid(threats []Candidate) (r2.Vec, bool) {
	var sum r2.Vec
	var totalWeight float64
	for _, c := range threats {
		if c.Dist <= 0 {
			continue
		}
		w := 1 / float64(c.Dist)
		sum = r2.Add(sum, r2.Scale(w, vec(c.View.Pos)))
		totalWeight += w
	}
	if totalWeight == 0 {
		return r2.Vec{}, false
	}
	return r2.Scale(1/totalWeight, sum), true
}

// executeDead keeps dead units still.
func (s *BehaviorSystem) executeDead() {
	query := s.steerFilter.Query()
	for query.Next() {
		_, vel, current := query.Get()
		if current.Is(components.BehaviorDead) {
			*vel = components.Velocity{}
		}
	}
}

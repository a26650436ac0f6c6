package systems

import (
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/telemetry"
)

// Ranges holds the absolute distance thresholds used by desire predicates and executors.
type Ranges struct {
	OriginZone float32 // MoveToOrigin wants control beyond this distance from the origin
	Chase      float32
	Flee       float32
	Attack     float32
	AttackMid  float32 // Attack approaches beyond this distance
	AttackMin  float32 // Attack stands still within this distance
}

// RangesFromConfig derives ranges from the configured fractions and world extents.
func RangesFromConfig(cfg *config.Config) Ranges {
	return Ranges{
		OriginZone: cfg.Derived.OriginZone,
		Chase:      cfg.Derived.ChaseRange,
		Flee:       cfg.Derived.FleeRange,
		Attack:     float32(cfg.Behavior.AttackRange),
		AttackMid:  float32(cfg.Behavior.AttackMidRange),
		AttackMin:  float32(cfg.Behavior.AttackMinRange),
	}
}

// EventSink receives events emitted by systems.
type EventSink interface {
	Emit(e telemetry.Event)
}

// TickContext carries everything a behavior pass needs from the outside world.
type TickContext struct {
	Tick    int32
	DT      time.Duration
	RNG     components.RNG
	Targets *Targets
	Ranges  Ranges
	Events  EventSink // may be nil
}

func (c *TickContext) emit(e telemetry.Event) {
	if c.Events != nil {
		c.Events.Emit(e)
	}
}

// Arbitrate returns the highest-priority kind among the supported behaviors that want control.
// Equal priorities resolve to the earliest entry, matching a stable descending sort.
// ok is false when no behavior wants control.
func Arbitrate(supported *components.SupportedBehaviors, wants func(components.Behavior) bool) (kind components.BehaviorKind, ok bool) {
	best := -1
	for i, e := range supported.Entries {
		if !wants(e.Behavior) {
			continue
		}
		if best < 0 || e.Priority > supported.Entries[best].Priority {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return supported.Entries[best].Behavior.Kind, true
}

// ArbitrationSystem re-evaluates every unit's active behavior once per tick.
type ArbitrationSystem struct {
	filter ecs.Filter4[components.Position, components.Health, components.SupportedBehaviors, components.CurrentBehavior]

	// Anomaly accounting: units whose behavior set had no desiring entry.
	fallbacks    int
	lastWarnTick int32
}

// NewArbitrationSystem creates a new arbitration system.
func NewArbitrationSystem(w *ecs.World) *ArbitrationSystem {
	return &ArbitrationSystem{
		filter:       *ecs.NewFilter4[components.Position, components.Health, components.SupportedBehaviors, components.CurrentBehavior](w),
		lastWarnTick: -fallbackWarnInterval,
	}
}

// fallbackWarnInterval throttles the empty-desire warning (ticks).
const fallbackWarnInterval = 600

// Update commits a new CurrentBehavior for every unit.
func (s *ArbitrationSystem) Update(ctx *TickContext) {
	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, health, supported, current := query.Get()

		// Units missing from the index have no team and never see enemies.
		self, _ := ctx.Targets.View(entity)

		kind, ok := Arbitrate(supported, func(b components.Behavior) bool {
			return s.wants(b.Kind, self, pos, health, ctx)
		})
		if !ok {
			// Keep the previous behavior; every shipped profile has an unconditional fallback.
			s.fallbacks++
			if ctx.Tick-s.lastWarnTick >= fallbackWarnInterval {
				slog.Warn("no behavior wants control, keeping previous",
					"behavior", current.Kind.String(),
					"fallbacks", s.fallbacks,
				)
				s.lastWarnTick = ctx.Tick
			}
			current.Set(current.Kind)
			continue
		}

		current.Set(kind)
		if current.Activated && self != nil {
			ctx.emit(telemetry.NewBehaviorChangeEvent(ctx.Tick, self.ID, self.Team, kind))
		}
	}
}

// wants evaluates the desire predicate of a behavior kind for one unit.
func (s *ArbitrationSystem) wants(kind components.BehaviorKind, self *TargetView, pos *components.Position, health *components.Health, ctx *TickContext) bool {
	switch kind {
	case components.BehaviorIdle, components.BehaviorWander:
		return true
	case components.BehaviorMoveToOrigin:
		return distance(pos.X, pos.Y, 0, 0) > ctx.Ranges.OriginZone
	case components.BehaviorChase:
		return self != nil && ctx.Targets.AnyWithin(self, ctx.Ranges.Chase)
	case components.BehaviorFlee:
		return self != nil && ctx.Targets.AnyWithin(self, ctx.Ranges.Flee)
	case components.BehaviorAttack:
		return self != nil && ctx.Targets.AnyWithin(self, ctx.Ranges.Attack)
	case components.BehaviorDead:
		return health.IsDead()
	}
	return false
}

// Fallbacks returns how many times a unit kept its previous behavior for lack of a desiring entry.
func (s *ArbitrationSystem) Fallbacks() int {
	return s.fallbacks
}

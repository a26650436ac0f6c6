package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/telemetry"
)

// fixedRNG returns the same draw every time.
type fixedRNG struct {
	f float32
}

func (r fixedRNG) Float32() float32 { return r.f }
func (r fixedRNG) Intn(int) int     { return 0 }

var testRanges = Ranges{
	OriginZone: 100,
	Chase:      300,
	Flee:       150,
	Attack:     96,
	AttackMid:  72,
	AttackMin:  48,
}

const testDT = 100 * time.Millisecond

// testWorld is a small world with the unit components every system reads.
type testWorld struct {
	world  *ecs.World
	mapper *ecs.Map8[
		components.Position,
		components.Velocity,
		components.Movement,
		components.Affiliation,
		components.Health,
		components.Unit,
		components.SupportedBehaviors,
		components.CurrentBehavior,
	]
	pos     *ecs.Map[components.Position]
	vel     *ecs.Map[components.Velocity]
	health  *ecs.Map[components.Health]
	current *ecs.Map[components.CurrentBehavior]
	wander  *ecs.Map[components.WanderState]
	attack  *ecs.Map[components.AttackState]

	targets *Targets
	events  telemetry.EventBuffer
	rng     components.RNG
	nextID  uint32
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		world: w,
		mapper: ecs.NewMap8[
			components.Position,
			components.Velocity,
			components.Movement,
			components.Affiliation,
			components.Health,
			components.Unit,
			components.SupportedBehaviors,
			components.CurrentBehavior,
		](w),
		pos:     ecs.NewMap[components.Position](w),
		vel:     ecs.NewMap[components.Velocity](w),
		health:  ecs.NewMap[components.Health](w),
		current: ecs.NewMap[components.CurrentBehavior](w),
		wander:  ecs.NewMap[components.WanderState](w),
		attack:  ecs.NewMap[components.AttackState](w),
		targets: NewTargets(w, 2000, 2000, 64),
		rng:     fixedRNG{f: 0.5},
	}
}

// spawn adds a unit running the given kind. Wander and attack state are added
// when the behavior list carries their parameters.
func (tw *testWorld) spawn(team components.Team, x, y float32, kind components.BehaviorKind, entries ...components.PrioritizedBehavior) ecs.Entity {
	if len(entries) == 0 {
		entries = []components.PrioritizedBehavior{{Behavior: components.Behavior{Kind: kind}, Priority: 1}}
	}
	id := tw.nextID
	tw.nextID++

	e := tw.mapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{},
		&components.Movement{Speed: 100},
		&components.Affiliation{Team: team},
		&components.Health{Value: 100, Max: 100},
		&components.Unit{ID: id},
		&components.SupportedBehaviors{Entries: entries},
		&components.CurrentBehavior{Kind: kind, Previous: kind},
	)
	for _, entry := range entries {
		if p := entry.Behavior.Wander; p != nil {
			state := components.NewWanderState(*p)
			tw.wander.Add(e, &state)
		}
		if p := entry.Behavior.Attack; p != nil {
			state := components.NewAttackState(*p)
			tw.attack.Add(e, &state)
		}
	}
	return e
}

// ctx rebuilds the target index and returns a context for one tick.
func (tw *testWorld) ctx() *TickContext {
	tw.targets.Rebuild()
	return &TickContext{
		DT:      testDT,
		RNG:     tw.rng,
		Targets: tw.targets,
		Ranges:  testRanges,
		Events:  &tw.events,
	}
}

// eventTypes drains the buffered events and returns their types.
func (tw *testWorld) eventTypes() []telemetry.EventType {
	var types []telemetry.EventType
	for _, e := range tw.events.Drain() {
		types = append(types, e.Type)
	}
	return types
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

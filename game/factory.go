package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/telemetry"
)

// Errors returned by SpawnUnit.
var (
	ErrUnknownUnit        = errors.New("unknown unit profile")
	ErrUnsupportedInitial = errors.New("initial behavior not supported")
)

// SpawnUnit creates a unit from the named profile at the given position.
func (g *Game) SpawnUnit(name string, x, y float32) (ecs.Entity, error) {
	profile, ok := g.cfg.Unit(name)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}

	team, err := components.ParseTeam(profile.Team)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("unit %q: %w", name, err)
	}
	supported, err := buildSupportedBehaviors(profile, g.cfg.Behavior)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("unit %q: %w", name, err)
	}
	// Units without an explicit initial behavior start in their first entry
	initial := supported.Entries[0].Behavior.Kind
	if profile.Initial != "" {
		if initial, err = components.ParseBehaviorKind(profile.Initial); err != nil {
			return ecs.Entity{}, fmt.Errorf("unit %q: initial behavior: %w", name, err)
		}
	}
	if !supported.Has(initial) {
		return ecs.Entity{}, fmt.Errorf("%w: unit %q starts in %s", ErrUnsupportedInitial, name, initial)
	}

	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	move := components.Movement{Speed: float32(profile.Speed)}
	aff := components.Affiliation{Team: team}
	health := components.Health{Value: float32(profile.Health), Max: float32(profile.Health)}
	unit := components.Unit{ID: id, Profile: name}
	current := components.CurrentBehavior{Kind: initial, Previous: initial}
	anim := components.Animation{}

	entity := g.unitMapper.NewEntity(&pos, &vel, &move, &aff, &health, &unit, &supported, &current, &anim)

	// Per-behavior state only for units that can run the behavior
	if e, ok := supported.Find(components.BehaviorWander); ok {
		state := components.NewWanderState(*e.Behavior.Wander)
		g.wanderMap.Add(entity, &state)
	}
	if e, ok := supported.Find(components.BehaviorAttack); ok {
		state := components.NewAttackState(*e.Behavior.Attack)
		g.attackMap.Add(entity, &state)
	}
	if profile.Mana != nil {
		mana := components.Mana{Current: profile.Mana.Initial, Max: profile.Mana.Max}
		g.manaMap.Add(entity, &mana)
	}
	if profile.ManaGiver != nil {
		giver := components.ManaGiver{
			Amount: profile.ManaGiver.Amount,
			Timer:  components.NewTimer(config.Seconds(profile.ManaGiver.Interval)),
		}
		g.giverMap.Add(entity, &giver)
	}

	g.entityByID[id] = entity
	g.lifetimeTracker.Register(id, g.tick, name, team)
	g.events.Emit(telemetry.NewSpawnEvent(g.tick, id, team))

	return entity, nil
}

// buildSupportedBehaviors converts a profile's behavior list into arbitration entries.
// Wander and Attack take the profile's tuning, falling back to the shared defaults.
func buildSupportedBehaviors(profile *config.UnitConfig, defaults config.BehaviorConfig) (components.SupportedBehaviors, error) {
	entries := make([]components.PrioritizedBehavior, 0, len(profile.Behaviors))
	for _, bc := range profile.Behaviors {
		kind, err := components.ParseBehaviorKind(bc.Kind)
		if err != nil {
			return components.SupportedBehaviors{}, err
		}
		if bc.Priority < 1 || bc.Priority > 255 {
			return components.SupportedBehaviors{}, fmt.Errorf("priority of %s out of range: %d", kind, bc.Priority)
		}

		var b components.Behavior
		switch kind {
		case components.BehaviorIdle:
			b = components.IdleBehavior()
		case components.BehaviorMoveToOrigin:
			b = components.MoveToOriginBehavior()
		case components.BehaviorWander:
			wc := defaults.Wander
			if profile.Wander != nil {
				wc = *profile.Wander
			}
			b = components.WanderBehavior(wanderParams(wc))
		case components.BehaviorChase:
			b = components.ChaseBehavior()
		case components.BehaviorFlee:
			b = components.FleeBehavior()
		case components.BehaviorAttack:
			ac := defaults.Attack
			if profile.Attack != nil {
				ac = *profile.Attack
			}
			b = components.AttackBehavior(attackParams(ac))
		case components.BehaviorDead:
			b = components.DeadBehavior()
		}

		entries = append(entries, components.PrioritizedBehavior{Behavior: b, Priority: uint8(bc.Priority)})
	}
	return components.NewSupportedBehaviors(entries...)
}

func wanderParams(c config.WanderConfig) components.WanderParams {
	return components.WanderParams{
		WaitDuration:   config.Seconds(c.WaitTime),
		WanderDuration: config.Seconds(c.WanderTime),
		Jitter:         config.Seconds(c.Jitter),
	}
}

func attackParams(c config.AttackConfig) components.AttackParams {
	return components.AttackParams{
		Cooldown:       config.Seconds(c.Cooldown),
		CooldownJitter: config.Seconds(c.CooldownJitter),
		BaseDamage:     float32(c.BaseDamage),
		DamageJitter:   float32(c.DamageJitter),
	}
}

package systems

import (
	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/telemetry"
)

// executeAttack moves attackers into melee range and lands hits when the cooldown allows.
//
// Movement is tiered by distance to the nearest target:
// beyond AttackMid the unit closes in at full speed, between AttackMin and AttackMid
// it keeps its current velocity, and within AttackMin it stands still.
//
// The pass is single-threaded; it is the only place one unit writes another's health.
func (s *BehaviorSystem) executeAttack(ctx *TickContext) {
	query := s.attackFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, current, state := query.Get()
		if !current.Is(components.BehaviorAttack) {
			continue
		}

		state.Cooldown.Tick(ctx.DT)

		self, ok := ctx.Targets.View(entity)
		if !ok {
			continue
		}
		target, ok := ctx.Targets.NearestWithin(self, ctx.Ranges.Attack)
		if !ok {
			continue
		}

		switch {
		case target.Dist > ctx.Ranges.AttackMid:
			setVelocity(vel, directionTo(vec(*pos), vec(target.View.Pos)))
		case target.Dist <= ctx.Ranges.AttackMin:
			*vel = components.Velocity{}
		}

		if state.Cooldown.Finished() {
			strike(self, target.View, state, ctx)
		}
	}
}

// strike applies one hit from attacker to target and re-arms the cooldown.
func strike(attacker, target *TargetView, state *components.AttackState, ctx *TickContext) {
	p := state.Params
	damage := components.JitteredAmount(p.BaseDamage, p.DamageJitter, ctx.RNG)
	dealt := target.Health.Damage(damage)

	state.Cooldown.Reset(components.Jittered(p.Cooldown, p.CooldownJitter, ctx.RNG))
	state.IsSwinging = true

	ctx.emit(telemetry.NewHitEvent(ctx.Tick, attacker.ID, target.ID, attacker.Team, dealt))
	if dealt > 0 && target.Health.IsDead() {
		ctx.emit(telemetry.NewKillEvent(ctx.Tick, attacker.ID, target.ID, attacker.Team))
		if target.Team == components.TeamGood {
			ctx.emit(telemetry.NewScoreEvent(ctx.Tick, attacker.ID, target.ID))
		}
	}
}

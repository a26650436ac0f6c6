package game

import (
	"github.com/pthm-cable/darkarts/systems"
	"github.com/pthm-cable/darkarts/telemetry"
)

// simulationStep advances the battle by one fixed tick.
// Every system sees the results of the systems before it in the same tick.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()
	d := g.cfg.Derived

	ctx := &systems.TickContext{
		Tick:    g.tick,
		DT:      d.DT,
		RNG:     g.rng,
		Targets: g.targets,
		Ranges:  g.ranges,
		Events:  &g.events,
	}

	g.perfCollector.StartPhase(telemetry.PhaseSpatialGrid)
	g.targets.Rebuild()

	g.perfCollector.StartPhase(telemetry.PhaseArbitrate)
	g.arbitration.Update(ctx)

	g.perfCollector.StartPhase(telemetry.PhaseExecute)
	g.behavior.Update(ctx)

	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	g.physics.Update(d.DT32)

	g.perfCollector.StartPhase(telemetry.PhaseAnimation)
	g.animation.Update()

	g.perfCollector.StartPhase(telemetry.PhaseMana)
	g.mana.Update(d.DT)

	g.perfCollector.StartPhase(telemetry.PhaseSpawner)
	g.updateSpawner()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.applyEvents()
	g.checkGameOver()
	g.state.Update(d.DT)
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// applyEvents feeds this tick's events to the rules and the telemetry consumers.
func (g *Game) applyEvents() {
	for _, e := range g.events.Drain() {
		g.state.Apply(e)
		g.collector.Record(e)
		g.lifetimeTracker.Record(e)
	}
}

package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/inspector"
	"github.com/pthm-cable/darkarts/telemetry"
)

// Summon errors.
var (
	ErrGameOver         = errors.New("game is over")
	ErrNoPlayer         = errors.New("no player")
	ErrNotSummonable    = errors.New("unit is not summonable")
	ErrInsufficientMana = errors.New("insufficient mana")
)

// spawnPlayer creates the player unit at the origin.
func (g *Game) spawnPlayer() error {
	e, err := g.SpawnUnit(g.cfg.Game.PlayerUnit, 0, 0)
	if err != nil {
		return fmt.Errorf("spawning player: %w", err)
	}
	g.playerMap.Add(e, &components.Player{})
	if !g.manaMap.Has(e) {
		g.manaMap.Add(e, &components.Mana{})
	}
	g.player = e
	g.hasPlayer = true
	return nil
}

// Summon spends the player's mana to create a unit next to the player.
func (g *Game) Summon(name string) (ecs.Entity, error) {
	if g.state.GameOver {
		return ecs.Entity{}, ErrGameOver
	}
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return ecs.Entity{}, ErrNoPlayer
	}
	profile, ok := g.cfg.Unit(name)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	if !profile.Summonable {
		return ecs.Entity{}, fmt.Errorf("%w: %q", ErrNotSummonable, name)
	}

	mana := g.manaMap.Get(g.player)
	if !mana.Spend(profile.Cost) {
		return ecs.Entity{}, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientMana, name, profile.Cost, mana.Current)
	}

	pos := *g.posMap.Get(g.player)
	offset := float32(g.cfg.Game.SummonOffset)
	x := pos.X + (g.rng.Float32()*2-1)*offset
	y := pos.Y + (g.rng.Float32()*2-1)*offset
	halfW, halfH := g.cfg.Derived.WorldW32/2, g.cfg.Derived.WorldH32/2
	x = max(-halfW, min(halfW, x))
	y = max(-halfH, min(halfH, y))

	e, err := g.SpawnUnit(name, x, y)
	if err != nil {
		// Refund; the profile was validated above so this only happens on bad config.
		g.manaMap.Get(g.player).Add(profile.Cost)
		return ecs.Entity{}, err
	}
	return e, nil
}

// cleanupDead advances corpse timers and removes non-player corpses that have
// lain long enough.
func (g *Game) cleanupDead() {
	corpseTime := float32(g.cfg.Game.CorpseTime)
	dt := g.cfg.Derived.DT32

	type corpse struct {
		entity ecs.Entity
		id     uint32
		team   components.Team
	}
	var expired []corpse

	query := g.unitFilter.Query()
	for query.Next() {
		unit, aff, health, _ := query.Get()
		if !health.IsDead() {
			continue
		}
		unit.DeadTime += dt
		if unit.DeadTime >= corpseTime {
			expired = append(expired, corpse{entity: query.Entity(), id: unit.ID, team: aff.Team})
		}
	}

	// Structural changes only after the query is closed
	for _, c := range expired {
		if g.playerMap.Has(c.entity) {
			continue
		}
		g.removeUnit(c.entity, c.id, c.team)
	}
}

// removeUnit deletes a unit from the world and records its death.
func (g *Game) removeUnit(e ecs.Entity, id uint32, team components.Team) {
	g.lifetimeTracker.UpdateSurvivalTime(id, g.tick, g.cfg.Derived.DT32)
	delete(g.entityByID, id)
	g.world.RemoveEntity(e)
	g.events.Emit(telemetry.NewDeathEvent(g.tick, id, team))
}

// checkGameOver ends the game once the player has died.
func (g *Game) checkGameOver() {
	if g.state.GameOver || !g.hasPlayer {
		return
	}
	if !g.world.Alive(g.player) || g.healthMap.Get(g.player).IsDead() {
		g.state.SetGameOver()
		slog.Info("game over", "tick", g.tick, "score", g.state.Score)
	}
}

// Reset removes every unit, clears score and game over and respawns the player.
// Lifetime records of past units are kept.
func (g *Game) Reset() error {
	var all []ecs.Entity
	query := g.unitFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.world.RemoveEntity(e)
	}
	clear(g.entityByID)
	g.events.Drain()

	g.state.Reset()
	g.spawner = NewSpawner(g.cfg.Spawner)
	g.hasPlayer = false
	if err := g.spawnPlayer(); err != nil {
		return err
	}

	slog.Info("game reset", "tick", g.tick, "removed", len(all))
	return nil
}

// Inspect renders the components of the unit with the given ID.
func (g *Game) Inspect(id uint32) (inspector.Report, bool) {
	e, ok := g.entityByID[id]
	if !ok {
		return inspector.Report{}, false
	}
	return g.inspector.Inspect(e)
}

package game

import (
	"log/slog"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleWorld())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	for _, bm := range bookmarks {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		g.saveSnapshot(&bm)
	}
}

// sampleWorld collects the per-team health distributions and behavior counts.
func (g *Game) sampleWorld() telemetry.Sample {
	s := telemetry.Sample{
		Score:     g.state.Score,
		Fallbacks: g.arbitration.Fallbacks(),
	}

	query := g.unitFilter.Query()
	for query.Next() {
		_, aff, health, current := query.Get()
		s.BehaviorCounts[current.Kind]++
		if health.IsDead() {
			continue
		}
		if aff.Team == components.TeamGood {
			s.GoodHealth = append(s.GoodHealth, float64(health.Value))
		} else {
			s.EvilHealth = append(s.EvilHealth, float64(health.Value))
		}
	}

	if g.hasPlayer && g.world.Alive(g.player) {
		s.PlayerHealth = float64(g.healthMap.Get(g.player).Value)
		if g.manaMap.Has(g.player) {
			s.PlayerMana = g.manaMap.Get(g.player).Current
		}
	}
	return s
}

// saveSnapshot writes a snapshot to the snapshot directory and the run output, when enabled.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.snapshotDir == "" && g.outputManager == nil {
		return
	}
	snapshot := g.createSnapshot(bookmark)

	if g.snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", g.tick)
		}
	}
	if g.outputManager != nil {
		if _, err := g.outputManager.SaveSnapshot(snapshot); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}
}

// Snapshot captures the current battlefield without a bookmark.
func (g *Game) Snapshot() *telemetry.Snapshot {
	return g.createSnapshot(nil)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.rngSeed,
		WorldWidth:  g.cfg.Derived.WorldW32,
		WorldHeight: g.cfg.Derived.WorldH32,
		Tick:        g.tick,
		Score:       g.state.Score,
		GameOver:    g.state.GameOver,
		Bookmark:    bookmark,
	}

	query := g.unitFilter.Query()
	for query.Next() {
		entity := query.Entity()
		unit, aff, health, current := query.Get()
		pos := g.posMap.Get(entity)
		vel := g.velMap.Get(entity)

		var lifetime *telemetry.LifetimeStatsJSON
		if ls := g.lifetimeTracker.Get(unit.ID); ls != nil {
			lifetime = ls.ToJSON()
		}

		snapshot.Units = append(snapshot.Units, telemetry.UnitState{
			ID:       unit.ID,
			Profile:  unit.Profile,
			Team:     aff.Team.String(),
			X:        pos.X,
			Y:        pos.Y,
			VelX:     vel.X,
			VelY:     vel.Y,
			Health:   health.Value,
			Behavior: current.Kind,
			Lifetime: lifetime,
		})
	}

	return snapshot
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = run until the game ends)")
	autoSummon := flag.Bool("auto-summon", true, "Summon allies whenever mana allows")
	inspectUnit := flag.Int("inspect-unit", -1, "Log the components of this unit ID at exit")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	})
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	var pilot *game.Autopilot
	if *autoSummon {
		pilot = game.NewAutopilot(g.SummonableUnits())
	}

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"stats_window", *statsWindow,
		"max_ticks", *maxTicks,
		"auto_summon", *autoSummon,
	)

	for !g.Finished() {
		if pilot != nil {
			pilot.Step(g)
		}
		g.UpdateHeadless()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}

	g.LogWorldState()
	slog.Info("simulation finished",
		"tick", g.Tick(),
		"score", g.Score(),
		"game_over", g.IsGameOver(),
		"fallbacks", g.Fallbacks(),
	)
	for i, v := range g.Veterans(3) {
		slog.Info("veteran", "rank", i+1, "id", v.ID, "stats", v.Stats)
	}

	if *inspectUnit >= 0 {
		if report, ok := g.Inspect(uint32(*inspectUnit)); ok {
			slog.Info("unit", "id", *inspectUnit, "components", report)
		} else {
			slog.Warn("unit not found", "id", *inspectUnit)
		}
	}
}

// Package game wires the ECS world, the systems and the game rules into a
// steppable battle simulation.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/inspector"
	"github.com/pthm-cable/darkarts/systems"
	"github.com/pthm-cable/darkarts/telemetry"
)

// Options configures game creation.
type Options struct {
	Seed           int64
	Config         *config.Config // nil uses config.Cfg()
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	SnapshotDir    string  // save a snapshot on every bookmark when set
	OutputDir      string  // CSV output directory, empty disables
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	// Every unit carries these nine components
	unitMapper *ecs.Map9[
		components.Position,
		components.Velocity,
		components.Movement,
		components.Affiliation,
		components.Health,
		components.Unit,
		components.SupportedBehaviors,
		components.CurrentBehavior,
		components.Animation,
	]
	unitFilter *ecs.Filter4[
		components.Unit,
		components.Affiliation,
		components.Health,
		components.CurrentBehavior,
	]

	// Optional components, added by profile
	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	healthMap *ecs.Map[components.Health]
	unitMap   *ecs.Map[components.Unit]
	wanderMap *ecs.Map[components.WanderState]
	attackMap *ecs.Map[components.AttackState]
	playerMap *ecs.Map[components.Player]
	manaMap   *ecs.Map[components.Mana]
	giverMap  *ecs.Map[components.ManaGiver]

	// Systems
	targets     *systems.Targets
	arbitration *systems.ArbitrationSystem
	behavior    *systems.BehaviorSystem
	physics     *systems.PhysicsSystem
	animation   *systems.AnimationSystem
	mana        *systems.ManaSystem
	ranges      systems.Ranges

	// Rules
	spawner *Spawner
	state   State
	events  telemetry.EventBuffer

	// Unit bookkeeping
	tick       int32
	nextID     uint32
	player     ecs.Entity
	hasPlayer  bool
	entityByID map[uint32]ecs.Entity

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)

	inspector *inspector.Inspector
}

// NewGameWithOptions creates a game with the player spawned at the origin.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		unitMapper: ecs.NewMap9[
			components.Position,
			components.Velocity,
			components.Movement,
			components.Affiliation,
			components.Health,
			components.Unit,
			components.SupportedBehaviors,
			components.CurrentBehavior,
			components.Animation,
		](world),
		unitFilter: ecs.NewFilter4[
			components.Unit,
			components.Affiliation,
			components.Health,
			components.CurrentBehavior,
		](world),
		posMap:        ecs.NewMap[components.Position](world),
		velMap:        ecs.NewMap[components.Velocity](world),
		healthMap:     ecs.NewMap[components.Health](world),
		unitMap:       ecs.NewMap[components.Unit](world),
		wanderMap:     ecs.NewMap[components.WanderState](world),
		attackMap:     ecs.NewMap[components.AttackState](world),
		playerMap:     ecs.NewMap[components.Player](world),
		manaMap:       ecs.NewMap[components.Mana](world),
		giverMap:      ecs.NewMap[components.ManaGiver](world),
		entityByID:    make(map[uint32]ecs.Entity),
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,
		statsCallback: opts.StatsCallback,
	}

	d := cfg.Derived
	g.targets = systems.NewTargets(world, d.WorldW32, d.WorldH32, float32(cfg.Behavior.GridCellSize))
	g.arbitration = systems.NewArbitrationSystem(world)
	g.behavior = systems.NewBehaviorSystem(world)
	g.physics = systems.NewPhysicsSystem(world, systems.Bounds{Width: d.WorldW32, Height: d.WorldH32})
	g.animation = systems.NewAnimationSystem(world)
	g.mana = systems.NewManaSystem(world)
	g.ranges = systems.RangesFromConfig(cfg)

	g.spawner = NewSpawner(cfg.Spawner)
	g.state = NewState(cfg.Game)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, d.DT32)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	g.lifetimeTracker = telemetry.NewLifetimeTracker()
	g.inspector = inspector.NewInspector(world)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if err := g.spawnPlayer(); err != nil {
		om.Close()
		return nil, err
	}

	return g, nil
}

// UpdateHeadless runs a single simulation step.
func (g *Game) UpdateHeadless() {
	g.simulationStep()
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int32 {
	return g.tick
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.state.Score
}

// IsGameOver reports whether the player has died.
func (g *Game) IsGameOver() bool {
	return g.state.GameOver
}

// Finished reports whether the end screen delay after game over has elapsed.
func (g *Game) Finished() bool {
	return g.state.EndScreenReady()
}

// World exposes the ECS world.
func (g *Game) World() *ecs.World {
	return g.world
}

// Player returns the player entity.
func (g *Game) Player() (ecs.Entity, bool) {
	return g.player, g.hasPlayer
}

// Fallbacks returns how many arbitrations found no desiring behavior.
func (g *Game) Fallbacks() int {
	return g.arbitration.Fallbacks()
}

// Veterans returns the top n units by kills, fallen units included.
func (g *Game) Veterans(n int) []telemetry.Veteran {
	return g.lifetimeTracker.Veterans(n)
}

// Unload writes end-of-run output and closes files.
func (g *Game) Unload() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteVeterans(g.lifetimeTracker.Veterans(-1)); err != nil {
		slog.Error("failed to write veterans", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}

package telemetry

import "github.com/pthm-cable/darkarts/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window, indexed by team
	spawns          [2]int
	deaths          [2]int
	hits            [2]int
	kills           [2]int
	damage          [2]float64
	behaviorChanges int
	scoreEvents     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	team := teamIndex(e.Team)
	switch e.Type {
	case EventBehaviorChange:
		c.behaviorChanges++
	case EventHit:
		c.hits[team]++
		c.damage[team] += float64(e.Amount)
	case EventKill:
		c.kills[team]++
	case EventScore:
		c.scoreEvents++
	case EventSpawn:
		c.spawns[team]++
	case EventDeath:
		c.deaths[team]++
	}
}

func teamIndex(t components.Team) int {
	if t == components.TeamGood {
		return 1
	}
	return 0
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample holds world state sampled by the caller at flush time.
type Sample struct {
	Score          int
	EvilHealth     []float64 // health of living Evil units, player included
	GoodHealth     []float64 // health of living Good units
	BehaviorCounts [components.BehaviorKindCount]int
	PlayerHealth   float64
	PlayerMana     int
	Fallbacks      int // cumulative arbitration fallbacks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Sample) WindowStats {
	evilMean, evilP10, evilP50, evilP90 := ComputeHealthStats(snap.EvilHealth)
	goodMean, goodP10, goodP50, goodP90 := ComputeHealthStats(snap.GoodHealth)

	var evilHitRate float64
	if c.hits[0] > 0 {
		evilHitRate = float64(c.kills[0]) / float64(c.hits[0])
	}

	bc := snap.BehaviorCounts
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Score:     snap.Score,
		EvilCount: len(snap.EvilHealth),
		GoodCount: len(snap.GoodHealth),

		EvilSpawns: c.spawns[0],
		GoodSpawns: c.spawns[1],
		EvilDeaths: c.deaths[0],
		GoodDeaths: c.deaths[1],

		EvilHits:       c.hits[0],
		GoodHits:       c.hits[1],
		EvilKills:      c.kills[0],
		GoodKills:      c.kills[1],
		EvilDamage:     c.damage[0],
		GoodDamage:     c.damage[1],
		EvilKillPerHit: evilHitRate,
		ScoreEvents:    c.scoreEvents,

		BehaviorChanges: c.behaviorChanges,
		Fallbacks:       snap.Fallbacks,

		IdleCount:         bc[components.BehaviorIdle],
		MoveToOriginCount: bc[components.BehaviorMoveToOrigin],
		WanderCount:       bc[components.BehaviorWander],
		ChaseCount:        bc[components.BehaviorChase],
		FleeCount:         bc[components.BehaviorFlee],
		AttackCount:       bc[components.BehaviorAttack],
		DeadCount:         bc[components.BehaviorDead],

		EvilHealthMean: evilMean,
		EvilHealthP10:  evilP10,
		EvilHealthP50:  evilP50,
		EvilHealthP90:  evilP90,
		GoodHealthMean: goodMean,
		GoodHealthP10:  goodP10,
		GoodHealthP50:  goodP50,
		GoodHealthP90:  goodP90,

		PlayerHealth: snap.PlayerHealth,
		PlayerMana:   snap.PlayerMana,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = [2]int{}
	c.deaths = [2]int{}
	c.hits = [2]int{}
	c.kills = [2]int{}
	c.damage = [2]float64{}
	c.behaviorChanges = 0
	c.scoreEvents = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/config"
)

// Spawner releases enemies from the world edges on a repeating timer.
type Spawner struct {
	Enabled bool
	Unit    string
	Offset  float32 // max inward distance from the edge
	Timer   components.Timer
}

// NewSpawner creates a spawner whose first enemy arrives after one interval.
func NewSpawner(cfg config.SpawnerConfig) *Spawner {
	return &Spawner{
		Enabled: cfg.Enabled,
		Unit:    cfg.Unit,
		Offset:  float32(cfg.Offset),
		Timer:   components.NewTimer(config.Seconds(cfg.Interval)),
	}
}

// Due advances the timer and reports whether a spawn is due. The timer re-arms itself.
func (s *Spawner) Due(dt time.Duration) bool {
	if !s.Enabled {
		return false
	}
	if !s.Timer.Tick(dt) {
		return false
	}
	s.Timer.Reset(s.Timer.Duration)
	return true
}

// EdgePoint picks a point on a random edge of a width x height world centred on
// the origin, moved inward by up to offset.
func EdgePoint(rng components.RNG, width, height, offset float32) (x, y float32) {
	halfW, halfH := width/2, height/2
	inward := min(rng.Float32()*offset, min(halfW, halfH))
	along := rng.Float32()*2 - 1

	switch rng.Intn(4) {
	case 0: // top
		return along * halfW, halfH - inward
	case 1: // bottom
		return along * halfW, -halfH + inward
	case 2: // left
		return -halfW + inward, along * halfH
	default: // right
		return halfW - inward, along * halfH
	}
}

// updateSpawner spawns an enemy when the spawner timer expires.
func (g *Game) updateSpawner() {
	if g.state.GameOver || !g.spawner.Due(g.cfg.Derived.DT) {
		return
	}
	d := g.cfg.Derived
	x, y := EdgePoint(g.rng, d.WorldW32, d.WorldH32, g.spawner.Offset)
	if _, err := g.SpawnUnit(g.spawner.Unit, x, y); err != nil {
		slog.Error("spawner failed", "unit", g.spawner.Unit, "error", err)
		g.spawner.Enabled = false
	}
}

package telemetry

import (
	"sort"

	"github.com/pthm-cable/darkarts/components"
)

// LifetimeStats tracks per-unit statistics over its lifetime.
type LifetimeStats struct {
	Profile         string
	Team            components.Team
	SpawnTick       int32
	SurvivalTimeSec float32

	Hits            int
	Kills           int
	DamageDealt     float32
	DamageTaken     float32
	BehaviorChanges int
}

// LifetimeTracker manages per-unit lifetime statistics, keyed by unit ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a newly spawned unit.
func (lt *LifetimeTracker) Register(unitID uint32, spawnTick int32, profile string, team components.Team) {
	lt.stats[unitID] = &LifetimeStats{
		Profile:   profile,
		Team:      team,
		SpawnTick: spawnTick,
	}
}

// Get returns the lifetime stats for a unit, or nil if not found.
func (lt *LifetimeTracker) Get(unitID uint32) *LifetimeStats {
	return lt.stats[unitID]
}

// Remove removes a unit's stats and returns them.
func (lt *LifetimeTracker) Remove(unitID uint32) *LifetimeStats {
	stats := lt.stats[unitID]
	delete(lt.stats, unitID)
	return stats
}

// Record folds a gameplay event into the stats of the units it names.
// Events for unknown units are ignored.
func (lt *LifetimeTracker) Record(e Event) {
	switch e.Type {
	case EventHit:
		if s := lt.stats[e.EntityID]; s != nil {
			s.Hits++
			s.DamageDealt += e.Amount
		}
		if s := lt.stats[e.TargetID]; s != nil {
			s.DamageTaken += e.Amount
		}
	case EventKill:
		if s := lt.stats[e.EntityID]; s != nil {
			s.Kills++
		}
	case EventBehaviorChange:
		if s := lt.stats[e.EntityID]; s != nil {
			s.BehaviorChanges++
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifetimeTracker) UpdateSurvivalTime(unitID uint32, currentTick int32, dt float32) {
	if s := lt.stats[unitID]; s != nil {
		s.SurvivalTimeSec = float32(currentTick-s.SpawnTick) * dt
	}
}

// All returns all tracked stats.
func (lt *LifetimeTracker) All() map[uint32]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked units.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Veteran pairs a unit ID with its lifetime stats.
type Veteran struct {
	ID    uint32
	Stats *LifetimeStats
}

// Veterans returns up to n tracked units ordered by kills, then damage dealt,
// then ID.
func (lt *LifetimeTracker) Veterans(n int) []Veteran {
	out := make([]Veteran, 0, len(lt.stats))
	for id, s := range lt.stats {
		out = append(out, Veteran{ID: id, Stats: s})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Stats, out[j].Stats
		if a.Kills != b.Kills {
			return a.Kills > b.Kills
		}
		if a.DamageDealt != b.DamageDealt {
			return a.DamageDealt > b.DamageDealt
		}
		return out[i].ID < out[j].ID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

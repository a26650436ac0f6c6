package game

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/darkarts/components"
)

// profileCount tallies living and dead units of one profile.
type profileCount struct {
	alive, dead int
	health      float32
}

// LogWorldState logs unit counts per profile and per active behavior.
func (g *Game) LogWorldState() {
	profiles := make(map[string]*profileCount)
	var behaviors [components.BehaviorKindCount]int

	query := g.unitFilter.Query()
	for query.Next() {
		unit, _, health, current := query.Get()
		pc := profiles[unit.Profile]
		if pc == nil {
			pc = &profileCount{}
			profiles[unit.Profile] = pc
		}
		if health.IsDead() {
			pc.dead++
		} else {
			pc.alive++
			pc.health += health.Value
		}
		behaviors[current.Kind]++
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	profileAttrs := make([]any, 0, len(names))
	for _, name := range names {
		pc := profiles[name]
		var meanHealth float32
		if pc.alive > 0 {
			meanHealth = pc.health / float32(pc.alive)
		}
		profileAttrs = append(profileAttrs, slog.Group(name,
			"alive", pc.alive,
			"dead", pc.dead,
			"mean_health", meanHealth,
		))
	}

	behaviorAttrs := make([]any, 0, len(behaviors))
	for kind, n := range behaviors {
		if n > 0 {
			behaviorAttrs = append(behaviorAttrs, slog.Int(components.BehaviorKind(kind).String(), n))
		}
	}

	slog.Info("world",
		"tick", g.tick,
		"score", g.state.Score,
		"game_over", g.state.GameOver,
		slog.Group("profiles", profileAttrs...),
		slog.Group("behaviors", behaviorAttrs...),
	)
}

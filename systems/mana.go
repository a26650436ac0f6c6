package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// ManaSystem lets mana givers top up the player's mana on a repeating timer.
type ManaSystem struct {
	giverFilter  ecs.Filter2[components.Health, components.ManaGiver]
	playerFilter ecs.Filter2[components.Player, components.Mana]
}

// NewManaSystem creates a new mana system.
func NewManaSystem(w *ecs.World) *ManaSystem {
	return &ManaSystem{
		giverFilter:  *ecs.NewFilter2[components.Health, components.ManaGiver](w),
		playerFilter: *ecs.NewFilter2[components.Player, components.Mana](w),
	}
}

// Update ticks every living giver and returns the total mana granted.
func (s *ManaSystem) Update(dt time.Duration) int {
	var granted int
	query := s.giverFilter.Query()
	for query.Next() {
		health, giver := query.Get()
		if health.IsDead() {
			continue
		}
		if giver.Timer.Tick(dt) {
			granted += giver.Amount
			giver.Timer.Reset(giver.Timer.Duration)
		}
	}
	if granted == 0 {
		return 0
	}

	players := s.playerFilter.Query()
	for players.Next() {
		_, mana := players.Get()
		mana.Add(granted)
	}
	return granted
}

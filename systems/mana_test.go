package systems

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// manaWorld holds a player with mana and two givers on a 300 ms timer.
type manaWorld struct {
	*testWorld
	mana   *ecs.Map[components.Mana]
	givers []ecs.Entity
	player ecs.Entity
}

func newManaWorld(initial, maxMana int) *manaWorld {
	tw := newTestWorld()
	mw := &manaWorld{testWorld: tw, mana: ecs.NewMap[components.Mana](tw.world)}

	mw.player = tw.spawn(components.TeamEvil, 0, 0, components.BehaviorIdle)
	ecs.NewMap[components.Player](tw.world).Add(mw.player, &components.Player{})
	mw.mana.Add(mw.player, &components.Mana{Current: initial, Max: maxMana})

	giverMap := ecs.NewMap[components.ManaGiver](tw.world)
	for i := range 2 {
		g := tw.spawn(components.TeamEvil, float32(10*(i+1)), 0, components.BehaviorIdle)
		giverMap.Add(g, &components.ManaGiver{Amount: 5, Timer: components.NewTimer(300 * time.Millisecond)})
		mw.givers = append(mw.givers, g)
	}
	return mw
}

func TestManaGivers(t *testing.T) {
	mw := newManaWorld(0, 100)
	sys := NewManaSystem(mw.world)

	var granted []int
	for range 7 {
		granted = append(granted, sys.Update(testDT))
	}

	want := []int{0, 0, 10, 0, 0, 10, 0}
	for i := range want {
		if granted[i] != want[i] {
			t.Fatalf("granted per tick = %v, want %v", granted, want)
		}
	}
	if got := mw.mana.Get(mw.player).Current; got != 20 {
		t.Errorf("player mana = %d, want 20", got)
	}
}

func TestManaClampedToMax(t *testing.T) {
	mw := newManaWorld(95, 100)
	sys := NewManaSystem(mw.world)

	for range 3 {
		sys.Update(testDT)
	}
	if got := mw.mana.Get(mw.player).Current; got != 100 {
		t.Errorf("player mana = %d, want 100", got)
	}
}

func TestDeadGiversStopGiving(t *testing.T) {
	mw := newManaWorld(0, 100)
	mw.health.Get(mw.givers[0]).Value = 0
	sys := NewManaSystem(mw.world)

	for range 3 {
		sys.Update(testDT)
	}
	if got := mw.mana.Get(mw.player).Current; got != 5 {
		t.Errorf("player mana = %d, want 5 from the living giver", got)
	}
}

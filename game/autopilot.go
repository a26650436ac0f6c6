package game

import (
	"errors"
	"log/slog"
)

// Autopilot stands in for the player in headless runs: it summons the listed
// profiles in round-robin order whenever the player can afford the next one.
type Autopilot struct {
	order []string
	next  int
}

// NewAutopilot creates an autopilot over the given summon order.
func NewAutopilot(order []string) *Autopilot {
	return &Autopilot{order: order}
}

// SummonableUnits lists the summonable profiles in config order.
func (g *Game) SummonableUnits() []string {
	var names []string
	for _, u := range g.cfg.Units {
		if u.Summonable {
			names = append(names, u.Name)
		}
	}
	return names
}

// Step tries one summon. It returns true when a unit was created.
func (a *Autopilot) Step(g *Game) bool {
	if len(a.order) == 0 || g.IsGameOver() {
		return false
	}
	name := a.order[a.next]
	if _, err := g.Summon(name); err != nil {
		if !errors.Is(err, ErrInsufficientMana) {
			slog.Warn("autopilot summon failed", "unit", name, "error", err)
			a.next = (a.next + 1) % len(a.order)
		}
		return false
	}
	a.next = (a.next + 1) % len(a.order)
	return true
}

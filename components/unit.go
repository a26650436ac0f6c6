package components

import "fmt"

// Team is a unit's affiliation. Units on the same team never target each other.
type Team uint8

const (
	TeamEvil Team = iota // the player's side
	TeamGood             // the invading side
)

// String returns the config name of the team.
func (t Team) String() string {
	switch t {
	case TeamEvil:
		return "evil"
	case TeamGood:
		return "good"
	}
	return "unknown"
}

// ParseTeam converts a config name into a Team.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "evil":
		return TeamEvil, nil
	case "good":
		return TeamGood, nil
	}
	return 0, fmt.Errorf("unknown team %q", s)
}

// Affiliation attaches a team to an entity.
type Affiliation struct {
	Team Team
}

// Health tracks a unit's hit points. Zero or below means dead.
type Health struct {
	Value float32 `inspect:"bar,max_field:Max"`
	Max   float32 `inspect:"label,fmt:%.0f"`
	Hit   bool    `inspect:"skip"` // damaged since the animation system last looked
}

// IsDead reports whether the unit has no health left.
func (h *Health) IsDead() bool {
	return h.Value <= 0
}

// Damage subtracts up to amount from the health and returns what was actually removed.
// Health never goes below zero.
func (h *Health) Damage(amount float32) float32 {
	if amount <= 0 || h.Value <= 0 {
		return 0
	}
	if amount > h.Value {
		amount = h.Value
	}
	h.Value -= amount
	h.Hit = true
	return amount
}

// Unit holds identity and bookkeeping for a spawned unit.
type Unit struct {
	ID       uint32  `inspect:"label"`
	Profile  string  `inspect:"label"` // unit profile name from config
	DeadTime float32 `inspect:"label,fmt:%.1fs"` // seconds spent dead (for corpse cleanup)
}

// Player tags the player-controlled unit.
type Player struct{}

// Mana is the player's summoning resource.
type Mana struct {
	Current int `inspect:"bar,max_field:Max"`
	Max     int `inspect:"skip"`
}

// Add increases mana, clamped to Max.
func (m *Mana) Add(amount int) {
	m.Current = min(m.Current+amount, m.Max)
}

// Spend removes cost if enough mana is available.
func (m *Mana) Spend(cost int) bool {
	if m.Current < cost {
		return false
	}
	m.Current -= cost
	return true
}

// ManaGiver periodically grants mana to the player.
type ManaGiver struct {
	Amount int
	Timer  Timer // repeating; re-armed on every expiry
}

package main

import (
	"github.com/pthm-cable/darkarts/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of balance parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Enemy pressure
			{Name: "spawn_interval", Path: "spawner.interval", Min: 1.0, Max: 8.0, Default: 4.0},
			{Name: "enemy_health", Path: "units[spawner.unit].health", Min: 20, Max: 150, Default: 50},
			{Name: "enemy_speed", Path: "units[spawner.unit].speed", Min: 40, Max: 140, Default: 70},
			// Shared melee tuning
			{Name: "attack_cooldown", Path: "behavior.attack.cooldown", Min: 0.5, Max: 2.5, Default: 1.0},
			{Name: "attack_base_damage", Path: "behavior.attack.base_damage", Min: 4, Max: 25, Default: 10},
			// Economy
			{Name: "player_mana", Path: "units[game.player_unit].mana.initial", Min: 0, Max: 100, Default: 100},
			{Name: "mana_amount", Path: "units[*].mana_giver.amount", Min: 1, Max: 15, Default: 5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.Spawner.Interval = clamped[i]
	i++
	if enemy, ok := cfg.Unit(cfg.Spawner.Unit); ok {
		enemy.Health = clamped[i]
		enemy.Speed = clamped[i+1]
	}
	i += 2

	cfg.Behavior.Attack.Cooldown = clamped[i]
	i++
	cfg.Behavior.Attack.BaseDamage = clamped[i]
	i++

	if player, ok := cfg.Unit(cfg.Game.PlayerUnit); ok && player.Mana != nil {
		player.Mana.Initial = min(int(clamped[i]), player.Mana.Max)
	}
	i++
	for u := range cfg.Units {
		if g := cfg.Units[u].ManaGiver; g != nil {
			g.Amount = int(clamped[i])
		}
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
// Missing profiles report the parameter default.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := pv.DefaultVector()
	v[0] = cfg.Spawner.Interval
	if enemy, ok := cfg.Unit(cfg.Spawner.Unit); ok {
		v[1] = enemy.Health
		v[2] = enemy.Speed
	}
	v[3] = cfg.Behavior.Attack.Cooldown
	v[4] = cfg.Behavior.Attack.BaseDamage
	if player, ok := cfg.Unit(cfg.Game.PlayerUnit); ok && player.Mana != nil {
		v[5] = float64(player.Mana.Initial)
	}
	for _, u := range cfg.Units {
		if u.ManaGiver != nil {
			v[6] = float64(u.ManaGiver.Amount)
			break
		}
	}
	return v
}

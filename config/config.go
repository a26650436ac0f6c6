// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Units     []UnitConfig    `yaml:"units"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Game      GameConfig      `yaml:"game"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the world extents. The world is centred on the origin.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// BehaviorConfig holds behavior distance thresholds and default tuning.
// Range fractions are multiplied by the world extents at load time.
type BehaviorConfig struct {
	OriginZoneFraction float64      `yaml:"origin_zone_fraction"` // MoveToOrigin wants control beyond height * this
	ChaseRangeFraction float64      `yaml:"chase_range_fraction"` // Chase range = width * this
	FleeRangeFraction  float64      `yaml:"flee_range_fraction"`  // Flee range = width * this
	AttackRange        float64      `yaml:"attack_range"`         // absolute world units
	AttackMidRange     float64      `yaml:"attack_mid_range"`     // approach beyond this
	AttackMinRange     float64      `yaml:"attack_min_range"`     // stand still within this
	GridCellSize       float64      `yaml:"grid_cell_size"`
	Wander             WanderConfig `yaml:"wander"`
	Attack             AttackConfig `yaml:"attack"`
}

// WanderConfig holds wander oscillator timings in seconds.
type WanderConfig struct {
	WaitTime   float64 `yaml:"wait_time"`
	WanderTime float64 `yaml:"wander_time"`
	Jitter     float64 `yaml:"jitter"`
}

// AttackConfig holds melee attack tuning. Durations are in seconds.
type AttackConfig struct {
	Cooldown       float64 `yaml:"cooldown"`
	CooldownJitter float64 `yaml:"cooldown_jitter"`
	BaseDamage     float64 `yaml:"base_damage"`
	DamageJitter   float64 `yaml:"damage_jitter"`
}

// BehaviorEntryConfig is one supported behavior with its priority.
type BehaviorEntryConfig struct {
	Kind     string `yaml:"kind"`
	Priority int    `yaml:"priority"`
}

// ManaConfig describes a unit's mana pool.
type ManaConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
}

// ManaGiverConfig describes a unit that periodically grants mana to the player.
type ManaGiverConfig struct {
	Interval float64 `yaml:"interval"` // seconds
	Amount   int     `yaml:"amount"`
}

// UnitConfig defines a unit profile.
type UnitConfig struct {
	Name       string                `yaml:"name"`
	Team       string                `yaml:"team"` // "good" or "evil"
	Health     float64               `yaml:"health"`
	Speed      float64               `yaml:"speed"`
	Cost       int                   `yaml:"cost"`
	Summonable bool                  `yaml:"summonable"`
	Initial    string                `yaml:"initial"` // initial behavior kind
	Behaviors  []BehaviorEntryConfig `yaml:"behaviors"`
	Wander     *WanderConfig         `yaml:"wander,omitempty"` // nil = behavior defaults
	Attack     *AttackConfig         `yaml:"attack,omitempty"` // nil = behavior defaults
	Mana       *ManaConfig           `yaml:"mana,omitempty"`
	ManaGiver  *ManaGiverConfig      `yaml:"mana_giver,omitempty"`
}

// SpawnerConfig holds enemy wave spawning parameters.
type SpawnerConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Unit     string  `yaml:"unit"`
	Interval float64 `yaml:"interval"` // seconds between spawns
	Offset   float64 `yaml:"offset"`   // max inward offset from the world edge
}

// GameConfig holds game-state rules.
type GameConfig struct {
	PlayerUnit     string  `yaml:"player_unit"`
	ScorePerKill   int     `yaml:"score_per_kill"`
	EndScreenDelay float64 `yaml:"end_screen_delay"` // seconds after game over
	CorpseTime     float64 `yaml:"corpse_time"`      // seconds a dead unit stays before removal
	SummonOffset   float64 `yaml:"summon_offset"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	PerfWindow  int     `yaml:"perf_window"`  // ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32        // Physics.DT as float32
	DT         time.Duration  // Physics.DT as a duration
	WorldW32   float32        // World.Width as float32
	WorldH32   float32        // World.Height as float32
	OriginZone float32        // MoveToOrigin threshold
	ChaseRange float32        // absolute chase range
	FleeRange  float32        // absolute flee range
	UnitIndex  map[string]int // name -> index into Units
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge unmarshals YAML data over cfg, then validates and recomputes derived values.
// Only fields present in data are overwritten; a units list replaces the default list.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return cfg.finish()
}

func (c *Config) finish() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.computeDerived()
	return nil
}

// validate checks values that would make the simulation ill-defined.
func (c *Config) validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world extents must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT))
	}
	b := c.Behavior
	if b.AttackMinRange < 0 || b.AttackMinRange > b.AttackMidRange || b.AttackMidRange > b.AttackRange {
		errs = append(errs, fmt.Errorf("attack ranges must satisfy 0 <= min <= mid <= range, got %v/%v/%v",
			b.AttackMinRange, b.AttackMidRange, b.AttackRange))
	}
	if b.GridCellSize <= 0 {
		errs = append(errs, fmt.Errorf("behavior.grid_cell_size must be positive, got %v", b.GridCellSize))
	}

	seen := make(map[string]bool, len(c.Units))
	for _, u := range c.Units {
		if u.Name == "" {
			errs = append(errs, errors.New("unit with empty name"))
			continue
		}
		if seen[u.Name] {
			errs = append(errs, fmt.Errorf("duplicate unit %q", u.Name))
		}
		seen[u.Name] = true
		if u.Team != "good" && u.Team != "evil" {
			errs = append(errs, fmt.Errorf("unit %q: team must be good or evil, got %q", u.Name, u.Team))
		}
		if len(u.Behaviors) == 0 {
			errs = append(errs, fmt.Errorf("unit %q: no supported behaviors", u.Name))
		}
		initialFound := u.Initial == ""
		for _, e := range u.Behaviors {
			if e.Priority < 1 || e.Priority > 255 {
				errs = append(errs, fmt.Errorf("unit %q: priority of %s out of range: %d", u.Name, e.Kind, e.Priority))
			}
			initialFound = initialFound || e.Kind == u.Initial
		}
		if !initialFound {
			errs = append(errs, fmt.Errorf("unit %q: initial behavior %q is not in its behaviors", u.Name, u.Initial))
		}
	}
	if c.Game.PlayerUnit != "" && !seen[c.Game.PlayerUnit] {
		errs = append(errs, fmt.Errorf("game.player_unit %q is not a unit", c.Game.PlayerUnit))
	}
	if c.Spawner.Enabled && !seen[c.Spawner.Unit] {
		errs = append(errs, fmt.Errorf("spawner.unit %q is not a unit", c.Spawner.Unit))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.DT = Seconds(c.Physics.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.OriginZone = float32(c.World.Height * c.Behavior.OriginZoneFraction)
	c.Derived.ChaseRange = float32(c.World.Width * c.Behavior.ChaseRangeFraction)
	c.Derived.FleeRange = float32(c.World.Width * c.Behavior.FleeRangeFraction)

	c.Derived.UnitIndex = make(map[string]int, len(c.Units))
	for i, u := range c.Units {
		c.Derived.UnitIndex[u.Name] = i
	}
}

// Unit returns the profile with the given name.
func (c *Config) Unit(name string) (*UnitConfig, bool) {
	idx, ok := c.Derived.UnitIndex[name]
	if !ok {
		return nil, false
	}
	return &c.Units[idx], true
}

// Seconds converts a seconds value to a duration, clamping negatives to zero.
func Seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

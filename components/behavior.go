package components

import (
	"errors"
	"fmt"
	"time"
)

// BehaviorKind identifies a behavior variant.
type BehaviorKind uint8

const (
	BehaviorIdle         BehaviorKind = iota // do nothing
	BehaviorMoveToOrigin                     // walk toward the world origin
	BehaviorWander                           // alternate between waiting and slow random walks
	BehaviorChase                            // pursue the nearest enemy in chase range
	BehaviorFlee                             // move away from nearby threats
	BehaviorAttack                           // melee the nearest enemy in attack range
	BehaviorDead                             // terminal, no movement
)

// BehaviorKindCount is the number of behavior kinds.
const BehaviorKindCount = int(BehaviorDead) + 1

var behaviorKindNames = [BehaviorKindCount]string{
	"idle", "move_to_origin", "wander", "chase", "flee", "attack", "dead",
}

// String returns the config name of the kind.
func (k BehaviorKind) String() string {
	if int(k) < len(behaviorKindNames) {
		return behaviorKindNames[k]
	}
	return "unknown"
}

// ParseBehaviorKind converts a config name into a BehaviorKind.
func ParseBehaviorKind(s string) (BehaviorKind, error) {
	for i, name := range behaviorKindNames {
		if name == s {
			return BehaviorKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k BehaviorKind) MarshalText() ([]byte, error) {
	if int(k) >= len(behaviorKindNames) {
		return nil, fmt.Errorf("invalid behavior kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BehaviorKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBehaviorKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// WanderParams tunes the wander oscillator.
type WanderParams struct {
	WaitDuration   time.Duration
	WanderDuration time.Duration
	Jitter         time.Duration // uniform [0, Jitter) added to each phase
}

// DefaultWanderParams returns 1.5s waits, 3s walks and 0.75s of jitter.
func DefaultWanderParams() WanderParams {
	return WanderParams{
		WaitDuration:   1500 * time.Millisecond,
		WanderDuration: 3 * time.Second,
		Jitter:         750 * time.Millisecond,
	}
}

// AttackParams tunes melee attacks.
type AttackParams struct {
	Cooldown       time.Duration
	CooldownJitter time.Duration
	BaseDamage     float32
	DamageJitter   float32
}

// DefaultAttackParams returns a one-second swing for 10-15 damage.
func DefaultAttackParams() AttackParams {
	return AttackParams{
		Cooldown:       time.Second,
		CooldownJitter: 250 * time.Millisecond,
		BaseDamage:     10,
		DamageJitter:   5,
	}
}

// Behavior is a tagged behavior variant. Only the payload matching Kind is set.
type Behavior struct {
	Kind   BehaviorKind
	Wander *WanderParams
	Attack *AttackParams
}

// IdleBehavior returns the Idle variant.
func IdleBehavior() Behavior { return Behavior{Kind: BehaviorIdle} }

// MoveToOriginBehavior returns the MoveToOrigin variant.
func MoveToOriginBehavior() Behavior { return Behavior{Kind: BehaviorMoveToOrigin} }

// WanderBehavior returns the Wander variant with the given tuning.
func WanderBehavior(p WanderParams) Behavior { return Behavior{Kind: BehaviorWander, Wander: &p} }

// ChaseBehavior returns the Chase variant.
func ChaseBehavior() Behavior { return Behavior{Kind: BehaviorChase} }

// FleeBehavior returns the Flee variant.
func FleeBehavior() Behavior { return Behavior{Kind: BehaviorFlee} }

// AttackBehavior returns the Attack variant with the given tuning.
func AttackBehavior(p AttackParams) Behavior { return Behavior{Kind: BehaviorAttack, Attack: &p} }

// DeadBehavior returns the Dead variant.
func DeadBehavior() Behavior { return Behavior{Kind: BehaviorDead} }

// PrioritizedBehavior pairs a behavior with its arbitration priority. Higher wins.
type PrioritizedBehavior struct {
	Behavior Behavior
	Priority uint8
}

// ErrEmptySupportedBehaviors is returned when a unit is configured without behaviors.
var ErrEmptySupportedBehaviors = errors.New("supported behaviors list is empty")

// SupportedBehaviors is the fixed, ordered set of behaviors a unit may run.
// Order matters: among equal priorities the earlier entry wins.
type SupportedBehaviors struct {
	Entries []PrioritizedBehavior
}

// NewSupportedBehaviors builds a validated behavior list.
func NewSupportedBehaviors(entries ...PrioritizedBehavior) (SupportedBehaviors, error) {
	sb := SupportedBehaviors{Entries: entries}
	return sb, sb.Validate()
}

// Validate rejects empty lists and entries whose payload does not match their kind.
func (sb *SupportedBehaviors) Validate() error {
	if len(sb.Entries) == 0 {
		return ErrEmptySupportedBehaviors
	}
	for _, e := range sb.Entries {
		b := e.Behavior
		if int(b.Kind) >= BehaviorKindCount {
			return fmt.Errorf("invalid behavior kind %d", b.Kind)
		}
		if b.Kind == BehaviorWander && b.Wander == nil {
			return fmt.Errorf("wander behavior without parameters")
		}
		if b.Kind == BehaviorAttack && b.Attack == nil {
			return fmt.Errorf("attack behavior without parameters")
		}
	}
	return nil
}

// Has reports whether kind is supported.
func (sb *SupportedBehaviors) Has(kind BehaviorKind) bool {
	_, ok := sb.Find(kind)
	return ok
}

// Find returns the first entry of the given kind.
func (sb *SupportedBehaviors) Find(kind BehaviorKind) (PrioritizedBehavior, bool) {
	for _, e := range sb.Entries {
		if e.Behavior.Kind == kind {
			return e, true
		}
	}
	return PrioritizedBehavior{}, false
}

// CurrentBehavior is the single active behavior of a unit. Only the arbitrator writes it.
type CurrentBehavior struct {
	Kind      BehaviorKind `inspect:"label"`
	Previous  BehaviorKind `inspect:"skip"` // kind before the latest arbitration
	Activated bool         `inspect:"skip"` // Kind became active on the latest arbitration
}

// Set commits the arbitration result for this tick.
func (c *CurrentBehavior) Set(kind BehaviorKind) {
	c.Previous = c.Kind
	c.Kind = kind
	c.Activated = c.Previous != kind
}

// Is reports whether kind is active.
func (c *CurrentBehavior) Is(kind BehaviorKind) bool {
	return c.Kind == kind
}

// WanderState is a unit's wander oscillator state. It survives across ticks
// and across arbitration results.
type WanderState struct {
	Params      WanderParams `inspect:"skip"`
	IsWandering bool
	WaitTimer   Timer
	WanderTimer Timer
}

// NewWanderState returns a waiting oscillator with an armed wait timer.
func NewWanderState(p WanderParams) WanderState {
	return WanderState{
		Params:      p,
		WaitTimer:   NewTimer(p.WaitDuration),
		WanderTimer: NewTimer(p.WanderDuration),
	}
}

// AttackState holds a unit's attack cooldown and swing pulse.
type AttackState struct {
	Params     AttackParams `inspect:"skip"`
	Cooldown   Timer
	IsSwinging bool // set on a hit; cleared by the animation system
}

// NewAttackState returns a state whose first swing lands after one cooldown.
func NewAttackState(p AttackParams) AttackState {
	return AttackState{
		Params:   p,
		Cooldown: NewTimer(p.Cooldown),
	}
}

// AnimationCategory is the animation signal consumed by renderers.
type AnimationCategory uint8

const (
	AnimationIdle AnimationCategory = iota
	AnimationWalk
	AnimationHit
	AnimationDeath
	AnimationAttack
)

// String returns the display name of the category.
func (a AnimationCategory) String() string {
	switch a {
	case AnimationIdle:
		return "idle"
	case AnimationWalk:
		return "walk"
	case AnimationHit:
		return "hit"
	case AnimationDeath:
		return "death"
	case AnimationAttack:
		return "attack"
	}
	return "unknown"
}

// Animation carries the current animation category of a unit.
type Animation struct {
	Category AnimationCategory
}

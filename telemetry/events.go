// Package telemetry provides battle statistics, performance tracking and CSV output.
package telemetry

import "github.com/pthm-cable/darkarts/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBehaviorChange EventType = iota
	EventHit
	EventKill
	EventScore
	EventSpawn
	EventDeath
)

// Event represents a single simulation event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Team     components.Team

	// Optional fields depending on event type
	TargetID uint32                  // hit/kill/score: the unit that was struck
	Amount   float32                 // hit: damage dealt
	Behavior components.BehaviorKind // behavior change: the newly active kind
}

// NewBehaviorChangeEvent creates an event for an activation transition.
func NewBehaviorChangeEvent(tick int32, unitID uint32, team components.Team, kind components.BehaviorKind) Event {
	return Event{
		Type:     EventBehaviorChange,
		Tick:     tick,
		EntityID: unitID,
		Team:     team,
		Behavior: kind,
	}
}

// NewHitEvent creates an event for a landed attack.
func NewHitEvent(tick int32, attackerID, targetID uint32, team components.Team, damage float32) Event {
	return Event{
		Type:     EventHit,
		Tick:     tick,
		EntityID: attackerID,
		Team:     team,
		TargetID: targetID,
		Amount:   damage,
	}
}

// NewKillEvent creates an event for a killing blow.
func NewKillEvent(tick int32, attackerID, targetID uint32, team components.Team) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: attackerID,
		Team:     team,
		TargetID: targetID,
	}
}

// NewScoreEvent creates a score-increase event for a killing blow on the Good team.
func NewScoreEvent(tick int32, attackerID, targetID uint32) Event {
	return Event{
		Type:     EventScore,
		Tick:     tick,
		EntityID: attackerID,
		Team:     components.TeamEvil,
		TargetID: targetID,
	}
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(tick int32, unitID uint32, team components.Team) Event {
	return Event{
		Type:     EventSpawn,
		Tick:     tick,
		EntityID: unitID,
		Team:     team,
	}
}

// NewDeathEvent creates an event for a unit removed after dying.
func NewDeathEvent(tick int32, unitID uint32, team components.Team) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: unitID,
		Team:     team,
	}
}

// EventBuffer collects events emitted during a tick.
type EventBuffer struct {
	events []Event
}

// Emit appends an event.
func (b *EventBuffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Drain returns the buffered events and empties the buffer.
// The returned slice is only valid until the next Emit.
func (b *EventBuffer) Drain() []Event {
	out := b.events
	b.events = b.events[:0]
	return out
}

// Len returns the number of buffered events.
func (b *EventBuffer) Len() int {
	return len(b.events)
}

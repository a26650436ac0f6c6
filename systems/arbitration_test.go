package systems

import (
	"testing"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/telemetry"
)

func entry(kind components.BehaviorKind, priority uint8) components.PrioritizedBehavior {
	b := components.Behavior{Kind: kind}
	switch kind {
	case components.BehaviorWander:
		p := components.DefaultWanderParams()
		b.Wander = &p
	case components.BehaviorAttack:
		p := components.DefaultAttackParams()
		b.Attack = &p
	}
	return components.PrioritizedBehavior{Behavior: b, Priority: priority}
}

func TestArbitrate(t *testing.T) {
	all := func(components.Behavior) bool { return true }
	only := func(kinds ...components.BehaviorKind) func(components.Behavior) bool {
		return func(b components.Behavior) bool {
			for _, k := range kinds {
				if b.Kind == k {
					return true
				}
			}
			return false
		}
	}

	tests := []struct {
		name    string
		entries []components.PrioritizedBehavior
		wants   func(components.Behavior) bool
		want    components.BehaviorKind
		wantOK  bool
	}{
		{
			name: "dead beats attack",
			entries: []components.PrioritizedBehavior{
				entry(components.BehaviorWander, 5), entry(components.BehaviorAttack, 15), entry(components.BehaviorDead, 20),
			},
			wants:  all,
			want:   components.BehaviorDead,
			wantOK: true,
		},
		{
			name: "highest desiring wins",
			entries: []components.PrioritizedBehavior{
				entry(components.BehaviorWander, 5), entry(components.BehaviorChase, 10), entry(components.BehaviorAttack, 15),
			},
			wants:  only(components.BehaviorWander, components.BehaviorChase),
			want:   components.BehaviorChase,
			wantOK: true,
		},
		{
			name: "tie goes to earliest entry",
			entries: []components.PrioritizedBehavior{
				entry(components.BehaviorIdle, 5), entry(components.BehaviorWander, 5),
			},
			wants:  all,
			want:   components.BehaviorIdle,
			wantOK: true,
		},
		{
			name: "nothing desires",
			entries: []components.PrioritizedBehavior{
				entry(components.BehaviorChase, 10), entry(components.BehaviorAttack, 15),
			},
			wants:  only(),
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := components.SupportedBehaviors{Entries: tt.entries}
			got, ok := Arbitrate(&sb, tt.wants)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("Arbitrate = %s, want %s", got, tt.want)
			}
			if !sb.Has(got) {
				t.Errorf("result %s not in the supported list", got)
			}
		})
	}
}

func warriorEntries() []components.PrioritizedBehavior {
	return []components.PrioritizedBehavior{
		entry(components.BehaviorWander, 5),
		entry(components.BehaviorChase, 10),
		entry(components.BehaviorAttack, 15),
		entry(components.BehaviorDead, 20),
	}
}

func TestArbitrationSystem(t *testing.T) {
	tests := []struct {
		name      string
		enemyAt   *components.Position
		ally      bool
		dead      bool
		want      components.BehaviorKind
		wantEvent bool
	}{
		{"no enemies wanders", nil, false, false, components.BehaviorWander, false},
		{"enemy in chase range", &components.Position{X: 200}, false, false, components.BehaviorChase, true},
		{"enemy in attack range", &components.Position{X: 30}, false, false, components.BehaviorAttack, true},
		{"ally in attack range still wanders", &components.Position{X: 30}, true, false, components.BehaviorWander, false},
		{"dead overrides attack", &components.Position{X: 30}, false, true, components.BehaviorDead, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld()
			unit := tw.spawn(components.TeamEvil, 0, 0, components.BehaviorWander, warriorEntries()...)
			if tt.enemyAt != nil {
				team := components.TeamGood
				if tt.ally {
					team = components.TeamEvil
				}
				tw.spawn(team, tt.enemyAt.X, tt.enemyAt.Y, components.BehaviorIdle)
			}
			if tt.dead {
				tw.health.Get(unit).Value = 0
			}

			sys := NewArbitrationSystem(tw.world)
			sys.Update(tw.ctx())

			current := tw.current.Get(unit)
			if current.Kind != tt.want {
				t.Errorf("kind = %s, want %s", current.Kind, tt.want)
			}
			if current.Activated != tt.wantEvent {
				t.Errorf("Activated = %v, want %v", current.Activated, tt.wantEvent)
			}

			var changes, other int
			for _, e := range tw.events.Drain() {
				if e.Type != telemetry.EventBehaviorChange {
					continue
				}
				if e.Behavior == tt.want {
					changes++
				} else {
					other++
				}
			}
			if tt.wantEvent && changes != 1 {
				t.Errorf("behavior change events = %d, want 1", changes)
			}
			if !tt.wantEvent && changes+other != 0 {
				t.Errorf("behavior change events = %d, want none", changes+other)
			}
		})
	}
}

func TestArbitrationSystemFallback(t *testing.T) {
	tw := newTestWorld()
	unit := tw.spawn(components.TeamEvil, 0, 0, components.BehaviorChase,
		entry(components.BehaviorChase, 10), entry(components.BehaviorAttack, 15))

	sys := NewArbitrationSystem(tw.world)
	sys.Update(tw.ctx())

	current := tw.current.Get(unit)
	if current.Kind != components.BehaviorChase || current.Activated {
		t.Errorf("fallback changed behavior: %+v", current)
	}
	if sys.Fallbacks() != 1 {
		t.Errorf("Fallbacks = %d, want 1", sys.Fallbacks())
	}
}

func TestMoveToOriginDesire(t *testing.T) {
	entries := []components.PrioritizedBehavior{
		entry(components.BehaviorWander, 3),
		entry(components.BehaviorMoveToOrigin, 5),
	}
	tests := []struct {
		name string
		x, y float32
		want components.BehaviorKind
	}{
		{"outside origin zone", 300, 0, components.BehaviorMoveToOrigin},
		{"inside origin zone", 60, 60, components.BehaviorWander},
		{"on the zone edge", 100, 0, components.BehaviorWander},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld()
			unit := tw.spawn(components.TeamGood, tt.x, tt.y, components.BehaviorMoveToOrigin, entries...)
			NewArbitrationSystem(tw.world).Update(tw.ctx())
			if got := tw.current.Get(unit).Kind; got != tt.want {
				t.Errorf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

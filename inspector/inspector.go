// Package inspector renders a unit's components as text for logs and debugging.
package inspector

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// Section is one component of the inspected unit.
type Section struct {
	Name   string
	Fields []Field
}

// Report is the rendered state of one unit.
type Report struct {
	Sections []Section
}

// Inspector looks up the components of a selected unit.
type Inspector struct {
	world *ecs.World

	unitMap      *ecs.Map[components.Unit]
	teamMap      *ecs.Map[components.Affiliation]
	posMap       *ecs.Map[components.Position]
	velMap       *ecs.Map[components.Velocity]
	moveMap      *ecs.Map[components.Movement]
	healthMap    *ecs.Map[components.Health]
	currentMap   *ecs.Map[components.CurrentBehavior]
	supportedMap *ecs.Map[components.SupportedBehaviors]
	wanderMap    *ecs.Map[components.WanderState]
	attackMap    *ecs.Map[components.AttackState]
	manaMap      *ecs.Map[components.Mana]
	animMap      *ecs.Map[components.Animation]
}

// NewInspector creates an inspector over the given world.
func NewInspector(w *ecs.World) *Inspector {
	return &Inspector{
		world:        w,
		unitMap:      ecs.NewMap[components.Unit](w),
		teamMap:      ecs.NewMap[components.Affiliation](w),
		posMap:       ecs.NewMap[components.Position](w),
		velMap:       ecs.NewMap[components.Velocity](w),
		moveMap:      ecs.NewMap[components.Movement](w),
		healthMap:    ecs.NewMap[components.Health](w),
		currentMap:   ecs.NewMap[components.CurrentBehavior](w),
		supportedMap: ecs.NewMap[components.SupportedBehaviors](w),
		wanderMap:    ecs.NewMap[components.WanderState](w),
		attackMap:    ecs.NewMap[components.AttackState](w),
		manaMap:      ecs.NewMap[components.Mana](w),
		animMap:      ecs.NewMap[components.Animation](w),
	}
}

// Inspect builds a report for the entity. ok is false for a removed entity.
func (in *Inspector) Inspect(e ecs.Entity) (Report, bool) {
	if !in.world.Alive(e) {
		return Report{}, false
	}

	var r Report
	add := func(name string, has bool, get func() interface{}) {
		if has {
			r.Sections = append(r.Sections, Section{Name: name, Fields: ExtractFields(get())})
		}
	}

	add("Unit", in.unitMap.Has(e), func() interface{} { return in.unitMap.Get(e) })
	add("Team", in.teamMap.Has(e), func() interface{} { return in.teamMap.Get(e) })
	add("Position", in.posMap.Has(e), func() interface{} { return in.posMap.Get(e) })
	add("Velocity", in.velMap.Has(e), func() interface{} { return in.velMap.Get(e) })
	add("Movement", in.moveMap.Has(e), func() interface{} { return in.moveMap.Get(e) })
	add("Health", in.healthMap.Has(e), func() interface{} { return in.healthMap.Get(e) })
	add("Behavior", in.currentMap.Has(e), func() interface{} { return in.currentMap.Get(e) })
	if in.supportedMap.Has(e) {
		r.Sections = append(r.Sections, supportedSection(in.supportedMap.Get(e)))
	}
	add("Wander", in.wanderMap.Has(e), func() interface{} { return in.wanderMap.Get(e) })
	add("Attack", in.attackMap.Has(e), func() interface{} { return in.attackMap.Get(e) })
	add("Mana", in.manaMap.Has(e), func() interface{} { return in.manaMap.Get(e) })
	add("Animation", in.animMap.Has(e), func() interface{} { return in.animMap.Get(e) })

	return r, true
}

// supportedSection lists behaviors as kind/priority labels in arbitration order.
func supportedSection(sb *components.SupportedBehaviors) Section {
	s := Section{Name: "Supports"}
	for _, entry := range sb.Entries {
		s.Fields = append(s.Fields, Field{
			Name:    entry.Behavior.Kind.String(),
			Value:   entry.Priority,
			Widget:  WidgetLabel,
			Options: map[string]string{},
		})
	}
	return s
}

// String renders the report as indented text.
func (r Report) String() string {
	var b strings.Builder
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "%s\n", s.Name)
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "  %s\n", RenderField(f))
		}
	}
	return b.String()
}

// LogValue implements slog.LogValuer: one group per section.
func (r Report) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r.Sections))
	for _, s := range r.Sections {
		group := make([]any, 0, len(s.Fields))
		for _, f := range s.Fields {
			group = append(group, slog.String(f.Name, FormatValue(f.Value, f.Options["fmt"])))
		}
		attrs = append(attrs, slog.Group(s.Name, group...))
	}
	return slog.GroupValue(attrs...)
}

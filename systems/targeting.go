package systems

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/darkarts/components"
)

// TargetView is the read-only slice of a unit that target queries need.
type TargetView struct {
	Entity ecs.Entity
	ID     uint32
	Pos    components.Position
	Team   components.Team
	Health *components.Health
}

// Alive reports whether the unit still has health.
func (v *TargetView) Alive() bool {
	return v.Health != nil && !v.Health.IsDead()
}

// IsValidTarget reports whether other is an enemy of self that is alive and strictly
// closer than threshold.
func IsValidTarget(self, other *TargetView, threshold float32) bool {
	if self.Team == other.Team {
		return false
	}
	if !other.Alive() {
		return false
	}
	return distanceSq(self.Pos.X, self.Pos.Y, other.Pos.X, other.Pos.Y) < threshold*threshold
}

// Candidate is a valid target together with its distance from the querying unit.
type Candidate struct {
	View *TargetView
	Dist float32
}

// Targets is the per-tick index of every unit that can be targeted.
// It is rebuilt once per tick before arbitration and is read-only afterwards,
// except for health values, which Attack writes through the view pointers.
type Targets struct {
	views   []TargetView
	slots   map[ecs.Entity]int32
	grid    *SpatialGrid
	scratch []int32

	filter ecs.Filter4[components.Position, components.Affiliation, components.Health, components.Unit]
}

// NewTargets creates an empty index for a world of the given size.
func NewTargets(w *ecs.World, width, height, cellSize float32) *Targets {
	return &Targets{
		slots:  make(map[ecs.Entity]int32),
		grid:   NewSpatialGrid(width, height, cellSize),
		filter: *ecs.NewFilter4[components.Position, components.Affiliation, components.Health, components.Unit](w),
	}
}

// Rebuild clears the index and re-adds every unit in the world.
func (t *Targets) Rebuild() {
	t.Reset()
	query := t.filter.Query()
	for query.Next() {
		pos, aff, health, unit := query.Get()
		t.Add(query.Entity(), unit.ID, *pos, aff.Team, health)
	}
}

// Reset empties the index.
func (t *Targets) Reset() {
	t.views = t.views[:0]
	clear(t.slots)
	t.grid.Clear()
}

// Add registers a unit. Dead units are kept so they can still look themselves up.
func (t *Targets) Add(e ecs.Entity, id uint32, pos components.Position, team components.Team, health *components.Health) {
	slot := int32(len(t.views))
	t.views = append(t.views, TargetView{Entity: e, ID: id, Pos: pos, Team: team, Health: health})
	t.slots[e] = slot
	t.grid.Insert(slot, pos.X, pos.Y)
}

// Len returns the number of indexed units.
func (t *Targets) Len() int {
	return len(t.views)
}

// View returns the indexed view of an entity.
func (t *Targets) View(e ecs.Entity) (*TargetView, bool) {
	slot, ok := t.slots[e]
	if !ok {
		return nil, false
	}
	return &t.views[slot], true
}

// AnyWithin reports whether at least one valid target exists within r of self.
func (t *Targets) AnyWithin(self *TargetView, r float32) bool {
	t.scratch = t.grid.QueryRadiusInto(t.scratch[:0], self.Pos.X, self.Pos.Y, r)
	for _, slot := range t.scratch {
		if IsValidTarget(self, &t.views[slot], r) {
			return true
		}
	}
	return false
}

// NearestWithin returns the closest valid target within r of self.
// Ties keep index order.
func (t *Targets) NearestWithin(self *TargetView, r float32) (Candidate, bool) {
	var best Candidate
	found := false
	bestSlot := int32(-1)

	t.scratch = t.grid.QueryRadiusInto(t.scratch[:0], self.Pos.X, self.Pos.Y, r)
	for _, slot := range t.scratch {
		other := &t.views[slot]
		if !IsValidTarget(self, other, r) {
			continue
		}
		d := distance(self.Pos.X, self.Pos.Y, other.Pos.X, other.Pos.Y)
		if !found || d < best.Dist || (d == best.Dist && slot < bestSlot) {
			best = Candidate{View: other, Dist: d}
			bestSlot = slot
			found = true
		}
	}
	return best, found
}

// Within appends every valid target within r of self to dst, sorted by ascending
// distance. Ties keep index order.
func (t *Targets) Within(self *TargetView, r float32, dst []Candidate) []Candidate {
	start := len(dst)
	t.scratch = t.grid.QueryRadiusInto(t.scratch[:0], self.Pos.X, self.Pos.Y, r)
	slices.Sort(t.scratch)
	for _, slot := range t.scratch {
		other := &t.views[slot]
		if !IsValidTarget(self, other, r) {
			continue
		}
		d := distance(self.Pos.X, self.Pos.Y, other.Pos.X, other.Pos.Y)
		dst = append(dst, Candidate{View: other, Dist: d})
	}
	slices.SortStableFunc(dst[start:], func(a, b Candidate) int {
		switch {
		case a.Dist < b.Dist:
			return -1
		case a.Dist > b.Dist:
			return 1
		}
		return 0
	})
	return dst
}

package systems

import (
	"slices"
	"testing"
)

func TestSpatialGridQuery(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	g.Insert(0, 0, 0)
	g.Insert(1, 10, 10)
	g.Insert(2, 90, 90)
	g.Insert(3, -95, 0)

	got := g.QueryRadiusInto(nil, 0, 0, 20)
	slices.Sort(got)
	if !slices.Equal(got, []int32{0, 1}) {
		t.Errorf("query near origin = %v, want [0 1]", got)
	}

	got = g.QueryRadiusInto(nil, 80, 80, 10)
	if !slices.Contains(got, 2) || slices.Contains(got, 0) {
		t.Errorf("query near corner = %v, want 2 without 0", got)
	}
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	g.Insert(7, 500, -500)

	got := g.QueryRadiusInto(nil, 100, -100, 1)
	if !slices.Contains(got, 7) {
		t.Errorf("unit outside the world not found in the edge cell: %v", got)
	}
}

func TestSpatialGridClearAndReuse(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	g.Insert(0, 0, 0)
	g.Clear()

	buf := make([]int32, 0, 4)
	if got := g.QueryRadiusInto(buf, 0, 0, 100); len(got) != 0 {
		t.Errorf("query after clear = %v, want empty", got)
	}
}

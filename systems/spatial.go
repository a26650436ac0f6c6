// Package systems provides ECS systems for the simulation.
package systems

// SpatialGrid provides cell-bucketed neighbor lookups over an origin-centred world.
// Positions outside the world are clamped into the edge cells, so queries stay
// correct for units that wander past the edge.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	halfW    float32
	halfH    float32
	cells    [][]int32 // flat grid of slot lists
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		halfW:    width / 2,
		halfH:    height / 2,
		cells:    cells,
	}
}

// Clear removes all slots from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot to the grid at the given position.
func (g *SpatialGrid) Insert(slot int32, x, y float32) {
	idx := g.row(y)*g.cols + g.col(x)
	g.cells[idx] = append(g.cells[idx], slot)
}

// QueryRadiusInto appends every slot whose cell overlaps the square around (x, y)
// with half-size radius. Results are candidates; callers apply the exact distance test.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []int32, x, y, radius float32) []int32 {
	minCol, maxCol := g.col(x-radius), g.col(x+radius)
	minRow, maxRow := g.row(y-radius), g.row(y+radius)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

// col returns the clamped column for a world x coordinate.
func (g *SpatialGrid) col(x float32) int {
	c := int((x + g.halfW) / g.cellSize)
	return min(max(c, 0), g.cols-1)
}

// row returns the clamped row for a world y coordinate.
func (g *SpatialGrid) row(y float32) int {
	r := int((y + g.halfH) / g.cellSize)
	return min(max(r, 0), g.rows-1)
}

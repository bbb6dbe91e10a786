package grid

import "github.com/lbt-cnrs/biospring/vector"

// SparseGrid is a map-backed storage strategy over a bounded coordinate
// system: only cells that have been written hold an entry. Trades per-access
// cost for memory proportional to occupancy rather than to the full shape.
type SparseGrid[T any] struct {
	coords BoundedCoordinateSystem
	data   map[Cell]T
}

// NewSparseGrid allocates a sparse grid over box with the given cell size.
func NewSparseGrid[T any](box vector.Box, cellSize CellSize) *SparseGrid[T] {
	coords := NewBoundedCoordinateSystem(box, cellSize)
	return &SparseGrid[T]{coords: coords, data: make(map[Cell]T)}
}

// Shape returns the grid's per-axis element count.
func (g *SparseGrid[T]) Shape() Shape { return g.coords.Shape() }

// CellSize returns the grid's per-axis cell size.
func (g *SparseGrid[T]) CellSize() CellSize { return g.coords.CellSize() }

// Boundaries returns the grid's bounding box.
func (g *SparseGrid[T]) Boundaries() vector.Box { return g.coords.Boundaries() }

// Size returns the number of cells currently holding a value.
func (g *SparseGrid[T]) Size() int { return len(g.data) }

// Clear discards every stored value.
func (g *SparseGrid[T]) Clear() { g.data = make(map[Cell]T) }

// HasCell reports whether cell currently holds a value.
func (g *SparseGrid[T]) HasCell(cell Cell) bool {
	_, ok := g.data[cell]
	return ok
}

// At returns a pointer to a copy of the value stored at cell, or an error if
// cell is out of the grid's boundaries. Writing through the pointer does not
// change the grid (use Set). Accessing an unwritten in-bounds cell allocates
// its zero value.
func (g *SparseGrid[T]) At(cell Cell) (*T, error) {
	if g.coords.IsOutOfGridCell(cell) {
		var zero *T
		return zero, &outOfRangeError{cell}
	}
	v := g.data[cell]
	g.data[cell] = v
	p := v
	return &p, nil
}

// Set stores value at cell, returning an error if cell is out of the grid's
// boundaries.
func (g *SparseGrid[T]) Set(cell Cell, value T) error {
	if g.coords.IsOutOfGridCell(cell) {
		return &outOfRangeError{cell}
	}
	g.data[cell] = value
	return nil
}

// CellCoordinates returns the cell containing position.
func (g *SparseGrid[T]) CellCoordinates(position vector.Vector3) (Cell, error) {
	return g.coords.CellCoordinates(position)
}

// CellsWithinOffset enumerates the offset cube around cell, clipped to the
// grid boundaries.
func (g *SparseGrid[T]) CellsWithinOffset(cell Cell, ox, oy, oz int) []Cell {
	return g.coords.CellsWithinOffset(cell, ox, oy, oz)
}

// Iterate calls fn for every occupied cell in the grid.
func (g *SparseGrid[T]) Iterate(fn func(Cell, T) bool) {
	for cell, value := range g.data {
		if !fn(cell, value) {
			return
		}
	}
}

type outOfRangeError struct{ cell Cell }

func (e *outOfRangeError) Error() string {
	return "grid: cell out of grid boundaries"
}

// SparseGridOfContainers is a SparseGrid specialized to hold slices, adding
// an Add operation that appends to the cell's slice, allocating it on first
// use.
type SparseGridOfContainers[T any] struct {
	*SparseGrid[[]T]
}

// NewSparseGridOfContainers allocates a sparse grid of slices over box.
func NewSparseGridOfContainers[T any](box vector.Box, cellSize CellSize) *SparseGridOfContainers[T] {
	return &SparseGridOfContainers[T]{SparseGrid: NewSparseGrid[[]T](box, cellSize)}
}

// Add appends value to the slice stored at cell, allocating it on first use.
func (g *SparseGridOfContainers[T]) Add(cell Cell, value T) error {
	if g.coords.IsOutOfGridCell(cell) {
		return &outOfRangeError{cell}
	}
	g.data[cell] = append(g.data[cell], value)
	return nil
}

// AddAtPosition appends value to the slice stored at the cell containing
// position.
func (g *SparseGridOfContainers[T]) AddAtPosition(position vector.Vector3, value T) error {
	cell, err := g.CellCoordinates(position)
	if err != nil {
		return err
	}
	return g.Add(cell, value)
}

// NumberOfElements returns the total number of elements stored across every
// occupied cell's slice.
func (g *SparseGridOfContainers[T]) NumberOfElements() int {
	n := 0
	for _, cell := range g.data {
		n += len(cell)
	}
	return n
}

package grid

import (
	"fmt"

	"github.com/lbt-cnrs/biospring/vector"
)

// DenseGrid is a contiguous, preallocated 3-D array over a bounded
// coordinate system. Optimized for fast access at the cost of memory
// proportional to the grid's full shape.
type DenseGrid[T any] struct {
	coords BoundedCoordinateSystem
	data   []T
}

// NewDenseGrid allocates a dense grid over box with the given cell size.
func NewDenseGrid[T any](box vector.Box, cellSize CellSize) *DenseGrid[T] {
	coords := NewBoundedCoordinateSystem(box, cellSize)
	return &DenseGrid[T]{coords: coords, data: make([]T, coords.MaxSize())}
}

// Shape returns the grid's per-axis element count.
func (g *DenseGrid[T]) Shape() Shape { return g.coords.Shape() }

// CellSize returns the grid's per-axis cell size.
func (g *DenseGrid[T]) CellSize() CellSize { return g.coords.CellSize() }

// Boundaries returns the grid's bounding box.
func (g *DenseGrid[T]) Boundaries() vector.Box { return g.coords.Boundaries() }

// Size returns the total number of cells in the grid.
func (g *DenseGrid[T]) Size() int { return len(g.data) }

// Clear resets every cell to its zero value, keeping the grid's geometry.
func (g *DenseGrid[T]) Clear() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}

// HasCell reports whether cell lies within the grid's boundaries.
func (g *DenseGrid[T]) HasCell(cell Cell) bool { return !g.coords.IsOutOfGridCell(cell) }

func (g *DenseGrid[T]) index(cell Cell) (int, error) {
	if g.coords.IsOutOfGridCell(cell) {
		return 0, fmt.Errorf("grid: cell %v is out of grid boundaries", cell)
	}
	shape := g.coords.Shape()
	return cell.X*shape.Y*shape.Z + cell.Y*shape.Z + cell.Z, nil
}

// At returns a pointer to the stored value at cell, or an error if cell is
// out of the grid's boundaries.
func (g *DenseGrid[T]) At(cell Cell) (*T, error) {
	i, err := g.index(cell)
	if err != nil {
		return nil, err
	}
	return &g.data[i], nil
}

// AtPosition returns a pointer to the stored value at the cell containing
// position.
func (g *DenseGrid[T]) AtPosition(position vector.Vector3) (*T, error) {
	cell, err := g.coords.CellCoordinates(position)
	if err != nil {
		return nil, err
	}
	return g.At(cell)
}

// CellCoordinates returns the cell containing position.
func (g *DenseGrid[T]) CellCoordinates(position vector.Vector3) (Cell, error) {
	return g.coords.CellCoordinates(position)
}

// CellsWithinOffset enumerates the offset cube around cell, clipped to the
// grid boundaries.
func (g *DenseGrid[T]) CellsWithinOffset(cell Cell, ox, oy, oz int) []Cell {
	return g.coords.CellsWithinOffset(cell, ox, oy, oz)
}

// Iterate calls fn for every cell in the grid.
func (g *DenseGrid[T]) Iterate(fn func(Cell) bool) { g.coords.Iterate(fn) }

// DenseGridOfContainers is a DenseGrid specialized to hold slices, adding an
// Add operation that appends to the cell's slice.
type DenseGridOfContainers[T any] struct {
	*DenseGrid[[]T]
}

// NewDenseGridOfContainers allocates a dense grid of slices over box.
func NewDenseGridOfContainers[T any](box vector.Box, cellSize CellSize) *DenseGridOfContainers[T] {
	return &DenseGridOfContainers[T]{DenseGrid: NewDenseGrid[[]T](box, cellSize)}
}

// Add appends value to the slice stored at cell.
func (g *DenseGridOfContainers[T]) Add(cell Cell, value T) error {
	slot, err := g.At(cell)
	if err != nil {
		return err
	}
	*slot = append(*slot, value)
	return nil
}

// AddAtPosition appends value to the slice stored at the cell containing
// position.
func (g *DenseGridOfContainers[T]) AddAtPosition(position vector.Vector3, value T) error {
	cell, err := g.CellCoordinates(position)
	if err != nil {
		return err
	}
	return g.Add(cell, value)
}

// NumberOfElements returns the total number of elements stored across every
// cell's slice.
func (g *DenseGridOfContainers[T]) NumberOfElements() int {
	n := 0
	for _, cell := range g.data {
		n += len(cell)
	}
	return n
}

// Package grid implements the regular 3-D lattice coordinate system and the
// three storage strategies (dense, sparse, infinite) built over it, plus the
// dense potential grid used for grid-sampled electrostatic/density forces.
package grid

import (
	"fmt"
	"math"

	"github.com/lbt-cnrs/biospring/vector"
)

// Cell is a discrete 3-D cell index. Components may be negative in the
// unbounded coordinate system.
type Cell struct {
	X, Y, Z int
}

// CellSize is the per-axis physical size of one cell.
type CellSize struct {
	X, Y, Z float32
}

// Shape is the per-axis element count of a bounded grid.
type Shape struct {
	X, Y, Z int
}

func (s Shape) size() int { return s.X * s.Y * s.Z }

// CoordinateSystem computes cell coordinates for an unbounded regular
// lattice: `cell_coordinates(position) = floor((position - origin) /
// cell_size)`. It performs no bounds checking; BoundedCoordinateSystem wraps
// it with boundary enforcement.
type CoordinateSystem struct {
	origin   vector.Vector3
	cellSize CellSize
}

// NewCoordinateSystem builds an unbounded coordinate system with the given
// cell size, origin at zero.
func NewCoordinateSystem(cellSize CellSize) CoordinateSystem {
	return CoordinateSystem{cellSize: cellSize}
}

// CellSize returns the coordinate system's per-axis cell size.
func (cs CoordinateSystem) CellSize() CellSize { return cs.cellSize }

// Origin returns the coordinate system's origin.
func (cs CoordinateSystem) Origin() vector.Vector3 { return cs.origin }

// CellCoordinates returns the discrete cell containing position.
func (cs CoordinateSystem) CellCoordinates(position vector.Vector3) Cell {
	return Cell{
		X: int(math.Floor(float64((position[0] - cs.origin[0]) / cs.cellSize.X))),
		Y: int(math.Floor(float64((position[1] - cs.origin[1]) / cs.cellSize.Y))),
		Z: int(math.Floor(float64((position[2] - cs.origin[2]) / cs.cellSize.Z))),
	}
}

// CellsWithinOffset enumerates the (2ox+1)(2oy+1)(2oz+1) cube of cells
// centred on cell, traversing z-fastest then y then x.
func (cs CoordinateSystem) CellsWithinOffset(cell Cell, ox, oy, oz int) []Cell {
	cells := make([]Cell, 0, (2*ox+1)*(2*oy+1)*(2*oz+1))
	for i := -ox; i <= ox; i++ {
		for j := -oy; j <= oy; j++ {
			for k := -oz; k <= oz; k++ {
				cells = append(cells, Cell{cell.X + i, cell.Y + j, cell.Z + k})
			}
		}
	}
	return cells
}

// CellsWithinRadius enumerates every cell that could contain an element
// within r of cell, taking ceil(r/cell_size) cells on each axis.
func (cs CoordinateSystem) CellsWithinRadius(cell Cell, r float32) []Cell {
	nx := int(math.Ceil(float64(r / cs.cellSize.X)))
	ny := int(math.Ceil(float64(r / cs.cellSize.Y)))
	nz := int(math.Ceil(float64(r / cs.cellSize.Z)))
	return cs.CellsWithinOffset(cell, nx, ny, nz)
}

// BoundedCoordinateSystem is CoordinateSystem with a bounding Box and a
// derived Shape; lookups outside the box raise an out-of-range error.
type BoundedCoordinateSystem struct {
	CoordinateSystem
	box   vector.Box
	shape Shape
}

// NewBoundedCoordinateSystem derives a shape from a box and cell size:
// shape[axis] = ceil(length[axis] / cell_size[axis]).
func NewBoundedCoordinateSystem(box vector.Box, cellSize CellSize) BoundedCoordinateSystem {
	length := box.Length()
	shape := Shape{
		X: int(math.Ceil(float64(length[0] / cellSize.X))),
		Y: int(math.Ceil(float64(length[1] / cellSize.Y))),
		Z: int(math.Ceil(float64(length[2] / cellSize.Z))),
	}
	cs := NewCoordinateSystem(cellSize)
	cs.origin = box.Origin()
	return BoundedCoordinateSystem{CoordinateSystem: cs, box: box, shape: shape}
}

// Shape returns the grid's per-axis element count.
func (b BoundedCoordinateSystem) Shape() Shape { return b.shape }

// Boundaries returns the grid's bounding box.
func (b BoundedCoordinateSystem) Boundaries() vector.Box { return b.box }

// MaxSize returns the total number of cells in the grid.
func (b BoundedCoordinateSystem) MaxSize() int { return b.shape.size() }

// IsOutOfGridPosition reports whether position lies outside [min, max).
func (b BoundedCoordinateSystem) IsOutOfGridPosition(position vector.Vector3) bool {
	const eps = 1e-6
	min, max := b.box.Min, b.box.Max
	return position[0] < min[0] || position[0] > max[0]-eps ||
		position[1] < min[1] || position[1] > max[1]-eps ||
		position[2] < min[2] || position[2] > max[2]-eps
}

// IsOutOfGridCell reports whether cell lies outside the grid's shape.
func (b BoundedCoordinateSystem) IsOutOfGridCell(cell Cell) bool {
	return cell.X < 0 || cell.X >= b.shape.X ||
		cell.Y < 0 || cell.Y >= b.shape.Y ||
		cell.Z < 0 || cell.Z >= b.shape.Z
}

// CellCoordinates returns the cell containing position, raising an
// out-of-range error if position is outside the grid boundaries.
func (b BoundedCoordinateSystem) CellCoordinates(position vector.Vector3) (Cell, error) {
	if b.IsOutOfGridPosition(position) {
		return Cell{}, fmt.Errorf("grid: position %v is out of grid boundaries %v", position, b.box)
	}
	return b.CoordinateSystem.CellCoordinates(position), nil
}

// CellsWithinOffset enumerates the offset cube around cell, dropping any
// cell outside the grid boundaries.
func (b BoundedCoordinateSystem) CellsWithinOffset(cell Cell, ox, oy, oz int) []Cell {
	return b.filterInBounds(b.CoordinateSystem.CellsWithinOffset(cell, ox, oy, oz))
}

// CellsWithinRadius enumerates the cells within r of cell, dropping any cell
// outside the grid boundaries.
func (b BoundedCoordinateSystem) CellsWithinRadius(cell Cell, r float32) []Cell {
	return b.filterInBounds(b.CoordinateSystem.CellsWithinRadius(cell, r))
}

func (b BoundedCoordinateSystem) filterInBounds(cells []Cell) []Cell {
	out := cells[:0]
	for _, c := range cells {
		if !b.IsOutOfGridCell(c) {
			out = append(out, c)
		}
	}
	return out
}

// Iterate calls fn for every cell in the grid, traversing z-fastest, then y,
// then x, stopping early if fn returns false.
func (b BoundedCoordinateSystem) Iterate(fn func(Cell) bool) {
	for x := 0; x < b.shape.X; x++ {
		for y := 0; y < b.shape.Y; y++ {
			for z := 0; z < b.shape.Z; z++ {
				if !fn(Cell{x, y, z}) {
					return
				}
			}
		}
	}
}

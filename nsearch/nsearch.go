// Package nsearch implements neighbor search over a collection of located
// elements: given a cutoff distance, find every element within range of a
// given element. Three strategies are provided, trading setup cost against
// query cost: a reference O(N^2) search used to validate the others, a
// static cell-list search rebuilt on demand, and a dynamic cell-list search
// that precomputes each cell's neighbor cells so repeated queries avoid
// recomputing the 27-cell stencil.
package nsearch

import (
	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/grid"
	"github.com/lbt-cnrs/biospring/vector"
)

// minCutoff is the smallest cutoff distance accepted by a neighbor search;
// below it a cell list degenerates or a query would span the whole system.
const minCutoff = 1e-6

func validate[T vector.Locatable](system []T, cutoff float32) error {
	if len(system) == 0 {
		return bioerr.New(bioerr.KindDomainPrecondition, "neighbor search: the element list is empty")
	}
	if cutoff < minCutoff {
		return bioerr.New(bioerr.KindConfiguration, "neighbor search: the cutoff distance must be positive and non-zero")
	}
	return nil
}

// O2 is the reference neighbor search implementation: it compares every
// element against every other, in O(N^2) time. It exists to validate the
// cell-list based searches and is not meant for production-sized systems.
type O2[T vector.Locatable] struct {
	system []T
	cutoff float32
}

// NewO2 builds a reference neighbor search over system with the given
// cutoff distance.
func NewO2[T vector.Locatable](system []T, cutoff float32) (*O2[T], error) {
	if err := validate(system, cutoff); err != nil {
		return nil, err
	}
	return &O2[T]{system: system, cutoff: cutoff}, nil
}

// Neighbors returns the indices into system of every element within cutoff
// of system[index], excluding index itself.
func (s *O2[T]) Neighbors(index int) []int {
	element := s.system[index]
	var neighbors []int
	for i, candidate := range s.system {
		if i != index && vector.Distance(element, candidate) < s.cutoff {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}

// Static is a cell-list neighbor search whose unbounded cell grid (cell size
// = cutoff) is built once at construction time and explicitly rebuilt by
// Update when positions have moved.
type Static[T vector.Locatable] struct {
	system []T
	cutoff float32
	cells  *grid.InfiniteGridOfContainers[int]
}

// NewStatic builds a static cell-list neighbor search over system with the
// given cutoff distance.
func NewStatic[T vector.Locatable](system []T, cutoff float32) (*Static[T], error) {
	if err := validate(system, cutoff); err != nil {
		return nil, err
	}
	s := &Static[T]{system: system, cutoff: cutoff}
	s.Update()
	return s, nil
}

// Update rebuilds the cell list from the system's current positions. Call
// it whenever the underlying positions change and neighbor queries must
// reflect the new configuration.
func (s *Static[T]) Update() {
	s.cells = grid.NewInfiniteGridOfContainers[int](grid.CellSize{X: s.cutoff, Y: s.cutoff, Z: s.cutoff})
	for i, element := range s.system {
		s.cells.AddAtPosition(vector.Position(element), i)
	}
}

// Neighbors returns the indices into system of every element within cutoff
// of system[index], excluding index itself.
func (s *Static[T]) Neighbors(index int) []int {
	return s.neighborsOf(s.system[index], index)
}

func (s *Static[T]) neighborsOf(element T, selfIndex int) []int {
	var neighbors []int
	position := vector.Position(element)
	cell := s.cells.CellCoordinates(position)
	for _, candidateCell := range s.cells.CellsWithinRadius(cell, s.cutoff) {
		indices, ok := s.cells.At(candidateCell)
		if !ok {
			continue
		}
		for _, i := range indices {
			if i != selfIndex && vector.Distance(element, s.system[i]) < s.cutoff {
				neighbors = append(neighbors, i)
			}
		}
	}
	return neighbors
}

// Dynamic is a cell-list neighbor search that precomputes, for every
// occupied cell, the list of neighbor cell coordinates, so that repeated
// queries over an unchanged configuration avoid recomputing the 27-cell
// stencil each time. Call Update to rebuild both the cell list and the
// neighbor-cell cache after positions change.
type Dynamic[T vector.Locatable] struct {
	system        []T
	cutoff        float32
	cells         *grid.InfiniteGridOfContainers[int]
	neighborCells map[grid.Cell][]grid.Cell
}

// NewDynamic builds a dynamic cell-list neighbor search over system with
// the given cutoff distance.
func NewDynamic[T vector.Locatable](system []T, cutoff float32) (*Dynamic[T], error) {
	if err := validate(system, cutoff); err != nil {
		return nil, err
	}
	d := &Dynamic[T]{system: system, cutoff: cutoff}
	d.Update()
	return d, nil
}

// Update rebuilds the cell list and the per-cell neighbor-cell cache from
// the system's current positions.
func (d *Dynamic[T]) Update() {
	d.cells = grid.NewInfiniteGridOfContainers[int](grid.CellSize{X: d.cutoff, Y: d.cutoff, Z: d.cutoff})
	for i, element := range d.system {
		d.cells.AddAtPosition(vector.Position(element), i)
	}

	d.neighborCells = make(map[grid.Cell][]grid.Cell)
	d.cells.Iterate(func(cell grid.Cell, _ []int) bool {
		d.neighborCells[cell] = d.cells.CellsWithinRadius(cell, d.cutoff)
		return true
	})
}

// Neighbors returns the indices into system of every element within cutoff
// of system[index], excluding index itself, using the precomputed
// neighbor-cell cache.
func (d *Dynamic[T]) Neighbors(index int) []int {
	element := d.system[index]
	cell := d.cells.CellCoordinates(vector.Position(element))

	var neighbors []int
	for _, candidateCell := range d.neighborCells[cell] {
		indices, ok := d.cells.At(candidateCell)
		if !ok {
			continue
		}
		for _, i := range indices {
			if i != index && vector.Distance(element, d.system[i]) < d.cutoff {
				neighbors = append(neighbors, i)
			}
		}
	}
	return neighbors
}

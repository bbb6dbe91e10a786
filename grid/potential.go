package grid

import (
	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/units"
	"github.com/lbt-cnrs/biospring/vector"
)

// GradientScale is the fixed physical scale applied when converting a
// central-difference of a scalar field sampled in k.K (electrostatic
// potential units) into a force expressed in the engine's internal
// Dalton.Angstrom.femtosecond^-2 units.
const GradientScale = units.BoltzmannJPerK * units.MeterToAngstrom * units.NewtonToDaltonAngstromPerFemtosecond2

// PotentialCell holds one grid-sampled scalar field value together with its
// precomputed gradient.
type PotentialCell struct {
	Scalar float32
	Vector vector.Vector3
}

// PotentialGrid is a dense grid of scalar samples (electrostatic potential,
// density, or any other grid-sampled field) with an associated gradient,
// computed once per sampling pass by ComputeGradient.
type PotentialGrid struct {
	*DenseGrid[PotentialCell]
}

// NewPotentialGrid allocates a potential grid over box with the given cell
// size.
func NewPotentialGrid(box vector.Box, cellSize CellSize) *PotentialGrid {
	return &PotentialGrid{DenseGrid: NewDenseGrid[PotentialCell](box, cellSize)}
}

// centralDifference mirrors the original's compute_gradient_ helper: the
// symmetric central difference of a scalar sampled at three consecutive
// grid points, scaled by the cell size along that axis.
func centralDifference(current, previous, next, cellSize float32) float32 {
	return ((current - previous) + (next - current)) / (cellSize * 2.0)
}

// ComputeGradient computes, for every interior cell, the central-difference
// gradient of the stored scalar field along each axis with a non-degenerate
// extent, scales it by -GradientScale, and stores the result as that cell's
// Vector. Cells on a boundary face leave the corresponding axis's component
// at zero, matching the original's behaviour of never differencing across
// the grid edge.
//
// ComputeGradient is fatal if the grid holds no cells: a zero-size
// potential grid is always a setup error, never a legitimate empty state.
func (g *PotentialGrid) ComputeGradient() error {
	if g.Size() == 0 {
		return bioerr.New(bioerr.KindDomainPrecondition, "cannot compute gradient of a potential grid with size 0")
	}

	shape := g.Shape()
	cellSize := g.CellSize()

	for i := 0; i < shape.X; i++ {
		for j := 0; j < shape.Y; j++ {
			for k := 0; k < shape.Z; k++ {
				cell := Cell{i, j, k}
				current, _ := g.At(cell)
				var gradient vector.Vector3

				if i > 0 && i < shape.X-1 {
					prev, _ := g.At(Cell{i - 1, j, k})
					next, _ := g.At(Cell{i + 1, j, k})
					gradient[0] = centralDifference(current.Scalar, prev.Scalar, next.Scalar, cellSize.X)
				}
				if j > 0 && j < shape.Y-1 {
					prev, _ := g.At(Cell{i, j - 1, k})
					next, _ := g.At(Cell{i, j + 1, k})
					gradient[1] = centralDifference(current.Scalar, prev.Scalar, next.Scalar, cellSize.Y)
				}
				if k > 0 && k < shape.Z-1 {
					prev, _ := g.At(Cell{i, j, k - 1})
					next, _ := g.At(Cell{i, j, k + 1})
					gradient[2] = centralDifference(current.Scalar, prev.Scalar, next.Scalar, cellSize.Z)
				}

				current.Vector = gradient.Mul(-GradientScale)
			}
		}
	}
	return nil
}

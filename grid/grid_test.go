package grid

import (
	"testing"

	"github.com/lbt-cnrs/biospring/vector"
)

func testBox() vector.Box {
	return vector.NewBox(vector.New(0, 0, 0), vector.New(10, 10, 10))
}

func TestDenseGridAtOutOfBounds(t *testing.T) {
	g := NewDenseGrid[int](testBox(), CellSize{1, 1, 1})
	if _, err := g.At(Cell{-1, 0, 0}); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestDenseGridSetAndRead(t *testing.T) {
	g := NewDenseGrid[int](testBox(), CellSize{2, 2, 2})
	cell, err := g.CellCoordinates(vector.New(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	slot, err := g.At(cell)
	if err != nil {
		t.Fatal(err)
	}
	*slot = 42
	got, err := g.AtPosition(vector.New(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if *got != 42 {
		t.Fatalf("got %d, want 42", *got)
	}
}

func TestDenseGridOfContainersAdd(t *testing.T) {
	g := NewDenseGridOfContainers[string](testBox(), CellSize{5, 5, 5})
	if err := g.AddAtPosition(vector.New(1, 1, 1), "a"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddAtPosition(vector.New(1, 1, 1), "b"); err != nil {
		t.Fatal(err)
	}
	if n := g.NumberOfElements(); n != 2 {
		t.Fatalf("got %d elements, want 2", n)
	}
}

func TestSparseGridOnlyTracksWrittenCells(t *testing.T) {
	g := NewSparseGrid[int](testBox(), CellSize{1, 1, 1})
	if g.Size() != 0 {
		t.Fatalf("expected empty sparse grid, got size %d", g.Size())
	}
	if err := g.Set(Cell{3, 3, 3}, 7); err != nil {
		t.Fatal(err)
	}
	if g.Size() != 1 {
		t.Fatalf("expected size 1 after one write, got %d", g.Size())
	}
	if !g.HasCell(Cell{3, 3, 3}) {
		t.Fatal("expected HasCell true for written cell")
	}
	if g.HasCell(Cell{4, 4, 4}) {
		t.Fatal("expected HasCell false for untouched cell")
	}
}

func TestSparseGridOfContainersAccumulates(t *testing.T) {
	g := NewSparseGridOfContainers[int](testBox(), CellSize{1, 1, 1})
	cell := Cell{0, 0, 0}
	g.Add(cell, 1)
	g.Add(cell, 2)
	g.Add(cell, 3)
	if n := g.NumberOfElements(); n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}

func TestInfiniteGridHasNoBoundaries(t *testing.T) {
	g := NewInfiniteGrid[int](CellSize{1, 1, 1})
	g.Set(Cell{-100, 200, -300}, 9)
	got, ok := g.At(Cell{-100, 200, -300})
	if !ok || got != 9 {
		t.Fatalf("got %d, %v; want 9, true", got, ok)
	}
}

func TestInfiniteGridOfContainersAdd(t *testing.T) {
	g := NewInfiniteGridOfContainers[int](CellSize{2, 2, 2})
	g.AddAtPosition(vector.New(-5, -5, -5), 1)
	g.AddAtPosition(vector.New(-5, -5, -5), 2)
	if n := g.NumberOfElements(); n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
}

func TestPotentialGridComputeGradientFatalOnEmptyGrid(t *testing.T) {
	g := NewPotentialGrid(vector.NewBox(vector.New(0, 0, 0), vector.New(0, 0, 0)), CellSize{1, 1, 1})
	if err := g.ComputeGradient(); err == nil {
		t.Fatal("expected error computing gradient of a zero-size grid")
	}
}

func TestPotentialGridComputeGradientLinearField(t *testing.T) {
	box := vector.NewBox(vector.New(0, 0, 0), vector.New(5, 5, 5))
	g := NewPotentialGrid(box, CellSize{1, 1, 1})
	shape := g.Shape()
	for i := 0; i < shape.X; i++ {
		for j := 0; j < shape.Y; j++ {
			for k := 0; k < shape.Z; k++ {
				cell := Cell{i, j, k}
				slot, err := g.At(cell)
				if err != nil {
					t.Fatal(err)
				}
				slot.Scalar = float32(i)
			}
		}
	}
	if err := g.ComputeGradient(); err != nil {
		t.Fatal(err)
	}
	mid := Cell{shape.X / 2, shape.Y / 2, shape.Z / 2}
	cell, err := g.At(mid)
	if err != nil {
		t.Fatal(err)
	}
	wantX := -GradientScale * 1.0
	if diff := cell.Vector[0] - wantX; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("gradient.x = %v, want %v", cell.Vector[0], wantX)
	}
	if cell.Vector[1] != 0 || cell.Vector[2] != 0 {
		t.Fatalf("expected zero gradient on y/z, got %v", cell.Vector)
	}
}

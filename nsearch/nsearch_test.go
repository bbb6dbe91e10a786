package nsearch

import (
	"sort"
	"testing"
)

type point struct{ x, y, z float32 }

func (p point) X() float32 { return p.x }
func (p point) Y() float32 { return p.y }
func (p point) Z() float32 { return p.z }

func samplePoints() []point {
	return []point{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 0},
		{10, 10, 10},
	}
}

func TestNewRejectsEmptySystem(t *testing.T) {
	if _, err := NewO2[point](nil, 1.0); err == nil {
		t.Fatal("expected error for empty system")
	}
	if _, err := NewStatic[point](nil, 1.0); err == nil {
		t.Fatal("expected error for empty system")
	}
}

func TestNewRejectsNonPositiveCutoff(t *testing.T) {
	pts := samplePoints()
	if _, err := NewO2(pts, 0); err == nil {
		t.Fatal("expected error for zero cutoff")
	}
}

func sorted(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func TestO2Neighbors(t *testing.T) {
	pts := samplePoints()
	s, err := NewO2(pts, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	got := sorted(s.Neighbors(1))
	want := []int{0, 2}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStaticAgreesWithO2(t *testing.T) {
	pts := samplePoints()
	cutoff := float32(1.5)

	ref, err := NewO2(pts, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewStatic(pts, cutoff)
	if err != nil {
		t.Fatal(err)
	}

	for i := range pts {
		got := sorted(st.Neighbors(i))
		want := sorted(ref.Neighbors(i))
		if len(got) != len(want) {
			t.Fatalf("index %d: got %v, want %v", i, got, want)
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("index %d: got %v, want %v", i, got, want)
			}
		}
	}
}

func TestDynamicAgreesWithO2(t *testing.T) {
	pts := samplePoints()
	cutoff := float32(1.5)

	ref, err := NewO2(pts, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	dyn, err := NewDynamic(pts, cutoff)
	if err != nil {
		t.Fatal(err)
	}

	for i := range pts {
		got := sorted(dyn.Neighbors(i))
		want := sorted(ref.Neighbors(i))
		if len(got) != len(want) {
			t.Fatalf("index %d: got %v, want %v", i, got, want)
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("index %d: got %v, want %v", i, got, want)
			}
		}
	}
}

func TestDynamicUpdateReflectsMovedPositions(t *testing.T) {
	pts := []point{{0, 0, 0}, {100, 100, 100}}
	dyn, err := NewDynamic(pts, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(dyn.Neighbors(0)) != 0 {
		t.Fatal("expected no neighbors before move")
	}
	pts[1] = point{0.5, 0, 0}
	dyn.Update()
	if len(dyn.Neighbors(0)) != 1 {
		t.Fatal("expected one neighbor after move and update")
	}
}

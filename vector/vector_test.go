package vector

import "testing"

type point struct{ x, y, z float32 }

func (p point) X() float32 { return p.x }
func (p point) Y() float32 { return p.y }
func (p point) Z() float32 { return p.z }

func TestNormalizeZeroesNearZeroVector(t *testing.T) {
	got := Normalize(New(1e-41, 0, 0))
	if got != (Vector3{}) {
		t.Fatalf("expected zero vector, got %v", got)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	got := Normalize(New(3, 4, 0))
	want := New(0.6, 0.8, 0)
	if !Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDistance(t *testing.T) {
	a := point{0, 0, 0}
	b := point{2, 0, 0}
	if got := Distance(a, b); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestCentroid(t *testing.T) {
	items := []point{{0, 0, 0}, {2, 0, 0}, {4, 0, 0}}
	got := Centroid(items)
	if !Equal(got, New(2, 0, 0)) {
		t.Fatalf("got %v, want (2,0,0)", got)
	}
}

func TestBoxFrom(t *testing.T) {
	items := []point{{-1, 2, 0}, {3, -4, 5}}
	b := BoxFrom(items)
	if !Equal(b.Min, New(-1, -4, 0)) {
		t.Fatalf("min = %v", b.Min)
	}
	if !Equal(b.Max, New(3, 2, 5)) {
		t.Fatalf("max = %v", b.Max)
	}
	if !Equal(b.Length(), New(4, 6, 5)) {
		t.Fatalf("length = %v", b.Length())
	}
}

package forcefield

import (
	"testing"

	"github.com/lbt-cnrs/biospring/vector"
)

func approxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestSpringEnergyAtEquilibriumIsZero(t *testing.T) {
	if e := SpringEnergy(5.0, 10.0, 5.0); e != 0 {
		t.Fatalf("got %v, want 0", e)
	}
}

func TestSpringEnergyQuadratic(t *testing.T) {
	got := SpringEnergy(6.0, 10.0, 5.0)
	want := float32(5.0)
	if !approxEqual(got, want, 1e-4) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSpringForceModuleSign(t *testing.T) {
	stretched := SpringForceModule(6.0, 10.0, 5.0)
	compressed := SpringForceModule(4.0, 10.0, 5.0)
	if stretched <= 0 || compressed >= 0 {
		t.Fatalf("expected stretched > 0 and compressed < 0, got %v, %v", stretched, compressed)
	}
}

func TestElectrostaticEnergyBelowCutoffIsZero(t *testing.T) {
	if e := ElectrostaticEnergy(1, -1, MinimalElectrostaticDistance/2, 1); e != 0 {
		t.Fatalf("got %v, want 0", e)
	}
}

func TestElectrostaticEnergyOppositeChargesAttract(t *testing.T) {
	e := ElectrostaticEnergy(1, -1, 5.0, 1.0)
	if e >= 0 {
		t.Fatalf("expected negative (attractive) energy, got %v", e)
	}
}

func TestElectrostaticForceModuleLikeChargesRepel(t *testing.T) {
	f := ElectrostaticForceModule(1, 1, 5.0, 1.0)
	if f >= 0 {
		t.Fatalf("expected negative force module sign convention for like charges, got %v", f)
	}
}

func TestStericEnergyLinearOnlyActsOnOverlap(t *testing.T) {
	if e := StericEnergyLinear(1.0, 1.0, 5.0); e != 0 {
		t.Fatalf("expected zero energy beyond contact, got %v", e)
	}
	if e := StericEnergyLinear(1.0, 1.0, 1.0); e <= 0 {
		t.Fatalf("expected positive repulsive energy on overlap, got %v", e)
	}
}

func TestStericLennardJonesVariantsAgreeAtUnitParameters(t *testing.T) {
	// At radius = epsilon = 1, every combining rule (geometric mean,
	// arithmetic mean, plain product) collapses to the same pairwise value,
	// so Lewitt, Zacharias and Amber must agree here even though their
	// combining rules otherwise differ.
	radius := float32(1.0)
	epsilon := float32(1.0)
	distance := float32(2.5)

	lewitt := StericEnergyLewitt(radius, radius, epsilon, epsilon, distance)
	zacharias := StericEnergyZacharias(radius, radius, epsilon, epsilon, distance)
	amber := StericEnergyAmber(radius, radius, epsilon, epsilon, distance)

	if !approxEqual(lewitt, zacharias, 1e-4) {
		t.Fatalf("lewitt %v != zacharias %v at unit pairwise parameters", lewitt, zacharias)
	}
	if !approxEqual(lewitt, amber, 1e-4) {
		t.Fatalf("lewitt %v != amber %v at unit pairwise parameters", lewitt, amber)
	}
}

func TestStericEnergyZachariasUsesPlainProductCombination(t *testing.T) {
	// Zacharias combines both epsilon and radius by plain product, not by
	// geometric mean: at radius = 2, epsilon = 0.1 it must disagree with Lewitt
	// (geometric mean), which collapses to the same value as the input at
	// unit parameters but diverges as soon as the parameters exceed 1.
	radius := float32(2.0)
	epsilon := float32(0.1)
	distance := float32(2.5)

	lewitt := StericEnergyLewitt(radius, radius, epsilon, epsilon, distance)
	zacharias := StericEnergyZacharias(radius, radius, epsilon, epsilon, distance)
	if approxEqual(lewitt, zacharias, 1e-4) {
		t.Fatalf("expected zacharias (product combination) to diverge from lewitt (geometric mean) at non-unit parameters, both gave %v", lewitt)
	}

	wantEnergy, _ := stericLennardJones86(radius, radius, epsilon, epsilon, distance, ZachariasEpsilon, ZachariasRadius)
	if zacharias != wantEnergy {
		t.Fatalf("got %v, want %v", zacharias, wantEnergy)
	}
	if got := ZachariasEpsilon(epsilon, epsilon); got != epsilon*epsilon {
		t.Fatalf("ZachariasEpsilon got %v, want plain product %v", got, epsilon*epsilon)
	}
	if got := ZachariasRadius(radius, radius); got != radius*radius {
		t.Fatalf("ZachariasRadius got %v, want plain product %v", got, radius*radius)
	}
}

func TestStericLennardJonesBelowCutoffIsZero(t *testing.T) {
	if e := StericEnergyZacharias(2.0, 2.0, 0.1, 0.1, MinimalStericDistance/2); e != 0 {
		t.Fatalf("got %v, want 0", e)
	}
}

func TestHydrophobicEnergyLikeHydrophobicityIsAttractive(t *testing.T) {
	e := HydrophobicEnergy(1.0, 1.0, 3.0)
	if e >= 0 {
		t.Fatalf("expected negative (favorable) energy for matching hydrophobicity, got %v", e)
	}
}

func TestImpalaEnergyFlatMembraneVariesWithDepth(t *testing.T) {
	above := ImpalaEnergy(vector.New(0, 0, impalaZ0+5), 1.0, 1.0, 0, 0, 0, 0)
	far := ImpalaEnergy(vector.New(0, 0, impalaZ0+50), 1.0, 1.0, 0, 0, 0, 0)
	if above == far {
		t.Fatalf("expected IMPALA energy to vary with insertion depth")
	}
}

func TestImpalaForceVectorFlatMembraneAlongZ(t *testing.T) {
	f := ImpalaForceVector(vector.New(0, 0, 0), 1.0, 1.0, 0, 0, 0, 0)
	if f[0] != 0 || f[1] != 0 {
		t.Fatalf("expected force confined to z axis for a flat membrane, got %v", f)
	}
}

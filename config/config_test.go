package config

import "testing"

func TestLoadAppliesEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.NbSteps != 1000 {
		t.Fatalf("got nbsteps %d, want 1000", cfg.Simulation.NbSteps)
	}
	if !cfg.Spring.Enable {
		t.Fatal("expected spring enabled by default")
	}
	if cfg.Steric.Mode != "lewitt" {
		t.Fatalf("got steric mode %q, want lewitt", cfg.Steric.Mode)
	}
}

func TestSetUnknownGroupFails(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("unknown.param", "1"); err == nil {
		t.Fatal("expected error for unknown group")
	}
}

func TestSetUnknownKeyFails(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("spring.bogus", "1"); err == nil {
		t.Fatal("expected error for unknown key within known group")
	}
}

func TestSetBadConversionFails(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("spring.cutoff", "notafloat"); err == nil {
		t.Fatal("expected conversion error")
	}
}

func TestSetUpdatesValue(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("spring.cutoff", "42.5"); err != nil {
		t.Fatal(err)
	}
	if cfg.Spring.Cutoff != 42.5 {
		t.Fatalf("got cutoff %v, want 42.5", cfg.Spring.Cutoff)
	}
}

func TestSetRejectsDuplicateKeyInSameLoad(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("spring.cutoff", "42.5"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("spring.cutoff", "1.0"); err == nil {
		t.Fatal("expected error setting the same key twice")
	}
	if cfg.Spring.Cutoff != 42.5 {
		t.Fatalf("expected rejected duplicate to leave prior value untouched, got %v", cfg.Spring.Cutoff)
	}
}

func TestSetBoolAcceptsCommonSpellings(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("coulomb.enable", "true"); err != nil {
		t.Fatal(err)
	}
	if !cfg.Coulomb.Enable {
		t.Fatal("expected coulomb enabled")
	}
	if err := cfg.Set("hydrophobicity.enable", "no"); err != nil {
		t.Fatal(err)
	}
	if cfg.Hydrophobicity.Enable {
		t.Fatal("expected hydrophobicity disabled")
	}
}

func TestSetVectorPair(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("insertionvector.vector", "3, 7"); err != nil {
		t.Fatal(err)
	}
	if cfg.InsertionVector.Vector != [2]int{3, 7} {
		t.Fatalf("got %v, want [3 7]", cfg.InsertionVector.Vector)
	}
}

func TestMalformedKeyWithoutDotFails(t *testing.T) {
	cfg, _ := Load("")
	if err := cfg.Set("nodothere", "1"); err == nil {
		t.Fatal("expected error for key missing group separator")
	}
}

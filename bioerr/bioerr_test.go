package bioerr

import (
	"errors"
	"testing"
)

func TestIsMatchesSentinelByKind(t *testing.T) {
	err := New(KindDomainPrecondition, "particle %d diverged", 7)
	if !errors.Is(err, ErrDomainPrecondition) {
		t.Fatal("expected errors.Is to match the domain-precondition sentinel")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Fatal("expected errors.Is not to match an unrelated sentinel")
	}
}

func TestWrapPreservesUnderlyingError(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindResource, cause, "opening file %q", "x.yaml")
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the wrapped cause")
	}
	if !errors.Is(err, ErrResource) {
		t.Fatal("expected errors.Is to also match the resource sentinel")
	}
}

func TestAsRecoversFatalErrorKind(t *testing.T) {
	err := New(KindConfiguration, "unknown group %q", "bogus")
	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to recover a *FatalError")
	}
	if fe.Kind != KindConfiguration {
		t.Fatalf("got kind %v, want %v", fe.Kind, KindConfiguration)
	}
}

func TestWithStageSetsStage(t *testing.T) {
	err := New(KindDomainPrecondition, "bad input").WithStage("setup")
	if err.Stage != "setup" {
		t.Fatalf("got stage %q, want %q", err.Stage, "setup")
	}
}

func TestIsHelperChecksKind(t *testing.T) {
	err := New(KindInputFormat, "malformed record")
	if !Is(err, KindInputFormat) {
		t.Fatal("expected Is to report true for matching kind")
	}
	if Is(err, KindResource) {
		t.Fatal("expected Is to report false for a different kind")
	}
}

// Package bioerr provides the engine-wide fatal error type: a classified
// error carrying one of a small set of sentinel kinds so callers at the
// program boundary (currently: tests) can distinguish a malformed
// configuration from a violated domain precondition without parsing error
// strings.
package bioerr

import (
	"errors"
	"fmt"
)

// Kind classifies a FatalError.
type Kind int

const (
	// KindConfiguration marks an invalid or unrecognized configuration value.
	KindConfiguration Kind = iota
	// KindInputFormat marks malformed input data (out-of-range indices,
	// inconsistent collection sizes).
	KindInputFormat
	// KindDomainPrecondition marks a violated physical or algorithmic
	// precondition (self-spring, zero-size grid, empty collection).
	KindDomainPrecondition
	// KindResource marks a failure acquiring or using an external resource.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInputFormat:
		return "input-format"
	case KindDomainPrecondition:
		return "domain-precondition"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind, so callers can use the standard
// errors.Is(err, bioerr.ErrDomainPrecondition) directly against a
// FatalError instead of going through the Kind-based Is helper below.
var (
	ErrConfiguration      = errors.New("biospring: configuration error")
	ErrInputFormat        = errors.New("biospring: input format error")
	ErrDomainPrecondition = errors.New("biospring: domain precondition error")
	ErrResource           = errors.New("biospring: resource error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindInputFormat:
		return ErrInputFormat
	case KindDomainPrecondition:
		return ErrDomainPrecondition
	case KindResource:
		return ErrResource
	default:
		return nil
	}
}

// FatalError is an unrecoverable engine error tagged with a Kind, the
// pipeline stage it was raised from (if any), and the context describing
// what was being attempted. The engine never attempts to continue past
// one: callers that only need "did it fail" can use plain error handling,
// while callers that need to react to the failure category can switch on
// Kind via errors.As, or compare directly against a sentinel via
// errors.Is.
type FatalError struct {
	Kind    Kind
	Stage   string
	Context string
	Err     error
}

func (e *FatalError) Error() string {
	context := e.Context
	if e.Stage != "" {
		context = fmt.Sprintf("%s: %s", e.Stage, context)
	}
	if e.Err != nil {
		return fmt.Sprintf("biospring: %s: %s: %v", e.Kind, context, e.Err)
	}
	return fmt.Sprintf("biospring: %s: %s", e.Kind, context)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel error matching e's Kind,
// letting errors.Is(err, bioerr.ErrResource) succeed without unwrapping
// to the (possibly nil) wrapped cause.
func (e *FatalError) Is(target error) bool {
	return e.Kind.sentinel() == target
}

// New builds a FatalError of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *FatalError {
	return &FatalError{Kind: kind, Context: fmt.Sprintf(format, args...)}
}

// Wrap builds a FatalError of the given kind wrapping an existing error.
func Wrap(kind Kind, err error, format string, args ...any) *FatalError {
	return &FatalError{Kind: kind, Context: fmt.Sprintf(format, args...), Err: err}
}

// WithStage tags the FatalError with the pipeline stage it was raised
// from and returns the same error, for chaining at the call site.
func (e *FatalError) WithStage(stage string) *FatalError {
	e.Stage = stage
	return e
}

// Is reports whether err is a FatalError of kind.
func Is(err error, kind Kind) bool {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

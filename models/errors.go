package models

import "fmt"

// Kind classifies a CoreError into one of the four domain failure modes
// the core distinguishes, so a host can decide what to do with a failure
// without string-matching an error message.
type Kind int

const (
	// KindInvalidSnapshot means the LeagueSnapshot handed to the core was
	// internally inconsistent (a dangling team reference, a bad division
	// flag, an impossible playoff_spots value).
	KindInvalidSnapshot Kind = iota
	// KindUpstreamProvider wraps a failure surfaced by a provider adapter
	// (spec section 6.1) while fetching standings, schedule, or settings.
	KindUpstreamProvider
	// KindCancelled means a run's context was cancelled before it
	// completed; SimulationsRun will be less than SimulationsRequested.
	KindCancelled
	// KindInternalAssertion means the core detected its own invariant
	// violation (e.g. a tiebreaker resolver returning fewer teams than it
	// was given). This should never happen; when it does, it is a bug in
	// the core, not in the caller's input.
	KindInternalAssertion
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSnapshot:
		return "invalid_snapshot"
	case KindUpstreamProvider:
		return "upstream_provider"
	case KindCancelled:
		return "cancelled"
	case KindInternalAssertion:
		return "internal_assertion"
	default:
		return "unknown"
	}
}

// CoreError is the error type every core package returns for a failure
// the caller needs to distinguish by Kind. It composes with an underlying
// cause (e.g. a providers.Error from an adapter, or a WrappedError from the
// ambient error-context helpers) via Unwrap, so callers can still
// errors.As into the lower-level type when they need provider-specific
// detail.
type CoreError struct {
	Kind     Kind
	Message  string
	Provider string // set only when Kind == KindUpstreamProvider
	cause    error
}

func (e *CoreError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.cause
}

// NewCoreError builds a CoreError with no underlying cause.
func NewCoreError(kind Kind, message string) *CoreError {
	return &CoreError{Kind: kind, Message: message}
}

// WrapCoreError builds a CoreError that chains to cause, preserving it for
// errors.As/errors.Is on the caller side.
func WrapCoreError(kind Kind, message string, cause error) *CoreError {
	return &CoreError{Kind: kind, Message: message, cause: cause}
}

// NewUpstreamError builds a KindUpstreamProvider CoreError tagged with the
// provider name that produced it.
func NewUpstreamError(provider, message string, cause error) *CoreError {
	return &CoreError{Kind: KindUpstreamProvider, Provider: provider, Message: message, cause: cause}
}

// IsKind reports whether err is a *CoreError of the given kind.
func IsKind(err error, kind Kind) bool {
	ce, ok := err.(*CoreError)
	return ok && ce.Kind == kind
}

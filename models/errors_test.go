package models

import (
	"errors"
	"testing"
)

func TestCoreErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapCoreError(KindUpstreamProvider, "fetch standings", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if !IsKind(err, KindUpstreamProvider) {
		t.Errorf("IsKind(err, KindUpstreamProvider) = false, want true")
	}
}

func TestNewUpstreamErrorSetsProvider(t *testing.T) {
	err := NewUpstreamError("espn", "fetch schedule", nil)
	if err.Provider != "espn" {
		t.Errorf("Provider = %q, want espn", err.Provider)
	}
	if err.Kind != KindUpstreamProvider {
		t.Errorf("Kind = %v, want KindUpstreamProvider", err.Kind)
	}
	if got := err.Error(); got != "upstream_provider (espn): fetch schedule" {
		t.Errorf("Error() = %q, want %q", got, "upstream_provider (espn): fetch schedule")
	}
}

func TestIsKindFalseForDifferentKind(t *testing.T) {
	err := NewCoreError(KindCancelled, "stopped")
	if IsKind(err, KindInvalidSnapshot) {
		t.Error("IsKind(cancelled error, KindInvalidSnapshot) = true, want false")
	}
}

func TestIsKindFalseForNonCoreError(t *testing.T) {
	if IsKind(errors.New("plain error"), KindCancelled) {
		t.Error("IsKind(plain error, ...) = true, want false")
	}
}

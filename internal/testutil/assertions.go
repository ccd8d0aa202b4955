package testutil

import (
	"errors"
	"math"
	"testing"

	apperrors "daechul/internal/errors"
)

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails the test unless err wraps the expected AppError.
func AssertAppError(t *testing.T, err error, want *apperrors.AppError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", want.Code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError %s, got %T: %v", want.Code, err, err)
	}
	if appErr.Code != want.Code {
		t.Fatalf("expected error code %s, got %s", want.Code, appErr.Code)
	}
}

// AssertFloatEquals fails the test unless got is within a small tolerance of
// want. Monetary values here are float64, so exact comparison is fragile.
func AssertFloatEquals(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

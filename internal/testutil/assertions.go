package testutil

import (
	"errors"
	"reflect"
	"testing"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertOnlyStatusChanged checks that after equals before in every field,
// timestamps included, except Status which must be want.
func AssertOnlyStatusChanged(t *testing.T, before, after *models.Risk, want models.RiskStatus) {
	t.Helper()

	if after.Status != want {
		t.Fatalf("expected status %s, got %s", want, after.Status)
	}
	expected := *before
	expected.Status = want
	expected.Assess()
	if !reflect.DeepEqual(expected, *after) {
		t.Errorf("expected only status to change:\nbefore %+v\nafter  %+v", *before, *after)
	}
}

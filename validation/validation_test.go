package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/navkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "checkout")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestIsRouteIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"profile", true},
		{"settings/privacy", true},
		{"Feature.Detail-2_b", true},
		{"", false},
		{"2fa", false},
		{"has space", false},
		{"/leading", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsRouteIdentifier(tc.in); got != tc.want {
				t.Errorf("IsRouteIdentifier(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidatorRouteIdentifier(t *testing.T) {
	v := New()
	v.RouteIdentifier("identifier", "profile")
	v.RouteIdentifier("identifier", "")
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.RouteIdentifier("identifier", "not valid")
	if !v2.HasErrors() {
		t.Error("expected error for malformed identifier")
	}
}

func TestValidatorUnique(t *testing.T) {
	v := New()
	v.Unique("router.scopes", []string{"onboarding", "checkout"})
	if v.HasErrors() {
		t.Error("expected no error for distinct values")
	}

	v2 := New()
	v2.Unique("router.scopes", []string{"checkout", "onboarding", "checkout"})
	if !v2.HasErrors() {
		t.Fatal("expected error for duplicate value")
	}
	if !strings.Contains(v2.Errors()[0].Message, `"checkout"`) {
		t.Errorf("expected duplicate to be named, got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorRangeFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 1, false},
		{"inside", 0.25, false},
		{"below", -0.1, true},
		{"above", 1.5, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().RangeFloat("sample_rate", tc.value, 0, 1)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("RangeFloat(%v) errors = %v, wantErr %v", tc.value, v.Errors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("style", "push", []string{"push", "present"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("style", "sheet", []string{"push", "present"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("style", "", []string{"push"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("name", "checkout")
	if appErr := v.Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	v2.Required("addr", "")
	appErr2 := v2.Validate()
	if appErr2 == nil {
		t.Fatal("expected error")
	}
	if appErr2.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr2.Code)
	}
	if appErr2.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr2.Message, "name") || !strings.Contains(appErr2.Message, "addr") {
		t.Errorf("expected both fields in message, got %q", appErr2.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "checkout").RouteIdentifier("name", "checkout").OneOf("style", "push", []string{"push"})
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type profileRoute struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Tab    string `json:"tab" validate:"omitempty,oneof=posts likes"`
}

type envelope struct {
	Identifier string `json:"identifier" validate:"required,route_id"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(profileRoute{UserID: uuid.NewString(), Tab: "likes"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(profileRoute{UserID: "", Tab: "followers"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "user_id") || !strings.Contains(errStr, "tab") {
		t.Errorf("expected error to mention json field names, got %q", errStr)
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors, got %v", appErr.Details["fields"])
	}
}

func TestStructValidateRouteID(t *testing.T) {
	if err := Validate(envelope{Identifier: "settings/privacy"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(envelope{Identifier: "bad id"})
	if err == nil {
		t.Fatal("expected error for malformed identifier")
	}
	if !strings.Contains(err.Error(), "must be a valid route identifier") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStructValidateNonStruct(t *testing.T) {
	err := Validate(42)
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestValidateUUIDFunc(t *testing.T) {
	validUUID := uuid.New().String()
	id, err := ValidateUUID("request_id", validUUID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id.String() != validUUID {
		t.Errorf("expected %s, got %s", validUUID, id.String())
	}
}

func TestValidateUUIDFuncEmpty(t *testing.T) {
	if _, err := ValidateUUID("request_id", ""); err == nil {
		t.Error("expected error for empty UUID")
	}
}

func TestValidateUUIDFuncInvalid(t *testing.T) {
	if _, err := ValidateUUID("request_id", "bad"); err == nil {
		t.Error("expected error for invalid UUID")
	}
}

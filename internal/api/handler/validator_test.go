package handler

import (
	"errors"
	"testing"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

type sampleRequest struct {
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Areas    []string `json:"areas"    validate:"required,min=1"`
	Priority string   `json:"priority" validate:"omitempty,oneof=high low"`
}

func TestRequestValidator(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&sampleRequest{Email: "a@example.com", Password: "secret", Areas: []string{"tax"}}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	err := v.Validate(&sampleRequest{Email: "nope", Password: "abc", Areas: []string{}, Priority: "urgent"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	want := "email must be a valid email address; " +
		"password must be at least 6 characters; " +
		"areas must contain at least 1; " +
		"priority must be one of [high low]"
	if ve.Error() != want {
		t.Fatalf("message:\n got %q\nwant %q", ve.Error(), want)
	}

	err = v.Validate(&sampleRequest{})
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "email is required; password is required; areas is required" {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
}

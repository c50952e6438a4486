package validator

import (
	"strings"
	"testing"
)

type signupPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
}

func TestValidateStructPasses(t *testing.T) {
	payload := signupPayload{
		Email:     "a@example.com",
		Password:  "password1",
		FirstName: "Ada",
	}

	if err := ValidateStruct(&payload); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	payload := signupPayload{Email: "not-an-email", Password: "short"}

	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	failures, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(failures) != 3 {
		t.Fatalf("expected 3 failures, got %d", len(failures))
	}

	msg := err.Error()
	for _, field := range []string{"email", "password", "first_name"} {
		if !strings.Contains(msg, field) {
			t.Fatalf("expected message to reference %q, got %s", field, msg)
		}
	}
}

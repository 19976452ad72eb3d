package validators

import (
	"testing"

	"photochat/internal/models"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.io", "first.last@example.com", "user+tag@sub.domain.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "a@b", "@example.com", "a b@example.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"longenough", "P4ssw0rd!", "ABCdef123@#"}
	for _, password := range valid {
		if !ValidatePassword(password) {
			t.Errorf("ValidatePassword(%q) = false, want true", password)
		}
	}

	invalid := []string{"", "short", "has space8", "tab\tchars"}
	for _, password := range invalid {
		if ValidatePassword(password) {
			t.Errorf("ValidatePassword(%q) = true, want false", password)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	ok := &models.RegisterRequestBody{
		Email:    "a@b.io",
		Password: "longenough",
		Username: "alice",
	}
	if errs := ValidateRegistration(ok); len(errs) != 0 {
		t.Fatalf("valid registration rejected: %v", errs)
	}

	bad := &models.RegisterRequestBody{Email: "nope", Password: "short", Username: "x"}
	if errs := ValidateRegistration(bad); len(errs) != 3 {
		t.Fatalf("expected 3 validation errors, got %v", errs)
	}

	if errs := ValidateRegistration(nil); len(errs) != 1 {
		t.Fatalf("nil body should yield one error, got %v", errs)
	}
}

package user_test

import (
	"testing"

	"github.com/placementtrack/api/internal/domain/user"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		reg        user.Registration
		wantFields []string
	}{
		{
			name:       "valid",
			reg:        user.Registration{Name: "Jo", Email: "jo@x.com", Password: "secret1"},
			wantFields: nil,
		},
		{
			name:       "everything missing reports all three",
			reg:        user.Registration{Name: "J"},
			wantFields: []string{"name", "email", "password"},
		},
		{
			name:       "name too short after trim",
			reg:        user.Registration{Name: " a ", Email: "jo@x.com", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "email missing",
			reg:        user.Registration{Name: "Jo", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "email malformed",
			reg:        user.Registration{Name: "Jo", Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "password too short",
			reg:        user.Registration{Name: "Jo", Email: "jo@x.com", Password: "12345"},
			wantFields: []string{"password"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := user.ValidateRegistration(tc.reg)

			if len(errs) != len(tc.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tc.wantFields))
			}

			for _, field := range tc.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("missing error for field %q in %v", field, errs)
				}
			}
		})
	}
}

func TestValidateRegistrationMessages(t *testing.T) {
	errs := user.ValidateRegistration(user.Registration{})

	want := map[string]string{
		"name":     "Name must be at least 2 characters long",
		"email":    "Email is required",
		"password": "Password must be at least 6 characters long",
	}

	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errs[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := user.NormalizeEmail("  A@B.com "); got != "a@b.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "a@b.com")
	}
}

func TestNewDefaults(t *testing.T) {
	u := user.New(" Jo ", "JO@X.com", "hash", "")

	if u.Name != "Jo" {
		t.Errorf("Name = %q, want trimmed %q", u.Name, "Jo")
	}
	if u.Email != "jo@x.com" {
		t.Errorf("Email = %q, want normalized %q", u.Email, "jo@x.com")
	}
	if u.Role != "user" {
		t.Errorf("Role = %q, want default %q", u.Role, "user")
	}
	if !u.IsActive {
		t.Error("new users must start active")
	}
	if u.CreatedAt.IsZero() || !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Error("timestamps must be set and equal at creation")
	}
}

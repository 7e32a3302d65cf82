package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ValidateRegistration returns a field -> message map; empty means valid.
// The rules are independent so a bad payload reports every failure at once.
// Uniqueness is not checked here, that is a store concern.
func ValidateRegistration(reg Registration) map[string]string {
	errs := make(map[string]string)

	if err := validate.Var(strings.TrimSpace(reg.Name), "required,min=2"); err != nil {
		errs["name"] = "Name must be at least 2 characters long"
	}

	if strings.TrimSpace(reg.Email) == "" {
		errs["email"] = "Email is required"
	} else if err := validate.Var(strings.TrimSpace(reg.Email), "email"); err != nil {
		errs["email"] = "Invalid email format"
	}

	if err := validate.Var(reg.Password, "required,min=6"); err != nil {
		errs["password"] = "Password must be at least 6 characters long"
	}

	return errs
}

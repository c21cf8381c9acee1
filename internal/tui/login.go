// Package tui contains the interactive terminal surfaces: the login
// form and the entity browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// LoginInput holds the values collected by the login form.
type LoginInput struct {
	Email    string
	Password string
}

// RunLoginForm collects credentials interactively. Prefilled fields are
// kept as defaults.
func RunLoginForm(input *LoginInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Value(&input.Email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&input.Password).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password is required")
				}
				return nil
			}),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("login form failed: %w", err)
	}

	return nil
}

// RegisterInput holds the values collected by the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// RunRegisterForm collects new-account details interactively.
func RunRegisterForm(input *RegisterInput) error {
	if input.Role == "" {
		input.Role = "USER"
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&input.Username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("username is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Email").
			Value(&input.Email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&input.Password).
			Validate(func(s string) error {
				if len(s) < 8 {
					return fmt.Errorf("password must be at least 8 characters")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Role").
			Options(
				huh.NewOption("User", "USER"),
				huh.NewOption("Admin", "ADMIN"),
			).
			Value(&input.Role),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("register form failed: %w", err)
	}

	return nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

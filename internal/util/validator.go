package util

import (
	"fmt"
	"regexp"
	"strconv"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the registration email shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 120 {
		return fmt.Errorf("email too long, max 120 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum credential policy.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password too short, min 6 characters")
	}
	if len(password) > 72 { // bcrypt input limit
		return fmt.Errorf("password too long, max 72 characters")
	}
	return nil
}

// ParseAmount parses a user-supplied amount string and requires it to be a
// positive number within a sane upper bound.
func ParseAmount(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", f)
	}
	if f >= 10000000 {
		return 0, fmt.Errorf("amount too large, got %v", f)
	}
	return f, nil
}

// ValidateCategory bounds a category name; empty is allowed and falls back
// to the schema default downstream.
func ValidateCategory(category string) error {
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}

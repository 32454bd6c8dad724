package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// ValidateUsername trims and checks a username. Returned value is the
// trimmed form to store.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 8 {
		return "", fieldErr("username", "username must be at least 8 characters")
	}
	if strings.ContainsFunc(username, unicode.IsSpace) {
		return "", fieldErr("username", "username cannot contain spaces")
	}
	return username, nil
}

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", fieldErr("email", "invalid email format")
	}
	return email, nil
}

// ValidatePassword enforces the password complexity rules used at signup.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fieldErr("password", "password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return fieldErr("password", "password must contain at least one uppercase letter")
	}
	if !lower {
		return fieldErr("password", "password must contain at least one lowercase letter")
	}
	if !digit {
		return fieldErr("password", "password must contain at least one digit")
	}
	return nil
}

// ValidatePhone checks an optional phone number in E.164 form.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fieldErr("phone", "phone must be in E.164 format, e.g. +254712345678")
	}
	return nil
}

package services

import (
	"digiroots/internal/apperr"
	"digiroots/internal/utils"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
	minNameLen     = 2
	maxNameLen     = 50
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgShortPassword   = "Password must be at least 6 characters"
	msgLongPassword    = "Password cannot exceed 72 bytes"
	msgServerError     = apperr.ServerErrorMessage
	msgDuplicateEmail  = "An account with this email already exists"
	msgBadCredentials  = "Invalid email or password"
	msgAccountNotFound = "User not found"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLen {
		return apperr.Validation("Name must be at least 2 characters")
	}
	if n > maxNameLen {
		return apperr.Validation("Name cannot exceed 50 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return apperr.Validation(msgShortPassword)
	}
	return nil
}

// hashPassword maps bcrypt's length limit to a validation error; anything else
// is fatal for the request.
func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation(msgLongPassword)
	}
	if err != nil {
		return "", apperr.Dependency(msgServerError, err)
	}
	return hash, nil
}

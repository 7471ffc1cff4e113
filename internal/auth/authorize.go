package auth

import (
	"errors"

	"recruit-platform/internal/models"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authorize allows a session carrying a user id and, when required is
// non-empty, a matching role.
func Authorize(s *Session, required models.UserType) error {
	if !s.Authenticated() {
		return ErrUnauthorized
	}
	if required != "" && s.UserType != required {
		return ErrUnauthorized
	}
	return nil
}

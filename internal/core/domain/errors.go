package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the session authority and the directory.
// Transport maps each to a deterministic HTTP status; none of them leaks
// whether the email or the password was the mismatched credential.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvariant          = errors.New("invariant violation")
)

// Specialised kinds. errors.Is matches them against their parent sentinel.
var (
	ErrEmailTaken = fmt.Errorf("%w: email already in use", ErrValidation)
	ErrLastAdmin  = fmt.Errorf("%w: cannot remove the last administrator", ErrInvariant)
)

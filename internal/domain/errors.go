package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")

	ErrAccountNotFound      = errors.New("account not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")

	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidRole          = errors.New("role must be mentor or mentee")
	ErrRoleMismatch         = errors.New("submission contains fields for another role")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidTagName       = errors.New("tag name must contain at least one letter or digit")
	ErrInvalidTagKind       = errors.New("invalid tag kind")
)

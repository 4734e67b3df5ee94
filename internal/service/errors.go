package service

import (
	"errors"

	"github.com/rolodex/rolodex/pkg/auth"
)

var (
	// ErrForbidden is returned when the caller does not own the target record.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCompany is returned when a contact references a company that
	// does not exist or belongs to another user.
	ErrInvalidCompany = errors.New("invalid company reference")
	// ErrEmailTaken is returned by sign-up for an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by sign-in for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrInvalidSession is returned for unknown, revoked or expired sessions.
	ErrInvalidSession = auth.ErrInvalidSession
)

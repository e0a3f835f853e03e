package domain

import "errors"

// Domain errors. None of these is fatal: services report them to the caller
// as user-facing "unavailable"/"no seats" style messages.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventStarted       = errors.New("event already started")
	ErrNoSeats            = errors.New("no seats left")
	ErrRequestPending     = errors.New("request already pending")
	ErrRequestNotFound    = errors.New("request not found")
	ErrAlreadySignedUp    = errors.New("user already holds a confirmed signup")
	ErrSignupNotFound     = errors.New("signup not found")
	ErrSignupNotConfirmed = errors.New("signup is not confirmed")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrLocationNotFound   = errors.New("location not found")
)

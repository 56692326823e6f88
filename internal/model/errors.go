package model

import "errors"

// Common errors used across the application
var (
	// Party errors
	ErrPartyNotFound = errors.New("party not found")
	ErrPartyClosed   = errors.New("party is closed")
	ErrPartyFull     = errors.New("party is full")
	ErrRoleFull      = errors.New("role is full")
	ErrNotAuthorized = errors.New("not authorized to close party")
	ErrNotInParty    = errors.New("user is not in party")

	// Role errors
	ErrUnknownRole = errors.New("unknown role")

	// View errors
	ErrViewNotTracked = errors.New("view does not belong to a tracked party")
)

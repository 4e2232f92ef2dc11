// Package services defines the business logic of the store services: user
// lifecycle, call recording, and audit log queries. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when a create collides with the unique
	// username or phone constraint.
	ErrDuplicateUser = errors.New("username or phone already taken")

	// ErrNoCalls indicates that the call history is empty.
	ErrNoCalls = errors.New("no calls found")

	// ErrDuplicateCall is returned when the optional unique-username index
	// on calls rejects a second call for the same user.
	ErrDuplicateCall = errors.New("call already recorded for this username")

	// ErrInvalidDate is returned when a submitted call date is not valid
	// ISO 8601.
	ErrInvalidDate = errors.New("invalid date format, use ISO 8601")

	// ErrInvalidRange is returned when a log query's start or end date does
	// not match the required YYYY-MM-DDTHH:MM:SS layout.
	ErrInvalidRange = errors.New("invalid date format, use YYYY-MM-DDTHH:MM:SS")

	// ErrNoLogs indicates that no log rows fall inside the queried range.
	ErrNoLogs = errors.New("no logs found for the given period")
)

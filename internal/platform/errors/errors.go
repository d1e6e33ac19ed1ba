package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrNotSignedIn         = errors.New("not signed in")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountExists       = errors.New("account already exists")

	// Save pipeline. ErrSessionTooShort is a handled rejection, not a failure.
	ErrSessionTooShort  = errors.New("session is shorter than the minimum length")
	ErrSaveTimeout      = errors.New("save timed out")
	ErrRemoteWrite      = errors.New("remote write failed")
	ErrLocalPersistence = errors.New("local persistence failed")
	ErrNoPendingSave    = errors.New("no pending save")
	ErrSaveInFlight     = errors.New("save already in flight")
	ErrPendingSave      = errors.New("a failed save is waiting for retry or dismissal")
)

package model

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for identifiers that are not valid store ids.
	ErrInvalidID = errors.New("invalid id")
	// ErrIncorrectPIN is returned when a session is requested with a wrong PIN.
	ErrIncorrectPIN = errors.New("incorrect pin")
	// ErrSessionsDisabled is returned when no PIN is configured on the server.
	ErrSessionsDisabled = errors.New("sessions disabled")
	// ErrStorageDisabled is returned when backups are requested without object storage.
	ErrStorageDisabled = errors.New("storage disabled")
)

// ErrInvalidBackupKey is returned for empty or malformed snapshot keys.
var ErrInvalidBackupKey = errors.New("invalid backup key")

package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrRoomNotFound = errors.New("room not found")

	ErrLockTimeout = errors.New("timed out waiting for room lock")
)

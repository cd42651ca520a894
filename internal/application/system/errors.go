package system

import "errors"

var (
	// ErrInvalidConfig is returned by constructors whose collaborators or
	// tuning cannot work. Callers disable the component and keep running.
	ErrInvalidConfig = errors.New("invalid controller configuration")
	// ErrUnknownItem is returned when an item id has no blueprint
	ErrUnknownItem = errors.New("unknown item")
	// ErrItemRejected is returned when an item cannot be used right now
	ErrItemRejected = errors.New("item use rejected")
	// ErrIndexOutOfRange is returned for an inventory slot that does not exist
	ErrIndexOutOfRange = errors.New("inventory index out of range")
)

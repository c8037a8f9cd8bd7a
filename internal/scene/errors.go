package scene

import "errors"

var (
	// ErrUnknownElement is returned for references to elements that are not
	// (or no longer) part of the scene.
	ErrUnknownElement = errors.New("unknown element")
	// ErrUnknownKind is returned when adding an element of an undefined kind
	ErrUnknownKind = errors.New("unknown element kind")
	// ErrInvalidParams is returned for non-positive or non-finite sizes
	ErrInvalidParams = errors.New("invalid element parameters")
	// ErrSelfConnection is returned when both endpoints are the same element
	ErrSelfConnection = errors.New("cannot connect an element to itself")
)

package geodesy

import "errors"

// Sentinel errors returned (wrapped) by constructors and conversions. Match
// them with errors.Is.
var (
	// ErrInvalidEllipsoid is returned for ellipsoids with non-positive axes
	// or a flattening outside [0, 1).
	ErrInvalidEllipsoid = errors.New("invalid ellipsoid")

	// ErrInvalidParameter is returned when a datum, unit, solver or
	// projection parameter is missing or out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOutOfRange is returned when a point lies outside the domain of a
	// conversion.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrNotImplemented is returned for capabilities that are named but
	// have no implementation, such as an unsupported projection method.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotFound is returned by catalog lookups that match nothing.
	ErrNotFound = errors.New("not found")
)

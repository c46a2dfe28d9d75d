package pbrmaps

import "errors"

var (
	// ErrDimensionMismatch is returned when images combined by one operation
	// differ in width or height. There is no implicit resizing.
	ErrDimensionMismatch = errors.New("pbrmaps: dimension mismatch")
	// ErrMissingInput is returned when a required image was not supplied.
	ErrMissingInput = errors.New("pbrmaps: missing input")
	// ErrInvalidScalar is returned for scalar values outside [0,1].
	ErrInvalidScalar = errors.New("pbrmaps: scalar out of range")
	// ErrInvalidSize is returned for non-positive image dimensions.
	ErrInvalidSize = errors.New("pbrmaps: invalid image size")
)

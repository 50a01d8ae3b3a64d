package probemap

import "errors"

var (
	// Requested size is below 2, where no prime exists.
	ErrInvalidSize = errors.New("probemap: invalid size")

	ErrKeyNotFound = errors.New("probemap: key not found")

	// Returned when a rebuild would exceed the configured maximum capacity.
	// The live table is left as it was before the call.
	ErrAllocationFailure = errors.New("probemap: allocation failure")

	// The probe walk visited every slot without finding a free one.
	ErrTableFull = errors.New("probemap: table is full")

	ErrDestroyed = errors.New("probemap: map is destroyed")
)

package arraypool

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for negative lengths passed to Acquire
	// and for non-positive pool limits.
	ErrInvalidArgument = errors.New("arraypool: invalid argument")

	// ErrNilArray is returned when Release is called with a nil slice.
	ErrNilArray = errors.New("arraypool: nil array")

	// ErrProtocolViolation is returned when Release is called with an array
	// whose length is not a size class of the pool. Such an array could not
	// have been acquired from it.
	ErrProtocolViolation = errors.New("arraypool: array does not belong to pool")
)

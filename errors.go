package kmem

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

var (
	// ErrUnboundProvider is returned when an allocator is used without a provider bound to it
	ErrUnboundProvider = errors.New("no provider is bound")
	// ErrSizeOverflow is returned when a requested element count does not fit the address-space size type
	ErrSizeOverflow = errors.New("element count exceeds the addressable size")
	// ErrInvalidSize is returned when a reservation is requested for zero or negative bytes
	ErrInvalidSize = errors.New("requested size must be greater than zero")
	// ErrExhausted is returned when a provider cannot satisfy a reservation request
	ErrExhausted = errors.New("provider cannot satisfy the reservation")
	// ErrPermission is returned when the underlying memory source denies access to a range
	ErrPermission = errors.New("access to the requested range was denied")
	// ErrOutOfRange is recorded on a MapRequest whose range lies outside its allocation
	ErrOutOfRange = errors.New("range lies outside the allocation")
	// ErrAlreadyMapped is recorded on a MapRequest that maps a range which is already mapped
	ErrAlreadyMapped = errors.New("range is already mapped")
	// ErrNotMapped is recorded on a MapRequest that operates on a range which is not mapped
	ErrNotMapped = errors.New("range is not mapped")
	// ErrAddressNotFound is returned when a reverse lookup finds no allocation for an address
	ErrAddressNotFound = errors.New("address is not mapped by this provider")
)

// Package kalloc bridges the non-panicking kmem provider contract into the
// fail/succeed contract container code expects: an Allocator either hands
// back usable storage or returns an error that aborts the container
// operation, never a partially-completed result.
package kalloc

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/kmemio/kmem"
	"golang.org/x/exp/slog"
)

// CreateOptions contains optional settings when creating an Allocator
type CreateOptions struct {
	// Logger is the logger the allocator will write debug output to. Defaults
	// to slog.Default()
	Logger *slog.Logger
}

// Allocator obtains backing storage for values of type T from a bound
// kmem.Provider. It is a value type that container machinery may copy freely:
// it carries no allocation state of its own, so every copy bound to the same
// provider is interchangeable with the original.
//
// Every Allocate performs exactly one provider reservation plus one
// whole-allocation map, and every Deallocate one reverse lookup plus one
// unmap. There is no pooling.
type Allocator[T any] struct {
	provider kmem.Provider
	logger   *slog.Logger
}

// New creates an Allocator for type T bound to the provided provider.
func New[T any](provider kmem.Provider) Allocator[T] {
	return NewWithOptions[T](provider, CreateOptions{})
}

// NewWithOptions creates an Allocator for type T bound to the provided
// provider, with additional optional settings.
func NewWithOptions[T any](provider kmem.Provider, options CreateOptions) Allocator[T] {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Allocator[T]{
		provider: provider,
		logger:   logger,
	}
}

// Rebind returns an Allocator for element type U bound to the same provider
// as a.
func Rebind[U any, T any](a Allocator[T]) Allocator[U] {
	return Allocator[U]{
		provider: a.provider,
		logger:   a.logger,
	}
}

// Equal reports whether two Allocators of possibly-different element types
// are interchangeable, which is the case exactly when they are bound to the
// same provider instance.
func Equal[A any, B any](a Allocator[A], b Allocator[B]) bool {
	return a.provider == b.provider
}

// Provider returns the provider this allocator is bound to, or nil if it is
// unbound.
func (a Allocator[T]) Provider() kmem.Provider {
	return a.provider
}

// Equal reports whether a and other are bound to the same provider instance.
func (a Allocator[T]) Equal(other Allocator[T]) bool {
	return a.provider == other.provider
}

// MaxSize returns the largest element count whose byte size fits the
// platform's int.
func (a Allocator[T]) MaxSize() int {
	size := sizeOf[T]()
	if size == 0 {
		return math.MaxInt
	}

	return math.MaxInt / size
}

// Allocate reserves and maps storage for n contiguous elements of type T and
// returns the address of the first element. It fails with
// kmem.ErrUnboundProvider if no provider is bound and with
// kmem.ErrSizeOverflow, without contacting the provider, if n exceeds
// MaxSize(). Provider and mapping failures are surfaced as wrapped errors.
func (a Allocator[T]) Allocate(n int) (*T, error) {
	if a.provider == nil {
		return nil, errors.Wrap(kmem.ErrUnboundProvider, "Allocate")
	}
	if n < 0 || n > a.MaxSize() {
		return nil, errors.Wrapf(kmem.ErrSizeOverflow, "requested %d elements of %d bytes each", n, sizeOf[T]())
	}

	bytes := n * sizeOf[T]()
	a.log().Debug("Allocator::Allocate", slog.String("Provider", a.provider.Name()), slog.Int("Bytes", bytes))

	alloc, err := a.provider.Allocate(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "provider %s failed to reserve %d bytes", a.provider.Name(), bytes)
	}
	if alloc == nil {
		return nil, errors.Newf("provider %s returned neither an allocation nor an error for %d bytes", a.provider.Name(), bytes)
	}

	mapped := kmem.MapWhole(alloc)
	if mapped.Err != nil {
		return nil, errors.Wrapf(mapped.Err, "failed to map %d reserved bytes", alloc.Size())
	}
	if mapped.Addr == nil {
		return nil, errors.Newf("provider %s mapped %d bytes but produced no address", a.provider.Name(), alloc.Size())
	}

	return (*T)(mapped.Addr), nil
}

// AllocateSlice is a convenience over Allocate that wraps the mapped storage
// in a slice of length and capacity n.
func (a Allocator[T]) AllocateSlice(n int) ([]T, error) {
	first, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice(first, n), nil
}

// Deallocate releases storage previously returned by Allocate. The element
// count n must match the count passed to Allocate; the mapped range itself is
// recovered from the provider's reverse lookup. It fails with
// kmem.ErrAddressNotFound, performing no unmap, if p was not produced by the
// bound provider.
func (a Allocator[T]) Deallocate(p *T, n int) error {
	if a.provider == nil {
		return errors.Wrap(kmem.ErrUnboundProvider, "Deallocate")
	}

	a.log().Debug("Allocator::Deallocate", slog.String("Provider", a.provider.Name()), slog.Int("Elements", n))

	var mapped kmem.MapRequest
	alloc := a.provider.AllocationFor(unsafe.Pointer(p), &mapped)
	if alloc == nil {
		return errors.Wrapf(kmem.ErrAddressNotFound, "provider %s does not map %p", a.provider.Name(), p)
	}

	if !kmem.UnmapOne(alloc, &mapped) {
		return errors.Wrapf(mapped.Err, "failed to unmap %d bytes at offset %d", mapped.Length, mapped.Offset)
	}

	return nil
}

// Construct initializes the element at p in place.
func (a Allocator[T]) Construct(p *T, value T) {
	*p = value
}

// Destroy finalizes the element at p, returning it to the zero value.
func (a Allocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (a Allocator[T]) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

func sizeOf[T any]() int {
	var value T
	return int(unsafe.Sizeof(value))
}

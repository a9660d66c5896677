package kmem

import "unsafe"

// Provider is a named source of allocations. A provider is shared by every
// allocation it produced and every allocator bound to it, and must remain
// alive while any of them does.
//
// The interface defines no concurrency primitives of its own: a provider that
// supports multi-threaded use must document that and serialize its own
// bookkeeping.
type Provider interface {
	// Name returns a stable identifier for this provider, suitable for
	// printing and diagnostics.
	Name() string

	// Allocate reserves at least bytes of backing capacity and returns a new
	// allocation, or returns a nil allocation and an error describing why the
	// reservation could not be satisfied. It never returns both.
	Allocate(bytes int) (Allocation, error)

	// AllocationFor returns the allocation that owns the mapped address addr,
	// or nil if addr is not currently mapped by this provider. When a non-nil
	// allocation is returned and outRequest is non-nil, outRequest is filled
	// with the mapped range containing addr. The granularity of the range
	// (whole allocation or exact sub-range) is provider-defined.
	AllocationFor(addr unsafe.Pointer, outRequest *MapRequest) Allocation
}

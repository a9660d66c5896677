// Package kmem defines a pluggable contract for obtaining raw memory regions
// from an underlying memory source (an OS virtual-memory subsystem, a
// huge-page pool, a remote memory service) and for controlling how ranges of
// those regions are mapped into the calling process. Concrete providers live
// outside this module and implement the Provider and Allocation interfaces.
package kmem

import "unsafe"

// MapRequest describes a single sub-range operation against an Allocation.
// Offset and Length are inputs; Addr and Err are filled in by the operation.
// A MapRequest is transient and caller-owned: allocations never retain it.
type MapRequest struct {
	// Addr is the address of the mapping in the local process, or nil if the
	// range is not mapped or the operation failed
	Addr unsafe.Pointer
	// Offset is the byte offset of the range within the allocation
	Offset int
	// Length is the byte length of the range
	Length int
	// Err is the error that failed this entry, if any. Batch operations record
	// failures here rather than aborting the batch.
	Err error
}

// Allocation is a single contiguous reservation of backing capacity obtained
// from a Provider. Its size is fixed at creation.
//
// The four batch operations share one shape: they process the supplied
// requests independently and in order, record per-entry failures in each
// request's Err field, and return the number of entries that succeeded. They
// must not panic for runtime failures. The batch form exists so a provider
// backed by a single privileged call can amortize transition cost; a provider
// may equally implement it as N sequential single operations.
type Allocation interface {
	// Provider returns the provider this allocation was obtained from. The
	// reference is for lookup and diagnostics only and does not extend the
	// provider's lifetime.
	Provider() Provider

	// Size returns the total reserved capacity in bytes. Providers may reserve
	// more than was requested, so callers must use this rather than the size
	// they asked for.
	Size() int

	// Map maps each request's [Offset, Offset+Length) range into the calling
	// process, setting Addr on success.
	Map(requests []MapRequest) int

	// Unmap releases the local mapping for each request's previously-mapped
	// range. Unmapping a range that is not mapped is a per-entry error.
	Unmap(requests []MapRequest) int

	// Prefault eagerly resolves backing storage for already-mapped ranges in
	// one bulk step instead of page by page. Each range must point at a valid
	// existing mapping or a per-entry error is recorded.
	Prefault(requests []MapRequest) int

	// Discard returns each mapped range to its freshly-mapped state, dropping
	// dirty contents and any backing-store commitment without unmapping it.
	// Subsequent access observes provider-defined (typically zeroed) storage.
	Discard(requests []MapRequest) int
}

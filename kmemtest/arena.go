// Package kmemtest provides an arena-backed kmem.Provider for use in tests,
// in the way net/http/httptest provides a server. It is not intended for
// production use: reservations are bump-allocated from a fixed in-process
// byte arena and are never reclaimed.
package kmemtest

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/kmemio/kmem"
	"github.com/kmemio/kmem/internal/utils"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"
)

// DefaultGranularity is the reservation granularity used when none is
// provided via ArenaOptions.
const DefaultGranularity = 64

// ArenaOptions contains optional settings when creating an ArenaProvider
type ArenaOptions struct {
	// Granularity is the power-of-two number of bytes reservations are rounded
	// up to. Defaults to DefaultGranularity.
	Granularity int
	// Logger is the logger the provider will write debug output to. Defaults
	// to slog.Default()
	Logger *slog.Logger
	// ExternallySynchronized deactivates the provider's internal mutex. The
	// consumer must guarantee the provider and its allocations are used from
	// only one thread at a time or are synchronized by some other mechanism.
	ExternallySynchronized bool
}

type mappedRange struct {
	alloc  *arenaAllocation
	offset int
	length int
}

// ArenaProvider is a kmem.Provider backed by a fixed byte arena. Unless
// created with ExternallySynchronized it is safe for concurrent use; mapping
// bookkeeping is tracked per exact sub-range, so AllocationFor recovers the
// precise range containing any mapped address, not just the range's start.
type ArenaProvider struct {
	arena       []byte
	granularity int
	logger      *slog.Logger

	mutex       utils.OptionalRWMutex
	nextOffset  int
	allocations []*arenaAllocation
	mappedAddrs *swiss.Map[uintptr, mappedRange]
	forcedErr   error
}

var _ kmem.Provider = (*ArenaProvider)(nil)
var _ kmem.StatisticsReporter = (*ArenaProvider)(nil)
var _ kmem.Validatable = (*ArenaProvider)(nil)

// NewArenaProvider creates an ArenaProvider with arenaBytes of backing
// capacity.
func NewArenaProvider(arenaBytes int) (*ArenaProvider, error) {
	return NewArenaProviderWithOptions(arenaBytes, ArenaOptions{})
}

// NewArenaProviderWithOptions creates an ArenaProvider with arenaBytes of
// backing capacity and additional optional settings.
func NewArenaProviderWithOptions(arenaBytes int, options ArenaOptions) (*ArenaProvider, error) {
	if arenaBytes <= 0 {
		return nil, errors.Wrapf(kmem.ErrInvalidSize, "arena of %d bytes", arenaBytes)
	}

	granularity := options.Granularity
	if granularity == 0 {
		granularity = DefaultGranularity
	}
	err := kmem.CheckPow2(granularity, "options.Granularity")
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ArenaProvider{
		arena:       make([]byte, arenaBytes),
		granularity: granularity,
		logger:      logger,
		mutex: utils.OptionalRWMutex{
			UseMutex: !options.ExternallySynchronized,
		},
		mappedAddrs: swiss.NewMap[uintptr, mappedRange](42),
	}, nil
}

func (p *ArenaProvider) Name() string {
	return "kmemtest.Arena"
}

// Allocate reserves at least bytes from the arena, rounded up to the
// provider's granularity, so the returned allocation's Size may exceed the
// request.
func (p *ArenaProvider) Allocate(bytes int) (kmem.Allocation, error) {
	if bytes <= 0 {
		return nil, errors.Wrapf(kmem.ErrInvalidSize, "requested %d bytes", bytes)
	}

	// Registered before the lock so validation runs after it is released
	defer kmem.DebugValidate(p)
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.forcedErr != nil {
		return nil, p.forcedErr
	}

	kmem.DebugCheckPow2(p.granularity, "granularity")
	reserved := kmem.AlignUp(bytes, uint(p.granularity))
	if reserved < bytes || p.nextOffset+reserved > len(p.arena) {
		return nil, errors.Wrapf(kmem.ErrExhausted, "%d bytes requested, %d remain", reserved, len(p.arena)-p.nextOffset)
	}

	alloc := &arenaAllocation{
		provider:      p,
		base:          p.nextOffset,
		size:          reserved,
		mappedOffsets: map[int]int{},
	}
	p.nextOffset += reserved
	p.allocations = append(p.allocations, alloc)

	p.logger.Debug("ArenaProvider::Allocate",
		slog.Int("Requested", bytes),
		slog.Int("Reserved", reserved),
		slog.Int("Remaining", len(p.arena)-p.nextOffset))

	return alloc, nil
}

// AllocationFor resolves any address inside a live mapping: start addresses
// hit the reverse-lookup table directly, interior addresses fall back to a
// scan of the owning allocation's mapped ranges.
func (p *ArenaProvider) AllocationFor(addr unsafe.Pointer, outRequest *kmem.MapRequest) kmem.Allocation {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if mapped, ok := p.mappedAddrs.Get(uintptr(addr)); ok {
		fillRequest(outRequest, addr, mapped.offset, mapped.length)
		return mapped.alloc
	}

	arenaBase := uintptr(unsafe.Pointer(&p.arena[0]))
	if uintptr(addr) < arenaBase || uintptr(addr) >= arenaBase+uintptr(p.nextOffset) {
		return nil
	}

	arenaOffset := int(uintptr(addr) - arenaBase)
	for _, alloc := range p.allocations {
		if arenaOffset < alloc.base || arenaOffset >= alloc.base+alloc.size {
			continue
		}

		relative := arenaOffset - alloc.base
		for offset, length := range alloc.mappedOffsets {
			if relative >= offset && relative < offset+length {
				fillRequest(outRequest, unsafe.Pointer(&p.arena[alloc.base+offset]), offset, length)
				return alloc
			}
		}

		// Inside the allocation but not inside any live mapping
		return nil
	}

	return nil
}

func fillRequest(outRequest *kmem.MapRequest, addr unsafe.Pointer, offset, length int) {
	if outRequest == nil {
		return
	}
	outRequest.Addr = addr
	outRequest.Offset = offset
	outRequest.Length = length
	outRequest.Err = nil
}

// FailWith forces every subsequent Allocate call to fail with err. Pass nil
// to restore normal behavior.
func (p *ArenaProvider) FailWith(err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.forcedErr = err
}

func (p *ArenaProvider) AddStatistics(stats *kmem.Statistics) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	stats.AllocationCount += len(p.allocations)
	for _, alloc := range p.allocations {
		stats.AllocationBytes += alloc.size
	}

	p.mappedAddrs.Iter(func(_ uintptr, mapped mappedRange) bool {
		stats.MappedRangeCount++
		stats.MappedBytes += mapped.length
		return false
	})
}

func (p *ArenaProvider) PrintDetailedMap(json *jwriter.ObjectState) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	json.Name("ArenaBytes").Int(len(p.arena))
	json.Name("ReservedBytes").Int(p.nextOffset)

	allocsJson := json.Name("Allocations").Array()
	for _, alloc := range p.allocations {
		o := allocsJson.Object()
		o.Name("Base").Int(alloc.base)
		o.Name("Size").Int(alloc.size)
		o.Name("MappedRanges").Int(len(alloc.mappedOffsets))
		o.End()
	}
	allocsJson.End()
}

// Validate checks the provider's internal bookkeeping for consistency.
func (p *ArenaProvider) Validate() error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.nextOffset > len(p.arena) {
		return errors.Newf("reserved %d bytes from an arena of %d", p.nextOffset, len(p.arena))
	}

	expectedBase := 0
	for _, alloc := range p.allocations {
		if alloc.base != expectedBase {
			return errors.Newf("allocation base is %d, expected %d", alloc.base, expectedBase)
		}
		expectedBase += alloc.size

		for offset, length := range alloc.mappedOffsets {
			if offset < 0 || length <= 0 || offset+length > alloc.size {
				return errors.Newf("mapped range [%d, %d) lies outside an allocation of %d bytes", offset, offset+length, alloc.size)
			}

			addr := uintptr(unsafe.Pointer(&p.arena[alloc.base+offset]))
			if _, ok := p.mappedAddrs.Get(addr); !ok {
				return errors.Newf("mapped range at offset %d is missing from the reverse-lookup table", offset)
			}
		}
	}

	return nil
}

type arenaAllocation struct {
	provider *ArenaProvider
	base     int
	size     int

	// live mappings keyed by offset
	mappedOffsets map[int]int
}

var _ kmem.Allocation = (*arenaAllocation)(nil)

func (a *arenaAllocation) Provider() kmem.Provider {
	return a.provider
}

func (a *arenaAllocation) Size() int {
	return a.size
}

func (a *arenaAllocation) Map(requests []kmem.MapRequest) int {
	defer kmem.DebugValidate(a.provider)
	a.provider.mutex.Lock()
	defer a.provider.mutex.Unlock()

	count := 0
	for i := range requests {
		request := &requests[i]
		request.Addr = nil

		if request.Offset < 0 || request.Length <= 0 || request.Offset+request.Length > a.size {
			request.Err = errors.Wrapf(kmem.ErrOutOfRange, "[%d, %d) in an allocation of %d bytes", request.Offset, request.Offset+request.Length, a.size)
			continue
		}
		if _, mapped := a.mappedOffsets[request.Offset]; mapped {
			request.Err = errors.Wrapf(kmem.ErrAlreadyMapped, "offset %d", request.Offset)
			continue
		}

		addr := unsafe.Pointer(&a.provider.arena[a.base+request.Offset])
		a.mappedOffsets[request.Offset] = request.Length
		a.provider.mappedAddrs.Put(uintptr(addr), mappedRange{
			alloc:  a,
			offset: request.Offset,
			length: request.Length,
		})

		request.Addr = addr
		request.Err = nil
		count++
	}

	return count
}

func (a *arenaAllocation) Unmap(requests []kmem.MapRequest) int {
	defer kmem.DebugValidate(a.provider)
	a.provider.mutex.Lock()
	defer a.provider.mutex.Unlock()

	count := 0
	for i := range requests {
		request := &requests[i]

		length, mapped := a.mappedOffsets[request.Offset]
		if !mapped || length != request.Length {
			request.Err = errors.Wrapf(kmem.ErrNotMapped, "[%d, %d)", request.Offset, request.Offset+request.Length)
			continue
		}

		delete(a.mappedOffsets, request.Offset)
		a.provider.mappedAddrs.Delete(uintptr(unsafe.Pointer(&a.provider.arena[a.base+request.Offset])))

		request.Addr = nil
		request.Err = nil
		count++
	}

	return count
}

func (a *arenaAllocation) Prefault(requests []kmem.MapRequest) int {
	a.provider.mutex.RLock()
	defer a.provider.mutex.RUnlock()

	count := 0
	for i := range requests {
		request := &requests[i]

		length, mapped := a.mappedOffsets[request.Offset]
		if !mapped || request.Length <= 0 || request.Length > length {
			request.Err = errors.Wrapf(kmem.ErrNotMapped, "[%d, %d)", request.Offset, request.Offset+request.Length)
			continue
		}

		// Touch one byte per granularity step, the in-process stand-in for
		// resolving page faults in bulk
		data := a.provider.arena[a.base+request.Offset : a.base+request.Offset+request.Length]
		for touch := 0; touch < len(data); touch += a.provider.granularity {
			_ = data[touch]
		}

		request.Addr = unsafe.Pointer(&a.provider.arena[a.base+request.Offset])
		request.Err = nil
		count++
	}

	return count
}

func (a *arenaAllocation) Discard(requests []kmem.MapRequest) int {
	defer kmem.DebugValidate(a.provider)
	a.provider.mutex.Lock()
	defer a.provider.mutex.Unlock()

	count := 0
	for i := range requests {
		request := &requests[i]

		length, mapped := a.mappedOffsets[request.Offset]
		if !mapped || request.Length <= 0 || request.Length > length {
			request.Err = errors.Wrapf(kmem.ErrNotMapped, "[%d, %d)", request.Offset, request.Offset+request.Length)
			continue
		}

		data := a.provider.arena[a.base+request.Offset : a.base+request.Offset+request.Length]
		for clear := range data {
			data[clear] = 0
		}

		request.Addr = unsafe.Pointer(&a.provider.arena[a.base+request.Offset])
		request.Err = nil
		count++
	}

	return count
}

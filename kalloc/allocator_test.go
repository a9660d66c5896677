package kalloc_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/kmemio/kmem"
	"github.com/kmemio/kmem/kalloc"
	"github.com/kmemio/kmem/kmemtest"
	"github.com/kmemio/kmem/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEquality(t *testing.T) {
	first, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)
	second, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)

	a1 := kalloc.New[uint64](first)
	a2 := kalloc.New[uint64](first)
	b := kalloc.New[uint64](second)

	require.True(t, a1.Equal(a2))
	require.False(t, a1.Equal(b))

	var unbound kalloc.Allocator[uint64]
	require.False(t, a1.Equal(unbound))
	require.True(t, unbound.Equal(kalloc.Allocator[uint64]{}))
}

func TestRebindPreservesProvider(t *testing.T) {
	provider, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)

	a := kalloc.New[uint64](provider)
	b := kalloc.Rebind[byte](a)

	require.True(t, kalloc.Equal(a, b))
	require.Same(t, provider, b.Provider())
}

func TestMaxSize(t *testing.T) {
	var a kalloc.Allocator[uint64]
	require.Equal(t, math.MaxInt/8, a.MaxSize())

	var empty kalloc.Allocator[struct{}]
	require.Equal(t, math.MaxInt, empty.MaxSize())
}

func TestAllocateUnbound(t *testing.T) {
	var a kalloc.Allocator[uint64]

	ptr, err := a.Allocate(1)
	require.ErrorIs(t, err, kmem.ErrUnboundProvider)
	require.Nil(t, ptr)

	var value uint64
	require.ErrorIs(t, a.Deallocate(&value, 1), kmem.ErrUnboundProvider)
}

func TestAllocateOverflowDoesNotContactProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	a := kalloc.New[uint64](provider)

	ptr, err := a.Allocate(a.MaxSize() + 1)
	require.ErrorIs(t, err, kmem.ErrSizeOverflow)
	require.Nil(t, ptr)

	ptr, err = a.Allocate(-1)
	require.ErrorIs(t, err, kmem.ErrSizeOverflow)
	require.Nil(t, ptr)
}

func TestAllocateSurfacesProviderFailure(t *testing.T) {
	provider, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)
	provider.FailWith(kmem.ErrExhausted)

	a := kalloc.New[uint64](provider)

	ptr, err := a.Allocate(1)
	require.ErrorIs(t, err, kmem.ErrExhausted)
	require.Nil(t, ptr)
}

func TestAllocateSurfacesMapFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	alloc := mocks.NewMockAllocation(ctrl)

	provider.EXPECT().Name().Return("mock provider").AnyTimes()
	provider.EXPECT().Allocate(16).Return(alloc, nil)
	alloc.EXPECT().Size().Return(16).AnyTimes()
	alloc.EXPECT().Map(gomock.Len(1)).DoAndReturn(func(requests []kmem.MapRequest) int {
		requests[0].Err = kmem.ErrPermission
		return 0
	})

	a := kalloc.New[uint64](provider)

	ptr, err := a.Allocate(2)
	require.ErrorIs(t, err, kmem.ErrPermission)
	require.Nil(t, ptr)
}

func TestDeallocateUnknownAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().Name().Return("mock provider").AnyTimes()
	provider.EXPECT().AllocationFor(gomock.Any(), gomock.Any()).Return(nil)

	a := kalloc.New[uint64](provider)

	var value uint64
	require.ErrorIs(t, a.Deallocate(&value, 1), kmem.ErrAddressNotFound)
}

func TestAllocateDeallocateAgainstArena(t *testing.T) {
	provider, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)

	a := kalloc.New[uint64](provider)

	// 100 8-byte elements round-trips an 800-byte reservation
	ptr, err := a.Allocate(100)
	require.NoError(t, err)
	require.NotNil(t, ptr)

	a.Construct(ptr, 42)
	require.EqualValues(t, 42, *ptr)
	a.Destroy(ptr)
	require.Zero(t, *ptr)

	require.NoError(t, a.Deallocate(ptr, 100))
	require.Nil(t, provider.AllocationFor(unsafe.Pointer(ptr), nil))

	// The range is gone, so a second release is a lookup miss
	require.ErrorIs(t, a.Deallocate(ptr, 100), kmem.ErrAddressNotFound)

	// The provider remains usable afterwards
	next, err := a.Allocate(10)
	require.NoError(t, err)
	require.NotNil(t, next)
}

func TestAllocateSlice(t *testing.T) {
	provider, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)

	a := kalloc.New[uint64](provider)

	elements, err := a.AllocateSlice(8)
	require.NoError(t, err)
	require.Len(t, elements, 8)

	for i := range elements {
		elements[i] = uint64(i)
	}
	require.EqualValues(t, 7, elements[7])

	require.NoError(t, a.Deallocate(&elements[0], 8))
}

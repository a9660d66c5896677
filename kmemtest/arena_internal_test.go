package kmemtest

import (
	"testing"

	"github.com/kmemio/kmem"
	"github.com/stretchr/testify/require"
)

func TestValidateDetectsCorruptBookkeeping(t *testing.T) {
	provider, err := NewArenaProvider(4096)
	require.NoError(t, err)

	allocation, err := provider.Allocate(100)
	require.NoError(t, err)

	mapped := kmem.MapWhole(allocation)
	require.NoError(t, mapped.Err)
	require.NoError(t, provider.Validate())

	alloc := allocation.(*arenaAllocation)

	// A mapped range extending past the allocation
	alloc.mappedOffsets[64] = alloc.size
	require.Error(t, provider.Validate())
	delete(alloc.mappedOffsets, 64)
	require.NoError(t, provider.Validate())

	// A mapped range missing from the reverse-lookup table
	alloc.mappedOffsets[64] = 16
	require.Error(t, provider.Validate())
	delete(alloc.mappedOffsets, 64)

	// An allocation base that does not follow its predecessor
	alloc.base += provider.granularity
	require.Error(t, provider.Validate())
	alloc.base -= provider.granularity
	require.NoError(t, provider.Validate())
}

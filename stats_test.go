package kmem_test

import (
	"testing"

	"github.com/kmemio/kmem"
	"github.com/kmemio/kmem/kmemtest"
	"github.com/kmemio/kmem/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBuildStatsStringWithReporter(t *testing.T) {
	provider, err := kmemtest.NewArenaProvider(4096)
	require.NoError(t, err)

	alloc, err := provider.Allocate(100)
	require.NoError(t, err)

	mapped := kmem.MapWhole(alloc)
	require.NoError(t, mapped.Err)

	require.JSONEq(t, `{
		"Name": "kmemtest.Arena",
		"Statistics": {
			"AllocationCount": 1,
			"AllocationBytes": 128,
			"MappedRangeCount": 1,
			"MappedBytes": 128
		},
		"DetailedMap": {
			"ArenaBytes": 4096,
			"ReservedBytes": 128,
			"Allocations": [
				{"Base": 0, "Size": 128, "MappedRanges": 1}
			]
		}
	}`, kmem.BuildStatsString(provider))
}

func TestBuildStatsStringNameOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mock provider")

	require.JSONEq(t, `{"Name": "mock provider"}`, kmem.BuildStatsString(provider))
}

func TestStatisticsAccumulate(t *testing.T) {
	var stats kmem.Statistics
	stats.Clear()

	stats.AddStatistics(&kmem.Statistics{
		AllocationCount:  2,
		AllocationBytes:  256,
		MappedRangeCount: 1,
		MappedBytes:      64,
	})
	stats.AddStatistics(&kmem.Statistics{
		AllocationCount:  1,
		AllocationBytes:  64,
		MappedRangeCount: 2,
		MappedBytes:      128,
	})

	require.Equal(t, kmem.Statistics{
		AllocationCount:  3,
		AllocationBytes:  320,
		MappedRangeCount: 3,
		MappedBytes:      192,
	}, stats)
}

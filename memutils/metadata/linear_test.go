package metadata_test

import (
	"math"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/nativeview/memutils"
	"github.com/vkngwrapper/nativeview/memutils/metadata"
)

func allocate(t *testing.T, linear *metadata.LinearBlockMetadata, size int, alignment uint) int {
	success, request, err := linear.CreateAllocationRequest(size, alignment, metadata.SuballocationRecord, math.MaxInt)
	require.NoError(t, err)
	require.True(t, success)

	err = linear.Alloc(request)
	require.NoError(t, err)

	return request.Offset
}

func TestLinearAlloc(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(1000)

	var stats memutils.DetailedStatistics
	stats.Clear()
	linear.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      1,
			BlockBytes:      1000,
			AllocationCount: 0,
			AllocationBytes: 0,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  math.MaxInt,
		AllocationSizeMax:  0,
		UnusedRangeSizeMin: 1000,
		UnusedRangeSizeMax: 1000,
	}, stats)

	require.Equal(t, 0, allocate(t, linear, 100, 1))
	require.Equal(t, 100+memutils.DebugMargin, allocate(t, linear, 50, 1))
	require.Equal(t, 2, linear.AllocationCount())

	stats.Clear()
	linear.AddDetailedStatistics(&stats)
	require.Equal(t, 2, stats.AllocationCount)
	require.Equal(t, 150, stats.AllocationBytes)
	require.Equal(t, 50, stats.AllocationSizeMin)
	require.Equal(t, 100, stats.AllocationSizeMax)
	require.Equal(t, 850, linear.SumFreeSize())

	require.NoError(t, linear.Validate())
}

func TestLinearAlignment(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(256)

	allocate(t, linear, 3, 1)
	offset := allocate(t, linear, 16, 8)
	require.Zero(t, offset%8)
	require.GreaterOrEqual(t, offset, 3)

	_, _, err := linear.CreateAllocationRequest(16, 12, metadata.SuballocationRecord, math.MaxInt)
	require.ErrorIs(t, err, memutils.PowerOfTwoError)

	require.NoError(t, linear.Validate())
}

func TestLinearOutOfSpace(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(128)

	allocate(t, linear, 100, 1)

	success, _, err := linear.CreateAllocationRequest(100, 1, metadata.SuballocationRecord, math.MaxInt)
	require.NoError(t, err)
	require.False(t, success)

	success, _, err = linear.CreateAllocationRequest(4, 1, metadata.SuballocationRecord, 50)
	require.NoError(t, err)
	require.False(t, success)

	_, _, err = linear.CreateAllocationRequest(0, 1, metadata.SuballocationRecord, math.MaxInt)
	require.Error(t, err)

	_, _, err = linear.CreateAllocationRequest(4, 1, metadata.SuballocationFree, math.MaxInt)
	require.Error(t, err)
}

func TestLinearStaleRequest(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(128)

	success, request, err := linear.CreateAllocationRequest(16, 1, metadata.SuballocationRecord, math.MaxInt)
	require.NoError(t, err)
	require.True(t, success)

	allocate(t, linear, 16, 1)

	err = linear.Alloc(request)
	require.Error(t, err)
}

func TestLinearClear(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(1000)

	allocate(t, linear, 100, 1)
	allocate(t, linear, 200, 1)

	linear.Clear()
	require.True(t, linear.IsEmpty())
	require.Equal(t, 1000, linear.SumFreeSize())
	require.NoError(t, linear.Validate())

	require.Equal(t, 0, allocate(t, linear, 10, 1))
	require.Equal(t, 10+memutils.DebugMargin, linear.StackTop())
}

func TestLinearVisitRegions(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(64)

	allocate(t, linear, 4, 1)
	allocate(t, linear, 8, 16)

	var regions []metadata.Suballocation
	err := linear.VisitAllRegions(func(suballoc metadata.Suballocation, free bool) error {
		require.Equal(t, free, suballoc.Type == metadata.SuballocationFree)
		regions = append(regions, suballoc)
		return nil
	})
	require.NoError(t, err)

	second := memutils.AlignUp(4+memutils.DebugMargin, 16)
	require.Equal(t, []metadata.Suballocation{
		{Offset: 0, Size: 4, Type: metadata.SuballocationRecord},
		{Offset: 4, Size: second - 4, Type: metadata.SuballocationFree},
		{Offset: second, Size: 8, Type: metadata.SuballocationRecord},
		{Offset: second + 8, Size: 64 - second - 8, Type: metadata.SuballocationFree},
	}, regions)

	var stats memutils.Statistics
	linear.AddStatistics(&stats)
	require.Equal(t, memutils.Statistics{
		BlockCount:      1,
		BlockBytes:      64,
		AllocationCount: 2,
		AllocationBytes: 12,
	}, stats)
}

func TestLinearBlockJson(t *testing.T) {
	linear := metadata.NewLinearBlockMetadata()
	linear.Init(32)

	allocate(t, linear, 8, 1)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	linear.BlockJsonData(&obj)
	obj.End()
	require.NoError(t, writer.Error())

	if memutils.DebugMargin != 0 {
		return
	}

	require.JSONEq(t, `{
		"TotalBytes": 32,
		"UnusedBytes": 24,
		"Allocations": 1,
		"UnusedRanges": 1,
		"Suballocations": [
			{"Offset": 0, "Type": "RECORD", "Size": 8},
			{"Offset": 8, "Type": "FREE", "Size": 24}
		]
	}`, string(writer.Bytes()))
}

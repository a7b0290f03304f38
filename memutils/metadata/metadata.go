package metadata

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/nativeview/memutils"
)

// BlockMetadata tracks the suballocations carved out of a single contiguous block of memory.
// It never touches the memory itself except to verify debug margins in CheckCorruption; the
// consumer owns the memory and applies the offsets this metadata hands out.
type BlockMetadata interface {
	// Init must be called before the BlockMetadata is used. size is the size in bytes of the
	// block of memory the metadata will be managing.
	Init(size int)
	// Size retrieves the size in bytes that the block was initialized with
	Size() int

	// Validate performs internal consistency checks on the metadata. When the implementation is
	// functioning correctly, it should not be possible for this method to return an error.
	Validate() error
	// AllocationCount returns the number of suballocations currently live in the block
	AllocationCount() int
	// SumFreeSize returns the number of bytes in the block not covered by a live suballocation
	SumFreeSize() int
	// IsEmpty will return true if this block has no live suballocations
	IsEmpty() bool

	// VisitAllRegions will call the provided callback once for each allocation and free region in
	// the block, in offset order. Iteration stops at the first error returned by the callback.
	VisitAllRegions(handleBlock func(suballoc Suballocation, free bool) error) error

	// AddDetailedStatistics sums this block's allocation statistics into the provided statistics
	AddDetailedStatistics(stats *memutils.DetailedStatistics)
	// AddStatistics sums this block's allocation statistics into the provided statistics
	AddStatistics(stats *memutils.Statistics)

	// Clear instantly frees all allocations
	Clear()
	// BlockJsonData populates a json object with information about this block
	BlockJsonData(json *jwriter.ObjectState)

	// CheckCorruption accepts a pointer to the underlying memory that this block manages. It returns
	// nil if the debug margin after every live suballocation is intact. The margins are only written
	// when the module is built with the `debug_mem_utils` build tag, and it is the responsibility of
	// the consumer to write them after allocation with memutils.WriteMagicValue.
	CheckCorruption(blockData unsafe.Pointer) error

	// CreateAllocationRequest retrieves an AllocationRequest object indicating where the
	// implementation would place an allocation of allocSize bytes aligned to allocAlignment. The
	// returned bool is false if the block cannot hold the allocation below maxOffset. The request is
	// committed with Alloc.
	CreateAllocationRequest(allocSize int, allocAlignment uint, allocType SuballocationType, maxOffset int) (bool, AllocationRequest, error)
	// Alloc commits an AllocationRequest. The implementation must return an error if the request
	// is no longer valid.
	Alloc(request AllocationRequest) error
}

// BlockMetadataBase provides the shared size bookkeeping and json helpers for BlockMetadata
// implementations.
type BlockMetadataBase struct {
	size int
}

// Init sizes the block in bytes
func (m *BlockMetadataBase) Init(size int) {
	m.size = size
}

// Size returns the size of the block in bytes
func (m *BlockMetadataBase) Size() int { return m.size }

// WriteBlockJson writes the summary members shared by every implementation into an open json object
func (m *BlockMetadataBase) WriteBlockJson(json *jwriter.ObjectState, unusedBytes, allocationCount, unusedRangeCount int) {
	json.Name("TotalBytes").Int(m.Size())
	json.Name("UnusedBytes").Int(unusedBytes)
	json.Name("Allocations").Int(allocationCount)
	json.Name("UnusedRanges").Int(unusedRangeCount)
}

func (m *BlockMetadataBase) writeUnusedRangeJson(json *jwriter.ArrayState, offset, size int) {
	obj := json.Object()
	defer obj.End()

	obj.Name("Offset").Int(offset)
	obj.Name("Type").String(SuballocationFree.String())
	obj.Name("Size").Int(size)
}

func (m *BlockMetadataBase) writeAllocationJson(json *jwriter.ArrayState, suballoc Suballocation) {
	obj := json.Object()
	defer obj.End()

	obj.Name("Offset").Int(suballoc.Offset)
	obj.Name("Type").String(suballoc.Type.String())
	obj.Name("Size").Int(suballoc.Size)
}

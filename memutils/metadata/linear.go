package metadata

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/nativeview/memutils"
)

// LinearBlockMetadata is a BlockMetadata implementation that treats its block as a stack.
// New allocations are always placed after the last live allocation, which makes allocation
// constant-time and keeps every allocation's address stable for the life of the block.
// Allocations are never released individually; Clear releases all of them at once.
type LinearBlockMetadata struct {
	BlockMetadataBase

	sumFreeSize    int
	suballocations []Suballocation
}

var _ BlockMetadata = &LinearBlockMetadata{}

// NewLinearBlockMetadata creates a new, uninitialized LinearBlockMetadata. Init must be called
// before use.
func NewLinearBlockMetadata() *LinearBlockMetadata {
	return &LinearBlockMetadata{
		suballocations: []Suballocation{},
	}
}

// Init prepares this structure for allocations and sizes the block in bytes based on the parameter size.
func (m *LinearBlockMetadata) Init(size int) {
	m.BlockMetadataBase.Init(size)
	m.sumFreeSize = size
}

// SumFreeSize returns the number of free bytes of memory in the block.
func (m *LinearBlockMetadata) SumFreeSize() int {
	return m.sumFreeSize
}

// IsEmpty will return true if this block has no live suballocations
func (m *LinearBlockMetadata) IsEmpty() bool {
	return m.AllocationCount() == 0
}

// AllocationCount returns the number of live suballocations
func (m *LinearBlockMetadata) AllocationCount() int {
	return len(m.suballocations)
}

// StackTop returns the offset just past the last live allocation and its debug margin. This is
// the lowest offset a new allocation could be placed at, before alignment.
func (m *LinearBlockMetadata) StackTop() int {
	if len(m.suballocations) == 0 {
		return 0
	}

	last := m.suballocations[len(m.suballocations)-1]
	return last.Offset + last.Size + memutils.DebugMargin
}

// Validate performs internal consistency checks on the metadata.
func (m *LinearBlockMetadata) Validate() error {
	var sumUsedSize, offset int
	for index, suballoc := range m.suballocations {
		if suballoc.Offset < offset {
			return errors.Errorf("suballoc at index %d has offset %d- this collides with previous suballocations, expected offset %d or greater", index, suballoc.Offset, offset)
		}

		if suballoc.Size <= 0 {
			return errors.Errorf("suballoc at index %d has invalid size %d", index, suballoc.Size)
		}

		if suballoc.Type == SuballocationFree {
			return errors.Errorf("suballoc at index %d is free, but the stack only holds live allocations", index)
		}
		sumUsedSize += suballoc.Size

		offset = suballoc.Offset + suballoc.Size + memutils.DebugMargin
	}

	if offset > m.Size() {
		return errors.Errorf("calculated a maximum memory offset of %d, but the metadata indicates a total size of %d, which is smaller", offset, m.Size())
	}

	if m.sumFreeSize != m.Size()-sumUsedSize {
		return errors.Errorf("the metadata's free size %d and the calculated used size %d don't add up to the metadata-reported size of %d", m.sumFreeSize, sumUsedSize, m.Size())
	}

	return nil
}

// VisitAllRegions will call the provided callback once for each allocation and free region in
// the block. Alignment gaps and debug margins between allocations are reported as free regions.
func (m *LinearBlockMetadata) VisitAllRegions(handleBlock func(suballoc Suballocation, free bool) error) error {
	lastOffset := 0

	for _, suballoc := range m.suballocations {
		if lastOffset < suballoc.Offset {
			err := handleBlock(freeRegion(lastOffset, suballoc.Offset-lastOffset), true)
			if err != nil {
				return err
			}
		}

		err := handleBlock(suballoc, false)
		if err != nil {
			return err
		}

		lastOffset = suballoc.Offset + suballoc.Size
	}

	if lastOffset < m.Size() {
		return handleBlock(freeRegion(lastOffset, m.Size()-lastOffset), true)
	}

	return nil
}

// AddDetailedStatistics sums this block's allocation statistics into the statistics currently present
// in the provided memutils.DetailedStatistics object.
func (m *LinearBlockMetadata) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.BlockCount++
	stats.BlockBytes += m.Size()

	_ = m.VisitAllRegions(
		func(suballoc Suballocation, free bool) error {
			if free {
				stats.AddUnusedRange(suballoc.Size)
			} else {
				stats.AddAllocation(suballoc.Size)
			}

			return nil
		})
}

// AddStatistics sums this block's allocation statistics into the statistics currently present in the
// provided memutils.Statistics object.
func (m *LinearBlockMetadata) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount++
	stats.BlockBytes += m.Size()
	stats.AllocationBytes += m.Size() - m.sumFreeSize
	stats.AllocationCount += m.AllocationCount()
}

// BlockJsonData populates a json object with information about this block
func (m *LinearBlockMetadata) BlockJsonData(json *jwriter.ObjectState) {
	var unusedRangeCount int

	_ = m.VisitAllRegions(
		func(suballoc Suballocation, free bool) error {
			if free {
				unusedRangeCount++
			}

			return nil
		})

	m.WriteBlockJson(json, m.sumFreeSize, m.AllocationCount(), unusedRangeCount)

	suballocations := json.Name("Suballocations").Array()
	defer suballocations.End()

	_ = m.VisitAllRegions(
		func(suballoc Suballocation, free bool) error {
			if free {
				m.writeUnusedRangeJson(&suballocations, suballoc.Offset, suballoc.Size)
				return nil
			}

			m.writeAllocationJson(&suballocations, suballoc)
			return nil
		})
}

// CreateAllocationRequest retrieves an AllocationRequest object for an allocation placed at the
// top of the stack. The request fails (returns false) if the aligned allocation and its debug
// margin would extend past the end of the block or begin past maxOffset.
func (m *LinearBlockMetadata) CreateAllocationRequest(
	allocSize int, allocAlignment uint,
	allocType SuballocationType,
	maxOffset int,
) (bool, AllocationRequest, error) {
	if allocSize <= 0 {
		return false, AllocationRequest{}, errors.New("allocation size must be greater than 0")
	}
	if allocType == SuballocationFree {
		return false, AllocationRequest{}, errors.New("allocation type cannot be SuballocationFree")
	}
	err := memutils.CheckPow2(allocAlignment, "allocAlignment")
	if err != nil {
		return false, AllocationRequest{}, err
	}
	memutils.DebugValidate(m)

	offset := memutils.AlignUp(m.StackTop(), allocAlignment)
	if offset > maxOffset || offset+allocSize+memutils.DebugMargin > m.Size() {
		return false, AllocationRequest{}, nil
	}

	return true, AllocationRequest{
		Offset: offset,
		Size:   allocSize,
		Type:   allocType,
	}, nil
}

// Alloc commits an AllocationRequest object. It fails if another allocation has been pushed onto
// the stack since the request was created.
func (m *LinearBlockMetadata) Alloc(req AllocationRequest) error {
	if req.Offset < m.StackTop() {
		return errors.New("attempted to allocate memory in the middle of active memory")
	}

	if req.Offset+req.Size+memutils.DebugMargin > m.Size() {
		return errors.New("attempted to allocate memory past the end of the block")
	}

	m.suballocations = append(m.suballocations, Suballocation{
		Offset: req.Offset,
		Size:   req.Size,
		Type:   req.Type,
	})
	m.sumFreeSize -= req.Size
	return nil
}

// Clear instantly frees all allocations
func (m *LinearBlockMetadata) Clear() {
	m.sumFreeSize = m.Size()
	m.suballocations = m.suballocations[:0]
}

// CheckCorruption verifies the debug margin after every live suballocation
func (m *LinearBlockMetadata) CheckCorruption(blockData unsafe.Pointer) error {
	for _, suballoc := range m.suballocations {
		if !memutils.ValidateMagicValue(blockData, suballoc.Offset+suballoc.Size) {
			return errors.Errorf("MEMORY CORRUPTION DETECTED AFTER VALIDATED ALLOCATION AT OFFSET %d!", suballoc.Offset)
		}
	}

	return nil
}

func freeRegion(offset, size int) Suballocation {
	return Suballocation{Offset: offset, Size: size, Type: SuballocationFree}
}

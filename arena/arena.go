package arena

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/nativeview/internal/utils"
	"github.com/vkngwrapper/nativeview/memutils"
	"github.com/vkngwrapper/nativeview/memutils/metadata"
	"golang.org/x/exp/slog"
)

// ErrOutOfMemory is returned when an allocation would require more blocks than
// CreateOptions.MaxBlockCount allows
var ErrOutOfMemory = errors.New("arena is out of memory")

// ErrReleased is returned when allocating from an arena after Release has been called
var ErrReleased = errors.New("arena has been released")

// Arena hands out aligned regions of memory that all die together. There is no way to free an
// individual allocation: Reset makes all of the arena's memory available for reuse, and Release
// returns it to the system. Any pointer obtained from the arena is invalid after either call, and
// nothing tracks whether a caller still holds one.
//
// Memory returned from Allocate and AllocateArray is zero-filled unless the arena was created with
// CreateSkipZeroing.
type Arena struct {
	logger      *slog.Logger
	mutex       utils.OptionalMutex
	createFlags CreateFlags

	backing       Backing
	blockSize     int
	maxBlockCount int

	blocks      []*memoryBlock
	nextBlockId int
	released    bool
}

// Allocate returns a pointer to size bytes of memory aligned to alignment. alignment must be a
// power of two no greater than MaxAlignment.
func (a *Arena) Allocate(size int, alignment uint) (unsafe.Pointer, error) {
	return a.allocate(size, alignment, metadata.SuballocationRecord)
}

// AllocateArray returns a pointer to count contiguous elements of size bytes each, with the first
// element aligned to alignment. size is expected to already be a multiple of alignment.
func (a *Arena) AllocateArray(size int, alignment uint, count int) (unsafe.Pointer, error) {
	if count <= 0 {
		return nil, errors.Newf("array allocation requires a positive count, but count is %d", count)
	}
	if size > 0 && count > math.MaxInt/size {
		return nil, errors.Newf("array of %d elements of %d bytes overflows", count, size)
	}

	return a.allocate(size*count, alignment, metadata.SuballocationArray)
}

// AllocateBytes returns a byte slice of the requested length backed by arena memory
func (a *Arena) AllocateBytes(length int) ([]byte, error) {
	ptr, err := a.allocate(length, 1, metadata.SuballocationRaw)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(ptr), length), nil
}

func (a *Arena) allocate(size int, alignment uint, allocType metadata.SuballocationType) (unsafe.Pointer, error) {
	if size <= 0 {
		return nil, errors.Newf("allocation size must be positive, but size is %d", size)
	}
	err := memutils.CheckPow2(alignment, "alignment")
	if err != nil {
		return nil, err
	}
	if alignment > MaxAlignment {
		return nil, errors.Wrapf(memutils.AlignmentError, "alignment %d is greater than the arena maximum of %d", alignment, MaxAlignment)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.released {
		return nil, ErrReleased
	}

	zero := a.createFlags&CreateSkipZeroing == 0

	// Newer blocks are more likely to have room
	for blockIndex := len(a.blocks) - 1; blockIndex >= 0; blockIndex-- {
		ptr, err := a.blocks[blockIndex].Allocate(size, alignment, allocType, zero)
		if err != nil {
			return nil, err
		}
		if ptr != nil {
			return ptr, nil
		}
	}

	block, err := a.createBlock(max(a.blockSize, size+memutils.DebugMargin))
	if err != nil {
		return nil, err
	}

	ptr, err := block.Allocate(size, alignment, allocType, zero)
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, errors.AssertionFailedf("a fresh block of %d bytes could not hold an allocation of %d bytes", block.metadata.Size(), size)
	}

	return ptr, nil
}

func (a *Arena) createBlock(size int) (*memoryBlock, error) {
	if a.maxBlockCount > 0 && len(a.blocks) >= a.maxBlockCount {
		return nil, errors.Wrapf(ErrOutOfMemory, "arena already holds its maximum of %d blocks", a.maxBlockCount)
	}

	block := &memoryBlock{}
	err := block.Init(a.logger, a.backing, size, a.nextBlockId)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Arena::createBlock",
		slog.Int("block", a.nextBlockId),
		slog.Int("size", size),
		slog.String("backing", a.backing.String()),
	)

	a.nextBlockId++
	a.blocks = append(a.blocks, block)
	return block, nil
}

// Reset frees every allocation in the arena at once while keeping its blocks for reuse
func (a *Arena) Reset() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.logger.Debug("Arena::Reset", slog.Int("blocks", len(a.blocks)))

	for _, block := range a.blocks {
		block.Reset()
	}
}

// Release returns all of the arena's blocks to the system. The arena cannot be used afterward.
// Calling Release more than once is a no-op.
func (a *Arena) Release() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.released {
		return nil
	}

	a.logger.Debug("Arena::Release", slog.Int("blocks", len(a.blocks)))

	var err error
	for _, block := range a.blocks {
		err = errors.CombineErrors(err, block.Destroy())
	}

	a.blocks = nil
	a.released = true
	return err
}

// BlockCount returns the number of blocks currently held by the arena
func (a *Arena) BlockCount() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.blocks)
}

// Statistics populates the provided statistics with the arena's block and allocation totals
func (a *Arena) Statistics(stats *memutils.Statistics) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stats.Clear()
	for _, block := range a.blocks {
		block.metadata.AddStatistics(stats)
	}
}

// DetailedStatistics populates the provided statistics with the arena's block and allocation
// totals as well as the size distribution of its allocations and unused ranges
func (a *Arena) DetailedStatistics(stats *memutils.DetailedStatistics) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stats.Clear()
	for _, block := range a.blocks {
		block.metadata.AddDetailedStatistics(stats)
	}
}

// BuildStatsString returns a json document describing the arena's current state. If
// detailedMap is true, every block's allocations and unused ranges are listed.
func (a *Arena) BuildStatsString(detailedMap bool) string {
	var stats memutils.DetailedStatistics
	a.DetailedStatistics(&stats)

	a.mutex.Lock()
	defer a.mutex.Unlock()

	writer := jwriter.NewWriter()
	root := writer.Object()

	total := root.Name("Total").Object()
	stats.WriteJSON(&total)
	total.End()

	config := root.Name("Config").Object()
	config.Name("Flags").String(a.createFlags.String())
	config.Name("Backing").String(a.backing.String())
	config.Name("BlockSize").Int(a.blockSize)
	config.Name("MaxBlockCount").Int(a.maxBlockCount)
	config.End()

	if detailedMap {
		blocks := root.Name("Blocks").Array()
		for _, block := range a.blocks {
			obj := blocks.Object()
			block.PrintDetailedMap(&obj)
			obj.End()
		}
		blocks.End()
	}

	root.End()
	return string(writer.Bytes())
}

// CheckCorruption verifies the debug margins written after every allocation. It only detects
// anything when built with the debug_mem_utils build tag.
func (a *Arena) CheckCorruption() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.logger.Debug("Arena::CheckCorruption")

	for _, block := range a.blocks {
		err := block.CheckCorruption()
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate performs internal consistency checks on every block in the arena
func (a *Arena) Validate() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, block := range a.blocks {
		err := block.Validate()
		if err != nil {
			return errors.Wrapf(err, "arena block %d", block.id)
		}
	}

	return nil
}

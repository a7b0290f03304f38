package arena

import (
	"context"
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/nativeview/memutils"
	"github.com/vkngwrapper/nativeview/memutils/metadata"
	"golang.org/x/exp/slog"
)

type memoryBlock struct {
	id      int
	logger  *slog.Logger
	backing Backing

	// memory keeps the block's storage reachable; data is the aligned start of the block within it
	memory []byte
	data   unsafe.Pointer
	// dirty is set once the block has been recycled and may hold stale bytes
	dirty bool

	metadata metadata.BlockMetadata
}

func (b *memoryBlock) Init(logger *slog.Logger, backing Backing, size int, id int) error {
	if b.data != nil {
		panic("attempting to initialize a memory block that is already in use")
	}

	var err error
	switch backing {
	case BackingHeap:
		b.memory, b.data = allocateHeap(size)
	case BackingMapped:
		b.memory, b.data, err = mapMemory(size)
	default:
		err = errors.Errorf("unknown arena backing: %s", backing)
	}
	if err != nil {
		return err
	}

	b.id = id
	b.logger = logger
	b.backing = backing
	b.dirty = false
	b.metadata = metadata.NewLinearBlockMetadata()
	b.metadata.Init(size)

	return nil
}

func (b *memoryBlock) Destroy() error {
	if b.data == nil {
		panic("attempting to destroy a memory block, but it did not have any backing memory")
	}

	if !b.metadata.IsEmpty() {
		b.logger.Debug("releasing block with live allocations",
			slog.Int("block", b.id),
			slog.Int("allocations", b.metadata.AllocationCount()),
			slog.Int("usedBytes", b.metadata.Size()-b.metadata.SumFreeSize()),
		)
	}

	var err error
	if b.backing == BackingMapped {
		err = unmapMemory(b.memory)
		if err != nil {
			b.logger.LogAttrs(context.Background(), slog.LevelError,
				"[UNRELEASED MEMORY] failed to unmap arena block",
				slog.Int("block", b.id),
				slog.Int("size", b.metadata.Size()),
				slog.Any("error", err),
			)
		}
	}

	b.memory = nil
	b.data = nil
	b.metadata = nil
	return err
}

// Allocate carves size bytes aligned to alignment out of the top of this block. It returns nil
// with no error if the block does not have enough room left.
func (b *memoryBlock) Allocate(size int, alignment uint, allocType metadata.SuballocationType, zero bool) (unsafe.Pointer, error) {
	success, request, err := b.metadata.CreateAllocationRequest(size, alignment, allocType, b.metadata.Size())
	if err != nil || !success {
		return nil, err
	}

	err = b.metadata.Alloc(request)
	if err != nil {
		return nil, err
	}

	ptr := unsafe.Add(b.data, request.Offset)
	if b.dirty && zero {
		clear(unsafe.Slice((*byte)(ptr), size))
	}
	memutils.WriteMagicValue(b.data, request.Offset+size)

	return ptr, nil
}

// Reset returns every byte of the block to the free pool
func (b *memoryBlock) Reset() {
	if !b.metadata.IsEmpty() {
		b.dirty = true
	}
	b.metadata.Clear()
}

func (b *memoryBlock) Validate() error {
	if b.data == nil {
		return errors.New("no valid memory for this memory block")
	}
	if b.metadata.Size() < 1 {
		return errors.New("this memory block's metadata has an invalid size")
	}
	if uintptr(b.data)%uintptr(MaxAlignment) != 0 {
		return errors.Errorf("memory block %d starts at %#x, which is not aligned to %d", b.id, uintptr(b.data), MaxAlignment)
	}

	return b.metadata.Validate()
}

func (b *memoryBlock) CheckCorruption() error {
	err := b.metadata.CheckCorruption(b.data)
	if err != nil {
		return errors.Wrapf(err, "arena block %d", b.id)
	}
	return nil
}

func (b *memoryBlock) PrintDetailedMap(json *jwriter.ObjectState) {
	json.Name("Id").Int(b.id)
	json.Name("Backing").String(b.backing.String())
	b.metadata.BlockJsonData(json)
}

package arena

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/nativeview/internal/utils"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific arena behaviors to activate or deactivate
type CreateFlags int32

var arenaCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	arenaCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return arenaCreateFlagsMapping.FlagsToString(f)
}

const (
	// CreateExternallySynchronized ensures that the arena will not be synchronized internally. The
	// consumer must guarantee it is used from only one goroutine at a time or is synchronized by
	// some other mechanism.
	CreateExternallySynchronized CreateFlags = 1 << iota
	// CreateSkipZeroing disables zero-filling of allocations carved out of blocks that have been
	// recycled by Reset. Fresh blocks are always zeroed.
	CreateSkipZeroing
)

func init() {
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
	CreateSkipZeroing.Register("CreateSkipZeroing")
}

// Backing selects where an arena's blocks come from
type Backing int

const (
	// BackingHeap blocks are byte slices allocated from the Go heap and kept alive by the arena
	BackingHeap Backing = iota
	// BackingMapped blocks are anonymous private memory mappings outside the Go heap. They are
	// only available on unix platforms.
	BackingMapped
)

var backingMapping = map[Backing]string{
	BackingHeap:   "Heap",
	BackingMapped: "Mapped",
}

func (b Backing) String() string {
	str, ok := backingMapping[b]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%d)", int(b))
	}
	return str
}

const (
	// defaultBlockSize is the value used as the BlockSize when none is provided via CreateOptions.
	// It is equal to 64Kb.
	defaultBlockSize int = 64 * 1024
	// MaxAlignment is the largest alignment the arena will honor. Every block starts on a
	// MaxAlignment boundary.
	MaxAlignment uint = 64
)

// CreateOptions contains optional settings when creating an arena. It is valid to leave all the
// fields blank.
type CreateOptions struct {
	// Flags indicates specific arena behaviors to activate or deactivate
	Flags CreateFlags
	// BlockSize is the size in bytes of each block the arena carves allocations out of. Requests
	// larger than BlockSize get a dedicated block of their own.
	BlockSize int
	// MaxBlockCount limits the number of blocks the arena may hold at once. Allocations that would
	// require more blocks fail with ErrOutOfMemory. Zero means no limit.
	MaxBlockCount int
	// Backing selects where blocks are allocated from
	Backing Backing
}

// New creates a new Arena
//
// logger - Receives debug output for block creation and teardown
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) (*Arena, error) {
	if logger == nil {
		return nil, errors.New("arena.New requires a logger")
	}
	if options.BlockSize < 0 {
		return nil, errors.Newf("arena.CreateOptions.BlockSize is %d, which is negative", options.BlockSize)
	}
	if options.MaxBlockCount < 0 {
		return nil, errors.Newf("arena.CreateOptions.MaxBlockCount is %d, which is negative", options.MaxBlockCount)
	}
	if _, ok := backingMapping[options.Backing]; !ok {
		return nil, errors.Newf("arena.CreateOptions.Backing has unknown value %s", options.Backing)
	}

	arena := &Arena{
		logger:        logger,
		mutex:         utils.OptionalMutex{Disabled: options.Flags&CreateExternallySynchronized != 0},
		createFlags:   options.Flags,
		backing:       options.Backing,
		blockSize:     options.BlockSize,
		maxBlockCount: options.MaxBlockCount,
	}

	if arena.blockSize == 0 {
		arena.blockSize = defaultBlockSize
	}

	return arena, nil
}

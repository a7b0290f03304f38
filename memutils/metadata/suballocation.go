package metadata

import "fmt"

// SuballocationType records what a suballocation is used for. It has no effect on placement and
// exists for diagnostics.
type SuballocationType uint32

const (
	SuballocationFree SuballocationType = iota
	// SuballocationRecord is a single fixed-layout record
	SuballocationRecord
	// SuballocationArray is a contiguous run of records
	SuballocationArray
	// SuballocationRaw is untyped memory
	SuballocationRaw
)

var suballocationTypeMapping = map[SuballocationType]string{
	SuballocationFree:   "FREE",
	SuballocationRecord: "RECORD",
	SuballocationArray:  "ARRAY",
	SuballocationRaw:    "RAW",
}

func (t SuballocationType) String() string {
	str, ok := suballocationTypeMapping[t]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
	return str
}

// Suballocation is a single region within a block
type Suballocation struct {
	Offset int
	Size   int
	Type   SuballocationType
}

// AllocationRequest is returned from BlockMetadata.CreateAllocationRequest and indicates where the
// metadata intends to place a new allocation. It is committed with BlockMetadata.Alloc.
type AllocationRequest struct {
	// Offset is the aligned offset of the allocation within the block
	Offset int
	// Size is the size of the allocation in bytes, not counting debug margins
	Size int
	Type SuballocationType
}

package view

import "unsafe"

//go:generate mockgen -source allocator.go -destination ./mocks/allocator.go

// Allocator is the source of memory for Allocate, AllocateArray, and Clone. The memory it returns
// must stay valid for as long as any view over it is in use. Views never free memory, so an
// Allocator is typically an arena that releases everything at once.
type Allocator interface {
	// Allocate returns size bytes aligned to align
	Allocate(size int, align uint) (unsafe.Pointer, error)
	// AllocateArray returns count contiguous elements of size bytes, the first aligned to align
	AllocateArray(size int, align uint, count int) (unsafe.Pointer, error)
}

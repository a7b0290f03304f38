package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
)

var (
	baseInStructure = layout.MustStruct("VkBaseInStructure",
		layout.Discriminant("sType", layout.KindInt32),
		layout.Chain("pNext", nil),
	)

	multiviewFeatures = layout.MustStruct("VkPhysicalDeviceMultiviewFeatures",
		layout.Tag("sType", layout.KindInt32, 1000053001),
		layout.Chain("pNext", baseInStructure),
		layout.Uint32("multiview"),
		layout.Uint32("multiviewGeometryShader"),
		layout.Uint32("multiviewTessellationShader"),
	)

	protectedMemoryFeatures = layout.MustStruct("VkPhysicalDeviceProtectedMemoryFeatures",
		layout.Tag("sType", layout.KindInt32, 1000145001),
		layout.Chain("pNext", baseInStructure),
		layout.Uint32("protectedMemory"),
	)

	chainedStruct = layout.MustStruct("WGPUChainedStruct",
		layout.Chain("next", nil),
		layout.Discriminant("sType", layout.KindUint32),
	)

	shaderSourceWGSL = layout.MustStruct("WGPUShaderSourceWGSL",
		layout.Nested("chain", chainedStruct).Tagged(2),
		layout.Address("code"),
		layout.CSizeT("codeLength"),
	)
)

func TestChainVulkan(t *testing.T) {
	a := newArena(t)

	multiview, err := view.Allocate(a, multiviewFeatures)
	require.NoError(t, err)
	protected, err := view.Allocate(a, protectedMemoryFeatures)
	require.NoError(t, err)

	_, ok := multiview.Next()
	require.False(t, ok)

	multiview.SetNext(protected)
	protected.SetUint("protectedMemory", 1)

	next, ok := multiview.Next()
	require.True(t, ok)
	require.Equal(t, protected.Address(), next.Address())
	require.Same(t, baseInStructure, next.Layout())
	require.Equal(t, int64(1000145001), next.Int("sType"))

	found, ok := view.FindInChain(multiview, 1000145001)
	require.True(t, ok)
	require.True(t, found.UnsafeAs(protectedMemoryFeatures).Bool32("protectedMemory"))

	_, ok = view.FindInChain(multiview, 1000053001)
	require.False(t, ok)

	var visited []int64
	for link := range view.Chain(multiview) {
		visited = append(visited, link.Int("sType"))
	}
	require.Equal(t, []int64{1000145001}, visited)

	multiview.SetNext(view.Struct{})
	_, ok = multiview.Next()
	require.False(t, ok)
}

func TestChainWalksEveryLink(t *testing.T) {
	a := newArena(t)

	links, err := view.AllocateArray(a, protectedMemoryFeatures, 3)
	require.NoError(t, err)
	head, err := view.Allocate(a, multiviewFeatures)
	require.NoError(t, err)

	head.SetNext(links.At(0))
	links.At(0).SetNext(links.At(1))
	links.At(1).SetNext(links.At(2))

	var addresses []uintptr
	for link := range view.Chain(head) {
		addresses = append(addresses, link.Address())
	}
	require.Equal(t, []uintptr{links.At(0).Address(), links.At(1).Address(), links.At(2).Address()}, addresses)

	// A chain that loops back to its start ends there
	links.At(2).SetNext(head)
	count := 0
	for range view.Chain(head) {
		count++
	}
	require.Equal(t, 3, count)
}

func TestChainWebGPU(t *testing.T) {
	a := newArena(t)

	descriptor, err := view.Allocate(a, chainedStruct)
	require.NoError(t, err)
	wgsl, err := view.Allocate(a, shaderSourceWGSL)
	require.NoError(t, err)

	require.Equal(t, uint64(2), wgsl.Uint("chain.sType"))

	descriptor.SetNext(wgsl)
	found, ok := view.FindInChain(descriptor, 2)
	require.True(t, ok)
	require.Equal(t, wgsl.Address(), found.Address())

	source := found.UnsafeAs(shaderSourceWGSL)
	source.SetUint("codeLength", 12)
	require.Equal(t, uint64(12), wgsl.Uint("codeLength"))
}

func TestChainWithoutChainField(t *testing.T) {
	s, err := view.Allocate(newArena(t), pair)
	require.NoError(t, err)

	_, ok := s.Next()
	require.False(t, ok)

	for range view.Chain(s) {
		require.Fail(t, "a record without a chain field has no links")
	}

	requirePanicsWith(t, view.ErrKindMismatch, func() {
		s.SetNext(s)
	})
}

func TestChainLoopsBackToLaterRecord(t *testing.T) {
	a := newArena(t)

	head, err := view.Allocate(a, multiviewFeatures)
	require.NoError(t, err)
	links, err := view.AllocateArray(a, protectedMemoryFeatures, 2)
	require.NoError(t, err)

	// head -> first -> second -> second
	head.SetNext(links.At(0))
	links.At(0).SetNext(links.At(1))
	links.At(1).SetNext(links.At(1))

	var addresses []uintptr
	for link := range view.Chain(head) {
		addresses = append(addresses, link.Address())
	}
	require.Equal(t, []uintptr{links.At(0).Address(), links.At(1).Address()}, addresses)

	_, ok := view.FindInChain(head, 42)
	require.False(t, ok)

	// head -> first -> second -> first
	links.At(1).SetNext(links.At(0))
	found, ok := view.FindInChain(head, 1000145001)
	require.True(t, ok)
	require.Equal(t, links.At(0).Address(), found.Address())

	count := 0
	for range view.Chain(head) {
		count++
	}
	require.Equal(t, 2, count)
}

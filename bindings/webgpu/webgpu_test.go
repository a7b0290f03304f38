package webgpu_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/nativeview/arena"
	"github.com/vkngwrapper/nativeview/bindings/webgpu"
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
	"golang.org/x/exp/slog"
)

func newArena(t *testing.T) *arena.Arena {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	a, err := arena.New(logger, arena.CreateOptions{})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, a.Release())
	})
	return a
}

func TestLayoutSizes(t *testing.T) {
	if layout.HostABI != layout.ABI64 {
		t.Skip("sizes below are for 64-bit hosts")
	}

	sizes := map[*layout.StructLayout]int{
		webgpu.ChainedStruct:          16,
		webgpu.StringView:             16,
		webgpu.ShaderSourceSPIRV:      32,
		webgpu.ShaderSourceWGSL:       32,
		webgpu.RenderPassMaxDrawCount: 24,
		webgpu.PassTimestampWrites:    24,
	}
	require.Len(t, webgpu.Layouts(), len(sizes))

	for _, l := range webgpu.Layouts() {
		require.Equal(t, sizes[l], l.Size(), l.Name())
		require.NoError(t, l.Validate(), l.Name())
	}

	tag, ok := webgpu.ShaderSourceSPIRV.TagField()
	require.True(t, ok)
	require.Equal(t, "chain.sType", tag.Name)
	require.Equal(t, 8, tag.Offset)

	code, err := webgpu.ShaderSourceSPIRV.Offset("code")
	require.NoError(t, err)
	require.Equal(t, 24, code)
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "WGPUSType_ShaderSourceWGSL", webgpu.STypeShaderSourceWGSL.String())
	require.Equal(t, "WGPUSType_SurfaceSourceXCBWindow", webgpu.STypeSurfaceSourceXCBWindow.String())
	require.Equal(t, "UNKNOWN(10)", webgpu.SType(10).String())

	require.Equal(t, "WGPUStoreOp_Discard", webgpu.StoreOpDiscard.String())
	require.Equal(t, "WGPUStoreOp_Force32", webgpu.StoreOpForce32.String())
	require.Equal(t, "UNKNOWN(3)", webgpu.StoreOp(3).String())
}

func TestShaderSourceChain(t *testing.T) {
	a := newArena(t)

	descriptor, err := view.Allocate(a, webgpu.ChainedStruct)
	require.NoError(t, err)
	spirv, err := view.Allocate(a, webgpu.ShaderSourceSPIRV)
	require.NoError(t, err)
	wgsl, err := view.Allocate(a, webgpu.ShaderSourceWGSL)
	require.NoError(t, err)

	sType, ok := webgpu.GetSType(wgsl)
	require.True(t, ok)
	require.Equal(t, webgpu.STypeShaderSourceWGSL, sType)

	descriptor.SetNext(spirv)
	spirv.SetNext(wgsl)

	found, ok := webgpu.FindInChain(descriptor, webgpu.STypeShaderSourceWGSL)
	require.True(t, ok)
	require.Equal(t, wgsl.Address(), found.Address())

	source := found.UnsafeAs(webgpu.ShaderSourceWGSL)
	require.NoError(t, webgpu.SetString(a, source.Struct("code"), "@compute fn main() {}"))
	require.Equal(t, "@compute fn main() {}", webgpu.GetString(wgsl.Struct("code")))
	require.Equal(t, uint64(21), wgsl.Uint("code.length"))

	_, ok = webgpu.FindInChain(descriptor, webgpu.STypeRenderPassMaxDrawCount)
	require.False(t, ok)
}

func TestStringView(t *testing.T) {
	a := newArena(t)

	sv, err := view.Allocate(a, webgpu.StringView)
	require.NoError(t, err)

	require.NoError(t, webgpu.SetString(a, sv, "label"))
	require.Equal(t, "label", webgpu.GetString(sv))
	require.NotZero(t, sv.AddressOf("data"))

	require.NoError(t, webgpu.SetString(a, sv, ""))
	require.Zero(t, sv.AddressOf("data"))
	require.Equal(t, "", webgpu.GetString(sv))

	wrong, err := view.Allocate(a, webgpu.ChainedStruct)
	require.NoError(t, err)
	require.ErrorIs(t, webgpu.SetString(a, wrong, "label"), view.ErrKindMismatch)
}

func TestPassTimestampWrites(t *testing.T) {
	a := newArena(t)

	writes, err := view.Allocate(a, webgpu.PassTimestampWrites)
	require.NoError(t, err)
	maxDraws, err := view.Allocate(a, webgpu.RenderPassMaxDrawCount)
	require.NoError(t, err)
	maxDraws.SetUint("maxDrawCount", 1<<40)

	_, ok := writes.Deref("nextInChain")
	require.False(t, ok)

	writes.SetPointer("nextInChain", maxDraws)
	writes.SetUint("endOfPassWriteIndex", 1)

	next, ok := writes.Deref("nextInChain")
	require.True(t, ok)
	require.Same(t, webgpu.ChainedStruct, next.Layout())

	sType, ok := webgpu.GetSType(next)
	require.True(t, ok)
	require.Equal(t, webgpu.STypeRenderPassMaxDrawCount, sType)
	require.Equal(t, uint64(1<<40), next.UnsafeAs(webgpu.RenderPassMaxDrawCount).Uint("maxDrawCount"))
}

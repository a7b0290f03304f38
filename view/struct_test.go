package view_test

import (
	"math"
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/nativeview/arena"
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
	"golang.org/x/exp/slog"
)

var (
	offset3D = layout.MustStruct("VkOffset3D",
		layout.Int32("x"),
		layout.Int32("y"),
		layout.Int32("z"),
	)

	pair = layout.MustStruct("Pair",
		layout.Int32("a"),
		layout.Int32("b"),
	)

	everyKind = layout.MustStruct("EveryKind",
		layout.Int8("i8"),
		layout.Int16("i16"),
		layout.Int32("i32"),
		layout.Int64("i64"),
		layout.Uint8("u8"),
		layout.Uint16("u16"),
		layout.Uint32("u32"),
		layout.Uint64("u64"),
		layout.Float32("f32"),
		layout.Float64("f64"),
		layout.Address("address"),
		layout.CSizeT("size"),
		layout.Uint32("enabled"),
	)

	region = layout.MustStruct("Region",
		layout.Uint32("aspectMask"),
		layout.Nested("srcOffset", offset3D),
		layout.RecordArray("corners", offset3D, 2),
		layout.ArrayOf("uuid", layout.KindUint8, 16),
		layout.Pointer("pOffsets", offset3D),
		layout.Uint32("offsetCount"),
	)
)

func newArena(t *testing.T) *arena.Arena {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	a, err := arena.New(logger, arena.CreateOptions{BlockSize: 4096})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, a.Release())
	})
	return a
}

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered, "expected a panic")
		err, ok := recovered.(error)
		require.True(t, ok, "expected to panic with an error, got %v", recovered)
		require.ErrorIs(t, err, target)
	}()

	f()
}

func TestStructScalarRoundTrip(t *testing.T) {
	s, err := view.Allocate(newArena(t), everyKind)
	require.NoError(t, err)

	s.SetInt("i8", math.MinInt8)
	s.SetInt("i16", math.MinInt16)
	s.SetInt("i32", math.MinInt32)
	s.SetInt("i64", math.MinInt64)
	s.SetUint("u8", math.MaxUint8)
	s.SetUint("u16", math.MaxUint16)
	s.SetUint("u32", math.MaxUint32)
	s.SetUint("u64", math.MaxUint64)
	s.SetFloat("f32", 1.5)
	s.SetFloat("f64", math.Pi)
	s.SetAddress("address", 0xDEADBEEF)
	s.SetUint("size", 12345)
	s.SetBool32("enabled", true)

	require.Equal(t, int64(math.MinInt8), s.Int("i8"))
	require.Equal(t, int64(math.MinInt16), s.Int("i16"))
	require.Equal(t, int64(math.MinInt32), s.Int("i32"))
	require.Equal(t, int64(math.MinInt64), s.Int("i64"))
	require.Equal(t, uint64(math.MaxUint8), s.Uint("u8"))
	require.Equal(t, uint64(math.MaxUint16), s.Uint("u16"))
	require.Equal(t, uint64(math.MaxUint32), s.Uint("u32"))
	require.Equal(t, uint64(math.MaxUint64), s.Uint("u64"))
	require.Equal(t, 1.5, s.Float("f32"))
	require.Equal(t, math.Pi, s.Float("f64"))
	require.Equal(t, uintptr(0xDEADBEEF), s.AddressOf("address"))
	require.Equal(t, uint64(12345), s.Uint("size"))
	require.True(t, s.Bool32("enabled"))
	require.Equal(t, uint64(1), s.Uint("enabled"))

	s.SetBool32("enabled", false)
	require.False(t, s.Bool32("enabled"))

	// Neighbors are untouched by narrow writes
	s.SetInt("i8", 1)
	require.Equal(t, int64(math.MinInt16), s.Int("i16"))
}

func TestStructFreshAllocationIsZero(t *testing.T) {
	s, err := view.Allocate(newArena(t), everyKind)
	require.NoError(t, err)

	require.Equal(t, make([]byte, everyKind.Size()), s.Bytes())
	require.False(t, s.IsNull())
	require.Same(t, everyKind, s.Layout())
	require.Equal(t, uintptr(s.Pointer()), s.Address())
	require.Zero(t, s.Address()%uintptr(everyKind.Align()))
}

func TestStructGenericAccess(t *testing.T) {
	s, err := view.Allocate(newArena(t), everyKind)
	require.NoError(t, err)

	i32 := everyKind.MustSelect("i32")
	f64 := everyKind.MustSelect("f64")
	address := everyKind.MustSelect("address")

	view.Set[int32](s, i32, -42)
	view.Set(s, f64, 2.25)
	view.Set[uintptr](s, address, 0x1000)

	require.Equal(t, int32(-42), view.Get[int32](s, i32))
	require.Equal(t, int64(-42), s.Int("i32"))
	require.Equal(t, 2.25, view.Get[float64](s, f64))
	require.Equal(t, uintptr(0x1000), s.AddressOf("address"))

	requirePanicsWith(t, view.ErrKindMismatch, func() {
		view.Get[int64](s, i32)
	})
	requirePanicsWith(t, view.ErrKindMismatch, func() {
		view.Set[uint8](s, region.MustSelect("srcOffset"), 1)
	})
}

func TestStructAccessorPanics(t *testing.T) {
	s, err := view.Allocate(newArena(t), everyKind)
	require.NoError(t, err)

	requirePanicsWith(t, layout.ErrUnknownField, func() { s.Int("missing") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Int("u32") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Uint("i32") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Uint("address") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Float("i64") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.AddressOf("u64") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Bool32("u8") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Struct("i32") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Array("i32") })
	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Deref("address") })

	_, err = s.Lookup("missing")
	require.ErrorIs(t, err, layout.ErrUnknownField)

	field, err := s.Lookup("f32")
	require.NoError(t, err)
	require.Equal(t, layout.KindFloat32, field.Kind)
}

func TestStructNestedAliasing(t *testing.T) {
	a := newArena(t)
	s, err := view.Allocate(a, region)
	require.NoError(t, err)

	nested := s.Struct("srcOffset")
	nested.SetInt("y", 5)
	require.Equal(t, int64(5), s.Int("srcOffset.y"))

	s.SetInt("srcOffset.z", 6)
	require.Equal(t, int64(6), nested.Int("z"))
}

func TestStructNestedCopy(t *testing.T) {
	a := newArena(t)
	s, err := view.Allocate(a, region)
	require.NoError(t, err)

	src, err := view.Allocate(a, offset3D)
	require.NoError(t, err)
	src.SetInt("x", 1)
	src.SetInt("y", 2)
	src.SetInt("z", 3)

	s.SetStruct("srcOffset", src)
	require.Equal(t, int64(2), s.Int("srcOffset.y"))

	// The embedded record is a copy, not a rebinding
	src.SetInt("y", 20)
	require.Equal(t, int64(2), s.Int("srcOffset.y"))
	require.NotEqual(t, src.Address(), s.Struct("srcOffset").Address())

	requirePanicsWith(t, view.ErrKindMismatch, func() {
		wrong, err := view.Allocate(a, pair)
		require.NoError(t, err)
		s.SetStruct("srcOffset", wrong)
	})
	requirePanicsWith(t, view.ErrNullView, func() {
		s.SetStruct("srcOffset", view.Struct{})
	})
}

func TestStructInlineArrays(t *testing.T) {
	s, err := view.Allocate(newArena(t), region)
	require.NoError(t, err)

	corners := s.Array("corners")
	require.Equal(t, 2, corners.Len())
	require.Same(t, offset3D, corners.Layout())

	corners.At(1).SetInt("x", 9)
	require.Equal(t, int64(9), s.Int("corners[1].x"))

	uuid := s.FieldBytes("uuid")
	require.Len(t, uuid, 16)
	uuid[15] = 0xFF
	require.Equal(t, uint64(0xFF), s.Uint("uuid[15]"))

	requirePanicsWith(t, view.ErrKindMismatch, func() { s.Array("uuid") })
}

func TestStructDeref(t *testing.T) {
	a := newArena(t)
	s, err := view.Allocate(a, region)
	require.NoError(t, err)

	_, ok := s.Deref("pOffsets")
	require.False(t, ok)
	_, ok = s.UnsafeDerefArray("pOffsets", 3)
	require.False(t, ok)

	offsets, err := view.AllocateArray(a, offset3D, 3)
	require.NoError(t, err)
	offsets.At(2).SetInt("z", 77)

	s.SetArrayPointer("pOffsets", offsets)
	s.SetUint("offsetCount", uint64(offsets.Len()))

	first, ok := s.Deref("pOffsets")
	require.True(t, ok)
	require.Equal(t, offsets.Address(), first.Address())
	require.Same(t, offset3D, first.Layout())

	all, ok := s.UnsafeDerefArray("pOffsets", int(s.Uint("offsetCount")))
	require.True(t, ok)
	require.Equal(t, 3, all.Len())
	require.Equal(t, int64(77), all.At(2).Int("z"))

	s.SetPointer("pOffsets", offsets.At(1))
	second, ok := s.Deref("pOffsets")
	require.True(t, ok)
	require.Equal(t, offsets.At(1).Address(), second.Address())

	s.SetPointer("pOffsets", view.Struct{})
	require.Zero(t, s.AddressOf("pOffsets"))
	_, ok = s.Deref("pOffsets")
	require.False(t, ok)
}

func TestStructNullView(t *testing.T) {
	var s view.Struct
	require.True(t, s.IsNull())
	require.Zero(t, s.Address())
	require.Nil(t, s.Bytes())

	wrapped := view.UnsafeWrapAddress(0, offset3D)
	require.True(t, wrapped.IsNull())
	require.Equal(t, view.Struct{}, wrapped)
}

func TestStructUnsafeWrapAddress(t *testing.T) {
	s, err := view.Allocate(newArena(t), pair)
	require.NoError(t, err)
	s.SetInt("b", 11)

	wrapped := view.UnsafeWrapAddress(s.Address(), pair)
	require.Equal(t, int64(11), wrapped.Int("b"))

	same := view.Wrap(unsafe.Pointer(s.Pointer()), pair)
	require.Equal(t, s, same)
}

func TestStructUnion(t *testing.T) {
	clearColor := layout.MustUnion("VkClearColorValue",
		layout.ArrayOf("float32", layout.KindFloat32, 4),
		layout.ArrayOf("int32", layout.KindInt32, 4),
		layout.ArrayOf("uint32", layout.KindUint32, 4),
	)

	s, err := view.Allocate(newArena(t), clearColor)
	require.NoError(t, err)

	s.SetFloat("float32[1]", 1.0)
	require.Equal(t, uint64(math.Float32bits(1.0)), s.Uint("uint32[1]"))

	s.SetInt("int32[3]", -1)
	require.Equal(t, uint64(math.MaxUint32), s.Uint("uint32[3]"))
}

func TestStructZeroAndAutoInit(t *testing.T) {
	tagged := layout.MustStruct("Tagged",
		layout.Tag("sType", layout.KindInt32, 1000053000),
		layout.Uint32("value"),
	)

	s, err := view.Allocate(newArena(t), tagged)
	require.NoError(t, err)
	s.SetUint("value", 4)

	s.Zero()
	require.Equal(t, int64(0), s.Int("sType"))
	require.Equal(t, uint64(0), s.Uint("value"))

	s.AutoInit()
	require.Equal(t, int64(1000053000), s.Int("sType"))
	require.Equal(t, uint64(0), s.Uint("value"))

	tag, ok := s.Tag()
	require.True(t, ok)
	require.Equal(t, uint64(1000053000), tag)

	plain, err := view.Allocate(newArena(t), pair)
	require.NoError(t, err)
	_, ok = plain.Tag()
	require.False(t, ok)
	plain.AutoInit()
	require.Equal(t, make([]byte, pair.Size()), plain.Bytes())
}

func TestStructUnsafeAs(t *testing.T) {
	s, err := view.Allocate(newArena(t), offset3D)
	require.NoError(t, err)
	s.SetInt("y", 3)

	asPair := s.UnsafeAs(pair)
	require.Equal(t, int64(3), asPair.Int("b"))
	require.Equal(t, s.Address(), asPair.Address())
}

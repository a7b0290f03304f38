// Package webgpu describes the chained descriptor records of webgpu.h as native layouts
package webgpu

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
)

var (
	// ChainedStruct is the header every chained WebGPU record begins with
	ChainedStruct = layout.MustStruct("WGPUChainedStruct",
		layout.Chain("next", nil),
		layout.Discriminant("sType", layout.KindUint32),
	)

	// StringView is a pointer and a length. The text is not NUL-terminated.
	StringView = layout.MustStruct("WGPUStringView",
		layout.Address("data"),
		layout.CSizeT("length"),
	)

	ShaderSourceSPIRV = layout.MustStruct("WGPUShaderSourceSPIRV",
		layout.Nested("chain", ChainedStruct).Tagged(uint64(STypeShaderSourceSPIRV)),
		layout.Uint32("codeSize"),
		layout.Address("code"),
	)

	ShaderSourceWGSL = layout.MustStruct("WGPUShaderSourceWGSL",
		layout.Nested("chain", ChainedStruct).Tagged(uint64(STypeShaderSourceWGSL)),
		layout.Nested("code", StringView),
	)

	RenderPassMaxDrawCount = layout.MustStruct("WGPURenderPassMaxDrawCount",
		layout.Nested("chain", ChainedStruct).Tagged(uint64(STypeRenderPassMaxDrawCount)),
		layout.Uint64("maxDrawCount"),
	)

	PassTimestampWrites = layout.MustStruct("WGPUPassTimestampWrites",
		layout.Pointer("nextInChain", ChainedStruct),
		layout.Address("querySet"),
		layout.Uint32("beginningOfPassWriteIndex"),
		layout.Uint32("endOfPassWriteIndex"),
	)

	char = layout.MustStruct("char", layout.Uint8("c"))
)

// Layouts returns every record layout in this package
func Layouts() []*layout.StructLayout {
	return []*layout.StructLayout{
		ChainedStruct,
		StringView,
		ShaderSourceSPIRV,
		ShaderSourceWGSL,
		RenderPassMaxDrawCount,
		PassTimestampWrites,
	}
}

// GetSType reads the sType of a chained record. It returns false if the record's layout has no
// sType field.
func GetSType(s view.Struct) (SType, bool) {
	tag, ok := s.Tag()
	if !ok {
		return 0, false
	}
	return SType(tag), true
}

// FindInChain returns the first record chained after s with the given sType
func FindInChain(s view.Struct, sType SType) (view.Struct, bool) {
	return view.FindInChain(s, uint64(sType))
}

// SetString copies text into memory from alloc and points the StringView sv at it. An empty
// string leaves sv null.
func SetString(alloc view.Allocator, sv view.Struct, text string) error {
	if sv.Layout() != StringView {
		return errors.Wrapf(view.ErrKindMismatch, "%s is not %s", sv.Layout().Name(), StringView.Name())
	}

	if len(text) == 0 {
		sv.SetAddress("data", 0)
		sv.SetUint("length", 0)
		return nil
	}

	ptr, err := alloc.AllocateArray(1, 1, len(text))
	if err != nil {
		return err
	}
	chars := view.WrapArray(ptr, char, len(text))
	copy(chars.Bytes(), text)

	sv.SetAddress("data", chars.Address())
	sv.SetUint("length", uint64(len(text)))
	return nil
}

// GetString copies the text a StringView points at into a Go string
func GetString(sv view.Struct) string {
	length := int(sv.Uint("length"))
	data := sv.AddressOf("data")
	if data == 0 || length == 0 {
		return ""
	}
	return string(view.UnsafeWrapArrayAddress(data, char, length).Bytes())
}

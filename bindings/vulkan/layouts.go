// Package vulkan describes a handful of Vulkan records and enumerations as native layouts, so they
// can be allocated in an arena and passed to the driver without hand-written marshaling.
package vulkan

import (
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
)

var (
	// BaseInStructure is the common header of every extensible Vulkan record
	BaseInStructure = layout.MustStruct("VkBaseInStructure",
		layout.Discriminant("sType", layout.KindInt32),
		layout.Chain("pNext", nil),
	)

	DeviceQueueGlobalPriorityCreateInfo = layout.MustStruct("VkDeviceQueueGlobalPriorityCreateInfo",
		layout.Tag("sType", layout.KindInt32, uint64(StructureTypeDeviceQueueGlobalPriorityCreateInfo)),
		layout.Chain("pNext", BaseInStructure),
		layout.Int32("globalPriority"),
	)

	PhysicalDeviceProtectedMemoryFeatures = layout.MustStruct("VkPhysicalDeviceProtectedMemoryFeatures",
		layout.Tag("sType", layout.KindInt32, uint64(StructureTypePhysicalDeviceProtectedMemoryFeatures)),
		layout.Chain("pNext", BaseInStructure),
		layout.Uint32("protectedMemory"),
	)

	PhysicalDeviceMultiviewFeatures = layout.MustStruct("VkPhysicalDeviceMultiviewFeatures",
		layout.Tag("sType", layout.KindInt32, uint64(StructureTypePhysicalDeviceMultiviewFeatures)),
		layout.Chain("pNext", BaseInStructure),
		layout.Uint32("multiview"),
		layout.Uint32("multiviewGeometryShader"),
		layout.Uint32("multiviewTessellationShader"),
	)

	PhysicalDeviceMultiviewProperties = layout.MustStruct("VkPhysicalDeviceMultiviewProperties",
		layout.Tag("sType", layout.KindInt32, uint64(StructureTypePhysicalDeviceMultiviewProperties)),
		layout.Chain("pNext", BaseInStructure),
		layout.Uint32("maxMultiviewViewCount"),
		layout.Uint32("maxMultiviewInstanceIndex"),
	)

	PhysicalDeviceIDProperties = layout.MustStruct("VkPhysicalDeviceIDProperties",
		layout.Tag("sType", layout.KindInt32, uint64(StructureTypePhysicalDeviceIDProperties)),
		layout.Chain("pNext", BaseInStructure),
		layout.ArrayOf("deviceUUID", layout.KindUint8, UUIDSize),
		layout.ArrayOf("driverUUID", layout.KindUint8, UUIDSize),
		layout.ArrayOf("deviceLUID", layout.KindUint8, LUIDSize),
		layout.Uint32("deviceNodeMask"),
		layout.Uint32("deviceLUIDValid"),
	)

	Offset3D = layout.MustStruct("VkOffset3D",
		layout.Int32("x"),
		layout.Int32("y"),
		layout.Int32("z"),
	)

	Extent3D = layout.MustStruct("VkExtent3D",
		layout.Uint32("width"),
		layout.Uint32("height"),
		layout.Uint32("depth"),
	)

	ImageSubresourceLayers = layout.MustStruct("VkImageSubresourceLayers",
		layout.Uint32("aspectMask"),
		layout.Uint32("mipLevel"),
		layout.Uint32("baseArrayLayer"),
		layout.Uint32("layerCount"),
	)

	ImageResolve = layout.MustStruct("VkImageResolve",
		layout.Nested("srcSubresource", ImageSubresourceLayers),
		layout.Nested("srcOffset", Offset3D),
		layout.Nested("dstSubresource", ImageSubresourceLayers),
		layout.Nested("dstOffset", Offset3D),
		layout.Nested("extent", Extent3D),
	)

	ClearColorValue = layout.MustUnion("VkClearColorValue",
		layout.ArrayOf("float32", layout.KindFloat32, 4),
		layout.ArrayOf("int32", layout.KindInt32, 4),
		layout.ArrayOf("uint32", layout.KindUint32, 4),
	)
)

const (
	UUIDSize = 16
	LUIDSize = 8
)

// Layouts returns every record layout in this package
func Layouts() []*layout.StructLayout {
	return []*layout.StructLayout{
		BaseInStructure,
		DeviceQueueGlobalPriorityCreateInfo,
		PhysicalDeviceProtectedMemoryFeatures,
		PhysicalDeviceMultiviewFeatures,
		PhysicalDeviceMultiviewProperties,
		PhysicalDeviceIDProperties,
		Offset3D,
		Extent3D,
		ImageSubresourceLayers,
		ImageResolve,
		ClearColorValue,
	}
}

// SType reads the structure type of an extensible record. It returns false if the record's
// layout has no sType field.
func SType(s view.Struct) (StructureType, bool) {
	tag, ok := s.Tag()
	if !ok {
		return 0, false
	}
	return StructureType(int32(uint32(tag))), true
}

// FindInChain returns the first record in s's pNext chain with the given structure type
func FindInChain(s view.Struct, sType StructureType) (view.Struct, bool) {
	return view.FindInChain(s, uint64(uint32(sType)))
}

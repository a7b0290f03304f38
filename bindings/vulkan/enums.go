package vulkan

import "github.com/vkngwrapper/nativeview/enumtab"

// StructureType identifies the layout of a tagged Vulkan record to the driver
type StructureType int32

const (
	StructureTypeApplicationInfo                         StructureType = 0
	StructureTypeInstanceCreateInfo                      StructureType = 1
	StructureTypeDeviceQueueCreateInfo                   StructureType = 2
	StructureTypeDeviceCreateInfo                        StructureType = 3
	StructureTypeRenderPassMultiviewCreateInfo           StructureType = 1000053000
	StructureTypePhysicalDeviceMultiviewFeatures         StructureType = 1000053001
	StructureTypePhysicalDeviceMultiviewProperties       StructureType = 1000053002
	StructureTypePhysicalDeviceIDProperties              StructureType = 1000071004
	StructureTypeProtectedSubmitInfo                     StructureType = 1000145000
	StructureTypePhysicalDeviceProtectedMemoryFeatures   StructureType = 1000145001
	StructureTypePhysicalDeviceProtectedMemoryProperties StructureType = 1000145002
	StructureTypeDeviceQueueGlobalPriorityCreateInfo     StructureType = 1000174000
)

var structureTypeNames = enumtab.NewEnum(map[StructureType]string{
	StructureTypeApplicationInfo:                         "VK_STRUCTURE_TYPE_APPLICATION_INFO",
	StructureTypeInstanceCreateInfo:                      "VK_STRUCTURE_TYPE_INSTANCE_CREATE_INFO",
	StructureTypeDeviceQueueCreateInfo:                   "VK_STRUCTURE_TYPE_DEVICE_QUEUE_CREATE_INFO",
	StructureTypeDeviceCreateInfo:                        "VK_STRUCTURE_TYPE_DEVICE_CREATE_INFO",
	StructureTypeRenderPassMultiviewCreateInfo:           "VK_STRUCTURE_TYPE_RENDER_PASS_MULTIVIEW_CREATE_INFO",
	StructureTypePhysicalDeviceMultiviewFeatures:         "VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_MULTIVIEW_FEATURES",
	StructureTypePhysicalDeviceMultiviewProperties:       "VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_MULTIVIEW_PROPERTIES",
	StructureTypePhysicalDeviceIDProperties:              "VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_ID_PROPERTIES",
	StructureTypeProtectedSubmitInfo:                     "VK_STRUCTURE_TYPE_PROTECTED_SUBMIT_INFO",
	StructureTypePhysicalDeviceProtectedMemoryFeatures:   "VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_PROTECTED_MEMORY_FEATURES",
	StructureTypePhysicalDeviceProtectedMemoryProperties: "VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_PROTECTED_MEMORY_PROPERTIES",
	StructureTypeDeviceQueueGlobalPriorityCreateInfo:     "VK_STRUCTURE_TYPE_DEVICE_QUEUE_GLOBAL_PRIORITY_CREATE_INFO",
})

func (t StructureType) String() string {
	return structureTypeNames.Name(t)
}

// QueueGlobalPriority is the system-wide priority requested for a device queue
type QueueGlobalPriority int32

const (
	QueueGlobalPriorityLow      QueueGlobalPriority = 128
	QueueGlobalPriorityMedium   QueueGlobalPriority = 256
	QueueGlobalPriorityHigh     QueueGlobalPriority = 512
	QueueGlobalPriorityRealtime QueueGlobalPriority = 1024
)

var queueGlobalPriorityNames = enumtab.NewEnum(map[QueueGlobalPriority]string{
	QueueGlobalPriorityLow:      "VK_QUEUE_GLOBAL_PRIORITY_LOW",
	QueueGlobalPriorityMedium:   "VK_QUEUE_GLOBAL_PRIORITY_MEDIUM",
	QueueGlobalPriorityHigh:     "VK_QUEUE_GLOBAL_PRIORITY_HIGH",
	QueueGlobalPriorityRealtime: "VK_QUEUE_GLOBAL_PRIORITY_REALTIME",
})

func (p QueueGlobalPriority) String() string {
	return queueGlobalPriorityNames.Name(p)
}

// ImageAspectFlags selects the aspects of an image included in a view or copy
type ImageAspectFlags int32

var imageAspectFlagsMapping = enumtab.NewBitmask[ImageAspectFlags]()

func (f ImageAspectFlags) Register(str string) {
	imageAspectFlagsMapping.Register(f, str)
}
func (f ImageAspectFlags) String() string {
	return imageAspectFlagsMapping.Explain(f)
}

const (
	ImageAspectColor ImageAspectFlags = 1 << iota
	ImageAspectDepth
	ImageAspectStencil
	ImageAspectMetadata
	ImageAspectPlane0
	ImageAspectPlane1
	ImageAspectPlane2
)

func init() {
	ImageAspectColor.Register("VK_IMAGE_ASPECT_COLOR_BIT")
	ImageAspectDepth.Register("VK_IMAGE_ASPECT_DEPTH_BIT")
	ImageAspectStencil.Register("VK_IMAGE_ASPECT_STENCIL_BIT")
	ImageAspectMetadata.Register("VK_IMAGE_ASPECT_METADATA_BIT")
	ImageAspectPlane0.Register("VK_IMAGE_ASPECT_PLANE_0_BIT")
	ImageAspectPlane1.Register("VK_IMAGE_ASPECT_PLANE_1_BIT")
	ImageAspectPlane2.Register("VK_IMAGE_ASPECT_PLANE_2_BIT")
}

package webgpu

import "github.com/vkngwrapper/nativeview/enumtab"

// SType identifies the layout of a record chained onto a WebGPU descriptor
type SType uint32

const (
	STypeShaderSourceSPIRV                SType = 1
	STypeShaderSourceWGSL                 SType = 2
	STypeRenderPassMaxDrawCount           SType = 3
	STypeSurfaceSourceMetalLayer          SType = 4
	STypeSurfaceSourceWindowsHWND         SType = 5
	STypeSurfaceSourceXlibWindow          SType = 6
	STypeSurfaceSourceWaylandSurface      SType = 7
	STypeSurfaceSourceAndroidNativeWindow SType = 8
	STypeSurfaceSourceXCBWindow           SType = 9
)

var sTypeNames = enumtab.NewEnum(map[SType]string{
	STypeShaderSourceSPIRV:                "WGPUSType_ShaderSourceSPIRV",
	STypeShaderSourceWGSL:                 "WGPUSType_ShaderSourceWGSL",
	STypeRenderPassMaxDrawCount:           "WGPUSType_RenderPassMaxDrawCount",
	STypeSurfaceSourceMetalLayer:          "WGPUSType_SurfaceSourceMetalLayer",
	STypeSurfaceSourceWindowsHWND:         "WGPUSType_SurfaceSourceWindowsHWND",
	STypeSurfaceSourceXlibWindow:          "WGPUSType_SurfaceSourceXlibWindow",
	STypeSurfaceSourceWaylandSurface:      "WGPUSType_SurfaceSourceWaylandSurface",
	STypeSurfaceSourceAndroidNativeWindow: "WGPUSType_SurfaceSourceAndroidNativeWindow",
	STypeSurfaceSourceXCBWindow:           "WGPUSType_SurfaceSourceXCBWindow",
})

func (t SType) String() string {
	return sTypeNames.Name(t)
}

type StoreOp int32

const (
	StoreOpUndefined StoreOp = 0
	StoreOpStore     StoreOp = 1
	StoreOpDiscard   StoreOp = 2
	StoreOpForce32   StoreOp = 0x7fffffff
)

var storeOpNames = enumtab.NewEnum(map[StoreOp]string{
	StoreOpUndefined: "WGPUStoreOp_Undefined",
	StoreOpStore:     "WGPUStoreOp_Store",
	StoreOpDiscard:   "WGPUStoreOp_Discard",
	StoreOpForce32:   "WGPUStoreOp_Force32",
})

func (o StoreOp) String() string {
	return storeOpNames.Name(o)
}

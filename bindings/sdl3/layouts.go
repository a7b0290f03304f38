// Package sdl3 describes SDL3 event and GPU records as native layouts
package sdl3

import (
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
)

// EventSize is the size of SDL_Event on every platform
const EventSize = 128

var (
	CommonEvent = layout.MustStruct("SDL_CommonEvent",
		layout.Discriminant("type", layout.KindUint32),
		layout.Uint32("reserved"),
		layout.Uint64("timestamp"),
	)

	KeyboardEvent = layout.MustStruct("SDL_KeyboardEvent",
		layout.Discriminant("type", layout.KindUint32),
		layout.Uint32("reserved"),
		layout.Uint64("timestamp"),
		layout.Uint32("windowID"),
		layout.Uint32("which"),
		layout.Int32("scancode"),
		layout.Uint32("key"),
		layout.Uint16("mod"),
		layout.Uint16("raw"),
		layout.Uint8("down"),
		layout.Uint8("repeat"),
	)

	MouseMotionEvent = layout.MustStruct("SDL_MouseMotionEvent",
		layout.Discriminant("type", layout.KindUint32),
		layout.Uint32("reserved"),
		layout.Uint64("timestamp"),
		layout.Uint32("windowID"),
		layout.Uint32("which"),
		layout.Uint32("state"),
		layout.Float32("x"),
		layout.Float32("y"),
		layout.Float32("xrel"),
		layout.Float32("yrel"),
	)

	// Event is the union every SDL event is delivered in. Read type first, then the member it
	// names.
	Event = layout.MustUnion("SDL_Event",
		layout.Discriminant("type", layout.KindUint32),
		layout.Nested("common", CommonEvent),
		layout.Nested("key", KeyboardEvent),
		layout.Nested("motion", MouseMotionEvent),
		layout.ArrayOf("padding", layout.KindUint8, EventSize),
	)

	GPUBlitRegion = layout.MustStruct("SDL_GPUBlitRegion",
		layout.Address("texture"),
		layout.Uint32("mip_level"),
		layout.Uint32("layer_or_depth_plane"),
		layout.Uint32("x"),
		layout.Uint32("y"),
		layout.Uint32("w"),
		layout.Uint32("h"),
	)
)

// Layouts returns every record layout in this package
func Layouts() []*layout.StructLayout {
	return []*layout.StructLayout{
		CommonEvent,
		KeyboardEvent,
		MouseMotionEvent,
		Event,
		GPUBlitRegion,
	}
}

// Type reads the event type of an Event or any of its members
func Type(event view.Struct) EventType {
	tag, _ := event.Tag()
	return EventType(tag)
}

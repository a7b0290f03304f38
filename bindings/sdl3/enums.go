package sdl3

import "github.com/vkngwrapper/nativeview/enumtab"

// EventType is the type field shared by every member of the Event union
type EventType uint32

const (
	EventQuit            EventType = 0x100
	EventKeyDown         EventType = 0x300
	EventKeyUp           EventType = 0x301
	EventMouseMotion     EventType = 0x400
	EventMouseButtonDown EventType = 0x401
	EventMouseButtonUp   EventType = 0x402
	EventMouseWheel      EventType = 0x403
)

var eventTypeNames = enumtab.NewEnum(map[EventType]string{
	EventQuit:            "SDL_EVENT_QUIT",
	EventKeyDown:         "SDL_EVENT_KEY_DOWN",
	EventKeyUp:           "SDL_EVENT_KEY_UP",
	EventMouseMotion:     "SDL_EVENT_MOUSE_MOTION",
	EventMouseButtonDown: "SDL_EVENT_MOUSE_BUTTON_DOWN",
	EventMouseButtonUp:   "SDL_EVENT_MOUSE_BUTTON_UP",
	EventMouseWheel:      "SDL_EVENT_MOUSE_WHEEL",
})

func (t EventType) String() string {
	return eventTypeNames.Name(t)
}

type BlendFactor int32

const (
	BlendFactorZero BlendFactor = iota + 1
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

var blendFactorNames = enumtab.NewEnum(map[BlendFactor]string{
	BlendFactorZero:             "SDL_BLENDFACTOR_ZERO",
	BlendFactorOne:              "SDL_BLENDFACTOR_ONE",
	BlendFactorSrcColor:         "SDL_BLENDFACTOR_SRC_COLOR",
	BlendFactorOneMinusSrcColor: "SDL_BLENDFACTOR_ONE_MINUS_SRC_COLOR",
	BlendFactorSrcAlpha:         "SDL_BLENDFACTOR_SRC_ALPHA",
	BlendFactorOneMinusSrcAlpha: "SDL_BLENDFACTOR_ONE_MINUS_SRC_ALPHA",
	BlendFactorDstColor:         "SDL_BLENDFACTOR_DST_COLOR",
	BlendFactorOneMinusDstColor: "SDL_BLENDFACTOR_ONE_MINUS_DST_COLOR",
	BlendFactorDstAlpha:         "SDL_BLENDFACTOR_DST_ALPHA",
	BlendFactorOneMinusDstAlpha: "SDL_BLENDFACTOR_ONE_MINUS_DST_ALPHA",
})

func (f BlendFactor) String() string {
	return blendFactorNames.Name(f)
}

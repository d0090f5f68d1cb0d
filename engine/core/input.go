package core

type Button uint16

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonMaxButtons
)

// Key code definitions
type KeyCode uint16

const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyControl   KeyCode = 0x11
	KeyPause     KeyCode = 0x13
	KeyCapital   KeyCode = 0x14
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyPrint     KeyCode = 0x2A
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E

	Key0 KeyCode = 0x30
	Key1 KeyCode = 0x31
	Key2 KeyCode = 0x32
	Key3 KeyCode = 0x33
	Key4 KeyCode = 0x34
	Key5 KeyCode = 0x35
	Key6 KeyCode = 0x36
	Key7 KeyCode = 0x37
	Key8 KeyCode = 0x38
	Key9 KeyCode = 0x39

	KeyA KeyCode = 0x41
	KeyB KeyCode = 0x42
	KeyC KeyCode = 0x43
	KeyD KeyCode = 0x44
	KeyE KeyCode = 0x45
	KeyF KeyCode = 0x46
	KeyG KeyCode = 0x47
	KeyH KeyCode = 0x48
	KeyI KeyCode = 0x49
	KeyJ KeyCode = 0x4A
	KeyK KeyCode = 0x4B
	KeyL KeyCode = 0x4C
	KeyM KeyCode = 0x4D
	KeyN KeyCode = 0x4E
	KeyO KeyCode = 0x4F
	KeyP KeyCode = 0x50
	KeyQ KeyCode = 0x51
	KeyR KeyCode = 0x52
	KeyS KeyCode = 0x53
	KeyT KeyCode = 0x54
	KeyU KeyCode = 0x55
	KeyV KeyCode = 0x56
	KeyW KeyCode = 0x57
	KeyX KeyCode = 0x58
	KeyY KeyCode = 0x59
	KeyZ KeyCode = 0x5A

	KeyF1  KeyCode = 0x70
	KeyF2  KeyCode = 0x71
	KeyF3  KeyCode = 0x72
	KeyF4  KeyCode = 0x73
	KeyF5  KeyCode = 0x74
	KeyF6  KeyCode = 0x75
	KeyF7  KeyCode = 0x76
	KeyF8  KeyCode = 0x77
	KeyF9  KeyCode = 0x78
	KeyF10 KeyCode = 0x79
	KeyF11 KeyCode = 0x7A
	KeyF12 KeyCode = 0x7B

	KeyLShift   KeyCode = 0xA0
	KeyRShift   KeyCode = 0xA1
	KeyLControl KeyCode = 0xA2
	KeyRControl KeyCode = 0xA3
	KeyLAlt     KeyCode = 0xA4
	KeyRAlt     KeyCode = 0xA5
	KeyLSuper   KeyCode = 0xA6
	KeyRSuper   KeyCode = 0xA7

	KeySemicolon KeyCode = 0xBA
	KeyEqual     KeyCode = 0xBB
	KeyComma     KeyCode = 0xBC
	KeyMinus     KeyCode = 0xBD
	KeyPeriod    KeyCode = 0xBE
	KeySlash     KeyCode = 0xBF
	KeyGrave     KeyCode = 0xC0

	KeysMaxKeys KeyCode = 0x100
)

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Keyboard keeps the current and previous frame key states and the
// user-defined action bindings. Actions map to one or more keys; an action
// is pressed while any of its keys is down.
type Keyboard struct {
	current   [KeysMaxKeys]bool
	previous  [KeysMaxKeys]bool
	modifiers Modifiers
	bindings  map[string][]KeyCode
}

func NewKeyboard() Keyboard {
	return Keyboard{bindings: make(map[string][]KeyCode)}
}

// Bind associates key with action, keeping keys already bound to it.
func (k *Keyboard) Bind(action string, key KeyCode) {
	if k.bindings == nil {
		k.bindings = make(map[string][]KeyCode)
	}
	for _, bound := range k.bindings[action] {
		if bound == key {
			return
		}
	}
	k.bindings[action] = append(k.bindings[action], key)
}

// Map binds every key to action.
func (k *Keyboard) Map(action string, keys ...KeyCode) {
	for _, key := range keys {
		k.Bind(action, key)
	}
}

func (k *Keyboard) Unbind(action string) {
	delete(k.bindings, action)
}

func (k *Keyboard) ClearBindings() {
	clear(k.bindings)
}

func (k *Keyboard) Bindings(action string) []KeyCode {
	return append([]KeyCode(nil), k.bindings[action]...)
}

func (k *Keyboard) IsKeyDown(key KeyCode) bool {
	return key < KeysMaxKeys && k.current[key]
}

func (k *Keyboard) IsKeyUp(key KeyCode) bool {
	return !k.IsKeyDown(key)
}

func (k *Keyboard) WasKeyDown(key KeyCode) bool {
	return key < KeysMaxKeys && k.previous[key]
}

func (k *Keyboard) WasKeyUp(key KeyCode) bool {
	return !k.WasKeyDown(key)
}

// Pressed reports whether any key bound to action is down.
func (k *Keyboard) Pressed(action string) bool {
	for _, key := range k.bindings[action] {
		if k.IsKeyDown(key) {
			return true
		}
	}
	return false
}

// JustPressed reports whether a key bound to action went down this frame.
func (k *Keyboard) JustPressed(action string) bool {
	for _, key := range k.bindings[action] {
		if k.IsKeyDown(key) && k.WasKeyUp(key) {
			return true
		}
	}
	return false
}

// PressedWith is Pressed restricted to the given modifiers being held.
func (k *Keyboard) PressedWith(action string, mods Modifiers) bool {
	return k.modifiers&mods == mods && k.Pressed(action)
}

func (k *Keyboard) SetModifiers(mods Modifiers) {
	k.modifiers = mods
}

func (k *Keyboard) Modifiers() Modifiers {
	return k.modifiers
}

// ProcessKey records a key transition and, only if the state actually
// changed, writes a KeyPressed or KeyReleased event to bus. bus may be nil.
func (k *Keyboard) ProcessKey(bus *EventBus, key KeyCode, pressed bool) {
	if key >= KeysMaxKeys || k.current[key] == pressed {
		return
	}
	k.current[key] = pressed

	if bus == nil {
		return
	}
	if pressed {
		WriteEvent(bus, KeyPressed{Key: key})
	} else {
		WriteEvent(bus, KeyReleased{Key: key})
	}
}

// Swap copies the current state into the previous one. Called once at the
// end of every frame.
func (k *Keyboard) Swap() {
	k.previous = k.current
}

type Mouse struct {
	x, y                 int32
	prevX, prevY         int32
	buttons, prevButtons [ButtonMaxButtons]bool
}

func NewMouse() Mouse {
	return Mouse{}
}

func (m *Mouse) IsButtonDown(button Button) bool {
	return button < ButtonMaxButtons && m.buttons[button]
}

func (m *Mouse) IsButtonUp(button Button) bool {
	return !m.IsButtonDown(button)
}

func (m *Mouse) WasButtonDown(button Button) bool {
	return button < ButtonMaxButtons && m.prevButtons[button]
}

func (m *Mouse) WasButtonUp(button Button) bool {
	return !m.WasButtonDown(button)
}

func (m *Mouse) Position() (int32, int32) {
	return m.x, m.y
}

func (m *Mouse) PreviousPosition() (int32, int32) {
	return m.prevX, m.prevY
}

func (m *Mouse) ProcessButton(bus *EventBus, button Button, pressed bool) {
	if button >= ButtonMaxButtons || m.buttons[button] == pressed {
		return
	}
	m.buttons[button] = pressed

	if bus == nil {
		return
	}
	if pressed {
		WriteEvent(bus, ButtonPressed{Button: button, X: m.x, Y: m.y})
	} else {
		WriteEvent(bus, ButtonReleased{Button: button, X: m.x, Y: m.y})
	}
}

func (m *Mouse) ProcessMove(bus *EventBus, x, y int32) {
	// Only process if actually different
	if m.x == x && m.y == y {
		return
	}
	m.x, m.y = x, y
	if bus != nil {
		WriteEvent(bus, MouseMoved{X: x, Y: y})
	}
}

func (m *Mouse) ProcessWheel(bus *EventBus, delta int8) {
	if bus != nil {
		WriteEvent(bus, MouseWheel{Delta: delta})
	}
}

func (m *Mouse) Swap() {
	m.prevX, m.prevY = m.x, m.y
	m.prevButtons = m.buttons
}

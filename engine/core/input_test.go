package core

import "testing"

func TestKeyboardBindings(t *testing.T) {
	kb := NewKeyboard()
	kb.Map("jump", KeySpace, KeyW)
	kb.Bind("jump", KeySpace)

	if got := kb.Bindings("jump"); len(got) != 2 {
		t.Fatalf("duplicate binding kept: %v", got)
	}

	bus := NewEventBus()
	kb.ProcessKey(&bus, KeyW, true)

	if !kb.Pressed("jump") || !kb.JustPressed("jump") {
		t.Fatal("jump should be pressed this frame")
	}
	kb.Swap()
	if !kb.Pressed("jump") || kb.JustPressed("jump") {
		t.Fatal("jump should be held, not just pressed")
	}

	kb.SetModifiers(ModShift)
	if !kb.PressedWith("jump", ModShift) || kb.PressedWith("jump", ModShift|ModControl) {
		t.Fatal("modifier matching is wrong")
	}

	kb.Unbind("jump")
	if kb.Pressed("jump") {
		t.Fatal("unbound action must not be pressed")
	}
}

func TestKeyboardProcessKeyFiresOnChangeOnly(t *testing.T) {
	kb := NewKeyboard()
	bus := NewEventBus()

	kb.ProcessKey(&bus, KeyA, true)
	kb.ProcessKey(&bus, KeyA, true)
	kb.ProcessKey(&bus, KeyA, false)

	pressed := ReadEvents[KeyPressed](&bus)
	released := ReadEvents[KeyReleased](&bus)
	if len(pressed) != 1 || pressed[0].Key != KeyA {
		t.Fatalf("pressed events = %+v", pressed)
	}
	if len(released) != 1 {
		t.Fatalf("released events = %+v", released)
	}
}

func TestMouseState(t *testing.T) {
	m := NewMouse()
	bus := NewEventBus()

	m.ProcessMove(&bus, 10, 20)
	m.ProcessMove(&bus, 10, 20)
	m.ProcessButton(&bus, ButtonLeft, true)
	m.ProcessWheel(&bus, -1)

	if x, y := m.Position(); x != 10 || y != 20 {
		t.Fatalf("position = %d,%d", x, y)
	}
	if n := len(ReadEvents[MouseMoved](&bus)); n != 1 {
		t.Fatalf("moved events = %d, want 1", n)
	}
	clicks := ReadEvents[ButtonPressed](&bus)
	if len(clicks) != 1 || clicks[0].X != 10 || clicks[0].Y != 20 {
		t.Fatalf("click events = %+v", clicks)
	}
	if !m.IsButtonDown(ButtonLeft) || m.WasButtonDown(ButtonLeft) {
		t.Fatal("button state before swap is wrong")
	}
	m.Swap()
	if !m.WasButtonDown(ButtonLeft) {
		t.Fatal("button state after swap is wrong")
	}
	if x, y := m.PreviousPosition(); x != 10 || y != 20 {
		t.Fatalf("previous position = %d,%d", x, y)
	}
}

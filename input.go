package ck

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// InputState holds one window's mouse state for the current frame.
type InputState struct {
	// Mouse position, bottom-left origin.
	MouseX, MouseY float32

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// SetMouseButton sets mouse button state and records press and release edges.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down
	s.mouseClicked[button] = down && !wasDown
	s.mouseUp[button] = !down && wasDown
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// pollMouse updates widget states of a focused window and emits input signals.
//
// A widget under the cursor gets HOVER every frame the left button is up, and
// CLICK only on the frame the press starts. A press that lands on no widget
// emits CLICK from the window.
func (ck *Ck) pollMouse(win *Window) {
	if win == nil || win.surface == nil || win.Context == nil {
		return
	}
	if !win.surface.Focused() {
		return
	}

	in := &win.input
	left, right, middle := win.surface.MouseButtons()
	in.SetMouseButton(MouseButtonLeft, left)
	in.SetMouseButton(MouseButtonRight, right)
	in.SetMouseButton(MouseButtonMiddle, middle)
	pos := win.MousePosition()
	in.SetMousePos(pos.X, pos.Y)

	pressed := in.MouseClicked(MouseButtonLeft)
	hit := false
	for _, w := range win.Context.Widgets() {
		if !ck.handles.Alive(w.handle) {
			continue
		}
		if !w.Bounds().Contains(pos) {
			w.State = StateNormal
			continue
		}
		hit = true
		switch {
		case !left:
			w.State = StateHovered
			ck.bus.Emit(w.handle, Hover)
		case pressed:
			w.State = StatePressed
			ck.bus.Emit(w.handle, Click)
		}
	}
	if pressed && !hit {
		ck.bus.Emit(win.handle, Click)
	}
}

package ck

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNilWindow   = errors.New("ck: nil window")
	ErrZeroTexture = errors.New("ck: backend returned a zero texture")
)

// Window is a native window with its own GL context and widget Context.
//
// The first window created loads the shader programs and background textures.
// Later windows share its programs and the button and canvas textures.
type Window struct {
	handle  Handle
	surface Surface
	title   string
	input   InputState

	Width, Height int
	Context       *Context
	Programs      [programCount]uint32
	Textures      []uint32
}

// Handle returns the window's signal sender identity.
func (w *Window) Handle() Handle {
	return w.handle
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Input returns the mouse state recorded by the last poll.
func (w *Window) Input() *InputState {
	return &w.input
}

// Program returns the shader program for kind.
func (w *Window) Program(kind ProgramKind) uint32 {
	if kind < 0 || kind >= programCount {
		return 0
	}
	return w.Programs[kind]
}

// Texture returns the background texture at index, or 0 when the window has none.
func (w *Window) Texture(index int) uint32 {
	if index < 0 || index >= len(w.Textures) {
		return 0
	}
	return w.Textures[index]
}

// MousePosition returns the cursor in framebuffer pixels with a bottom-left
// origin. The cursor is reported in screen coordinates and scaled by the
// framebuffer to window ratio, which is not 1 on HiDPI displays.
func (w *Window) MousePosition() Position {
	x, y := w.surface.CursorPos()
	fw, fh := w.surface.FramebufferSize()
	sw, sh := w.surface.Size()
	if sw > 0 && sh > 0 && fw > 0 && fh > 0 {
		x *= float64(fw) / float64(sw)
		y *= float64(fh) / float64(sh)
	}
	return Position{X: float32(int(x)), Y: float32(w.Height - int(y))}
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.surface.SetTitle(title)
}

// SetSize requests a new window size. Width and Height follow once the
// framebuffer resize event arrives.
func (w *Window) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("set window size %dx%d: dimensions must be positive", width, height)
	}
	w.surface.SetSize(width, height)
	return nil
}

// CreateWindow opens a window and registers it with the frame loop.
func (ck *Ck) CreateWindow(width, height int, title string) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("create window %q: invalid size %dx%d", title, width, height)
	}
	win := &Window{title: title, Width: width, Height: height}

	var share Surface
	if len(ck.windows) > 0 {
		share = ck.windows[0].surface
	}
	surface, err := ck.backend.CreateSurface(width, height, title, share, SurfaceCallbacks{
		OnClose: func() {
			if err := ck.DestroyWindow(win); err != nil {
				ckLogger.Warn("close of destroyed window", "title", win.title, "err", err)
			}
		},
		OnFramebufferSize: func(w, h int) { ck.resizeWindow(win, w, h) },
		OnMouseButton: func(pressed bool) {
			if pressed {
				ck.bus.Emit(ck.handle, Click)
			}
		},
	})
	if err != nil {
		ckLogger.Error("failed to create window", "title", title, "err", err)
		return nil, fmt.Errorf("create window %q: %w", title, err)
	}
	win.surface = surface
	surface.MakeCurrent()

	if len(ck.windows) == 0 {
		if err := ck.loadWindowResources(win); err != nil {
			surface.Destroy()
			return nil, fmt.Errorf("create window %q: %w", title, err)
		}
	} else {
		primary := ck.windows[0]
		win.Programs = primary.Programs
		n := min(len(primary.Textures), TextureTextbox)
		win.Textures = slices.Clone(primary.Textures[:n])
	}
	// Width and Height are framebuffer pixels, like the resize callback reports.
	if fw, fh := surface.FramebufferSize(); fw > 0 && fh > 0 {
		win.Width, win.Height = fw, fh
		ck.backend.Viewport(0, 0, fw, fh)
	}

	win.handle = ck.handles.Alloc()
	win.Context = newContext(ck.handles.Alloc())
	ck.windows = append(ck.windows, win)
	ckLogger.Debug("window created", "title", title, "width", width, "height", height, "handle", win.handle)
	return win, nil
}

func (ck *Ck) loadWindowResources(win *Window) error {
	for kind := ProgramKind(0); kind < programCount; kind++ {
		vs, fs := ck.cfg.Shaders.shaderPaths(kind)
		var (
			prog uint32
			err  error
		)
		if vs == "" && fs == "" {
			prog, err = ck.backend.BuiltinShader(kind)
		} else {
			prog, err = ck.backend.LoadShader(vs, fs)
		}
		if err != nil {
			ckLogger.Error("failed to build program", "kind", kind, "vertex", vs, "fragment", fs, "err", err)
			return fmt.Errorf("%s program: %w", kind, err)
		}
		win.Programs[kind] = prog
	}

	textures := []struct {
		path  string
		color [4]uint8
	}{
		TextureButton:  {ck.cfg.Textures.Button, ck.cfg.Colors.Button},
		TextureCanvas:  {ck.cfg.Textures.Canvas, ck.cfg.Colors.Canvas},
		TextureTextbox: {ck.cfg.Textures.Textbox, ck.cfg.Colors.Textbox},
	}
	for i, t := range textures {
		var (
			tex uint32
			err error
		)
		if t.path == "" {
			tex, err = ck.backend.SolidTexture(t.color)
		} else {
			tex, err = ck.backend.LoadTexture(t.path)
		}
		if err == nil && tex == 0 {
			err = ErrZeroTexture
		}
		if err != nil {
			ckLogger.Error("failed to load background texture", "slot", i, "path", t.path, "err", err)
			return fmt.Errorf("texture slot %d: %w", i, err)
		}
		win.Textures = append(win.Textures, tex)
	}
	return nil
}

func (ck *Ck) resizeWindow(win *Window, width, height int) {
	if !ck.handles.Alive(win.handle) {
		return
	}
	win.Width, win.Height = width, height
	win.surface.MakeCurrent()
	ck.backend.Viewport(0, 0, width, height)
	ck.bus.Emit(win.handle, Resize)
}

// DestroyWindow destroys the window's widgets and surface and removes it from
// the frame loop. The loop ends when the last window is gone.
func (ck *Ck) DestroyWindow(win *Window) error {
	if win == nil {
		return ErrNilWindow
	}
	i := slices.Index(ck.windows, win)
	if i < 0 || !ck.handles.Alive(win.handle) {
		return ErrStaleHandle
	}
	ck.bus.Emit(win.handle, Deactivate)

	win.surface.MakeCurrent()
	for _, w := range win.Context.Widgets() {
		if err := ck.DestroyWidget(w); err != nil {
			ckLogger.Debug("widget already destroyed", "widget", w.handle, "err", err)
		}
	}
	win.Context.widgets = nil
	ck.bus.Forget(win.Context.handle)
	ck.handles.Release(win.Context.handle)

	ck.windows = slices.Delete(ck.windows, i, i+1)
	win.surface.Destroy()
	ck.bus.Forget(win.handle)
	ck.handles.Release(win.handle)
	ckLogger.Debug("window destroyed", "title", win.title, "remaining", len(ck.windows))
	return nil
}

// ActiveWindow returns the focused window, or nil.
func (ck *Ck) ActiveWindow() *Window {
	for _, win := range ck.windows {
		if win.surface.Focused() {
			return win
		}
	}
	return nil
}

// WindowUnderCursor returns the window the cursor is over, or nil.
func (ck *Ck) WindowUnderCursor() *Window {
	for _, win := range ck.windows {
		if win.surface.Hovered() {
			return win
		}
	}
	return nil
}

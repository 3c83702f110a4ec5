package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/ck"
	"github.com/go-theft-auto/ck/asset"
)

func init() {
	// GLFW and GL calls must come from the main thread.
	runtime.LockOSThread()
}

// Init initializes GLFW and builds the glyph table for cfg.GlyphScripts.
func (b *Backend) Init(cfg ck.Config) error {
	table, err := asset.GlyphTable(cfg.GlyphScripts)
	if err != nil {
		return fmt.Errorf("glyph table: %w", err)
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	b.cfg = cfg
	b.glyphs = table
	return nil
}

// CreateSurface opens a GLFW window with a core-profile context.
func (b *Backend) CreateSurface(width, height int, title string, share ck.Surface, cb ck.SurfaceCallbacks) (ck.Surface, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, b.cfg.GL.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, b.cfg.GL.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(b.cfg.GL.Debug))
	glfw.WindowHint(glfw.StencilBits, 8)

	var parent *glfw.Window
	if s, ok := share.(*surface); ok && s != nil {
		parent = s.win
	}
	win, err := glfw.CreateWindow(width, height, title, nil, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to create glfw window: %w", err)
	}
	win.MakeContextCurrent()

	if !b.glReady {
		if err := gl.Init(); err != nil {
			win.Destroy()
			return nil, fmt.Errorf("failed to initialize gl: %w", err)
		}
		b.glReady = true
		b.logger.Info("OpenGL initialized",
			"version", gl.GoStr(gl.GetString(gl.VERSION)),
			"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	}
	if b.cfg.GL.VSync {
		glfw.SwapInterval(1)
	}

	s := &surface{win: win, backend: b}
	win.SetCloseCallback(func(*glfw.Window) {
		if cb.OnClose != nil {
			cb.OnClose()
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if cb.OnFramebufferSize != nil {
			cb.OnFramebufferSize(w, h)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if glfwMouseButtonToCK(button) < 0 {
			return
		}
		if action == glfw.Press && cb.OnMouseButton != nil {
			cb.OnMouseButton(true)
		}
	})
	return s, nil
}

// PollEvents processes pending window events and runs their callbacks.
func (b *Backend) PollEvents() {
	glfw.PollEvents()
}

// Terminate destroys remaining windows and shuts GLFW down.
func (b *Backend) Terminate() {
	glfw.Terminate()
	b.glReady = false
	clear(b.states)
}

// surface adapts a GLFW window to ck.Surface.
type surface struct {
	win     *glfw.Window
	backend *Backend
}

func (s *surface) MakeCurrent() {
	s.win.MakeContextCurrent()
}

func (s *surface) SwapBuffers() {
	s.win.SwapBuffers()
}

func (s *surface) FramebufferSize() (int, int) {
	return s.win.GetFramebufferSize()
}

func (s *surface) Size() (int, int) {
	return s.win.GetSize()
}

func (s *surface) CursorPos() (float64, float64) {
	return s.win.GetCursorPos()
}

func (s *surface) MouseButtons() (left, right, middle bool) {
	left = s.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	right = s.win.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	middle = s.win.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press
	return left, right, middle
}

func (s *surface) Focused() bool {
	return s.win.GetAttrib(glfw.Focused) == glfw.True
}

func (s *surface) Hovered() bool {
	return s.win.GetAttrib(glfw.Hovered) == glfw.True
}

func (s *surface) SetTitle(title string) {
	s.win.SetTitle(title)
}

func (s *surface) SetSize(width, height int) {
	s.win.SetSize(width, height)
}

// Destroy releases the context's draw state and the window.
func (s *surface) Destroy() {
	s.win.MakeContextCurrent()
	s.backend.releaseState(s.win)
	s.win.Destroy()
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// glfwMouseButtonToCK maps GLFW mouse buttons to toolkit mouse buttons.
func glfwMouseButtonToCK(button glfw.MouseButton) ck.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return ck.MouseButtonLeft
	case glfw.MouseButtonRight:
		return ck.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return ck.MouseButtonMiddle
	default:
		return -1
	}
}

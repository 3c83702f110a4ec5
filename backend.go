package ck

// Surface is a native window with its own GL context.
type Surface interface {
	MakeCurrent()
	SwapBuffers()
	FramebufferSize() (width, height int)
	// Size returns the window size in screen coordinates, the unit of CursorPos.
	// It differs from FramebufferSize on HiDPI displays.
	Size() (width, height int)
	// CursorPos returns the cursor position with a top-left origin.
	CursorPos() (x, y float64)
	MouseButtons() (left, right, middle bool)
	Focused() bool
	Hovered() bool
	SetTitle(title string)
	SetSize(width, height int)
	Destroy()
}

// SurfaceCallbacks receives native window events during Platform.PollEvents.
type SurfaceCallbacks struct {
	OnClose           func()
	OnFramebufferSize func(width, height int)
	OnMouseButton     func(pressed bool)
}

// Platform creates surfaces and pumps the native event queue.
type Platform interface {
	Init(cfg Config) error
	// CreateSurface opens a window. A non-nil share makes the new GL context
	// share objects with share's context.
	CreateSurface(width, height int, title string, share Surface, cb SurfaceCallbacks) (Surface, error)
	PollEvents()
	Terminate()
}

// Assets turns files into GPU handles. A failed load returns a zero handle
// together with an error; zero is never a usable handle.
type Assets interface {
	LoadShader(vertexPath, fragmentPath string) (uint32, error)
	// BuiltinShader compiles the embedded program for kind.
	BuiltinShader(kind ProgramKind) (uint32, error)
	LoadTexture(path string) (uint32, error)
	SolidTexture(c [4]uint8) (uint32, error)
	LoadFont(path string, size int) (*Font, error)
	FreeFont(f *Font)
}

// TextureDraw composites one texture over a rectangle.
type TextureDraw struct {
	Program   uint32
	X, Y      float32
	Width     int
	Height    int
	Tint      RGB
	Intensity float32
	Texture   uint32
}

// GlyphDraw draws one run of glyph quads in a single colour.
type GlyphDraw struct {
	Program uint32
	Color   RGB
	Quads   []GlyphQuad
}

// StrokeDraw rasterizes stroke triangles into the bound canvas target.
type StrokeDraw struct {
	Program  uint32
	Color    RGB
	Erase    bool
	Width    int // canvas width
	Height   int // canvas height
	Vertices []Vec2
}

// CanvasTarget is the texture a canvas draws into. Framebuffer objects are
// not shared between GL contexts, so BeginCanvas attaches the bitmap to a
// framebuffer of whichever context is current.
type CanvasTarget struct {
	Bitmap        uint32
	Width, Height int
}

// GPU rasterizes triangles with a program and uniforms. Every call leaves
// buffers, textures and programs unbound when it returns.
type GPU interface {
	Clear(c RGBA)
	Viewport(x, y, width, height int)
	// BeginStencil masks later draws to the rectangle of p until EndStencil.
	BeginStencil(p TextureDraw)
	EndStencil()
	DrawTexture(p TextureDraw)
	DrawGlyphs(p GlyphDraw)
	NewCanvasTarget(width, height int) (CanvasTarget, error)
	DeleteCanvasTarget(t CanvasTarget)
	// BeginCanvas redirects drawing into t until EndCanvas restores the
	// default framebuffer and viewport.
	BeginCanvas(t CanvasTarget)
	EndCanvas()
	DrawStroke(p StrokeDraw)
}

// Backend bundles everything the toolkit needs from the host.
type Backend interface {
	Platform
	Assets
	GPU
}

// ProgramKind selects one of a window's shader programs.
type ProgramKind int

const (
	ProgramText ProgramKind = iota
	ProgramTexture
	ProgramLine
	programCount
)

func (k ProgramKind) String() string {
	switch k {
	case ProgramText:
		return "text"
	case ProgramTexture:
		return "texture"
	case ProgramLine:
		return "line"
	}
	return "program(?)"
}

package ck_test

import (
	"errors"

	"github.com/go-theft-auto/ck"
)

// mockSurface is a scripted window. Calls made after Destroy are recorded
// in late.
type mockSurface struct {
	cb        ck.SurfaceCallbacks
	share     ck.Surface
	title     string
	w, h      int
	winW      int // window size in screen coordinates, 0 means w
	winH      int // 0 means h
	cursorX   float64
	cursorY   float64
	left      bool
	right     bool
	focused   bool
	hovered   bool
	swaps     int
	destroyed bool
	late      []string
}

func (s *mockSurface) touch(name string) {
	if s.destroyed {
		s.late = append(s.late, name)
	}
}

func (s *mockSurface) MakeCurrent() {
	s.touch("MakeCurrent")
}

func (s *mockSurface) SwapBuffers() {
	s.touch("SwapBuffers")
	s.swaps++
}

func (s *mockSurface) FramebufferSize() (int, int) {
	s.touch("FramebufferSize")
	return s.w, s.h
}

func (s *mockSurface) Size() (int, int) {
	s.touch("Size")
	w, h := s.winW, s.winH
	if w == 0 {
		w = s.w
	}
	if h == 0 {
		h = s.h
	}
	return w, h
}

func (s *mockSurface) CursorPos() (float64, float64) {
	s.touch("CursorPos")
	return s.cursorX, s.cursorY
}

func (s *mockSurface) MouseButtons() (bool, bool, bool) {
	s.touch("MouseButtons")
	return s.left, s.right, false
}

func (s *mockSurface) Focused() bool {
	s.touch("Focused")
	return s.focused
}

func (s *mockSurface) Hovered() bool {
	s.touch("Hovered")
	return s.hovered
}

func (s *mockSurface) SetTitle(title string) {
	s.touch("SetTitle")
	s.title = title
}

func (s *mockSurface) SetSize(width, height int) {
	s.touch("SetSize")
	s.w, s.h = width, height
}

func (s *mockSurface) Destroy() {
	s.touch("Destroy")
	s.destroyed = true
}

// mockBackend records every call and hands out increasing GPU handles.
type mockBackend struct {
	next uint32

	initErr    error
	fontErr    error
	textureErr error

	inited     bool
	terminated bool
	polls      int
	onPoll     func(n int)

	surfaces  []*mockSurface
	programs  []ck.ProgramKind
	loaded    []string
	solids    int
	viewports [][4]int
	clears    int

	stencils    int
	endStencils int
	textures    []ck.TextureDraw
	glyphs      []ck.GlyphDraw
	strokes     []ck.StrokeDraw
	canvases    int
	endCanvases int

	targets    []ck.CanvasTarget
	deleted    []ck.CanvasTarget
	fonts      int
	freedFonts int
}

func (b *mockBackend) id() uint32 {
	b.next++
	return b.next
}

func (b *mockBackend) Init(ck.Config) error {
	b.inited = true
	return b.initErr
}

func (b *mockBackend) CreateSurface(width, height int, title string, share ck.Surface, cb ck.SurfaceCallbacks) (ck.Surface, error) {
	s := &mockSurface{cb: cb, share: share, title: title, w: width, h: height}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

func (b *mockBackend) PollEvents() {
	b.polls++
	if b.onPoll != nil {
		b.onPoll(b.polls)
	}
}

func (b *mockBackend) Terminate() { b.terminated = true }

func (b *mockBackend) LoadShader(vs, fs string) (uint32, error) {
	b.loaded = append(b.loaded, vs, fs)
	return b.id(), nil
}

func (b *mockBackend) BuiltinShader(kind ck.ProgramKind) (uint32, error) {
	b.programs = append(b.programs, kind)
	return b.id(), nil
}

func (b *mockBackend) LoadTexture(path string) (uint32, error) {
	if b.textureErr != nil {
		return 0, b.textureErr
	}
	b.loaded = append(b.loaded, path)
	return b.id(), nil
}

func (b *mockBackend) SolidTexture([4]uint8) (uint32, error) {
	b.solids++
	return b.id(), nil
}

// LoadFont returns a monospace font: every ASCII letter and space advances 10 px.
func (b *mockBackend) LoadFont(path string, size int) (*ck.Font, error) {
	if b.fontErr != nil {
		return nil, b.fontErr
	}
	f, err := ck.NewFont(size, 14, 12, -3, 64)
	if err != nil {
		return nil, err
	}
	f.Add(' ', &ck.Glyph{Advance: 10})
	for r := 'a'; r <= 'z'; r++ {
		f.Add(r, &ck.Glyph{Texture: b.id(), Width: 8, Height: 10, BearingY: 10, Advance: 10})
		f.Add(r-'a'+'A', &ck.Glyph{Texture: b.id(), Width: 8, Height: 10, BearingY: 10, Advance: 10})
	}
	b.fonts++
	return f, nil
}

func (b *mockBackend) FreeFont(*ck.Font) { b.freedFonts++ }

func (b *mockBackend) Clear(ck.RGBA) { b.clears++ }

func (b *mockBackend) Viewport(x, y, w, h int) {
	b.viewports = append(b.viewports, [4]int{x, y, w, h})
}

func (b *mockBackend) BeginStencil(ck.TextureDraw) { b.stencils++ }
func (b *mockBackend) EndStencil()                 { b.endStencils++ }

func (b *mockBackend) DrawTexture(p ck.TextureDraw) { b.textures = append(b.textures, p) }
func (b *mockBackend) DrawGlyphs(p ck.GlyphDraw)    { b.glyphs = append(b.glyphs, p) }
func (b *mockBackend) DrawStroke(p ck.StrokeDraw)   { b.strokes = append(b.strokes, p) }

func (b *mockBackend) NewCanvasTarget(w, h int) (ck.CanvasTarget, error) {
	if w <= 0 || h <= 0 {
		return ck.CanvasTarget{}, errors.New("bad canvas size")
	}
	t := ck.CanvasTarget{Bitmap: b.id(), Width: w, Height: h}
	b.targets = append(b.targets, t)
	return t, nil
}

func (b *mockBackend) DeleteCanvasTarget(t ck.CanvasTarget) { b.deleted = append(b.deleted, t) }

func (b *mockBackend) BeginCanvas(ck.CanvasTarget) { b.canvases++ }
func (b *mockBackend) EndCanvas()                  { b.endCanvases++ }

// reset forgets recorded draw calls.
func (b *mockBackend) reset() {
	b.stencils, b.endStencils = 0, 0
	b.textures, b.glyphs, b.strokes = nil, nil, nil
	b.canvases, b.endCanvases = 0, 0
}

// texturedDraws counts DrawTexture calls with a bound texture.
func (b *mockBackend) texturedDraws() []ck.TextureDraw {
	var out []ck.TextureDraw
	for _, d := range b.textures {
		if d.Texture != 0 {
			out = append(out, d)
		}
	}
	return out
}

var _ ck.Backend = (*mockBackend)(nil)

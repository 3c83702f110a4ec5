package ck_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-theft-auto/ck"
)

func TestButtonRendersBackgroundAndText(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	newButton(t, app, win, "ab")

	if err := app.Frame(); err != nil {
		t.Fatal(err)
	}
	if b.stencils != 1 || b.endStencils != 1 {
		t.Errorf("stencils = %d/%d, want 1/1", b.stencils, b.endStencils)
	}
	bg := b.texturedDraws()
	if len(bg) != 1 || bg[0].Texture != win.Texture(ck.TextureButton) {
		t.Fatalf("background draws = %+v", bg)
	}
	if bg[0].Program != win.Program(ck.ProgramTexture) {
		t.Error("background not drawn with the texture program")
	}
	if len(b.glyphs) != 1 {
		t.Fatalf("glyph draws = %d, want 1", len(b.glyphs))
	}
	g := b.glyphs[0]
	if len(g.Quads) != 2 || g.Program != win.Program(ck.ProgramText) {
		t.Fatalf("glyph draw = %+v", g)
	}
	// 20 px of text centered in 200x50 at (100, 100); ascender 12, descender -3.
	if q := g.Quads[0]; q.X != 190 || q.Y != 122 || q.W != 8 || q.H != 10 {
		t.Errorf("first quad = %+v, want {X:190 Y:122 W:8 H:10}", q)
	}
	if g.Quads[1].X != 200 {
		t.Errorf("second quad X = %v, want 200", g.Quads[1].X)
	}
}

func TestButtonIntensityFollowsState(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	btn := newButton(t, app, win, "")

	for state, want := range map[ck.State]float32{
		ck.StateNormal:  0,
		ck.StateHovered: 0.4,
		ck.StatePressed: 0.8,
	} {
		b.reset()
		btn.State = state
		_ = app.Frame()
		bg := b.texturedDraws()
		if len(bg) != 1 {
			t.Fatalf("%v: %d background draws", state, len(bg))
		}
		if math.Abs(float64(bg[0].Intensity-want)) > 1e-6 {
			t.Errorf("%v: intensity = %v, want %v", state, bg[0].Intensity, want)
		}
	}
}

func TestCanvasDrainsStrokesOnce(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	canvas, err := app.NewCanvas(ck.Position{X: 10, Y: 10}, ck.Size{Width: 300, Height: 200}, fontPath, "")
	if err != nil {
		t.Fatal(err)
	}
	_ = win.Context.Add(canvas)

	red := ck.RGB{1, 0, 0}
	_ = app.DrawLine(canvas, ck.Position{X: 0, Y: 0}, ck.Position{X: 50, Y: 50}, false, red, 4)
	_ = app.DrawLine(canvas, ck.Position{X: 5, Y: 5}, ck.Position{X: 5, Y: 5}, false, red, 4)
	_ = app.DrawLine(canvas, ck.Position{X: 50, Y: 50}, ck.Position{X: 90, Y: 10}, true, red, 8)

	_ = app.Frame()
	if len(b.strokes) != 2 {
		t.Fatalf("strokes = %d, want 2 (zero-length line dropped)", len(b.strokes))
	}
	if b.canvases != 1 || b.endCanvases != 1 {
		t.Errorf("canvas passes = %d/%d, want 1/1", b.canvases, b.endCanvases)
	}
	s := b.strokes[1]
	if !s.Erase || s.Width != 300 || s.Height != 200 || s.Program != win.Program(ck.ProgramLine) {
		t.Errorf("stroke = %+v", s)
	}
	if len(s.Vertices) != 6+2*16*3 {
		t.Errorf("vertices = %d, want %d", len(s.Vertices), 6+2*16*3)
	}

	bg := b.texturedDraws()
	if len(bg) != 2 {
		t.Fatalf("textured draws = %d, want background and bitmap", len(bg))
	}
	p := canvas.Payload.(*ck.CanvasPayload)
	if bg[1].Texture != p.Target.Bitmap || bg[1].Tint != ck.White {
		t.Errorf("bitmap draw = %+v", bg[1])
	}

	b.reset()
	_ = app.Frame()
	if len(b.strokes) != 0 || b.canvases != 0 {
		t.Errorf("strokes were drawn twice: %d strokes, %d passes", len(b.strokes), b.canvases)
	}
}

func TestDrawLineErrors(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	btn := newButton(t, app, win, "x")

	if err := app.DrawLine(btn, ck.Position{}, ck.Position{X: 1}, false, ck.Black, 1); !errors.Is(err, ck.ErrNotCanvas) {
		t.Errorf("button: err = %v, want ErrNotCanvas", err)
	}
	if err := app.DrawLine(nil, ck.Position{}, ck.Position{X: 1}, false, ck.Black, 1); !errors.Is(err, ck.ErrNilWidget) {
		t.Errorf("nil: err = %v, want ErrNilWidget", err)
	}
}

func TestTextboxAutoresizeSkipsText(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)

	var prev *ck.Widget
	for _, autoresize := range []bool{false, true} {
		win.Context.Remove(prev)
		tb, err := app.NewTextbox(ck.Position{}, ck.Size{Width: 100, Height: 100}, fontPath, "hello", autoresize)
		if err != nil {
			t.Fatal(err)
		}
		_ = win.Context.Add(tb)
		prev = tb

		b.reset()
		_ = app.Frame()
		if got := len(b.glyphs) > 0; got == autoresize {
			t.Errorf("autoresize=%v: text drawn = %v", autoresize, got)
		}
		if b.stencils != 1 || b.endStencils != 1 {
			t.Errorf("autoresize=%v: stencils = %d/%d, want 1/1", autoresize, b.stencils, b.endStencils)
		}
	}
}

func TestTextboxIsTopLeftAligned(t *testing.T) {
	app, b := newApp(t)
	newWindow(t, app, b)
	tb, err := app.NewTextbox(ck.Position{}, ck.Size{Width: 100, Height: 100}, fontPath, "x", false,
		ck.WithAlignment(ck.AlignCenter), ck.WithTextColor(ck.RGB{1, 0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if tb.Alignment != ck.AlignTopLeft {
		t.Errorf("alignment = %v, want top-left", tb.Alignment)
	}
	if tb.TextColor != (ck.RGB{1, 0, 0}) {
		t.Errorf("text color = %v", tb.TextColor)
	}
	if tb.Kind() != "textbox" || tb.TextureIndex != ck.TextureTextbox {
		t.Errorf("kind = %q, texture index = %d", tb.Kind(), tb.TextureIndex)
	}
}

func TestSecondaryWindowTextboxHasNoBackground(t *testing.T) {
	app, b := newApp(t)
	newWindow(t, app, b)
	second, _ := newWindow(t, app, b)
	tb, err := app.NewTextbox(ck.Position{}, ck.Size{Width: 100, Height: 100}, fontPath, "hi", false)
	if err != nil {
		t.Fatal(err)
	}
	_ = second.Context.Add(tb)

	b.reset()
	_ = app.Frame()
	if bg := b.texturedDraws(); len(bg) != 0 {
		t.Errorf("background draws = %+v, want none", bg)
	}
	if len(b.glyphs) != 1 {
		t.Errorf("glyph draws = %d, want 1", len(b.glyphs))
	}
}

func TestFailedWidgetDoesNotStopFrame(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	broken := newButton(t, app, win, "x")
	broken.Payload = nil
	newButton(t, app, win, "y")

	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if b.stencils != 1 || len(b.glyphs) != 1 {
		t.Errorf("stencils = %d, glyph draws = %d, want only the healthy button", b.stencils, len(b.glyphs))
	}
}

func TestSetWidgetTexture(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	btn := newButton(t, app, win, "")

	if err := app.SetWidgetTexture(btn, "custom.png"); err != nil {
		t.Fatal(err)
	}
	if btn.TextureIndex != 3 || len(win.Textures) != 4 {
		t.Fatalf("texture index = %d, textures = %d", btn.TextureIndex, len(win.Textures))
	}

	b.reset()
	_ = app.Frame()
	if bg := b.texturedDraws(); len(bg) != 1 || bg[0].Texture != win.Textures[3] {
		t.Errorf("background draws = %+v", bg)
	}

	b.textureErr = errors.New("missing")
	if err := app.SetWidgetTexture(btn, "missing.png"); err == nil {
		t.Error("expected error")
	}
	if btn.TextureIndex != 3 {
		t.Errorf("failed load changed texture index to %d", btn.TextureIndex)
	}
}

func TestTextboxWidth(t *testing.T) {
	app, b := newApp(t)
	newWindow(t, app, b)
	tb, err := app.NewTextbox(ck.Position{}, ck.Size{Width: 10, Height: 10}, fontPath, "ab\nabcd", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := ck.TextboxWidth(tb); got != 60 {
		t.Errorf("TextboxWidth = %d, want 60", got)
	}
	if got := ck.TextboxWidth(nil); got != 0 {
		t.Errorf("TextboxWidth(nil) = %d, want 0", got)
	}
}

func TestSetTextNormalizes(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	btn := newButton(t, app, win, "cafe\u0301")
	if btn.Text() != "caf\u00e9" {
		t.Errorf("Text = %q, want NFC form", btn.Text())
	}
}

func TestDestroyCanvasFreesTarget(t *testing.T) {
	app, b := newApp(t)
	newWindow(t, app, b)
	canvas, err := app.NewCanvas(ck.Position{}, ck.Size{Width: 40, Height: 30}, fontPath, "")
	if err != nil {
		t.Fatal(err)
	}
	target := canvas.Payload.(*ck.CanvasPayload).Target
	if target.Width != 40 || target.Height != 30 {
		t.Errorf("target = %+v", target)
	}

	var deactivated bool
	_ = app.Connect(canvas.Handle(), ck.Deactivate, func(ck.Handle, any) { deactivated = true }, nil)
	if err := app.DestroyWidget(canvas); err != nil {
		t.Fatal(err)
	}
	if !deactivated {
		t.Error("Deactivate not emitted")
	}
	if len(b.deleted) != 1 || b.deleted[0] != target || b.freedFonts != 1 {
		t.Errorf("deleted = %v, freed fonts = %d", b.deleted, b.freedFonts)
	}
	if err := app.DestroyWidget(canvas); !errors.Is(err, ck.ErrStaleHandle) {
		t.Errorf("second destroy: err = %v, want ErrStaleHandle", err)
	}
}

func TestNewCanvasTargetFailure(t *testing.T) {
	app, b := newApp(t)
	newWindow(t, app, b)
	if _, err := app.NewCanvas(ck.Position{}, ck.Size{}, fontPath, ""); err == nil {
		t.Fatal("expected error for empty canvas")
	}
	if b.freedFonts != 1 {
		t.Errorf("freed fonts = %d, want 1", b.freedFonts)
	}
}

func TestRemoveWidget(t *testing.T) {
	app, b := newApp(t)
	win, _ := newWindow(t, app, b)
	ws := []*ck.Widget{
		newButton(t, app, win, "a"),
		newButton(t, app, win, "b"),
		newButton(t, app, win, "c"),
	}
	if err := app.RemoveWidget(win.Context, ws[1]); err != nil {
		t.Fatal(err)
	}
	got := win.Context.Widgets()
	if len(got) != 2 || got[0] != ws[0] || got[1] != ws[2] {
		t.Errorf("widgets after remove = %v", got)
	}
	if b.freedFonts != 1 {
		t.Errorf("freed fonts = %d, want 1", b.freedFonts)
	}
	if err := app.RemoveWidget(win.Context, ws[1]); !errors.Is(err, ck.ErrStaleHandle) {
		t.Errorf("second remove: err = %v, want ErrStaleHandle", err)
	}
	if err := app.RemoveWidget(win.Context, nil); !errors.Is(err, ck.ErrNilWidget) {
		t.Errorf("nil widget: err = %v, want ErrNilWidget", err)
	}
}

package ck

// renderWindow emits REDRAW for the window, clears it and renders its context.
// A window destroyed by its REDRAW handler is not drawn.
func (ck *Ck) renderWindow(win *Window) error {
	if win == nil || win.surface == nil || win.Context == nil {
		return ErrNilWindow
	}
	ck.bus.Emit(win.handle, Redraw)
	if !ck.handles.Alive(win.handle) {
		return nil
	}
	win.surface.MakeCurrent()
	ck.backend.Clear(win.Context.ClearColor)
	ck.renderContext(win.Context, win)
	return nil
}

// renderContext draws widgets in insertion order. A widget that fails to
// render is logged and skipped.
func (ck *Ck) renderContext(c *Context, win *Window) {
	ck.bus.Emit(c.handle, Redraw)
	if !ck.handles.Alive(win.handle) {
		return
	}
	for i, w := range c.Widgets() {
		if !ck.handles.Alive(w.handle) {
			continue
		}
		ck.bus.Emit(w.handle, Redraw)
		if !ck.handles.Alive(win.handle) {
			return
		}
		if !ck.handles.Alive(w.handle) {
			continue
		}
		if err := ck.renderWidget(w, win); err != nil {
			ckLogger.Error("failed to render widget", "index", i, "widget", w.handle, "kind", w.Kind(), "err", err)
		}
	}
}

func (ck *Ck) renderWidget(w *Widget, win *Window) error {
	if w == nil {
		return ErrNilWidget
	}
	switch p := w.Payload.(type) {
	case ButtonPayload:
		ck.renderButton(w, win)
	case *CanvasPayload:
		if p == nil {
			return ErrNoPayload
		}
		ck.renderCanvas(w, p, win)
	case *TextboxPayload:
		if p == nil {
			return ErrNoPayload
		}
		ck.renderTextbox(w, p, win)
	default:
		return ErrNoPayload
	}
	return nil
}

// widgetQuad is the widget rectangle as a texture draw.
func widgetQuad(w *Widget, win *Window) TextureDraw {
	return TextureDraw{
		Program: win.Program(ProgramTexture),
		X:       w.Position.X,
		Y:       w.Position.Y,
		Width:   w.Size.Width,
		Height:  w.Size.Height,
	}
}

// beginWidget restricts drawing to the widget rectangle and draws its
// background. A window without the widget's texture draws no background.
func (ck *Ck) beginWidget(w *Widget, win *Window, intensity float32) {
	quad := widgetQuad(w, win)
	ck.backend.BeginStencil(quad)
	if tex := win.Texture(w.TextureIndex); tex != 0 {
		quad.Texture = tex
		quad.Intensity = intensity
		ck.backend.DrawTexture(quad)
	}
}

func (ck *Ck) renderButton(w *Widget, win *Window) {
	ck.beginWidget(w, win, w.State.intensity())
	ck.renderText(w, win)
	ck.backend.EndStencil()
}

// renderCanvas drains pending strokes into the canvas bitmap, then
// composites the bitmap over the background.
func (ck *Ck) renderCanvas(w *Widget, p *CanvasPayload, win *Window) {
	ck.beginWidget(w, win, 0)

	if p.Lines.Len() > 0 {
		ck.backend.BeginCanvas(p.Target)
		p.Lines.Drain(func(l Line) {
			ck.backend.DrawStroke(StrokeDraw{
				Program:  win.Program(ProgramLine),
				Color:    l.Color,
				Erase:    l.Erase,
				Width:    p.Target.Width,
				Height:   p.Target.Height,
				Vertices: StrokeVertices(l),
			})
		})
		ck.backend.EndCanvas()
	}

	if p.Target.Bitmap != 0 {
		quad := widgetQuad(w, win)
		quad.Texture = p.Target.Bitmap
		quad.Tint = White
		ck.backend.DrawTexture(quad)
	}
	ck.renderText(w, win)
	ck.backend.EndStencil()
}

func (ck *Ck) renderTextbox(w *Widget, p *TextboxPayload, win *Window) {
	ck.beginWidget(w, win, 0)
	if !p.Autoresize {
		ck.renderText(w, win)
	}
	ck.backend.EndStencil()
}

// renderText wraps the widget text to its box and draws one glyph run per row.
func (ck *Ck) renderText(w *Widget, win *Window) {
	if w.Font == nil || w.text == "" {
		return
	}
	for _, run := range WrapText(w.text, w.Font, w.Position, w.Size, w.Alignment) {
		quads := LayoutGlyphs(w.Font, run.Text, run.X, run.Y, 1)
		if len(quads) == 0 {
			continue
		}
		ck.backend.DrawGlyphs(GlyphDraw{
			Program: win.Program(ProgramText),
			Color:   w.TextColor,
			Quads:   quads,
		})
	}
}

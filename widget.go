package ck

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrNilWidget = errors.New("ck: nil widget")
	ErrNoPayload = errors.New("ck: widget has no payload")
	ErrNotCanvas = errors.New("ck: widget is not a canvas")
	ErrNoWindow  = errors.New("ck: no window open")
)

// State is the interaction state of a widget, driven by mouse polling.
type State int

const (
	StateNormal State = iota
	StateHovered
	StatePressed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	}
	return "state(?)"
}

// intensity is the background tint strength for s.
func (s State) intensity() float32 {
	return float32(s) * 0.4
}

// Texture slots every window fills at creation.
const (
	TextureButton = iota
	TextureCanvas
	TextureTextbox
)

// Payload is the kind-specific part of a widget. The set of payloads is
// closed: ButtonPayload, *CanvasPayload and *TextboxPayload.
type Payload interface {
	isPayload()
}

// ButtonPayload marks a push button.
type ButtonPayload struct{}

// CanvasPayload holds a canvas's off-screen target and pending strokes.
type CanvasPayload struct {
	Target CanvasTarget
	Lines  LineQueue
}

// TextboxPayload holds textbox settings.
type TextboxPayload struct {
	// Autoresize suppresses text rendering. Sizing to content is not implemented.
	Autoresize bool
}

func (ButtonPayload) isPayload()   {}
func (*CanvasPayload) isPayload()  {}
func (*TextboxPayload) isPayload() {}

// Widget is a rectangular element owned by one Context.
type Widget struct {
	handle Handle
	text   string

	Position     Position
	Size         Size
	Font         *Font
	Alignment    Alignment
	TextColor    RGB
	TextureIndex int
	State        State
	Payload      Payload
}

// Handle returns the widget's signal sender identity.
func (w *Widget) Handle() Handle {
	return w.handle
}

// Text returns the widget text.
func (w *Widget) Text() string {
	return w.text
}

// SetText replaces the widget text. Text is stored in NFC so precomposed
// glyphs are found in the cache.
func (w *Widget) SetText(s string) {
	w.text = norm.NFC.String(s)
}

// Bounds returns the widget rectangle in window pixels.
func (w *Widget) Bounds() Rect {
	return RectOf(w.Position, w.Size)
}

// Kind names the widget payload.
func (w *Widget) Kind() string {
	switch w.Payload.(type) {
	case ButtonPayload:
		return "button"
	case *CanvasPayload:
		return "canvas"
	case *TextboxPayload:
		return "textbox"
	}
	return "none"
}

// WidgetOption configures a widget at creation.
type WidgetOption func(*widgetOptions)

type widgetOptions struct {
	alignment Alignment
	color     RGB
	fontSize  int
}

// WithAlignment sets the text alignment. Textboxes always use AlignTopLeft.
func WithAlignment(a Alignment) WidgetOption {
	return func(o *widgetOptions) { o.alignment = a }
}

// WithTextColor sets the text colour.
func WithTextColor(c RGB) WidgetOption {
	return func(o *widgetOptions) { o.color = c }
}

// WithFontSize overrides the configured font size.
func WithFontSize(px int) WidgetOption {
	return func(o *widgetOptions) { o.fontSize = px }
}

func (ck *Ck) newWidget(pos Position, size Size, fontPath, text string, opts []WidgetOption) (*Widget, error) {
	if len(ck.windows) == 0 {
		return nil, ErrNoWindow
	}
	o := widgetOptions{alignment: AlignCenter, color: White, fontSize: ck.cfg.FontSize}
	for _, opt := range opts {
		opt(&o)
	}

	// Glyph textures belong to the primary context's share group.
	ck.windows[0].surface.MakeCurrent()
	font, err := ck.backend.LoadFont(fontPath, o.fontSize)
	if err != nil {
		ckLogger.Error("failed to load font", "path", fontPath, "size", o.fontSize, "err", err)
		return nil, fmt.Errorf("load font %q: %w", fontPath, err)
	}

	w := &Widget{
		handle:    ck.handles.Alloc(),
		Position:  pos,
		Size:      size,
		Font:      font,
		Alignment: o.alignment,
		TextColor: o.color,
	}
	w.SetText(text)
	return w, nil
}

// NewPushButton creates a button that tints its background by state.
func (ck *Ck) NewPushButton(pos Position, size Size, fontPath, text string, opts ...WidgetOption) (*Widget, error) {
	w, err := ck.newWidget(pos, size, fontPath, text, opts)
	if err != nil {
		return nil, fmt.Errorf("create push button: %w", err)
	}
	w.TextureIndex = TextureButton
	w.Payload = ButtonPayload{}
	ck.bus.Emit(w.handle, Activate)
	return w, nil
}

// NewCanvas creates a canvas with an off-screen bitmap the size of the widget.
func (ck *Ck) NewCanvas(pos Position, size Size, fontPath, text string, opts ...WidgetOption) (*Widget, error) {
	w, err := ck.newWidget(pos, size, fontPath, text, opts)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	target, err := ck.backend.NewCanvasTarget(size.Width, size.Height)
	if err != nil {
		ck.backend.FreeFont(w.Font)
		ck.handles.Release(w.handle)
		ckLogger.Error("failed to create canvas target", "width", size.Width, "height", size.Height, "err", err)
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	w.TextureIndex = TextureCanvas
	w.Payload = &CanvasPayload{Target: target}
	ck.bus.Emit(w.handle, Activate)
	return w, nil
}

// NewTextbox creates a top-left aligned text box.
func (ck *Ck) NewTextbox(pos Position, size Size, fontPath, text string, autoresize bool, opts ...WidgetOption) (*Widget, error) {
	w, err := ck.newWidget(pos, size, fontPath, text, opts)
	if err != nil {
		return nil, fmt.Errorf("create textbox: %w", err)
	}
	w.Alignment = AlignTopLeft
	w.TextureIndex = TextureTextbox
	w.Payload = &TextboxPayload{Autoresize: autoresize}
	ck.bus.Emit(w.handle, Activate)
	return w, nil
}

// DestroyWidget releases the widget's font, canvas target, signals and handle.
// It does not remove the widget from its context; see RemoveWidget.
func (ck *Ck) DestroyWidget(w *Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if !ck.handles.Alive(w.handle) {
		return ErrStaleHandle
	}
	ck.bus.Emit(w.handle, Deactivate)

	if len(ck.windows) > 0 {
		ck.windows[0].surface.MakeCurrent()
	}
	if w.Font != nil {
		ck.backend.FreeFont(w.Font)
		w.Font = nil
	}
	if c, ok := w.Payload.(*CanvasPayload); ok && c != nil {
		ck.backend.DeleteCanvasTarget(c.Target)
		c.Target = CanvasTarget{}
	}
	ck.bus.Forget(w.handle)
	ck.handles.Release(w.handle)
	return nil
}

// RemoveWidget detaches w from c, closing the gap, and destroys it.
func (ck *Ck) RemoveWidget(c *Context, w *Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if c != nil {
		c.Remove(w)
	}
	return ck.DestroyWidget(w)
}

// DrawLine queues a stroke on a canvas widget. Zero-length strokes are ignored.
func (ck *Ck) DrawLine(canvas *Widget, start, end Position, erase bool, color RGB, thickness float32) error {
	if canvas == nil {
		return ErrNilWidget
	}
	c, ok := canvas.Payload.(*CanvasPayload)
	if !ok || c == nil {
		return ErrNotCanvas
	}
	c.Lines.Enqueue(Line{
		Start:     start,
		End:       end,
		Thickness: thickness,
		Color:     color,
		Erase:     erase,
	})
	return nil
}

// SetWidgetTexture loads path into the primary window and makes it w's background.
func (ck *Ck) SetWidgetTexture(w *Widget, path string) error {
	if w == nil {
		return ErrNilWidget
	}
	if len(ck.windows) == 0 {
		return ErrNoWindow
	}
	win := ck.windows[0]
	win.surface.MakeCurrent()
	tex, err := ck.backend.LoadTexture(path)
	if err != nil {
		ckLogger.Error("failed to load texture", "path", path, "err", err)
		return fmt.Errorf("set widget texture: %w", err)
	}
	if tex == 0 {
		return fmt.Errorf("set widget texture %q: %w", path, ErrZeroTexture)
	}
	win.Textures = append(win.Textures, tex)
	w.TextureIndex = len(win.Textures) - 1
	return nil
}

// TextboxWidth returns the widest physical line of w's text plus 20 px of padding.
func TextboxWidth(w *Widget) int {
	if w == nil || w.Font == nil {
		return 0
	}
	widest := 0
	for _, line := range strings.Split(w.text, "\n") {
		widest = max(widest, TextWidth(line, w.Font.Glyphs))
	}
	return widest + 20
}

package ck

import "slices"

// Context is the ordered widget list of one window. Widgets render and
// receive mouse input in insertion order.
type Context struct {
	handle  Handle
	widgets []*Widget

	// ClearColor fills the window before widgets are drawn.
	ClearColor RGBA
}

func newContext(handle Handle) *Context {
	return &Context{handle: handle, ClearColor: RGBA{0, 0, 0, 1}}
}

// Handle returns the context's signal sender identity.
func (c *Context) Handle() Handle {
	return c.handle
}

// Add appends w. The context takes ownership and destroys w with the window.
func (c *Context) Add(w *Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	c.widgets = append(c.widgets, w)
	return nil
}

// Remove detaches w without destroying it.
func (c *Context) Remove(w *Widget) bool {
	i := slices.Index(c.widgets, w)
	if i < 0 {
		return false
	}
	c.widgets = slices.Delete(c.widgets, i, i+1)
	return true
}

// Widgets returns a copy of the widget list.
func (c *Context) Widgets() []*Widget {
	return slices.Clone(c.widgets)
}

// Len returns the number of widgets.
func (c *Context) Len() int {
	return len(c.widgets)
}

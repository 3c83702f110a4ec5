package ck

import (
	"fmt"
	"slices"
)

// Ck owns the backend, the signal bus and every open window.
type Ck struct {
	backend Backend
	cfg     Config
	handles *Handles
	bus     *Bus
	handle  Handle
	windows []*Window
}

// Option configures a Ck instance.
type Option func(*Ck)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(ck *Ck) { ck.cfg = cfg }
}

// New initializes the platform and returns a toolkit with no windows.
func New(backend Backend, opts ...Option) (*Ck, error) {
	ck := &Ck{
		backend: backend,
		cfg:     DefaultConfig(),
		handles: NewHandles(),
	}

	for _, opt := range opts {
		opt(ck)
	}

	if ck.cfg.Verbose {
		SetVerbose(true)
	}
	if ck.cfg.FontSize <= 0 {
		return nil, fmt.Errorf("init: font size must be positive, got %d", ck.cfg.FontSize)
	}
	ck.bus = NewBus(ck.handles, ck.cfg.SignalBuckets)
	ck.handle = ck.handles.Alloc()

	if err := backend.Init(ck.cfg); err != nil {
		ckLogger.Error("failed to initialize platform", "err", err)
		return nil, fmt.Errorf("init platform: %w", err)
	}
	return ck, nil
}

// Handle returns the root sender. The root emits CLICK on every mouse press.
func (ck *Ck) Handle() Handle {
	return ck.handle
}

// Bus returns the signal bus.
func (ck *Ck) Bus() *Bus {
	return ck.bus
}

// Config returns the active configuration.
func (ck *Ck) Config() Config {
	return ck.cfg
}

// Windows returns the open windows, primary first.
func (ck *Ck) Windows() []*Window {
	return slices.Clone(ck.windows)
}

// Connect registers h for sig from sender on the bus.
func (ck *Ck) Connect(sender Handle, sig Signal, h Handler, data any) error {
	return ck.bus.Connect(sender, sig, h, data)
}

// Disconnect removes the handler for sig from sender.
func (ck *Ck) Disconnect(sender Handle, sig Signal) bool {
	return ck.bus.Disconnect(sender, sig)
}

// Emit invokes the handler for sig from sender, if any.
func (ck *Ck) Emit(sender Handle, sig Signal) {
	ck.bus.Emit(sender, sig)
}

// Frame renders, polls and presents every window once, then pumps native events.
func (ck *Ck) Frame() error {
	for _, win := range slices.Clone(ck.windows) {
		if !ck.handles.Alive(win.handle) {
			continue
		}
		if err := ck.renderWindow(win); err != nil {
			ckLogger.Error("failed to render window", "title", win.title, "err", err)
			return fmt.Errorf("render window %q: %w", win.title, err)
		}
		// REDRAW handlers may have destroyed the window.
		if !ck.handles.Alive(win.handle) {
			continue
		}
		ck.pollMouse(win)
		if ck.handles.Alive(win.handle) {
			win.surface.SwapBuffers()
		}
	}
	ck.backend.PollEvents()
	return nil
}

// Loop runs frames until every window is closed.
func (ck *Ck) Loop() error {
	for len(ck.windows) > 0 {
		if err := ck.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Destroy closes all windows and terminates the platform.
func (ck *Ck) Destroy() {
	for len(ck.windows) > 0 {
		_ = ck.DestroyWindow(ck.windows[len(ck.windows)-1])
	}
	ck.bus.Forget(ck.handle)
	ck.handles.Release(ck.handle)
	ck.backend.Terminate()
}

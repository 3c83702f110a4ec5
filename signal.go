package ck

// Signal is an event kind dispatched through a Bus.
type Signal int

const (
	Activate Signal = iota
	Deactivate
	Click
	Hover
	Resize
	Redraw
	UserSignal1
	UserSignal2
	UserSignal3
)

var signalNames = [...]string{
	Activate:    "activate",
	Deactivate:  "deactivate",
	Click:       "click",
	Hover:       "hover",
	Resize:      "resize",
	Redraw:      "redraw",
	UserSignal1: "user1",
	UserSignal2: "user2",
	UserSignal3: "user3",
}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return "signal(?)"
}

// Handler receives the sender of a signal and the data given at Connect.
// Handlers run synchronously on the thread that emits.
type Handler func(sender Handle, data any)

// slot is one link of a sender's handler chain.
type slot struct {
	signal  Signal
	handler Handler
	data    any
	next    *slot
}

// Bus maps each sender to a chain of handlers, at most one per signal kind.
// It is owned by a Ck and is not safe for concurrent use.
type Bus struct {
	handles *Handles
	buckets int
	senders *HashMap[*slot]
}

// NewBus creates a bus that validates senders against handles.
// The registry itself is allocated on the first Connect.
func NewBus(handles *Handles, buckets int) *Bus {
	if buckets <= 0 {
		buckets = 128
	}
	return &Bus{handles: handles, buckets: buckets}
}

// Connect registers h for sig on sender. Connecting a kind that is already
// present replaces its handler and data.
func (b *Bus) Connect(sender Handle, sig Signal, h Handler, data any) error {
	if h == nil {
		return nil
	}
	if b.handles != nil && !b.handles.Alive(sender) {
		ckLogger.Warn("connect on stale sender", "sender", sender, "signal", sig)
		return ErrStaleHandle
	}
	if b.senders == nil {
		m, err := NewHashMap[*slot](b.buckets)
		if err != nil {
			return err
		}
		b.senders = m
	}

	head, ok := b.senders.Get(sender.Key())
	if !ok {
		b.senders.Insert(sender.Key(), &slot{signal: sig, handler: h, data: data})
		return nil
	}
	last := head
	for s := head; s != nil; s = s.next {
		if s.signal == sig {
			s.handler = h
			s.data = data
			return nil
		}
		last = s
	}
	last.next = &slot{signal: sig, handler: h, data: data}
	return nil
}

// Disconnect removes the handler for sig on sender. It reports whether one was removed.
func (b *Bus) Disconnect(sender Handle, sig Signal) bool {
	if b.senders == nil {
		return false
	}
	head, ok := b.senders.Get(sender.Key())
	if !ok {
		return false
	}
	var prev *slot
	for s := head; s != nil; s = s.next {
		if s.signal != sig {
			prev = s
			continue
		}
		switch {
		case prev != nil:
			prev.next = s.next
		case s.next != nil:
			_, _ = b.senders.Replace(sender.Key(), s.next)
		default:
			_ = b.senders.Remove(sender.Key())
		}
		return true
	}
	return false
}

// Emit invokes the handler registered for sig on sender, if any.
// Unknown or stale senders are ignored.
func (b *Bus) Emit(sender Handle, sig Signal) {
	if b.senders == nil {
		return
	}
	if b.handles != nil && !b.handles.Alive(sender) {
		return
	}
	head, ok := b.senders.Get(sender.Key())
	if !ok {
		return
	}
	for s := head; s != nil; s = s.next {
		if s.signal == sig {
			s.handler(sender, s.data)
			return
		}
	}
}

// Connected reports whether sender has a handler for sig.
func (b *Bus) Connected(sender Handle, sig Signal) bool {
	if b.senders == nil {
		return false
	}
	head, _ := b.senders.Get(sender.Key())
	for s := head; s != nil; s = s.next {
		if s.signal == sig {
			return true
		}
	}
	return false
}

// Forget drops every handler registered for sender.
func (b *Bus) Forget(sender Handle) {
	if b.senders == nil {
		return
	}
	_ = b.senders.Remove(sender.Key())
}

// Senders returns the number of senders with at least one handler.
func (b *Bus) Senders() int {
	if b.senders == nil {
		return 0
	}
	return b.senders.Len()
}

package ck_test

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/ck"
)

func newBus(t *testing.T, n int) (*ck.Bus, []ck.Handle, *ck.Handles) {
	t.Helper()
	handles := ck.NewHandles()
	senders := make([]ck.Handle, n)
	for i := range senders {
		senders[i] = handles.Alloc()
	}
	return ck.NewBus(handles, 4), senders, handles
}

func TestBusConnectEmitDisconnect(t *testing.T) {
	bus, s, _ := newBus(t, 1)
	a := s[0]

	var got []string
	_ = bus.Connect(a, ck.Click, func(sender ck.Handle, data any) {
		if sender != a {
			t.Errorf("sender = %v, want %v", sender, a)
		}
		got = append(got, data.(string))
	}, "x")

	bus.Emit(a, ck.Click)
	bus.Emit(a, ck.Hover)
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("got = %v, want [x]", got)
	}

	if !bus.Disconnect(a, ck.Click) {
		t.Fatal("Disconnect returned false")
	}
	bus.Emit(a, ck.Click)
	if len(got) != 1 {
		t.Errorf("handler ran after Disconnect: %v", got)
	}
	if bus.Senders() != 0 {
		t.Errorf("Senders = %d, want 0 after last handler removed", bus.Senders())
	}
	if bus.Disconnect(a, ck.Click) {
		t.Error("second Disconnect returned true")
	}
}

func TestBusConnectOverwritesKind(t *testing.T) {
	bus, s, _ := newBus(t, 1)
	var first, second int
	_ = bus.Connect(s[0], ck.Redraw, func(ck.Handle, any) { first++ }, nil)
	_ = bus.Connect(s[0], ck.Redraw, func(ck.Handle, any) { second++ }, nil)
	bus.Emit(s[0], ck.Redraw)
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d, want 0 and 1", first, second)
	}
}

func TestBusDisconnectKeepsOtherKinds(t *testing.T) {
	kinds := []ck.Signal{ck.Click, ck.Hover, ck.Redraw}
	for _, drop := range kinds {
		bus, s, _ := newBus(t, 1)
		fired := map[ck.Signal]int{}
		for _, k := range kinds {
			k := k
			_ = bus.Connect(s[0], k, func(ck.Handle, any) { fired[k]++ }, nil)
		}
		bus.Disconnect(s[0], drop)
		for _, k := range kinds {
			bus.Emit(s[0], k)
		}
		for _, k := range kinds {
			want := 1
			if k == drop {
				want = 0
			}
			if fired[k] != want {
				t.Errorf("drop %v: %v fired %d times, want %d", drop, k, fired[k], want)
			}
			if bus.Connected(s[0], k) != (want == 1) {
				t.Errorf("drop %v: Connected(%v) = %v", drop, k, !(want == 1))
			}
		}
	}
}

func TestBusSendersAreIndependent(t *testing.T) {
	bus, s, _ := newBus(t, 20)
	counts := make([]int, len(s))
	for i, h := range s {
		i := i
		_ = bus.Connect(h, ck.UserSignal1, func(ck.Handle, any) { counts[i]++ }, nil)
	}
	bus.Emit(s[7], ck.UserSignal1)
	for i, c := range counts {
		want := 0
		if i == 7 {
			want = 1
		}
		if c != want {
			t.Errorf("sender %d fired %d times, want %d", i, c, want)
		}
	}
}

func TestBusStaleSender(t *testing.T) {
	bus, s, handles := newBus(t, 1)
	var fired int
	_ = bus.Connect(s[0], ck.Click, func(ck.Handle, any) { fired++ }, nil)
	handles.Release(s[0])

	bus.Emit(s[0], ck.Click)
	if fired != 0 {
		t.Error("handler ran for a released sender")
	}
	if err := bus.Connect(s[0], ck.Click, func(ck.Handle, any) {}, nil); !errors.Is(err, ck.ErrStaleHandle) {
		t.Errorf("Connect: err = %v, want ErrStaleHandle", err)
	}
}

func TestBusNilHandlerAndEmptyBus(t *testing.T) {
	bus, s, _ := newBus(t, 1)
	bus.Emit(s[0], ck.Click)
	if err := bus.Connect(s[0], ck.Click, nil, nil); err != nil {
		t.Errorf("Connect(nil) = %v", err)
	}
	if bus.Connected(s[0], ck.Click) {
		t.Error("nil handler was registered")
	}
}

func TestBusHandlerMayDisconnectItself(t *testing.T) {
	bus, s, _ := newBus(t, 1)
	var fired int
	_ = bus.Connect(s[0], ck.Click, func(sender ck.Handle, _ any) {
		fired++
		bus.Disconnect(sender, ck.Click)
	}, nil)
	bus.Emit(s[0], ck.Click)
	bus.Emit(s[0], ck.Click)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestSignalString(t *testing.T) {
	if ck.Click.String() != "click" || ck.UserSignal3.String() != "user3" || ck.Signal(99).String() != "signal(?)" {
		t.Error("unexpected signal names")
	}
}

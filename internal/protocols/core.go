// Package protocols holds the interface descriptors and typed proxy
// structs for every Wayland interface this runtime speaks. Each file
// registers its descriptors from init(); internal/client imports this
// package for its side effects and its types.
package protocols

import (
	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

func init() {
	registry.Register(&registry.Interface{
		Name: "wl_display",
		Requests: []registry.Method{
			{Name: "sync", Signature: "n"},
			{Name: "get_registry", Signature: "n"},
		},
		Events: []registry.Method{
			{Name: "error", Signature: "ous"},
			{Name: "delete_id", Signature: "u"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "wl_registry",
		Requests: []registry.Method{
			{Name: "bind", Signature: "usun"},
		},
		Events: []registry.Method{
			{Name: "global", Signature: "usu"},
			{Name: "global_remove", Signature: "u"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "wl_callback",
		Events: []registry.Method{
			{Name: "done", Signature: "u"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "wl_seat",
		Events: []registry.Method{
			{Name: "capabilities", Signature: "u"},
			{Name: "name", Signature: "s"},
		},
	})
}

// Seat id bitmask values for the wl_seat.capabilities event.
const (
	SeatCapabilityPointer  uint32 = 1 << 0
	SeatCapabilityKeyboard uint32 = 1 << 1
	SeatCapabilityTouch    uint32 = 1 << 2
)

// SeatListener receives wl_seat events by name instead of by position.
type SeatListener struct {
	Capabilities func(caps uint32)
	Name         func(name string)
}

// Seat is a proxy for a bound wl_seat global.
type Seat struct {
	id       uint32
	display  *wlclient.Display
	listener SeatListener
}

// ID implements wlclient.Proxy.
func (s *Seat) ID() uint32 { return s.id }

// SetID implements wlclient.IDSetter.
func (s *Seat) SetID(id uint32) { s.id = id }

// Listen installs l as the event listener and registers it with the
// owning Display.
func (s *Seat) Listen(l SeatListener) {
	s.listener = l
	s.display.AddListener(s.id, s)
}

// HandleEvent implements wlclient.EventHandler.
func (s *Seat) HandleEvent(methodID uint16, args []wire.Arg) {
	switch methodID {
	case 0:
		if s.listener.Capabilities != nil && len(args) == 2 {
			s.listener.Capabilities(args[1].UInt)
		}
	case 1:
		if s.listener.Name != nil && len(args) == 2 {
			s.listener.Name(args[1].Str)
		}
	}
}

// NewSeat constructs an unbound Seat proxy ready to pass to
// wlclient.Registry.Bind.
func NewSeat(d *wlclient.Display) *Seat {
	return &Seat{display: d}
}

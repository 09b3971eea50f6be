// Package client is the per-connection convenience wrapper: it drives
// wlclient.Connect, resolves the seat and every virtual-input manager
// global during the startup sync, and hands the public
// virtual_pointer/virtual_keyboard/pointer_constraints/
// keyboard_shortcuts_inhibit packages ready-to-use manager proxies instead
// of making each of them repeat registry binding logic.
package client

import (
	"fmt"

	"github.com/wlvirt/virtual-input/internal/protocols"
	"github.com/wlvirt/virtual-input/wlclient"
)

// Client owns a single Wayland connection plus every virtual-input global
// this runtime knows how to bind.
type Client struct {
	Display *wlclient.Display

	seat                    *protocols.Seat
	pointerManager          *protocols.VirtualPointerManager
	keyboardManager         *protocols.VirtualKeyboardManager
	constraintsManager      *protocols.PointerConstraintsManager
	shortcutsInhibitManager *protocols.KeyboardShortcutsInhibitManager
}

// Connect opens socketPath (empty string resolves WAYLAND_DISPLAY /
// XDG_RUNTIME_DIR per wlclient.SocketPath) and binds every global this
// runtime supports, by interface name, as it is announced.
func Connect(socketPath string) (*Client, error) {
	d, err := wlclient.Connect(socketPath)
	if err != nil {
		return nil, err
	}

	c := &Client{Display: d}
	reg := d.Registry()

	reg.OnGlobal("wl_seat", func(r *wlclient.Registry, name, version uint32) {
		seat := protocols.NewSeat(d)
		if err := r.Bind(name, "wl_seat", version, seat); err == nil {
			c.seat = seat
		}
	})
	reg.OnGlobal("zwlr_virtual_pointer_manager_v1", func(r *wlclient.Registry, name, version uint32) {
		mgr := protocols.NewVirtualPointerManager(d)
		if err := r.Bind(name, "zwlr_virtual_pointer_manager_v1", version, mgr); err == nil {
			c.pointerManager = mgr
		}
	})
	reg.OnGlobal("zwp_virtual_keyboard_manager_v1", func(r *wlclient.Registry, name, version uint32) {
		mgr := protocols.NewVirtualKeyboardManager(d)
		if err := r.Bind(name, "zwp_virtual_keyboard_manager_v1", version, mgr); err == nil {
			c.keyboardManager = mgr
		}
	})
	reg.OnGlobal("zwp_pointer_constraints_v1", func(r *wlclient.Registry, name, version uint32) {
		mgr := protocols.NewPointerConstraintsManager(d)
		if err := r.Bind(name, "zwp_pointer_constraints_v1", version, mgr); err == nil {
			c.constraintsManager = mgr
		}
	})
	reg.OnGlobal("zwp_keyboard_shortcuts_inhibit_manager_v1", func(r *wlclient.Registry, name, version uint32) {
		mgr := protocols.NewKeyboardShortcutsInhibitManager(d)
		if err := r.Bind(name, "zwp_keyboard_shortcuts_inhibit_manager_v1", version, mgr); err == nil {
			c.shortcutsInhibitManager = mgr
		}
	})

	// OnGlobal replayed every global the first sync inside wlclient.Connect
	// already collected, binding each synchronously above. A second
	// roundtrip flushes the resulting bind requests.
	if err := d.Roundtrip(); err != nil {
		d.Close()
		return nil, err
	}

	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.Display.Close()
}

// DispatchEvents drains every currently buffered event, routing each to its
// registered listener. Callers that install OnLocked/OnConfined/OnState-style
// callbacks must call this (directly or via Roundtrip) for those callbacks
// to ever run; the runtime never dispatches on its own.
func (c *Client) DispatchEvents() error {
	return c.Display.DispatchAll()
}

// Seat returns the bound wl_seat global, or an error if the compositor
// never advertised one.
func (c *Client) Seat() (*protocols.Seat, error) {
	if c.seat == nil {
		return nil, fmt.Errorf("client: compositor did not advertise wl_seat")
	}
	return c.seat, nil
}

// PointerManager returns the bound zwlr_virtual_pointer_manager_v1 global.
func (c *Client) PointerManager() (*protocols.VirtualPointerManager, error) {
	if c.pointerManager == nil {
		return nil, fmt.Errorf("client: compositor does not support zwlr_virtual_pointer_manager_v1")
	}
	return c.pointerManager, nil
}

// KeyboardManager returns the bound zwp_virtual_keyboard_manager_v1 global.
func (c *Client) KeyboardManager() (*protocols.VirtualKeyboardManager, error) {
	if c.keyboardManager == nil {
		return nil, fmt.Errorf("client: compositor does not support zwp_virtual_keyboard_manager_v1")
	}
	return c.keyboardManager, nil
}

// ConstraintsManager returns the bound zwp_pointer_constraints_v1 global.
func (c *Client) ConstraintsManager() (*protocols.PointerConstraintsManager, error) {
	if c.constraintsManager == nil {
		return nil, fmt.Errorf("client: compositor does not support zwp_pointer_constraints_v1")
	}
	return c.constraintsManager, nil
}

// ShortcutsInhibitManager returns the bound
// zwp_keyboard_shortcuts_inhibit_manager_v1 global.
func (c *Client) ShortcutsInhibitManager() (*protocols.KeyboardShortcutsInhibitManager, error) {
	if c.shortcutsInhibitManager == nil {
		return nil, fmt.Errorf("client: compositor does not support zwp_keyboard_shortcuts_inhibit_manager_v1")
	}
	return c.shortcutsInhibitManager, nil
}

package protocols

import (
	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

func init() {
	registry.Register(&registry.Interface{
		Name: "zwp_virtual_keyboard_manager_v1",
		Requests: []registry.Method{
			{Name: "create_virtual_keyboard", Signature: "on"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "zwp_virtual_keyboard_v1",
		Requests: []registry.Method{
			{Name: "keymap", Signature: "uhu"},
			{Name: "key", Signature: "uuu"},
			{Name: "modifiers", Signature: "uuuu"},
			{Name: "destroy"},
		},
	})
}

// Keymap formats for zwp_virtual_keyboard_v1.keymap.
const (
	KeymapFormatNoKeymap uint32 = 0
	KeymapFormatXKBV1    uint32 = 1
)

// KeyState values for zwp_virtual_keyboard_v1.key.
const (
	KeyStateReleased uint32 = 0
	KeyStatePressed  uint32 = 1
)

// VirtualKeyboardManager is a proxy for the bound
// zwp_virtual_keyboard_manager_v1 global.
type VirtualKeyboardManager struct {
	id      uint32
	display *wlclient.Display
}

func (m *VirtualKeyboardManager) ID() uint32      { return m.id }
func (m *VirtualKeyboardManager) SetID(id uint32) { m.id = id }

// NewVirtualKeyboardManager constructs an unbound manager proxy ready to
// pass to wlclient.Registry.Bind.
func NewVirtualKeyboardManager(d *wlclient.Display) *VirtualKeyboardManager {
	return &VirtualKeyboardManager{display: d}
}

// CreateVirtualKeyboard requests a new virtual keyboard tied to seat.
func (m *VirtualKeyboardManager) CreateVirtualKeyboard(seat *Seat) (*VirtualKeyboard, error) {
	id, err := m.display.Register(0, "zwp_virtual_keyboard_v1")
	if err != nil {
		return nil, err
	}
	args := []wire.Arg{wire.ArgObj(seat.ID()), wire.ArgNew(id)}
	if err := m.display.SendRequest(m.id, 0, args); err != nil {
		m.display.Unregister(id)
		return nil, err
	}
	return &VirtualKeyboard{id: id, display: m.display}, nil
}

// VirtualKeyboard is a proxy for a created zwp_virtual_keyboard_v1 object.
type VirtualKeyboard struct {
	id      uint32
	display *wlclient.Display
}

func (k *VirtualKeyboard) ID() uint32 { return k.id }

// Keymap uploads a keymap: fd is a memfd/tmpfile holding size bytes of
// XKB keymap text, transported out of band via SCM_RIGHTS.
func (k *VirtualKeyboard) Keymap(format uint32, fd int, size uint32) error {
	args := []wire.Arg{wire.ArgU(format), wire.ArgFD(fd), wire.ArgU(size)}
	return k.display.SendRequest(k.id, 0, args)
}

// Key sends a single key press/release, keyed by Linux evdev keycode.
func (k *VirtualKeyboard) Key(timeMS, key, state uint32) error {
	args := []wire.Arg{wire.ArgU(timeMS), wire.ArgU(key), wire.ArgU(state)}
	return k.display.SendRequest(k.id, 1, args)
}

// Modifiers updates the depressed/latched/locked modifier masks and the
// active keyboard group.
func (k *VirtualKeyboard) Modifiers(depressed, latched, locked, group uint32) error {
	args := []wire.Arg{wire.ArgU(depressed), wire.ArgU(latched), wire.ArgU(locked), wire.ArgU(group)}
	return k.display.SendRequest(k.id, 2, args)
}

// Destroy releases the virtual keyboard.
func (k *VirtualKeyboard) Destroy() error {
	if err := k.display.SendRequest(k.id, 3, nil); err != nil {
		return err
	}
	return k.display.Unregister(k.id)
}

package protocols

import (
	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

// keyboard_shortcuts_inhibit-unstable-v1 descriptor and proxy types.
func init() {
	registry.Register(&registry.Interface{
		Name: "zwp_keyboard_shortcuts_inhibit_manager_v1",
		Requests: []registry.Method{
			{Name: "inhibit_shortcuts", Signature: "noo"},
			{Name: "destroy"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "zwp_keyboard_shortcuts_inhibitor_v1",
		Requests: []registry.Method{
			{Name: "destroy"},
		},
		Events: []registry.Method{
			{Name: "active"},
			{Name: "inactive"},
		},
	})
}

// KeyboardShortcutsInhibitManager is a proxy for the bound
// zwp_keyboard_shortcuts_inhibit_manager_v1 global.
type KeyboardShortcutsInhibitManager struct {
	id      uint32
	display *wlclient.Display
}

func (m *KeyboardShortcutsInhibitManager) ID() uint32      { return m.id }
func (m *KeyboardShortcutsInhibitManager) SetID(id uint32) { m.id = id }

// NewKeyboardShortcutsInhibitManager constructs an unbound manager proxy
// ready to pass to wlclient.Registry.Bind.
func NewKeyboardShortcutsInhibitManager(d *wlclient.Display) *KeyboardShortcutsInhibitManager {
	return &KeyboardShortcutsInhibitManager{display: d}
}

// InhibitShortcuts requests that compositor-level shortcut handling be
// suppressed for surface while seat has focus on it.
func (m *KeyboardShortcutsInhibitManager) InhibitShortcuts(surface, seat uint32) (*KeyboardShortcutsInhibitor, error) {
	id, err := m.display.Register(0, "zwp_keyboard_shortcuts_inhibitor_v1")
	if err != nil {
		return nil, err
	}
	args := []wire.Arg{wire.ArgNew(id), wire.ArgObj(surface), wire.ArgObj(seat)}
	if err := m.display.SendRequest(m.id, 0, args); err != nil {
		m.display.Unregister(id)
		return nil, err
	}
	inhib := &KeyboardShortcutsInhibitor{id: id, display: m.display}
	m.display.AddListener(id, inhib)
	return inhib, nil
}

// Destroy releases the manager object.
func (m *KeyboardShortcutsInhibitManager) Destroy() error {
	if err := m.display.SendRequest(m.id, 1, nil); err != nil {
		return err
	}
	return m.display.Unregister(m.id)
}

// KeyboardShortcutsInhibitorListener receives
// zwp_keyboard_shortcuts_inhibitor_v1 events.
type KeyboardShortcutsInhibitorListener struct {
	Active   func()
	Inactive func()
}

// KeyboardShortcutsInhibitor is a proxy for a created
// zwp_keyboard_shortcuts_inhibitor_v1 object.
type KeyboardShortcutsInhibitor struct {
	id       uint32
	display  *wlclient.Display
	listener KeyboardShortcutsInhibitorListener
}

func (i *KeyboardShortcutsInhibitor) ID() uint32 { return i.id }

// Listen installs l's event listener.
func (i *KeyboardShortcutsInhibitor) Listen(listener KeyboardShortcutsInhibitorListener) {
	i.listener = listener
}

// HandleEvent implements wlclient.EventHandler.
func (i *KeyboardShortcutsInhibitor) HandleEvent(methodID uint16, args []wire.Arg) {
	switch methodID {
	case 0:
		if i.listener.Active != nil {
			i.listener.Active()
		}
	case 1:
		if i.listener.Inactive != nil {
			i.listener.Inactive()
		}
	}
}

// Destroy releases the inhibitor, restoring compositor shortcut handling.
func (i *KeyboardShortcutsInhibitor) Destroy() error {
	if err := i.display.SendRequest(i.id, 0, nil); err != nil {
		return err
	}
	return i.display.Unregister(i.id)
}

// Package keyboard_shortcuts_inhibit provides Go bindings for the
// keyboard-shortcuts-inhibit-unstable-v1 Wayland protocol.
//
// This protocol lets a client ask the compositor to deliver keyboard
// events exactly as generated, pausing any compositor-level shortcut
// handling (such as a terminal emulator that wants to receive a raw
// Ctrl+Shift+T rather than have the compositor intercept it) while the
// client's surface has keyboard focus.
//
// # Basic Usage
//
//	manager, err := keyboard_shortcuts_inhibit.NewManager("")
//	inhibitor, err := manager.InhibitShortcuts(surface, seat)
//	inhibitor.OnState(func() { /* active */ }, func() { /* inactive */ })
//	defer inhibitor.Destroy()
package keyboard_shortcuts_inhibit

import (
	"fmt"

	"github.com/wlvirt/virtual-input/internal/client"
	"github.com/wlvirt/virtual-input/internal/protocols"
)

// Manager owns the Wayland connection and the bound
// zwp_keyboard_shortcuts_inhibit_manager_v1 global.
type Manager struct {
	client  *client.Client
	manager *protocols.KeyboardShortcutsInhibitManager
}

// Inhibitor wraps a created zwp_keyboard_shortcuts_inhibitor_v1 object.
type Inhibitor struct {
	inhib *protocols.KeyboardShortcutsInhibitor
}

// NewManager connects to the compositor at socketPath (empty string
// resolves WAYLAND_DISPLAY) and binds the shortcuts-inhibit manager.
func NewManager(socketPath string) (*Manager, error) {
	c, err := client.Connect(socketPath)
	if err != nil {
		return nil, fmt.Errorf("keyboard_shortcuts_inhibit: failed to connect: %w", err)
	}
	mgr, err := c.ShortcutsInhibitManager()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("keyboard_shortcuts_inhibit: %w", err)
	}
	return &Manager{client: c, manager: mgr}, nil
}

// Close releases the manager and the underlying connection.
func (m *Manager) Close() error {
	return m.client.Close()
}

// DispatchEvents drains buffered active/inactive events, invoking whichever
// OnState callback is installed. Call it from the application's own event
// loop; nothing dispatches on its own.
func (m *Manager) DispatchEvents() error {
	return m.client.DispatchEvents()
}

// InhibitShortcuts requests that compositor shortcut handling be
// suppressed for surface while seat has keyboard focus on it.
func (m *Manager) InhibitShortcuts(surface, seat uint32) (*Inhibitor, error) {
	inhib, err := m.manager.InhibitShortcuts(surface, seat)
	if err != nil {
		return nil, fmt.Errorf("keyboard_shortcuts_inhibit: failed to inhibit shortcuts: %w", err)
	}
	return &Inhibitor{inhib: inhib}, nil
}

// OnState installs callbacks fired as the compositor grants or revokes
// the inhibition (e.g. a focus change can revoke it even without Destroy).
func (i *Inhibitor) OnState(active, inactive func()) {
	i.inhib.Listen(protocols.KeyboardShortcutsInhibitorListener{Active: active, Inactive: inactive})
}

// Destroy releases the inhibitor, restoring compositor shortcut handling.
func (i *Inhibitor) Destroy() error {
	return i.inhib.Destroy()
}

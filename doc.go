// Package virtual_input documents wlvirt, a pure-Go Wayland client runtime
// for virtual input protocols.
//
// It implements Go bindings for the wlr-virtual-pointer-unstable-v1 and
// virtual-keyboard-unstable-v1 Wayland protocols, enabling applications to
// inject mouse and keyboard events into Wayland compositors without
// requiring root privileges, plus pointer-constraints-unstable-v1 and
// keyboard-shortcuts-inhibit-unstable-v1 for capturing and protecting that
// input once it reaches the compositor.
//
// # Supported Protocols
//
// • wlr-virtual-pointer-unstable-v1: Mouse input injection (motion, buttons, scroll)
// • virtual-keyboard-unstable-v1: Keyboard input injection (keys, modifiers, text)
// • pointer-constraints-unstable-v1: Exclusive pointer capture and constraints
// • keyboard-shortcuts-inhibit-unstable-v1: Keyboard shortcut inhibition
//
// # Compositor Compatibility
//
// This library is designed for and tested with wlroots-based compositors:
// • Hyprland (full support)
// • Sway (full support)
// • Other wlroots compositors (generally supported)
//
// Note: GNOME and KDE have limited or no support for these protocols.
//
// # Security Model
//
// Virtual input protocols work at the user level without requiring root
// privileges. The Wayland compositor controls access and can implement
// security policies. Most wlroots-based compositors allow virtual input
// devices by default.
//
// # Basic Usage
//
// Virtual Pointer (Mouse):
//
//	import "github.com/wlvirt/virtual-input/virtual_pointer"
//
//	manager, err := virtual_pointer.NewVirtualPointerManager("")
//	pointer, err := manager.CreatePointer()
//
//	pointer.MoveRelative(10.0, 5.0)
//	pointer.LeftClick()
//
// Virtual Keyboard:
//
//	import "github.com/wlvirt/virtual-input/virtual_keyboard"
//
//	manager, err := virtual_keyboard.NewVirtualKeyboardManager("")
//	keyboard, err := manager.CreateVirtualKeyboard()
//
//	virtual_keyboard.TypeString(keyboard, "Hello, World!")
//	virtual_keyboard.KeyCombo(keyboard, virtual_keyboard.MOD_CTRL, virtual_keyboard.KEY_C)
//
// Pointer Constraints and shortcut inhibition follow the same
// connect-then-bind shape; see pointer_constraints and
// keyboard_shortcuts_inhibit.
//
// # Architecture
//
// wlclient implements the wire protocol (framing, object id allocation,
// request/event dispatch) against a raw AF_UNIX socket. internal/protocols
// holds the interface descriptors and generated-style proxy types for each
// protocol above. internal/client binds the globals every public package
// needs during connection setup. Each top-level package (virtual_pointer,
// virtual_keyboard, pointer_constraints, keyboard_shortcuts_inhibit) is a
// thin, domain-specific wrapper over that shared plumbing.
//
// # Thread Safety
//
// A Display's request/dispatch path is not safe for concurrent use from
// multiple goroutines. All operations on one manager, and any listener
// callbacks it fires, should run from the same goroutine that drives its
// DispatchEvents/Roundtrip calls.
//
// # Error Handling
//
// All methods return errors for proper error handling. Common error
// conditions include:
// • Wayland connection failures
// • Protocol not supported by compositor (see the XxxManager error returned
//   when a required global was never advertised)
// • Invalid parameters or state
//
// See cmd/wlvirt for a CLI built on top of this library.
package virtual_input

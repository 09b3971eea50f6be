// Package virtual_pointer provides Go bindings for the
// wlr-virtual-pointer-unstable-v1 Wayland protocol.
//
// This protocol allows clients to emulate a physical pointer device,
// enabling mouse input injection into Wayland compositors without
// requiring root privileges.
//
// # Basic Usage
//
//	manager, err := virtual_pointer.NewVirtualPointerManager("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer manager.Close()
//
//	pointer, err := manager.CreatePointer()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pointer.Close()
//
//	pointer.MoveRelative(100.0, 50.0)
//	pointer.LeftClick()
//	pointer.ScrollVertical(5.0)
//
// # Protocol Specification
//
// Based on wlr-virtual-pointer-unstable-v1 from the wlroots project.
// Supported by Hyprland, Sway, and other wlroots-based compositors.
package virtual_pointer

import (
	"fmt"
	"time"

	"github.com/wlvirt/virtual-input/internal/client"
	"github.com/wlvirt/virtual-input/internal/protocols"
)

// Button constants for mouse buttons (Linux evdev BTN_* codes).
const (
	BTN_LEFT   = protocols.BtnLeft
	BTN_RIGHT  = protocols.BtnRight
	BTN_MIDDLE = protocols.BtnMiddle
)

// ButtonState represents the state of a button.
type ButtonState uint32

const (
	ButtonStateReleased ButtonState = ButtonState(protocols.ButtonStateReleased)
	ButtonStatePressed  ButtonState = ButtonState(protocols.ButtonStatePressed)
)

// Axis represents a scroll axis.
type Axis uint32

const (
	AxisVertical   Axis = Axis(protocols.AxisVerticalScroll)
	AxisHorizontal Axis = Axis(protocols.AxisHorizontalScroll)
)

// AxisSource represents the source of axis events.
type AxisSource uint32

const (
	AxisSourceWheel      AxisSource = AxisSource(protocols.AxisSourceWheel)
	AxisSourceFinger     AxisSource = AxisSource(protocols.AxisSourceFinger)
	AxisSourceContinuous AxisSource = AxisSource(protocols.AxisSourceContinous)
	AxisSourceWheelTilt  AxisSource = AxisSource(protocols.AxisSourceWheelTilt)
)

// VirtualPointerManager owns the Wayland connection and the bound
// zwlr_virtual_pointer_manager_v1 global.
type VirtualPointerManager struct {
	client  *client.Client
	manager *protocols.VirtualPointerManager
}

// VirtualPointer represents a virtual pointer device.
type VirtualPointer struct {
	pointer *protocols.VirtualPointer
}

// NewVirtualPointerManager connects to the compositor at socketPath (empty
// string resolves WAYLAND_DISPLAY) and binds the virtual pointer manager.
func NewVirtualPointerManager(socketPath string) (*VirtualPointerManager, error) {
	c, err := client.Connect(socketPath)
	if err != nil {
		return nil, fmt.Errorf("virtual_pointer: failed to connect: %w", err)
	}

	mgr, err := c.PointerManager()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("virtual_pointer: %w", err)
	}

	return &VirtualPointerManager{client: c, manager: mgr}, nil
}

// CreatePointer creates a new virtual pointer device tied to the
// compositor's seat, if one was advertised.
func (m *VirtualPointerManager) CreatePointer() (*VirtualPointer, error) {
	seat, _ := m.client.Seat()
	pointer, err := m.manager.CreateVirtualPointer(seat)
	if err != nil {
		return nil, fmt.Errorf("virtual_pointer: failed to create virtual pointer: %w", err)
	}
	return &VirtualPointer{pointer: pointer}, nil
}

// Motion sends a relative motion event.
func (p *VirtualPointer) Motion(timestamp time.Time, dx, dy float64) error {
	return p.pointer.Motion(millis(timestamp), dx, dy)
}

// MotionAbsolute sends an absolute motion event.
func (p *VirtualPointer) MotionAbsolute(timestamp time.Time, x, y, xExtent, yExtent uint32) error {
	return p.pointer.MotionAbsolute(millis(timestamp), x, y, xExtent, yExtent)
}

// Button sends a button press/release event.
func (p *VirtualPointer) Button(timestamp time.Time, button uint32, state ButtonState) error {
	return p.pointer.Button(millis(timestamp), button, uint32(state))
}

// Axis sends a scroll event.
func (p *VirtualPointer) Axis(timestamp time.Time, axis Axis, value float64) error {
	return p.pointer.Axis(millis(timestamp), uint32(axis), value)
}

// Frame indicates the end of a pointer event sequence.
func (p *VirtualPointer) Frame() error {
	return p.pointer.Frame()
}

// AxisSource sets the axis source for subsequent axis events.
func (p *VirtualPointer) AxisSource(source AxisSource) error {
	return p.pointer.AxisSource(uint32(source))
}

// AxisStop sends an axis stop event.
func (p *VirtualPointer) AxisStop(timestamp time.Time, axis Axis) error {
	return p.pointer.AxisStop(millis(timestamp), uint32(axis))
}

// AxisDiscrete sends a discrete (wheel click) axis event.
func (p *VirtualPointer) AxisDiscrete(timestamp time.Time, axis Axis, value float64, discrete int32) error {
	return p.pointer.AxisDiscrete(millis(timestamp), uint32(axis), value, discrete)
}

// Close releases the virtual pointer device.
func (p *VirtualPointer) Close() error {
	return p.pointer.Destroy()
}

// Close releases the virtual pointer manager and the underlying
// connection.
func (m *VirtualPointerManager) Close() error {
	return m.client.Close()
}

// Convenience methods for common operations.

// MoveRelative moves the pointer by the specified amount and frames it.
func (p *VirtualPointer) MoveRelative(dx, dy float64) error {
	if err := p.Motion(time.Now(), dx, dy); err != nil {
		return err
	}
	return p.Frame()
}

// LeftClick performs a left mouse button click.
func (p *VirtualPointer) LeftClick() error { return p.click(BTN_LEFT) }

// RightClick performs a right mouse button click.
func (p *VirtualPointer) RightClick() error { return p.click(BTN_RIGHT) }

// MiddleClick performs a middle mouse button click.
func (p *VirtualPointer) MiddleClick() error { return p.click(BTN_MIDDLE) }

func (p *VirtualPointer) click(button uint32) error {
	now := time.Now()
	if err := p.Button(now, button, ButtonStatePressed); err != nil {
		return err
	}
	if err := p.Button(now, button, ButtonStateReleased); err != nil {
		return err
	}
	return p.Frame()
}

// ScrollVertical scrolls vertically by the specified amount and frames it.
func (p *VirtualPointer) ScrollVertical(amount float64) error {
	if err := p.Axis(time.Now(), AxisVertical, amount); err != nil {
		return err
	}
	return p.Frame()
}

// ScrollHorizontal scrolls horizontally by the specified amount and frames
// it.
func (p *VirtualPointer) ScrollHorizontal(amount float64) error {
	if err := p.Axis(time.Now(), AxisHorizontal, amount); err != nil {
		return err
	}
	return p.Frame()
}

func millis(t time.Time) uint32 {
	return uint32(t.UnixMilli())
}

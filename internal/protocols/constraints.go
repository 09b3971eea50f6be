package protocols

import (
	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

func init() {
	registry.Register(&registry.Interface{
		Name: "zwp_pointer_constraints_v1",
		Requests: []registry.Method{
			{Name: "lock_pointer", Signature: "nooou"},
			{Name: "confine_pointer", Signature: "nooou"},
			{Name: "destroy"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "zwp_locked_pointer_v1",
		Requests: []registry.Method{
			{Name: "set_cursor_position_hint", Signature: "ff"},
			{Name: "set_region", Signature: "o"},
			{Name: "destroy"},
		},
		Events: []registry.Method{
			{Name: "locked"},
			{Name: "unlocked"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "zwp_confined_pointer_v1",
		Requests: []registry.Method{
			{Name: "set_region", Signature: "o"},
			{Name: "destroy"},
		},
		Events: []registry.Method{
			{Name: "confined"},
			{Name: "unconfined"},
		},
	})
}

// Lifetime values for lock_pointer/confine_pointer requests.
const (
	LifetimeOneshot    uint32 = 1
	LifetimePersistent uint32 = 2
)

// PointerConstraintsManager is a proxy for the bound
// zwp_pointer_constraints_v1 global.
type PointerConstraintsManager struct {
	id      uint32
	display *wlclient.Display
}

func (m *PointerConstraintsManager) ID() uint32      { return m.id }
func (m *PointerConstraintsManager) SetID(id uint32) { m.id = id }

// NewPointerConstraintsManager constructs an unbound manager proxy ready
// to pass to wlclient.Registry.Bind.
func NewPointerConstraintsManager(d *wlclient.Display) *PointerConstraintsManager {
	return &PointerConstraintsManager{display: d}
}

// LockPointer requests a locked pointer constraint. region == 0 means no
// confinement region (the whole surface).
func (m *PointerConstraintsManager) LockPointer(surface, pointer, region, lifetime uint32) (*LockedPointer, error) {
	id, err := m.display.Register(0, "zwp_locked_pointer_v1")
	if err != nil {
		return nil, err
	}
	args := []wire.Arg{wire.ArgNew(id), wire.ArgObj(surface), wire.ArgObj(pointer), wire.ArgObj(region), wire.ArgU(lifetime)}
	if err := m.display.SendRequest(m.id, 0, args); err != nil {
		m.display.Unregister(id)
		return nil, err
	}
	lp := &LockedPointer{id: id, display: m.display}
	m.display.AddListener(id, lp)
	return lp, nil
}

// ConfinePointer requests a confined pointer constraint.
func (m *PointerConstraintsManager) ConfinePointer(surface, pointer, region, lifetime uint32) (*ConfinedPointer, error) {
	id, err := m.display.Register(0, "zwp_confined_pointer_v1")
	if err != nil {
		return nil, err
	}
	args := []wire.Arg{wire.ArgNew(id), wire.ArgObj(surface), wire.ArgObj(pointer), wire.ArgObj(region), wire.ArgU(lifetime)}
	if err := m.display.SendRequest(m.id, 1, args); err != nil {
		m.display.Unregister(id)
		return nil, err
	}
	cp := &ConfinedPointer{id: id, display: m.display}
	m.display.AddListener(id, cp)
	return cp, nil
}

// Destroy releases the manager object.
func (m *PointerConstraintsManager) Destroy() error {
	if err := m.display.SendRequest(m.id, 2, nil); err != nil {
		return err
	}
	return m.display.Unregister(m.id)
}

// LockedPointerListener receives zwp_locked_pointer_v1 events.
type LockedPointerListener struct {
	Locked   func()
	Unlocked func()
}

// LockedPointer is a proxy for a created zwp_locked_pointer_v1 object.
type LockedPointer struct {
	id       uint32
	display  *wlclient.Display
	listener LockedPointerListener
}

func (l *LockedPointer) ID() uint32 { return l.id }

// Listen installs l's event listener.
func (l *LockedPointer) Listen(listener LockedPointerListener) { l.listener = listener }

// HandleEvent implements wlclient.EventHandler.
func (l *LockedPointer) HandleEvent(methodID uint16, args []wire.Arg) {
	switch methodID {
	case 0:
		if l.listener.Locked != nil {
			l.listener.Locked()
		}
	case 1:
		if l.listener.Unlocked != nil {
			l.listener.Unlocked()
		}
	}
}

// SetCursorPositionHint suggests where the cursor should appear to rest
// while locked.
func (l *LockedPointer) SetCursorPositionHint(x, y float64) error {
	args := []wire.Arg{wire.ArgFixedVal(wire.NewFixed(x)), wire.ArgFixedVal(wire.NewFixed(y))}
	return l.display.SendRequest(l.id, 0, args)
}

// SetRegion narrows the constraint to region (0 clears it).
func (l *LockedPointer) SetRegion(region uint32) error {
	return l.display.SendRequest(l.id, 1, []wire.Arg{wire.ArgObj(region)})
}

// Destroy releases the lock.
func (l *LockedPointer) Destroy() error {
	if err := l.display.SendRequest(l.id, 2, nil); err != nil {
		return err
	}
	return l.display.Unregister(l.id)
}

// ConfinedPointerListener receives zwp_confined_pointer_v1 events.
type ConfinedPointerListener struct {
	Confined   func()
	Unconfined func()
}

// ConfinedPointer is a proxy for a created zwp_confined_pointer_v1 object.
type ConfinedPointer struct {
	id       uint32
	display  *wlclient.Display
	listener ConfinedPointerListener
}

func (c *ConfinedPointer) ID() uint32 { return c.id }

// Listen installs l's event listener.
func (c *ConfinedPointer) Listen(listener ConfinedPointerListener) { c.listener = listener }

// HandleEvent implements wlclient.EventHandler.
func (c *ConfinedPointer) HandleEvent(methodID uint16, args []wire.Arg) {
	switch methodID {
	case 0:
		if c.listener.Confined != nil {
			c.listener.Confined()
		}
	case 1:
		if c.listener.Unconfined != nil {
			c.listener.Unconfined()
		}
	}
}

// SetRegion narrows the confinement region (0 clears it).
func (c *ConfinedPointer) SetRegion(region uint32) error {
	return c.display.SendRequest(c.id, 0, []wire.Arg{wire.ArgObj(region)})
}

// Destroy releases the confinement.
func (c *ConfinedPointer) Destroy() error {
	if err := c.display.SendRequest(c.id, 1, nil); err != nil {
		return err
	}
	return c.display.Unregister(c.id)
}

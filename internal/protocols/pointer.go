package protocols

import (
	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

func init() {
	registry.Register(&registry.Interface{
		Name: "zwlr_virtual_pointer_manager_v1",
		Requests: []registry.Method{
			{Name: "create_virtual_pointer", Signature: "on"},
		},
	})
	registry.Register(&registry.Interface{
		Name: "zwlr_virtual_pointer_v1",
		Requests: []registry.Method{
			{Name: "motion", Signature: "uff"},
			{Name: "motion_absolute", Signature: "uuuuu"},
			{Name: "button", Signature: "uuu"},
			{Name: "axis", Signature: "uuf"},
			{Name: "frame"},
			{Name: "axis_source", Signature: "u"},
			{Name: "axis_stop", Signature: "uu"},
			{Name: "axis_discrete", Signature: "uufi"},
			{Name: "destroy"},
		},
	})
}

// Pointer button codes, per the Linux evdev BTN_* constants the wire
// protocol expects.
const (
	BtnLeft   uint32 = 0x110
	BtnRight  uint32 = 0x111
	BtnMiddle uint32 = 0x112
)

// ButtonState values for zwlr_virtual_pointer_v1.button.
const (
	ButtonStateReleased uint32 = 0
	ButtonStatePressed  uint32 = 1
)

// Axis identifies a scroll axis for zwlr_virtual_pointer_v1.axis.
const (
	AxisVerticalScroll   uint32 = 0
	AxisHorizontalScroll uint32 = 1
)

// AxisSource values for zwlr_virtual_pointer_v1.axis_source.
const (
	AxisSourceWheel     uint32 = 0
	AxisSourceFinger    uint32 = 1
	AxisSourceContinous uint32 = 2
	AxisSourceWheelTilt uint32 = 3
)

// VirtualPointerManager is a proxy for the bound
// zwlr_virtual_pointer_manager_v1 global; it manufactures VirtualPointer
// proxies on demand.
type VirtualPointerManager struct {
	id      uint32
	display *wlclient.Display
}

func (m *VirtualPointerManager) ID() uint32       { return m.id }
func (m *VirtualPointerManager) SetID(id uint32)  { m.id = id }

// NewVirtualPointerManager constructs an unbound manager proxy ready to
// pass to wlclient.Registry.Bind.
func NewVirtualPointerManager(d *wlclient.Display) *VirtualPointerManager {
	return &VirtualPointerManager{display: d}
}

// CreateVirtualPointer requests a new virtual pointer tied to seat (nil
// for a seat-less pointer, matching the protocol's optional seat arg).
func (m *VirtualPointerManager) CreateVirtualPointer(seat *Seat) (*VirtualPointer, error) {
	id, err := m.display.Register(0, "zwlr_virtual_pointer_v1")
	if err != nil {
		return nil, err
	}
	var seatID uint32
	if seat != nil {
		seatID = seat.ID()
	}
	args := []wire.Arg{wire.ArgObj(seatID), wire.ArgNew(id)}
	if err := m.display.SendRequest(m.id, 0, args); err != nil {
		m.display.Unregister(id)
		return nil, err
	}
	return &VirtualPointer{id: id, display: m.display}, nil
}

// VirtualPointer is a proxy for a created zwlr_virtual_pointer_v1 object.
type VirtualPointer struct {
	id      uint32
	display *wlclient.Display
}

func (p *VirtualPointer) ID() uint32 { return p.id }

// Motion sends a relative motion event with 24.8 fixed-point deltas.
func (p *VirtualPointer) Motion(timeMS uint32, dx, dy float64) error {
	args := []wire.Arg{
		wire.ArgU(timeMS),
		wire.ArgFixedVal(wire.NewFixed(dx)),
		wire.ArgFixedVal(wire.NewFixed(dy)),
	}
	return p.display.SendRequest(p.id, 0, args)
}

// MotionAbsolute sends an absolute motion event in x/x_extent, y/y_extent
// coordinates.
func (p *VirtualPointer) MotionAbsolute(timeMS, x, y, xExtent, yExtent uint32) error {
	args := []wire.Arg{wire.ArgU(timeMS), wire.ArgU(x), wire.ArgU(y), wire.ArgU(xExtent), wire.ArgU(yExtent)}
	return p.display.SendRequest(p.id, 1, args)
}

// Button sends a button press/release event.
func (p *VirtualPointer) Button(timeMS, button, state uint32) error {
	args := []wire.Arg{wire.ArgU(timeMS), wire.ArgU(button), wire.ArgU(state)}
	return p.display.SendRequest(p.id, 2, args)
}

// Axis sends a scroll event on the given axis.
func (p *VirtualPointer) Axis(timeMS, axis uint32, value float64) error {
	args := []wire.Arg{wire.ArgU(timeMS), wire.ArgU(axis), wire.ArgFixedVal(wire.NewFixed(value))}
	return p.display.SendRequest(p.id, 3, args)
}

// Frame terminates a group of pointer events as one atomic update.
func (p *VirtualPointer) Frame() error {
	return p.display.SendRequest(p.id, 4, nil)
}

// AxisSource reports the source of a later axis event.
func (p *VirtualPointer) AxisSource(source uint32) error {
	return p.display.SendRequest(p.id, 5, []wire.Arg{wire.ArgU(source)})
}

// AxisStop reports that an axis sequence has ended.
func (p *VirtualPointer) AxisStop(timeMS, axis uint32) error {
	return p.display.SendRequest(p.id, 6, []wire.Arg{wire.ArgU(timeMS), wire.ArgU(axis)})
}

// AxisDiscrete sends a discrete (e.g. wheel click) scroll event.
func (p *VirtualPointer) AxisDiscrete(timeMS, axis uint32, value float64, discrete int32) error {
	args := []wire.Arg{wire.ArgU(timeMS), wire.ArgU(axis), wire.ArgFixedVal(wire.NewFixed(value)), wire.ArgI(discrete)}
	return p.display.SendRequest(p.id, 7, args)
}

// Destroy releases the virtual pointer, both on the wire and in the
// object registry.
func (p *VirtualPointer) Destroy() error {
	if err := p.display.SendRequest(p.id, 8, nil); err != nil {
		return err
	}
	return p.display.Unregister(p.id)
}

package wlclient

import (
	"bytes"

	"github.com/wlvirt/virtual-input/internal/wire"
)

type recvPhase int

const (
	phaseIdle recvPhase = iota
	phaseFilled
	phaseDraining
	phaseClosed
)

// recvState holds the one persistent receive buffer and its cursor, as an
// Idle -> Filled -> Draining -> Idle state machine. It survives across
// calls to recvOne so a single recv() can feed several dispatch() calls.
type recvState struct {
	buf    [recvBufSize]byte
	fill   int
	cursor int
	fd     int
	phase  recvPhase
}

type rawMessage struct {
	objectID uint32
	methodID uint16
	body     []byte
	fd       int
}

// recvOne performs at most one underlying recv, and returns (nil, nil)
// when no full message is currently buffered (the "none" outcome).
func (d *Display) recvOne() (*rawMessage, error) {
	if d.recv.phase == phaseClosed {
		return nil, d.fail(wire.CodeSockRecv, "recv_one: connection is closed")
	}

	if d.recv.fill == 0 {
		n, fd, err := recvFrame(d.fd, d.recv.buf[:])
		if err != nil {
			d.recv.phase = phaseClosed
			return nil, d.fail(wire.CodeSockRecv, "recv_one: %v", err)
		}
		if n == 0 {
			d.recv.phase = phaseClosed
			return nil, d.fail(wire.CodeSockRecv, "recv_one: server is gone")
		}
		d.recv.fill = n
		d.recv.fd = fd
		d.recv.cursor = 0
		d.recv.phase = phaseFilled
	}

	if d.recv.cursor+wire.HeaderSize > d.recv.fill {
		d.recv.fill = 0
		d.recv.cursor = 0
		d.recv.phase = phaseIdle
		return nil, nil
	}

	hdr := wire.DecodeHeader(d.recv.buf[d.recv.cursor:])
	bodyStart := d.recv.cursor + wire.HeaderSize
	bodyEnd := d.recv.cursor + int(hdr.Size)
	if hdr.Size < wire.HeaderSize || bodyEnd > d.recv.fill {
		d.recv.phase = phaseIdle
		return nil, d.fail(wire.CodeStd, "recv_one: corrupt message length %d", hdr.Size)
	}

	if _, ok := d.getByID(hdr.ObjectID); !ok {
		return nil, d.fail(wire.CodeNullObject, "recv_one: no object found with id %d", hdr.ObjectID)
	}

	body := append([]byte(nil), d.recv.buf[bodyStart:bodyEnd]...)
	fd := d.recv.fd
	d.recv.fd = -1
	d.recv.cursor = bodyEnd
	d.recv.phase = phaseDraining

	if d.recv.cursor >= d.recv.fill {
		d.recv.fill = 0
		d.recv.cursor = 0
		d.recv.phase = phaseIdle
	}

	return &rawMessage{objectID: hdr.ObjectID, methodID: hdr.MethodID, body: body, fd: fd}, nil
}

// Dispatch decodes one raw message's arguments per its event signature and
// routes it to the registered listener, if any.
func (d *Display) dispatch(msg *rawMessage) error {
	entry, ok := d.getByID(msg.objectID)
	if !ok {
		return d.fail(wire.CodeNullObject, "dispatch: no object found with id %d", msg.objectID)
	}
	if int(msg.methodID) >= len(entry.iface.Events) {
		return d.fail(wire.CodeNullEvent, "dispatch: %s has no event #%d", entry.ifaceName, msg.methodID)
	}
	event := entry.iface.Events[msg.methodID]

	decoded, err := wire.DecodeArgs(msg.body, event.Signature, msg.fd)
	if err != nil {
		return d.fail(wire.CodeNullArg, "dispatch: %s.%s: %v", entry.ifaceName, event.Name, err)
	}
	args := make([]wire.Arg, 0, len(decoded)+1)
	args = append(args, wire.ArgObj(msg.objectID))
	args = append(args, decoded...)

	if d.tracer != nil {
		d.tracer("<-", msg.objectID, msg.methodID, entry.ifaceName, event.Name, decoded)
	}

	listener, ok := d.listeners.Get(uint64(msg.objectID))
	if !ok {
		return nil
	}
	listener.HandleEvent(msg.methodID, args)
	return nil
}

// DispatchAll drains every message already buffered or currently waiting on
// the socket, dispatching each in turn, and returns the first error
// encountered (if any). Unlike Roundtrip's loop, it never blocks waiting for
// a message that hasn't arrived yet: once recv.fill is empty and the socket
// has nothing pending, it returns rather than calling recvFrame.
func (d *Display) DispatchAll() error {
	for {
		if d.recv.fill == 0 && !pollReadable(d.fd) {
			return nil
		}
		msg, err := d.recvOne()
		if err != nil {
			return err
		}
		if msg == nil {
			return nil
		}
		if err := d.dispatch(msg); err != nil {
			return err
		}
	}
}

// SendRequest encodes and sends a request to objectID. args are already
// signature-typed (built by the generated proxy), so no runtime type
// coercion happens here — only signature validation and body-size
// computation.
func (d *Display) SendRequest(objectID uint32, methodID uint16, args []wire.Arg) error {
	entry, ok := d.getByID(objectID)
	if !ok {
		return d.fail(wire.CodeNullObject, "send_request: no object found with id %d", objectID)
	}
	return d.sendRequestEntry(entry, methodID, args)
}

// SendRequestByName resolves the newest live object with ifaceName and
// sends the request to it, for callers that address by interface name
// instead of a concrete object id.
func (d *Display) SendRequestByName(ifaceName string, methodID uint16, args []wire.Arg) error {
	entry, ok := d.getByName(ifaceName)
	if !ok {
		return d.fail(wire.CodeNullObject, "send_request: no object found with name %q", ifaceName)
	}
	return d.sendRequestEntry(entry, methodID, args)
}

func (d *Display) sendRequestEntry(entry *objectEntry, methodID uint16, args []wire.Arg) error {
	if int(methodID) >= len(entry.iface.Requests) {
		return d.fail(wire.CodeNullRequest, "send_request: %s has no request #%d", entry.ifaceName, methodID)
	}
	method := entry.iface.Requests[methodID]

	var buf bytes.Buffer
	buf.Write(make([]byte, wire.HeaderSize))

	fd, err := wire.EncodeArgs(&buf, method.Signature, args)
	if err != nil {
		return d.fail(wire.CodeNullArg, "send_request: %s.%s: %v", entry.ifaceName, method.Name, err)
	}

	data := buf.Bytes()
	hdr := wire.Header{ObjectID: entry.id, MethodID: methodID, Size: uint16(len(data))}
	hdr.Encode(data)

	if d.tracer != nil {
		d.tracer("->", entry.id, methodID, entry.ifaceName, method.Name, args)
	}

	if err := sendFrame(d.fd, data, fd); err != nil {
		return d.fail(wire.CodeSockSend, "send_request: %v", err)
	}
	return nil
}

// Roundtrip is the client's synchronization primitive: it allocates a
// wl_callback, sends wl_display.sync, and drains events until that
// callback's "done" event has been dispatched.
func (d *Display) Roundtrip() error {
	callbackID, err := d.Register(0, "wl_callback")
	if err != nil {
		return err
	}
	defer d.Unregister(callbackID)

	done := false
	d.AddListener(callbackID, EventHandlerFunc(func(methodID uint16, args []wire.Arg) {
		done = true
	}))

	if err := d.SendRequest(ClientIDStart, 0, []wire.Arg{wire.ArgNew(callbackID)}); err != nil {
		return err
	}

	for !done {
		msg, err := d.recvOne()
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}
		if err := d.dispatch(msg); err != nil {
			return err
		}
	}
	return nil
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(methodID uint16, args []wire.Arg)

// HandleEvent implements EventHandler.
func (f EventHandlerFunc) HandleEvent(methodID uint16, args []wire.Arg) { f(methodID, args) }

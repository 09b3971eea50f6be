// Package wlclient is the client-side Wayland wire-protocol runtime:
// object registry, listener registry, transport, and dispatcher. It is
// deliberately single-threaded and synchronous; callers drive it from one
// goroutine per connection.
package wlclient

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
)

// Proxy is implemented by every generated object proxy; ID returns the
// object id the core assigned it at registration time.
type Proxy interface {
	ID() uint32
}

// IDSetter is implemented by proxies whose id is assigned after
// construction, such as the target of Registry.Bind. Exported so proxy
// types defined in other packages (internal/protocols and friends) can
// satisfy it too — an unexported method name only matches within the
// package that wrote the interface literal.
type IDSetter interface {
	SetID(uint32)
}

// EventHandler is implemented by proxies that receive events. args[0] is
// always the receiving object's id; the remaining slots are decoded from
// the wire per the event's signature.
type EventHandler interface {
	HandleEvent(methodID uint16, args []wire.Arg)
}

// Tracer receives a line of protocol traffic for diagnostics; see
// internal/diag. Nil by default (no tracing overhead).
type Tracer func(direction string, objectID uint32, methodID uint16, ifaceName, methodName string, args []wire.Arg)

type objectEntry struct {
	id        uint32
	ifaceName string
	iface     *registry.Interface
	seq       uint64
}

// Display is a single connection to a Wayland compositor: the socket, the
// object and listener registries, and the two id bitmaps.
type Display struct {
	fd int

	objects   *wire.Map[*objectEntry]
	listeners *wire.Map[EventHandler]
	clientIDs *wire.Bitmap
	serverIDs *wire.Bitmap
	nextSeq   uint64

	errs   wire.ErrorChannel
	tracer Tracer

	recv recvState

	registryObj *Registry
}

// SocketPath resolves ${XDG_RUNTIME_DIR}/${WAYLAND_DISPLAY}, or returns an
// ENV error if either is unset. An absolute override (already-joined path)
// is passed through unchanged.
func SocketPath(override string) (string, error) {
	if override != "" && filepath.IsAbs(override) {
		return override, nil
	}
	name := override
	if name == "" {
		name = os.Getenv("WAYLAND_DISPLAY")
	}
	if name == "" {
		return "", wireErr(wire.CodeEnv, "WAYLAND_DISPLAY isn't set")
	}
	runDir := os.Getenv("XDG_RUNTIME_DIR")
	if runDir == "" {
		return "", wireErr(wire.CodeEnv, "XDG_RUNTIME_DIR isn't set")
	}
	return filepath.Join(runDir, name), nil
}

// Connect opens socketPath (resolved via SocketPath if empty or relative),
// registers the wl_display and wl_registry objects, requests the registry,
// and performs the initial roundtrip so Registry().Globals() is populated
// on return.
func Connect(socketPath string) (*Display, error) {
	path, err := SocketPath(socketPath)
	if err != nil {
		return nil, err
	}

	fd, err := dial(path)
	if err != nil {
		return nil, wireErr(wire.CodeSockConnect, "failed to connect to %s: %v", path, err)
	}

	d := &Display{
		fd:        fd,
		objects:   wire.NewMap[*objectEntry](256),
		listeners: wire.NewMap[EventHandler](256),
		clientIDs: wire.NewBitmap(idPoolCapacity),
		serverIDs: wire.NewBitmap(idPoolCapacity),
	}

	if _, err := d.Register(ClientIDStart, "wl_display"); err != nil {
		d.Close()
		return nil, err
	}

	regID, err := d.Register(0, "wl_registry")
	if err != nil {
		d.Close()
		return nil, err
	}
	reg := &Registry{id: regID, display: d, globals: make(map[uint32]Global), handlers: make(map[string]GlobalHandler)}
	d.registryObj = reg
	d.AddListener(regID, reg)

	if err := d.SendRequest(ClientIDStart, 1, []wire.Arg{wire.ArgNew(regID)}); err != nil {
		d.Close()
		return nil, err
	}

	if err := d.Roundtrip(); err != nil {
		d.Close()
		return nil, fmt.Errorf("initial roundtrip failed: %w", err)
	}

	return d, nil
}

// Close releases the socket. Object entries and listener registrations are
// abandoned with it; nothing survives a closed Display.
func (d *Display) Close() error {
	return closeFD(d.fd)
}

// Registry returns the connection's wl_registry wrapper.
func (d *Display) Registry() *Registry { return d.registryObj }

// LastErrorCode returns the most recently set error code without clearing
// it, for callers that want to branch on failure kind.
func (d *Display) LastErrorCode() wire.Code { return d.errs.CodeValue() }

// PrintLastError writes the last error to stderr and clears the slot.
func (d *Display) PrintLastError() {
	d.errs.Print(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
}

// SetTracer installs (or clears, with nil) a diagnostic hook invoked on
// every encoded request and decoded event.
func (d *Display) SetTracer(t Tracer) { d.tracer = t }

func (d *Display) fail(code wire.Code, format string, args ...interface{}) error {
	e := &wire.Err{Code: code, Message: fmt.Sprintf(format, args...)}
	d.errs.Set(e)
	return e
}

func wireErr(code wire.Code, format string, args ...interface{}) error {
	return &wire.Err{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Register allocates or claims an object id and binds it to ifaceName.
// idHint == 0 picks the lowest free client id; a hint inside the server
// range claims that exact id (failing ID_TAKEN if already live); any other
// hint is treated as an externally chosen client id.
func (d *Display) Register(idHint uint32, ifaceName string) (uint32, error) {
	var id uint32

	switch {
	case idHint == 0:
		idx, err := d.clientIDs.FirstFree()
		if err != nil {
			return 0, d.fail(wire.CodeNoFreeBit, "register: %v", err)
		}
		if err := d.clientIDs.Set(idx); err != nil {
			return 0, d.fail(wire.CodeStd, "register: %v", err)
		}
		id = idx + ClientIDStart

	case inServerRange(idHint):
		idx := NormalizeServerID(idHint)
		taken, err := d.serverIDs.Get(idx)
		if err != nil {
			return 0, d.fail(wire.CodeOutOfRange, "register: %v", err)
		}
		if taken {
			return 0, d.fail(wire.CodeIDTaken, "register: server object id %d is already taken", idHint)
		}
		if err := d.serverIDs.Set(idx); err != nil {
			return 0, d.fail(wire.CodeStd, "register: %v", err)
		}
		id = idHint

	default:
		idx := NormalizeClientID(idHint)
		taken, err := d.clientIDs.Get(idx)
		if err != nil {
			return 0, d.fail(wire.CodeOutOfRange, "register: %v", err)
		}
		if taken {
			return 0, d.fail(wire.CodeIDTaken, "register: client object id %d is already taken", idHint)
		}
		if err := d.clientIDs.Set(idx); err != nil {
			return 0, d.fail(wire.CodeStd, "register: %v", err)
		}
		id = idHint
	}

	iface, err := registry.Lookup(ifaceName)
	if err != nil {
		return 0, d.fail(wire.CodeNullInterface, "register: object %s.#%d: %v", ifaceName, id, err)
	}

	d.nextSeq++
	d.objects.Set(uint64(id), &objectEntry{id: id, ifaceName: ifaceName, iface: iface, seq: d.nextSeq})
	return id, nil
}

// Unregister reverses the allocation and deletes the entry for id,
// removing any listener registered for it. Storage and removal always key
// off the same full object id.
func (d *Display) Unregister(id uint32) error {
	if _, ok := d.objects.Get(uint64(id)); !ok {
		return d.fail(wire.CodeNullObject, "unregister: no object found with id %d", id)
	}

	if inServerRange(id) {
		if err := d.serverIDs.Unset(NormalizeServerID(id)); err != nil {
			return d.fail(wire.CodeOutOfRange, "unregister: %v", err)
		}
	} else {
		if err := d.clientIDs.Unset(NormalizeClientID(id)); err != nil {
			return d.fail(wire.CodeOutOfRange, "unregister: %v", err)
		}
	}

	d.objects.Remove(uint64(id))
	d.listeners.Remove(uint64(id))
	return nil
}

// UnregisterLast removes the most recently created live object of the
// given interface name (highest creation_sequence wins).
func (d *Display) UnregisterLast(ifaceName string) error {
	entry, ok := d.getByName(ifaceName)
	if !ok {
		return d.fail(wire.CodeNullObject, "unregister: no object found with name %q", ifaceName)
	}
	return d.Unregister(entry.id)
}

func (d *Display) getByID(id uint32) (*objectEntry, bool) {
	return d.objects.Get(uint64(id))
}

func (d *Display) getByName(ifaceName string) (*objectEntry, bool) {
	var best *objectEntry
	d.objects.Each(func(_ uint64, e *objectEntry) {
		if e.ifaceName == ifaceName && (best == nil || e.seq > best.seq) {
			best = e
		}
	})
	if best == nil {
		return nil, false
	}
	return best, true
}

// AddListener installs (or overwrites) the event handler for objectID.
func (d *Display) AddListener(objectID uint32, handler EventHandler) {
	d.listeners.Set(uint64(objectID), handler)
}

// RemoveListener deletes the event handler registered for objectID, if any.
func (d *Display) RemoveListener(objectID uint32) {
	d.listeners.Remove(uint64(objectID))
}

// Package wltest is a minimal fake Wayland compositor used by the public
// packages' tests: it speaks just enough of the wire protocol (sync,
// get_registry, global advertisement, and raw request capture) to let
// wlclient.Connect and internal/client.Connect complete against a real
// AF_UNIX socket instead of a live compositor.
package wltest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/wlvirt/virtual-input/internal/wire"
)

// Global is one entry this fake compositor advertises over wl_registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Message is one client->server request captured verbatim, for assertions.
type Message struct {
	ObjectID uint32
	MethodID uint16
	Body     []byte
	FD       int
}

// Compositor is a single fake-compositor instance bound to one listening
// socket, serving at most one client connection.
type Compositor struct {
	t    *testing.T
	path string

	listenFD int
	connFD   int

	mu       sync.Mutex
	received []Message
}

// Start listens on a fresh socket under t.TempDir(), accepts one connection
// in the background, and answers wl_display.sync/get_registry automatically
// so Connect() can complete; globals lists what wl_registry.global events to
// emit once get_registry is received.
func Start(t *testing.T, globals []Global) *Compositor {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "wayland-test-0")

	listenFD, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("wltest: socket: %v", err)
	}
	if err := unix.Bind(listenFD, &unix.SockaddrUnix{Name: path}); err != nil {
		t.Fatalf("wltest: bind: %v", err)
	}
	if err := unix.Listen(listenFD, 1); err != nil {
		t.Fatalf("wltest: listen: %v", err)
	}

	c := &Compositor{t: t, path: path, listenFD: listenFD, connFD: -1}

	go func() {
		connFD, _, err := unix.Accept(listenFD)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.connFD = connFD
		c.mu.Unlock()
		c.serve(globals)
	}()

	t.Cleanup(c.Close)
	return c
}

// SocketPath is the absolute path NewXManager("") callers should pass
// through (or set as WAYLAND_DISPLAY's resolved target).
func (c *Compositor) SocketPath() string { return c.path }

// Close tears down the listening and connected sockets.
func (c *Compositor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connFD >= 0 {
		unix.Close(c.connFD)
		c.connFD = -1
	}
	if c.listenFD >= 0 {
		unix.Close(c.listenFD)
		c.listenFD = -1
	}
	os.Remove(c.path)
}

// Received returns a snapshot of every request this compositor has decoded
// that it didn't already auto-handle (sync/get_registry).
func (c *Compositor) Received() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.received))
	copy(out, c.received)
	return out
}

// SendEvent encodes and writes an event to the connected client, for tests
// that exercise a listener callback (locked/unlocked, capabilities, ...).
func (c *Compositor) SendEvent(objectID uint32, methodID uint16, sig string, args []wire.Arg) error {
	c.mu.Lock()
	fd := c.connFD
	c.mu.Unlock()
	if fd < 0 {
		return fmt.Errorf("wltest: no connection")
	}
	return writeMessage(fd, objectID, methodID, sig, args)
}

func writeMessage(fd int, objectID uint32, methodID uint16, sig string, args []wire.Arg) error {
	var buf bytes.Buffer
	buf.Write(make([]byte, wire.HeaderSize))
	if _, err := wire.EncodeArgs(&buf, sig, args); err != nil {
		return err
	}
	data := buf.Bytes()
	hdr := wire.Header{ObjectID: objectID, MethodID: methodID, Size: uint16(len(data))}
	hdr.Encode(data)
	return unix.Sendmsg(fd, data, nil, nil, 0)
}

func (c *Compositor) serve(globals []Global) {
	c.mu.Lock()
	fd := c.connFD
	c.mu.Unlock()

	buf := make([]byte, 4096)
	oob := make([]byte, unix.CmsgSpace(4))
	var registryID uint32
	haveRegistry := false

	for {
		n, oobn, _, _, err := unix.Recvmsg(fd, buf, oob, 0)
		if err != nil || n == 0 {
			return
		}
		auxFD := -1
		if oobn > 0 {
			if cmsgs, perr := unix.ParseSocketControlMessage(oob[:oobn]); perr == nil && len(cmsgs) > 0 {
				if fds, rerr := unix.ParseUnixRights(&cmsgs[0]); rerr == nil && len(fds) > 0 {
					auxFD = fds[0]
				}
			}
		}

		cursor := 0
		for cursor+wire.HeaderSize <= n {
			hdr := wire.DecodeHeader(buf[cursor:])
			bodyStart := cursor + wire.HeaderSize
			bodyEnd := cursor + int(hdr.Size)
			if hdr.Size < wire.HeaderSize || bodyEnd > n {
				return
			}
			body := append([]byte(nil), buf[bodyStart:bodyEnd]...)
			cursor = bodyEnd

			switch {
			case hdr.ObjectID == 1 && hdr.MethodID == 0: // wl_display.sync
				args, err := wire.DecodeArgs(body, "n", -1)
				if err == nil && len(args) == 1 {
					writeMessage(fd, args[0].UInt, 0, "u", []wire.Arg{wire.ArgU(1)})
				}

			case hdr.ObjectID == 1 && hdr.MethodID == 1: // wl_display.get_registry
				args, err := wire.DecodeArgs(body, "n", -1)
				if err != nil || len(args) != 1 {
					continue
				}
				registryID = args[0].UInt
				haveRegistry = true
				for _, g := range globals {
					writeMessage(fd, registryID, 0, "usu", []wire.Arg{
						wire.ArgU(g.Name), wire.ArgStr(g.Interface), wire.ArgU(g.Version),
					})
				}

			default:
				c.mu.Lock()
				c.received = append(c.received, Message{ObjectID: hdr.ObjectID, MethodID: hdr.MethodID, Body: body, FD: auxFD})
				c.mu.Unlock()
				auxFD = -1 // consumed by at most one message per recvmsg call, matching the client side
			}
		}
	}
}

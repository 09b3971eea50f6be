package wlclient

import (
	"testing"

	"github.com/wlvirt/virtual-input/internal/registry"
	"github.com/wlvirt/virtual-input/internal/wire"
)

func init() {
	registry.Register(&registry.Interface{
		Name: "wl_test_iface",
		Requests: []registry.Method{
			{Name: "noop", ArgCount: 0, Signature: ""},
		},
		Events: []registry.Method{
			{Name: "fired", ArgCount: 1, Signature: "u"},
		},
	})
}

func newTestDisplay() *Display {
	return &Display{
		fd:        -1,
		objects:   wire.NewMap[*objectEntry](64),
		listeners: wire.NewMap[EventHandler](64),
		clientIDs: wire.NewBitmap(idPoolCapacity),
		serverIDs: wire.NewBitmap(idPoolCapacity),
	}
}

func TestRegisterAllocatesLowestFreeClientID(t *testing.T) {
	d := newTestDisplay()

	id1, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id1 != ClientIDStart {
		t.Fatalf("first allocated id = %d, want %d", id1, ClientIDStart)
	}

	id2, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id2 != ClientIDStart+1 {
		t.Fatalf("second allocated id = %d, want %d", id2, ClientIDStart+1)
	}
}

func TestRegisterServerRangeHint(t *testing.T) {
	d := newTestDisplay()

	id, err := d.Register(ServerIDStart+5, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != ServerIDStart+5 {
		t.Fatalf("id = %d, want %d", id, ServerIDStart+5)
	}

	if _, err := d.Register(ServerIDStart+5, "wl_test_iface"); err == nil {
		t.Fatal("expected ID_TAKEN error re-registering the same server id")
	}
}

func TestRegisterUnknownInterface(t *testing.T) {
	d := newTestDisplay()
	if _, err := d.Register(0, "no_such_interface"); err == nil {
		t.Fatal("expected error registering an unknown interface name")
	}
}

func TestUnregisterFreesIDForReuse(t *testing.T) {
	d := newTestDisplay()

	id, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := d.Unregister(id); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if _, ok := d.getByID(id); ok {
		t.Fatal("expected object entry to be gone after Unregister")
	}

	id2, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register after free: %v", err)
	}
	if id2 != id {
		t.Fatalf("freed id %d was not reused, got %d", id, id2)
	}
}

func TestUnregisterUnknownID(t *testing.T) {
	d := newTestDisplay()
	if err := d.Unregister(999999); err == nil {
		t.Fatal("expected error unregistering an id that was never registered")
	}
}

func TestUnregisterLastPicksNewestBySequence(t *testing.T) {
	d := newTestDisplay()

	first, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := d.UnregisterLast("wl_test_iface"); err != nil {
		t.Fatalf("UnregisterLast: %v", err)
	}
	if _, ok := d.getByID(second); ok {
		t.Fatal("UnregisterLast should have removed the most recently created object")
	}
	if _, ok := d.getByID(first); !ok {
		t.Fatal("UnregisterLast should not touch the older object")
	}
}

func TestAddListenerAndRemoveListener(t *testing.T) {
	d := newTestDisplay()
	id, err := d.Register(0, "wl_test_iface")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	fired := false
	d.AddListener(id, EventHandlerFunc(func(methodID uint16, args []wire.Arg) {
		fired = true
	}))

	handler, ok := d.listeners.Get(uint64(id))
	if !ok {
		t.Fatal("expected listener to be registered")
	}
	handler.HandleEvent(0, nil)
	if !fired {
		t.Fatal("expected the registered handler to run")
	}

	d.RemoveListener(id)
	if _, ok := d.listeners.Get(uint64(id)); ok {
		t.Fatal("expected listener to be gone after RemoveListener")
	}
}

func TestSocketPathAbsoluteOverride(t *testing.T) {
	got, err := SocketPath("/tmp/my-wayland-socket")
	if err != nil {
		t.Fatalf("SocketPath: %v", err)
	}
	if got != "/tmp/my-wayland-socket" {
		t.Fatalf("SocketPath = %q, want the absolute override unchanged", got)
	}
}

func TestSocketPathRequiresEnv(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_RUNTIME_DIR", "")
	if _, err := SocketPath(""); err == nil {
		t.Fatal("expected an error when neither override nor environment is set")
	}
}

func TestSocketPathJoinsRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	got, err := SocketPath("")
	if err != nil {
		t.Fatalf("SocketPath: %v", err)
	}
	want := "/run/user/1000/wayland-1"
	if got != want {
		t.Fatalf("SocketPath = %q, want %q", got, want)
	}
}

func TestLastErrorCodeTracksFailures(t *testing.T) {
	d := newTestDisplay()
	if d.LastErrorCode() != wire.CodeNone {
		t.Fatalf("fresh display should have CodeNone, got %v", d.LastErrorCode())
	}
	if _, err := d.Register(0, "no_such_interface"); err == nil {
		t.Fatal("expected registration failure")
	}
	if d.LastErrorCode() != wire.CodeNullInterface {
		t.Fatalf("LastErrorCode = %v, want CodeNullInterface", d.LastErrorCode())
	}
}

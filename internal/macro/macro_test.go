package macro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/internal/wltest"
	"github.com/wlvirt/virtual-input/virtual_keyboard"
)

func writeMacroFile(t *testing.T, yamlBody string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macros.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAndFind(t *testing.T) {
	path := writeMacroFile(t, `
macros:
  - name: save
    steps:
      - keys: [29, 31]
        hold_ms: 10
  - name: quit
    steps:
      - keys: [29, 16]
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Macros) != 2 {
		t.Fatalf("got %d macros, want 2", len(f.Macros))
	}

	save, err := f.Find("save")
	if err != nil {
		t.Fatalf("Find(save): %v", err)
	}
	if len(save.Steps) != 1 || len(save.Steps[0].Keys) != 2 || save.Steps[0].HoldMS != 10 {
		t.Fatalf("unexpected save macro: %+v", save)
	}
}

func TestFindUnknownSet(t *testing.T) {
	f := &File{Macros: []Set{{Name: "save"}}}
	if _, err := f.Find("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown macro name")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error reading a nonexistent file")
	}
}

func newTestKeyboard(t *testing.T) (*virtual_keyboard.VirtualKeyboard, *wltest.Compositor) {
	t.Helper()
	fc := wltest.Start(t, []wltest.Global{
		{Name: 1, Interface: "wl_seat", Version: 7},
		{Name: 2, Interface: "zwp_virtual_keyboard_manager_v1", Version: 1},
	})
	mgr, err := virtual_keyboard.NewVirtualKeyboardManager(fc.SocketPath())
	if err != nil {
		t.Fatalf("NewVirtualKeyboardManager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	kb, err := mgr.CreateVirtualKeyboard()
	if err != nil {
		t.Fatalf("CreateVirtualKeyboard: %v", err)
	}
	return kb, fc
}

func TestPlayOnPressesThenReleasesEachChordInOrder(t *testing.T) {
	kb, fc := newTestKeyboard(t)
	before := len(fc.Received())

	set := &Set{
		Name: "combo",
		Steps: []Step{
			{Keys: []uint32{virtual_keyboard.KEY_LEFTCTRL, virtual_keyboard.KEY_C}},
		},
	}
	if err := set.PlayOn(kb); err != nil {
		t.Fatalf("PlayOn: %v", err)
	}

	tail := fc.Received()[before:]
	if len(tail) != 4 {
		t.Fatalf("got %d key requests, want 4 (press ctrl, press c, release c, release ctrl)", len(tail))
	}

	type keyEvent struct {
		key   uint32
		state uint32
	}
	var got []keyEvent
	for _, m := range tail {
		args, err := wire.DecodeArgs(m.Body, "uuu", -1)
		if err != nil {
			t.Fatalf("DecodeArgs: %v", err)
		}
		got = append(got, keyEvent{key: args[1].UInt, state: args[2].UInt})
	}

	want := []keyEvent{
		{virtual_keyboard.KEY_LEFTCTRL, virtual_keyboard.KEY_STATE_PRESSED},
		{virtual_keyboard.KEY_C, virtual_keyboard.KEY_STATE_PRESSED},
		{virtual_keyboard.KEY_C, virtual_keyboard.KEY_STATE_RELEASED},
		{virtual_keyboard.KEY_LEFTCTRL, virtual_keyboard.KEY_STATE_RELEASED},
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("event[%d] = %+v, want %+v (full sequence %+v)", i, got[i], w, got)
		}
	}
}

func TestPlayOnReleasesChordInReverseOrder(t *testing.T) {
	kb, fc := newTestKeyboard(t)

	set := &Set{
		Name: "combo",
		Steps: []Step{
			{Keys: []uint32{virtual_keyboard.KEY_LEFTCTRL, virtual_keyboard.KEY_LEFTSHIFT, virtual_keyboard.KEY_T}},
		},
	}
	before := len(fc.Received())
	if err := set.PlayOn(kb); err != nil {
		t.Fatalf("PlayOn: %v", err)
	}

	tail := fc.Received()[before:]
	if len(tail) != 6 {
		t.Fatalf("got %d key requests, want 6 (3 presses + 3 releases)", len(tail))
	}

	var keys, states []uint32
	for _, m := range tail {
		args, err := wire.DecodeArgs(m.Body, "uuu", -1)
		if err != nil {
			t.Fatalf("DecodeArgs: %v", err)
		}
		keys = append(keys, args[1].UInt)
		states = append(states, args[2].UInt)
	}

	wantKeys := []uint32{
		virtual_keyboard.KEY_LEFTCTRL, virtual_keyboard.KEY_LEFTSHIFT, virtual_keyboard.KEY_T,
		virtual_keyboard.KEY_T, virtual_keyboard.KEY_LEFTSHIFT, virtual_keyboard.KEY_LEFTCTRL,
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Fatalf("key[%d] = %d, want %d (full sequence %v)", i, keys[i], k, keys)
		}
	}
	for i := 0; i < 3; i++ {
		if states[i] != virtual_keyboard.KEY_STATE_PRESSED {
			t.Fatalf("event %d should be a press", i)
		}
	}
	for i := 3; i < 6; i++ {
		if states[i] != virtual_keyboard.KEY_STATE_RELEASED {
			t.Fatalf("event %d should be a release", i)
		}
	}
}

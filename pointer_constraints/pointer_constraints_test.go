package pointer_constraints

import (
	"testing"

	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/internal/wltest"
)

const (
	testSurface uint32 = 100
	testPointer uint32 = 101
	testRegion  uint32 = 102
)

func newTestManager(t *testing.T) (*PointerConstraintsManager, *wltest.Compositor) {
	t.Helper()
	fc := wltest.Start(t, []wltest.Global{
		{Name: 1, Interface: "zwp_pointer_constraints_v1", Version: 1},
	})
	mgr, err := NewPointerConstraintsManager(fc.SocketPath())
	if err != nil {
		t.Fatalf("NewPointerConstraintsManager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr, fc
}

func requestsAfter(t *testing.T, fc *wltest.Compositor, n int) []wltest.Message {
	t.Helper()
	msgs := fc.Received()
	if len(msgs) < n {
		t.Fatalf("got %d requests, want at least %d", len(msgs), n)
	}
	return msgs[n:]
}

func TestLockPointerSendsLockRequest(t *testing.T) {
	mgr, fc := newTestManager(t)
	before := len(fc.Received())

	locked, err := mgr.LockPointer(testSurface, testPointer, 0, LIFETIME_ONESHOT)
	if err != nil {
		t.Fatalf("LockPointer: %v", err)
	}
	if locked == nil {
		t.Fatal("expected a non-nil LockedPointer")
	}

	tail := requestsAfter(t, fc, before)
	if len(tail) != 1 || tail[0].MethodID != 0 {
		t.Fatalf("expected a single lock_pointer request, got %+v", tail)
	}
	args, err := wire.DecodeArgs(tail[0].Body, "nooou", -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if args[1].UInt != testSurface || args[2].UInt != testPointer {
		t.Fatalf("lock_pointer args = %+v, want surface=%d pointer=%d", args, testSurface, testPointer)
	}
	if args[4].UInt != LIFETIME_ONESHOT {
		t.Fatalf("lifetime = %d, want %d", args[4].UInt, LIFETIME_ONESHOT)
	}
}

func TestConfinePointerSendsConfineRequest(t *testing.T) {
	mgr, fc := newTestManager(t)
	before := len(fc.Received())

	confined, err := mgr.ConfinePointer(testSurface, testPointer, testRegion, LIFETIME_PERSISTENT)
	if err != nil {
		t.Fatalf("ConfinePointer: %v", err)
	}
	if confined == nil {
		t.Fatal("expected a non-nil ConfinedPointer")
	}

	tail := requestsAfter(t, fc, before)
	if len(tail) != 1 || tail[0].MethodID != 1 {
		t.Fatalf("expected a single confine_pointer request, got %+v", tail)
	}
	args, err := wire.DecodeArgs(tail[0].Body, "nooou", -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if args[3].UInt != testRegion {
		t.Fatalf("region arg = %d, want %d", args[3].UInt, testRegion)
	}
	if args[4].UInt != LIFETIME_PERSISTENT {
		t.Fatalf("lifetime = %d, want %d", args[4].UInt, LIFETIME_PERSISTENT)
	}
}

func TestOnLockedFiresForLockedAndUnlockedEvents(t *testing.T) {
	mgr, fc := newTestManager(t)
	locked, err := mgr.LockPointer(testSurface, testPointer, 0, LIFETIME_ONESHOT)
	if err != nil {
		t.Fatalf("LockPointer: %v", err)
	}

	var gotLocked, gotUnlocked bool
	locked.OnLocked(func() { gotLocked = true }, func() { gotUnlocked = true })

	tail := fc.Received()
	lockID := lockedObjectID(t, tail, mgr.manager.ID())

	if err := fc.SendEvent(lockID, 0, "", nil); err != nil {
		t.Fatalf("SendEvent(locked): %v", err)
	}
	if err := fc.SendEvent(lockID, 1, "", nil); err != nil {
		t.Fatalf("SendEvent(unlocked): %v", err)
	}
	if err := mgr.DispatchEvents(); err != nil {
		t.Fatalf("DispatchEvents: %v", err)
	}

	if !gotLocked {
		t.Fatal("expected the Locked callback to fire")
	}
	if !gotUnlocked {
		t.Fatal("expected the Unlocked callback to fire")
	}
}

// lockedObjectID extracts the new_id the client chose for its
// zwp_locked_pointer_v1 object from the lock_pointer request it sent to the
// manager object managerID.
func lockedObjectID(t *testing.T, msgs []wltest.Message, managerID uint32) uint32 {
	t.Helper()
	for _, m := range msgs {
		if m.ObjectID != managerID || m.MethodID != 0 {
			continue
		}
		args, err := wire.DecodeArgs(m.Body, "nooou", -1)
		if err != nil {
			continue
		}
		return args[0].UInt
	}
	t.Fatal("no lock_pointer request found")
	return 0
}

func TestSetCursorPositionHintSendsFixedCoordinates(t *testing.T) {
	mgr, fc := newTestManager(t)
	locked, err := mgr.LockPointer(testSurface, testPointer, 0, LIFETIME_ONESHOT)
	if err != nil {
		t.Fatalf("LockPointer: %v", err)
	}
	before := len(fc.Received())

	if err := locked.SetCursorPositionHint(12.5, -3.0); err != nil {
		t.Fatalf("SetCursorPositionHint: %v", err)
	}

	tail := requestsAfter(t, fc, before)
	if len(tail) != 1 || tail[0].MethodID != 0 {
		t.Fatalf("expected set_cursor_position_hint request, got %+v", tail)
	}
	args, err := wire.DecodeArgs(tail[0].Body, "ff", -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if got := args[0].FixedVal.Float64(); got < 12.49 || got > 12.51 {
		t.Fatalf("x = %v, want ~12.5", got)
	}
	if got := args[1].FixedVal.Float64(); got < -3.01 || got > -2.99 {
		t.Fatalf("y = %v, want ~-3.0", got)
	}
}

func TestLockedPointerDestroyUnregisters(t *testing.T) {
	mgr, fc := newTestManager(t)
	locked, err := mgr.LockPointer(testSurface, testPointer, 0, LIFETIME_ONESHOT)
	if err != nil {
		t.Fatalf("LockPointer: %v", err)
	}
	before := len(fc.Received())

	if err := locked.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	tail := requestsAfter(t, fc, before)
	if len(tail) != 1 || tail[0].MethodID != 2 {
		t.Fatalf("expected destroy (methodID 2), got %+v", tail)
	}
}

func TestConfinedPointerSetRegionAndDestroy(t *testing.T) {
	mgr, fc := newTestManager(t)
	confined, err := mgr.ConfinePointer(testSurface, testPointer, 0, LIFETIME_ONESHOT)
	if err != nil {
		t.Fatalf("ConfinePointer: %v", err)
	}
	before := len(fc.Received())

	if err := confined.SetRegion(testRegion); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	if err := confined.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	tail := requestsAfter(t, fc, before)
	if len(tail) != 2 {
		t.Fatalf("got %d requests, want 2 (set_region, destroy)", len(tail))
	}
	regionArgs, err := wire.DecodeArgs(tail[0].Body, "o", -1)
	if err != nil || tail[0].MethodID != 0 {
		t.Fatalf("expected set_region request, got methodID=%d err=%v", tail[0].MethodID, err)
	}
	if regionArgs[0].UInt != testRegion {
		t.Fatalf("region = %d, want %d", regionArgs[0].UInt, testRegion)
	}
	if tail[1].MethodID != 1 {
		t.Fatalf("expected destroy (methodID 1) last, got %d", tail[1].MethodID)
	}
}

func TestLockPointerAtCurrentPositionUsesOneshot(t *testing.T) {
	mgr, fc := newTestManager(t)
	before := len(fc.Received())

	if _, err := LockPointerAtCurrentPosition(mgr, testSurface, testPointer); err != nil {
		t.Fatalf("LockPointerAtCurrentPosition: %v", err)
	}

	tail := requestsAfter(t, fc, before)
	args, err := wire.DecodeArgs(tail[0].Body, "nooou", -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if args[4].UInt != LIFETIME_ONESHOT {
		t.Fatalf("lifetime = %d, want oneshot", args[4].UInt)
	}
}

func TestConfinePointerToRegionUsesOneshot(t *testing.T) {
	mgr, fc := newTestManager(t)
	before := len(fc.Received())

	if _, err := ConfinePointerToRegion(mgr, testSurface, testPointer, testRegion); err != nil {
		t.Fatalf("ConfinePointerToRegion: %v", err)
	}

	tail := requestsAfter(t, fc, before)
	args, err := wire.DecodeArgs(tail[0].Body, "nooou", -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if args[4].UInt != LIFETIME_ONESHOT {
		t.Fatalf("lifetime = %d, want oneshot", args[4].UInt)
	}
}
